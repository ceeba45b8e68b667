package handlers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

var errImagenInvalida = errors.New("archivo de imagen inválido")

// saveImagen persists the multipart "imagen" part under dir with a generated
// unique name and returns the stored filename. Nil when the request carries
// no file; a broken part is an error, not an absent file.
func saveImagen(c *fiber.Ctx, dir string) (*string, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return nil, nil
	}
	f, err := c.FormFile("imagen")
	if err != nil {
		if errors.Is(err, fasthttp.ErrMissingFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", errImagenInvalida, err)
	}
	name := uuid.NewString() + strings.ToLower(filepath.Ext(f.Filename))
	if err := c.SaveFile(f, filepath.Join(dir, name)); err != nil {
		return nil, err
	}
	return &name, nil
}
