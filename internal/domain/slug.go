package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	reSlugStrip   = regexp.MustCompile(`[^a-z0-9\s-]`)
	reSlugSpaces  = regexp.MustCompile(`\s+`)
	reSlugHyphens = regexp.MustCompile(`-+`)
)

// Slugify lower-cases the name, strips everything that is not alphanumeric,
// space or hyphen, turns whitespace runs into single hyphens and trims the
// edges. "Mi Producto!" becomes "mi-producto".
func Slugify(nombre string) string {
	s := strings.ToLower(strings.TrimSpace(nombre))
	s = reSlugStrip.ReplaceAllString(s, "")
	s = reSlugSpaces.ReplaceAllString(s, "-")
	s = reSlugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SKU builds the zero-padded catalog code for a row id.
func SKU(id int64) string {
	return fmt.Sprintf("3D-%04d", id)
}
