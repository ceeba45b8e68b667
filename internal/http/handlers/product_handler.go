package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"tienda3d/internal/domain"
	applog "tienda3d/internal/log"
	"tienda3d/internal/services"
	"tienda3d/internal/validate"
)

type ProductHandler struct {
	Catalog   *services.CatalogService
	UploadDir string
}

// productoRequest is the create payload; it accepts JSON or multipart form
// fields. Tags arrive as a list and are stored JSON-encoded.
type productoRequest struct {
	Nombre           string   `json:"nombre" form:"nombre"`
	CategoriaID      *int64   `json:"categoria_id" form:"categoria_id"`
	MarcaID          *int64   `json:"marca_id" form:"marca_id"`
	ImpresoraID      *int64   `json:"impresora_id" form:"impresora_id"`
	SKU              *string  `json:"sku" form:"sku"`
	DescripcionCorta *string  `json:"descripcion_corta" form:"descripcion_corta"`
	DescripcionLarga *string  `json:"descripcion_larga" form:"descripcion_larga"`
	PrecioPublico    *float64 `json:"precio_publico" form:"precio_publico"`
	PrecioOferta     *float64 `json:"precio_oferta" form:"precio_oferta"`
	StockActual      int      `json:"stock_actual" form:"stock_actual"`
	StockMinimo      int      `json:"stock_minimo" form:"stock_minimo"`
	Peso             *float64 `json:"peso" form:"peso"`
	Destacado        bool     `json:"destacado" form:"destacado"`
	Nuevo            bool     `json:"nuevo" form:"nuevo"`
	Tags             []string `json:"tags" form:"-"`
	Filamento        *string  `json:"filamento" form:"filamento"`
	Gramos           *float64 `json:"gramos" form:"gramos"`
	Horas            *float64 `json:"horas" form:"horas"`
	Margen           *float64 `json:"margen" form:"margen"`
	IVA              *float64 `json:"iva" form:"iva"`
	Energia          *float64 `json:"energia" form:"energia"`
	Material         *float64 `json:"material" form:"material"`
	Desgaste         *float64 `json:"desgaste" form:"desgaste"`
	Utilidad         *float64 `json:"utilidad" form:"utilidad"`
	Impuesto         *float64 `json:"impuesto" form:"impuesto"`
	Total            *float64 `json:"total" form:"total"`
	UsuarioID        *int64   `json:"usuario_id" form:"usuario_id"`

	Alto  *float64 `json:"alto" form:"alto"`
	Ancho *float64 `json:"ancho" form:"ancho"`
	Largo *float64 `json:"largo" form:"largo"`
	Scale *float64 `json:"scale" form:"scale"`

	Atributos []domain.AtributoInput `json:"atributos" form:"-"`
}

// GET /api/productos
func (h *ProductHandler) List(c *fiber.Ctx) error {
	f := domain.ProductoFiltro{
		Activo:    validate.Bool(c.Query("activo", "true")),
		Destacado: validate.Bool(c.Query("destacado")),
		Nuevo:     validate.Bool(c.Query("nuevo")),
		PrecioMin: validate.Float(c.Query("precio_min")),
		PrecioMax: validate.Float(c.Query("precio_max")),
		Buscar:    c.Query("buscar"),
		OrderBy:   validate.OrderBy(c.Query("orden"), c.Query("direccion", "DESC")),
		Pagina:    validate.Pagina(c.Query("pagina")),
		Limite:    validate.Limite(c.Query("limite")),
	}
	if id, okID := validate.ID(c.Query("categoria_id")); okID {
		f.CategoriaID = &id
	}
	if id, okID := validate.ID(c.Query("marca_id")); okID {
		f.MarcaID = &id
	}

	rows, pag, err := h.Catalog.ListProductos(f)
	if err != nil {
		return failErr(c, "productos.list", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": rows, "paginacion": pag})
}

// GET /api/productos/:id — id may be numeric or a slug.
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	det, err := h.Catalog.GetProducto(c.Params("id"))
	if err != nil {
		return failErr(c, "productos.get", err)
	}
	return ok(c, det)
}

// POST /api/productos
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req productoRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	if req.Atributos == nil {
		if raw := c.FormValue("atributos"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Atributos); err != nil {
				return fail(c, fiber.StatusBadRequest, "atributos inválidos")
			}
		}
	}

	imagen, err := saveImagen(c, h.UploadDir)
	if err != nil {
		return failErr(c, "productos.upload", err)
	}

	p := domain.Producto{
		Nombre:           req.Nombre,
		SKU:              req.SKU,
		CategoriaID:      req.CategoriaID,
		MarcaID:          req.MarcaID,
		ImpresoraID:      req.ImpresoraID,
		DescripcionCorta: req.DescripcionCorta,
		DescripcionLarga: req.DescripcionLarga,
		PrecioPublico:    req.PrecioPublico,
		PrecioOferta:     req.PrecioOferta,
		StockActual:      req.StockActual,
		StockMinimo:      req.StockMinimo,
		Peso:             req.Peso,
		Imagen:           imagen,
		Destacado:        req.Destacado,
		Nuevo:            req.Nuevo,
		Filamento:        req.Filamento,
		Gramos:           req.Gramos,
		Horas:            req.Horas,
		Margen:           req.Margen,
		IVA:              req.IVA,
		Energia:          req.Energia,
		Material:         req.Material,
		Desgaste:         req.Desgaste,
		Utilidad:         req.Utilidad,
		Impuesto:         req.Impuesto,
		Total:            req.Total,
		UsuarioID:        req.UsuarioID,
	}
	if len(req.Tags) > 0 {
		b, _ := json.Marshal(req.Tags)
		s := string(b)
		p.Tags = &s
	}

	id, sku, slug, err := h.Catalog.CreateProducto(&p, req.Alto, req.Ancho, req.Largo, req.Scale, req.Atributos)
	if err != nil {
		return failErr(c, "productos.create", err)
	}
	applog.Audit(c, "productos.create", map[string]any{"id": id, "sku": sku})
	return okMsg(c, fiber.StatusCreated, "Producto creado exitosamente",
		fiber.Map{"id": id, "sku": sku, "slug": slug})
}

// PUT /api/productos/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "id inválido")
	}

	var u domain.ProductoUpdate
	if err := c.BodyParser(&u); err != nil {
		return fail(c, fiber.StatusBadRequest, "cuerpo inválido")
	}
	if u.Atributos == nil {
		if raw := c.FormValue("atributos"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &u.Atributos); err != nil {
				return fail(c, fiber.StatusBadRequest, "atributos inválidos")
			}
		}
	}

	imagen, err := saveImagen(c, h.UploadDir)
	if err != nil {
		return failErr(c, "productos.upload", err)
	}
	if imagen != nil {
		u.Imagen = imagen
	}

	if err := h.Catalog.UpdateProducto(id, u); err != nil {
		return failErr(c, "productos.update", err)
	}
	applog.Audit(c, "productos.update", map[string]any{"id": id})
	return okMsg(c, fiber.StatusOK, "Producto actualizado exitosamente", nil)
}

// DELETE /api/productos/:id — soft delete.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "id inválido")
	}
	if err := h.Catalog.DeleteProducto(id); err != nil {
		return failErr(c, "productos.delete", err)
	}
	applog.Audit(c, "productos.delete", map[string]any{"id": id})
	return okMsg(c, fiber.StatusOK, "Producto eliminado exitosamente", nil)
}

// GET /api/productos/destacados
func (h *ProductHandler) Destacados(c *fiber.Ctx) error {
	rows, err := h.Catalog.Destacados()
	if err != nil {
		return failErr(c, "productos.destacados", err)
	}
	return ok(c, rows)
}

// GET /api/productos/stock-bajo
func (h *ProductHandler) StockBajo(c *fiber.Ctx) error {
	rows, err := h.Catalog.StockBajo()
	if err != nil {
		return failErr(c, "productos.stockbajo", err)
	}
	return ok(c, rows)
}

// GET /api/productos/:id/relacionados
func (h *ProductHandler) Relacionados(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "id inválido")
	}
	limite := validate.Limite(c.Query("limite", "6"))
	rows, err := h.Catalog.Relacionados(id, limite)
	if err != nil {
		return failErr(c, "productos.relacionados", err)
	}
	return ok(c, rows)
}

// GET /api/productos/:id/resenas
func (h *ProductHandler) Resenas(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "id inválido")
	}
	rows, err := h.Catalog.Resenas(id, validate.Pagina(c.Query("pagina")), validate.Limite(c.Query("limite", "10")))
	if err != nil {
		return failErr(c, "productos.resenas", err)
	}
	return ok(c, rows)
}
