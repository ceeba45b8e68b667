package repos

import (
	"database/sql"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"tienda3d/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// Approved reviews are aggregated in a subquery so the row count of the
// outer select stays one-per-product.
const productoListadoSelect = `
  SELECT
    p.*,
    c.nombre AS categoria,
    c.slug AS categoria_slug,
    m.nombre AS marca,
    i.nombre AS impresora,
    COALESCE(r.promedio, 0) AS calificacion_promedio,
    COALESCE(r.total, 0) AS total_resenas
  FROM productos p
  LEFT JOIN categorias c ON p.categoria_id = c.id
  LEFT JOIN marcas m ON p.marca_id = m.id
  LEFT JOIN impresoras i ON p.impresora_id = i.id
  LEFT JOIN (
    SELECT producto_id, AVG(calificacion) AS promedio, COUNT(id) AS total
    FROM producto_resenas
    WHERE aprobado = TRUE
    GROUP BY producto_id
  ) r ON r.producto_id = p.id`

// List returns one page of products plus the unpaginated total for the same
// filters. Every filter value is bound, never spliced.
func (r *ProductRepo) List(f domain.ProductoFiltro) ([]domain.ProductoListado, int, error) {
	var where []string
	var args []any

	if f.Activo != nil {
		where = append(where, "p.activo = ?")
		args = append(args, *f.Activo)
	}
	if f.CategoriaID != nil {
		where = append(where, "p.categoria_id = ?")
		args = append(args, *f.CategoriaID)
	}
	if f.MarcaID != nil {
		where = append(where, "p.marca_id = ?")
		args = append(args, *f.MarcaID)
	}
	if f.Destacado != nil {
		where = append(where, "p.destacado = ?")
		args = append(args, *f.Destacado)
	}
	if f.Nuevo != nil {
		where = append(where, "p.nuevo = ?")
		args = append(args, *f.Nuevo)
	}
	if f.PrecioMin != nil {
		where = append(where, "p.precio_publico >= ?")
		args = append(args, *f.PrecioMin)
	}
	if f.PrecioMax != nil {
		where = append(where, "p.precio_publico <= ?")
		args = append(args, *f.PrecioMax)
	}
	if f.Buscar != "" {
		where = append(where, "(p.nombre LIKE ? OR p.descripcion_corta LIKE ? OR p.descripcion_larga LIKE ? OR p.sku LIKE ?)")
		term := "%" + f.Buscar + "%"
		args = append(args, term, term, term, term)
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	query := productoListadoSelect + whereSQL + " ORDER BY " + f.OrderBy + " LIMIT ? OFFSET ?"
	pageArgs := append(append([]any{}, args...), f.Limite, (f.Pagina-1)*f.Limite)

	rows := []domain.ProductoListado{}
	if err := r.db.Select(&rows, r.db.Rebind(query), pageArgs...); err != nil {
		return nil, 0, err
	}

	var total int
	count := "SELECT COUNT(*) FROM productos p" + whereSQL
	if err := r.db.Get(&total, r.db.Rebind(count), args...); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Get looks a product up by numeric id or by slug and attaches its ordered
// attribute rows. Returns sql.ErrNoRows on a miss.
func (r *ProductRepo) Get(idOrSlug string) (*domain.ProductoDetalle, error) {
	col := "p.slug"
	var key any = idOrSlug
	if id, err := strconv.ParseInt(idOrSlug, 10, 64); err == nil {
		col = "p.id"
		key = id
	}

	query := `
  SELECT
    p.*,
    c.nombre AS categoria,
    c.slug AS categoria_slug,
    m.nombre AS marca,
    i.nombre AS impresora,
    d.alto, d.ancho, d.largo, d.scale,
    COALESCE(r.promedio, 0) AS calificacion_promedio,
    COALESCE(r.total, 0) AS total_resenas
  FROM productos p
  LEFT JOIN categorias c ON p.categoria_id = c.id
  LEFT JOIN marcas m ON p.marca_id = m.id
  LEFT JOIN impresoras i ON p.impresora_id = i.id
  LEFT JOIN dimensiones d ON p.id = d.producto_id
  LEFT JOIN (
    SELECT producto_id, AVG(calificacion) AS promedio, COUNT(id) AS total
    FROM producto_resenas
    WHERE aprobado = TRUE
    GROUP BY producto_id
  ) r ON r.producto_id = p.id
  WHERE ` + col + ` = ?`

	var det domain.ProductoDetalle
	if err := r.db.Get(&det, r.db.Rebind(query), key); err != nil {
		return nil, err
	}

	attrs, err := r.Attributes(det.ID)
	if err != nil {
		return nil, err
	}
	det.Atributos = attrs
	return &det, nil
}

func (r *ProductRepo) Attributes(productoID int64) ([]domain.AtributoValor, error) {
	attrs := []domain.AtributoValor{}
	err := r.db.Select(&attrs, r.db.Rebind(`
	  SELECT a.nombre, a.tipo, a.unidad, pa.valor
	  FROM producto_atributos pa
	  JOIN atributos a ON pa.atributo_id = a.id
	  WHERE pa.producto_id = ?
	  ORDER BY a.orden`), productoID)
	return attrs, err
}

// Create inserts the product plus its optional dimension row and attribute
// associations in one transaction. A missing SKU is derived from the next
// row id inside the same transaction.
func (r *ProductRepo) Create(p *domain.Producto, dims map[string]*float64, attrs []domain.AtributoInput) (int64, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if p.SKU == nil || *p.SKU == "" {
		var maxID int64
		if err := tx.Get(&maxID, `SELECT COALESCE(MAX(id), 0) FROM productos`); err != nil {
			return 0, err
		}
		sku := domain.SKU(maxID + 1)
		p.SKU = &sku
	}

	var id int64
	insert := r.db.Rebind(`
	  INSERT INTO productos (
	    nombre, slug, sku, categoria_id, marca_id, impresora_id,
	    descripcion_corta, descripcion_larga, precio_publico, precio_oferta,
	    stock_actual, stock_minimo, peso, imagen, destacado, nuevo, tags,
	    filamento, gramos, horas, margen, iva, energia, material, desgaste,
	    utilidad, impuesto, total, usuario_id, activo, fecha_publicacion
	  ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, TRUE, CURRENT_TIMESTAMP)
	  RETURNING id`)
	err = tx.Get(&id, insert,
		p.Nombre, p.Slug, p.SKU, p.CategoriaID, p.MarcaID, p.ImpresoraID,
		p.DescripcionCorta, p.DescripcionLarga, p.PrecioPublico, p.PrecioOferta,
		p.StockActual, p.StockMinimo, p.Peso, p.Imagen, p.Destacado, p.Nuevo, p.Tags,
		p.Filamento, p.Gramos, p.Horas, p.Margen, p.IVA, p.Energia, p.Material, p.Desgaste,
		p.Utilidad, p.Impuesto, p.Total, p.UsuarioID)
	if err != nil {
		return 0, err
	}

	if dims != nil {
		if err := upsertDimensiones(tx, id, dims); err != nil {
			return 0, err
		}
	}
	if err := insertAtributos(tx, id, attrs); err != nil {
		return 0, err
	}

	return id, tx.Commit()
}

// Update applies only the supplied columns, regenerating the slug on rename.
// A non-nil attribute list replaces the association set wholesale; any
// supplied geometry field upserts the dimension row. All inside one
// transaction. Returns sql.ErrNoRows when the product does not exist.
func (r *ProductRepo) Update(id int64, u domain.ProductoUpdate) error {
	var sets []string
	var args []any

	set := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}

	if u.Nombre != nil {
		set("nombre", *u.Nombre)
		set("slug", domain.Slugify(*u.Nombre))
	}
	if u.CategoriaID != nil {
		set("categoria_id", *u.CategoriaID)
	}
	if u.MarcaID != nil {
		set("marca_id", *u.MarcaID)
	}
	if u.ImpresoraID != nil {
		set("impresora_id", *u.ImpresoraID)
	}
	if u.SKU != nil {
		set("sku", *u.SKU)
	}
	if u.DescripcionCorta != nil {
		set("descripcion_corta", *u.DescripcionCorta)
	}
	if u.DescripcionLarga != nil {
		set("descripcion_larga", *u.DescripcionLarga)
	}
	if u.PrecioPublico != nil {
		set("precio_publico", *u.PrecioPublico)
	}
	if u.PrecioOferta != nil {
		set("precio_oferta", *u.PrecioOferta)
	}
	if u.StockActual != nil {
		set("stock_actual", *u.StockActual)
	}
	if u.StockMinimo != nil {
		set("stock_minimo", *u.StockMinimo)
	}
	if u.Peso != nil {
		set("peso", *u.Peso)
	}
	if u.Imagen != nil {
		set("imagen", *u.Imagen)
	}
	if u.Destacado != nil {
		set("destacado", *u.Destacado)
	}
	if u.Nuevo != nil {
		set("nuevo", *u.Nuevo)
	}
	if u.Tags != nil {
		set("tags", *u.Tags)
	}
	if u.Filamento != nil {
		set("filamento", *u.Filamento)
	}
	if u.Gramos != nil {
		set("gramos", *u.Gramos)
	}
	if u.Horas != nil {
		set("horas", *u.Horas)
	}
	if u.Margen != nil {
		set("margen", *u.Margen)
	}
	if u.IVA != nil {
		set("iva", *u.IVA)
	}
	if u.Energia != nil {
		set("energia", *u.Energia)
	}
	if u.Material != nil {
		set("material", *u.Material)
	}
	if u.Desgaste != nil {
		set("desgaste", *u.Desgaste)
	}
	if u.Utilidad != nil {
		set("utilidad", *u.Utilidad)
	}
	if u.Impuesto != nil {
		set("impuesto", *u.Impuesto)
	}
	if u.Total != nil {
		set("total", *u.Total)
	}
	if u.Activo != nil {
		set("activo", *u.Activo)
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if len(sets) > 0 {
		query := "UPDATE productos SET " + strings.Join(sets, ", ") + ", updated_at = CURRENT_TIMESTAMP WHERE id = ?"
		res, err := tx.Exec(r.db.Rebind(query), append(args, id)...)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return sql.ErrNoRows
		}
	}

	if u.Alto != nil || u.Ancho != nil || u.Largo != nil || u.Scale != nil {
		dims := map[string]*float64{"alto": u.Alto, "ancho": u.Ancho, "largo": u.Largo, "scale": u.Scale}
		if err := upsertDimensiones(tx, id, dims); err != nil {
			return err
		}
	}

	if u.Atributos != nil {
		if _, err := tx.Exec(r.db.Rebind(`DELETE FROM producto_atributos WHERE producto_id = ?`), id); err != nil {
			return err
		}
		if err := insertAtributos(tx, id, u.Atributos); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *ProductRepo) SoftDelete(id int64) error {
	res, err := r.db.Exec(r.db.Rebind(`UPDATE productos SET activo = FALSE, updated_at = CURRENT_TIMESTAMP WHERE id = ?`), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *ProductRepo) Destacados(limit int) ([]domain.ProductoListado, error) {
	rows := []domain.ProductoListado{}
	query := productoListadoSelect + `
	  WHERE p.activo = TRUE AND p.destacado = TRUE
	  ORDER BY calificacion_promedio DESC, p.created_at DESC
	  LIMIT ?`
	err := r.db.Select(&rows, r.db.Rebind(query), limit)
	return rows, err
}

func (r *ProductRepo) StockBajo() ([]domain.ProductoListado, error) {
	rows := []domain.ProductoListado{}
	query := productoListadoSelect + `
	  WHERE p.activo = TRUE AND p.stock_actual <= p.stock_minimo
	  ORDER BY p.stock_actual ASC`
	err := r.db.Select(&rows, r.db.Rebind(query))
	return rows, err
}

// Relacionados returns active products sharing the category, featured and
// best rated first.
func (r *ProductRepo) Relacionados(id int64, limit int) ([]domain.ProductoListado, error) {
	rows := []domain.ProductoListado{}
	query := productoListadoSelect + `
	  WHERE p.activo = TRUE
	    AND p.id <> ?
	    AND p.categoria_id = (SELECT categoria_id FROM productos WHERE id = ?)
	  ORDER BY p.destacado DESC, calificacion_promedio DESC
	  LIMIT ?`
	err := r.db.Select(&rows, r.db.Rebind(query), id, id, limit)
	return rows, err
}

func (r *ProductRepo) Resenas(productoID int64, limit, offset int) ([]domain.Resena, error) {
	rows := []domain.Resena{}
	err := r.db.Select(&rows, r.db.Rebind(`
	  SELECT pr.id, pr.producto_id, pr.usuario_id, pr.calificacion, pr.comentario,
	         pr.aprobado, pr.created_at, u.nombre AS usuario_nombre
	  FROM producto_resenas pr
	  LEFT JOIN usuarios u ON pr.usuario_id = u.id
	  WHERE pr.producto_id = ? AND pr.aprobado = TRUE
	  ORDER BY pr.created_at DESC
	  LIMIT ? OFFSET ?`), productoID, limit, offset)
	return rows, err
}

// upsertDimensiones merges the supplied geometry into the dimension row;
// nil fields keep their stored values.
func upsertDimensiones(tx *sqlx.Tx, productoID int64, dims map[string]*float64) error {
	_, err := tx.Exec(tx.Rebind(`
	  INSERT INTO dimensiones (producto_id, alto, ancho, largo, scale)
	  VALUES (?, ?, ?, ?, ?)
	  ON CONFLICT(producto_id) DO UPDATE SET
	    alto = COALESCE(excluded.alto, dimensiones.alto),
	    ancho = COALESCE(excluded.ancho, dimensiones.ancho),
	    largo = COALESCE(excluded.largo, dimensiones.largo),
	    scale = COALESCE(excluded.scale, dimensiones.scale)`),
		productoID, dims["alto"], dims["ancho"], dims["largo"], dims["scale"])
	return err
}

func insertAtributos(tx *sqlx.Tx, productoID int64, attrs []domain.AtributoInput) error {
	for _, a := range attrs {
		_, err := tx.Exec(tx.Rebind(`
		  INSERT INTO producto_atributos (producto_id, atributo_id, valor)
		  VALUES (?, ?, ?)`), productoID, a.AtributoID, a.Valor)
		if err != nil {
			return err
		}
	}
	return nil
}
