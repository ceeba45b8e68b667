package repos

import (
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"

	"tienda3d/internal/domain"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// List returns active categories with the parent name and the count of
// active products, in display order.
func (r *CategoryRepo) List() ([]domain.CategoriaListado, error) {
	rows := []domain.CategoriaListado{}
	err := r.db.Select(&rows, `
	  SELECT
	    c.*,
	    padre.nombre AS padre,
	    COALESCE(pc.total, 0) AS total_productos
	  FROM categorias c
	  LEFT JOIN categorias padre ON c.padre_id = padre.id
	  LEFT JOIN (
	    SELECT categoria_id, COUNT(id) AS total
	    FROM productos
	    WHERE activo = TRUE
	    GROUP BY categoria_id
	  ) pc ON pc.categoria_id = c.id
	  WHERE c.activo = TRUE
	  ORDER BY c.orden, c.nombre`)
	return rows, err
}

func (r *CategoryRepo) Get(id int64) (*domain.Categoria, error) {
	var c domain.Categoria
	if err := r.db.Get(&c, r.db.Rebind(`SELECT * FROM categorias WHERE id = ?`), id); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) Create(c *domain.Categoria) (int64, error) {
	var id int64
	err := r.db.Get(&id, r.db.Rebind(`
	  INSERT INTO categorias (nombre, slug, descripcion, imagen, padre_id, orden)
	  VALUES (?, ?, ?, ?, ?, ?)
	  RETURNING id`),
		c.Nombre, c.Slug, c.Descripcion, c.Imagen, c.PadreID, c.Orden)
	return id, err
}

func (r *CategoryRepo) Update(id int64, u domain.CategoriaUpdate) error {
	var sets []string
	var args []any

	if u.Nombre != nil {
		sets = append(sets, "nombre = ?", "slug = ?")
		args = append(args, *u.Nombre, domain.Slugify(*u.Nombre))
	}
	if u.Descripcion != nil {
		sets = append(sets, "descripcion = ?")
		args = append(args, *u.Descripcion)
	}
	if u.Imagen != nil {
		sets = append(sets, "imagen = ?")
		args = append(args, *u.Imagen)
	}
	if u.PadreID != nil {
		sets = append(sets, "padre_id = ?")
		args = append(args, *u.PadreID)
	}
	if u.Orden != nil {
		sets = append(sets, "orden = ?")
		args = append(args, *u.Orden)
	}
	if u.Activo != nil {
		sets = append(sets, "activo = ?")
		args = append(args, *u.Activo)
	}
	if len(sets) == 0 {
		return nil
	}

	query := "UPDATE categorias SET " + strings.Join(sets, ", ") + ", updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	res, err := r.db.Exec(r.db.Rebind(query), append(args, id)...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ActiveProducts counts active products still referencing the category;
// the delete guard refuses while this is non-zero.
func (r *CategoryRepo) ActiveProducts(id int64) (int, error) {
	var n int
	err := r.db.Get(&n, r.db.Rebind(`
	  SELECT COUNT(*) FROM productos WHERE categoria_id = ? AND activo = TRUE`), id)
	return n, err
}

func (r *CategoryRepo) SoftDelete(id int64) error {
	res, err := r.db.Exec(r.db.Rebind(`UPDATE categorias SET activo = FALSE, updated_at = CURRENT_TIMESTAMP WHERE id = ?`), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
