package repos

import (
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"

	"tienda3d/internal/domain"
)

type BrandRepo struct{ db *sqlx.DB }

func NewBrandRepo(db *sqlx.DB) *BrandRepo { return &BrandRepo{db: db} }

func (r *BrandRepo) List() ([]domain.MarcaListado, error) {
	rows := []domain.MarcaListado{}
	err := r.db.Select(&rows, `
	  SELECT
	    m.*,
	    COALESCE(pm.total, 0) AS total_productos
	  FROM marcas m
	  LEFT JOIN (
	    SELECT marca_id, COUNT(id) AS total
	    FROM productos
	    WHERE activo = TRUE
	    GROUP BY marca_id
	  ) pm ON pm.marca_id = m.id
	  WHERE m.activo = TRUE
	  ORDER BY m.nombre`)
	return rows, err
}

func (r *BrandRepo) Create(m *domain.Marca) (int64, error) {
	var id int64
	err := r.db.Get(&id, r.db.Rebind(`
	  INSERT INTO marcas (nombre, descripcion, logo)
	  VALUES (?, ?, ?)
	  RETURNING id`),
		m.Nombre, m.Descripcion, m.Logo)
	return id, err
}

func (r *BrandRepo) Update(id int64, u domain.MarcaUpdate) error {
	var sets []string
	var args []any

	if u.Nombre != nil {
		sets = append(sets, "nombre = ?")
		args = append(args, *u.Nombre)
	}
	if u.Descripcion != nil {
		sets = append(sets, "descripcion = ?")
		args = append(args, *u.Descripcion)
	}
	if u.Logo != nil {
		sets = append(sets, "logo = ?")
		args = append(args, *u.Logo)
	}
	if u.Activo != nil {
		sets = append(sets, "activo = ?")
		args = append(args, *u.Activo)
	}
	if len(sets) == 0 {
		return nil
	}

	query := "UPDATE marcas SET " + strings.Join(sets, ", ") + ", updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	res, err := r.db.Exec(r.db.Rebind(query), append(args, id)...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *BrandRepo) ActiveProducts(id int64) (int, error) {
	var n int
	err := r.db.Get(&n, r.db.Rebind(`
	  SELECT COUNT(*) FROM productos WHERE marca_id = ? AND activo = TRUE`), id)
	return n, err
}

func (r *BrandRepo) SoftDelete(id int64) error {
	res, err := r.db.Exec(r.db.Rebind(`UPDATE marcas SET activo = FALSE, updated_at = CURRENT_TIMESTAMP WHERE id = ?`), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
