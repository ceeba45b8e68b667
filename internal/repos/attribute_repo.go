package repos

import (
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"

	"tienda3d/internal/domain"
)

type AttributeRepo struct{ db *sqlx.DB }

func NewAttributeRepo(db *sqlx.DB) *AttributeRepo { return &AttributeRepo{db: db} }

func (r *AttributeRepo) List() ([]domain.Atributo, error) {
	rows := []domain.Atributo{}
	err := r.db.Select(&rows, `
	  SELECT * FROM atributos
	  WHERE activo = TRUE
	  ORDER BY orden, nombre`)
	return rows, err
}

func (r *AttributeRepo) Create(a *domain.Atributo) (int64, error) {
	var id int64
	err := r.db.Get(&id, r.db.Rebind(`
	  INSERT INTO atributos (nombre, tipo, unidad, orden)
	  VALUES (?, ?, ?, ?)
	  RETURNING id`),
		a.Nombre, a.Tipo, a.Unidad, a.Orden)
	return id, err
}

func (r *AttributeRepo) Update(id int64, u domain.AtributoUpdate) error {
	var sets []string
	var args []any

	if u.Nombre != nil {
		sets = append(sets, "nombre = ?")
		args = append(args, *u.Nombre)
	}
	if u.Tipo != nil {
		sets = append(sets, "tipo = ?")
		args = append(args, *u.Tipo)
	}
	if u.Unidad != nil {
		sets = append(sets, "unidad = ?")
		args = append(args, *u.Unidad)
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

	query := "UPDATE atributos SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	res, err := r.db.Exec(r.db.Rebind(query), append(args, id)...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *AttributeRepo) SoftDelete(id int64) error {
	res, err := r.db.Exec(r.db.Rebind(`UPDATE atributos SET activo = FALSE WHERE id = ?`), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
