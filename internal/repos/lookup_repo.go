package repos

import (
	"github.com/jmoiron/sqlx"

	"tienda3d/internal/domain"
)

// LookupRepo serves the small read-only catalogs products reference.
type LookupRepo struct{ db *sqlx.DB }

func NewLookupRepo(db *sqlx.DB) *LookupRepo { return &LookupRepo{db: db} }

func (r *LookupRepo) Impresoras() ([]domain.Impresora, error) {
	rows := []domain.Impresora{}
	err := r.db.Select(&rows, `SELECT * FROM impresoras WHERE activo = TRUE ORDER BY nombre`)
	return rows, err
}

func (r *LookupRepo) Filamentos() ([]domain.Filamento, error) {
	rows := []domain.Filamento{}
	err := r.db.Select(&rows, `SELECT * FROM filamentos WHERE activo = TRUE ORDER BY nombre`)
	return rows, err
}
