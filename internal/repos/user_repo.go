package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"tienda3d/internal/domain"
)

type UserRepo struct{ db *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) ByEmail(email string) (*domain.Usuario, error) {
	var u domain.Usuario
	err := r.db.Get(&u, r.db.Rebind(`SELECT * FROM usuarios WHERE LOWER(email) = LOWER(?)`), email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetOrCreate returns the row for the email, inserting a default user-role
// row on first sight. ON CONFLICT absorbs a concurrent first login for the
// same email; the re-read then finds the winner's row.
func (r *UserRepo) GetOrCreate(email string) (*domain.Usuario, error) {
	u, err := r.ByEmail(email)
	if err == nil {
		return u, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	_, err = r.db.Exec(r.db.Rebind(`
	  INSERT INTO usuarios (email, rol) VALUES (?, ?)
	  ON CONFLICT(email) DO NOTHING`), email, domain.RolUser)
	if err != nil {
		return nil, err
	}
	return r.ByEmail(email)
}

func (r *UserRepo) List() ([]domain.Usuario, error) {
	rows := []domain.Usuario{}
	err := r.db.Select(&rows, `SELECT * FROM usuarios ORDER BY email`)
	return rows, err
}

// UpdateRol updates by id when given, otherwise by email.
func (r *UserRepo) UpdateRol(id *int64, email *string, rol string) error {
	var res sql.Result
	var err error
	if id != nil {
		res, err = r.db.Exec(r.db.Rebind(`UPDATE usuarios SET rol = ? WHERE id = ?`), rol, *id)
	} else {
		res, err = r.db.Exec(r.db.Rebind(`UPDATE usuarios SET rol = ? WHERE LOWER(email) = LOWER(?)`), rol, *email)
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *UserRepo) TouchLastLogin(email string) error {
	res, err := r.db.Exec(r.db.Rebind(`
	  UPDATE usuarios SET ultimo_login = CURRENT_TIMESTAMP WHERE LOWER(email) = LOWER(?)`), email)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Autorizado reports membership in the allow-list table, which gates access
// independently of the usuarios table.
func (r *UserRepo) Autorizado(email string) (bool, error) {
	var n int
	err := r.db.Get(&n, r.db.Rebind(`
	  SELECT COUNT(*) FROM usuarios_autorizados WHERE LOWER(email) = LOWER(?)`), email)
	return n > 0, err
}

func (r *UserRepo) Autorizar(email string) error {
	_, err := r.db.Exec(r.db.Rebind(`
	  INSERT INTO usuarios_autorizados (email) VALUES (?) ON CONFLICT(email) DO NOTHING`), email)
	return err
}
