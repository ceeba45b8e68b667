package domain

const (
	RolUser      = "user"
	RolAdmin     = "admin"
	RolWebmaster = "webmaster"
)

type Usuario struct {
	ID          int64   `db:"id" json:"id"`
	Email       string  `db:"email" json:"email"`
	Nombre      *string `db:"nombre" json:"nombre"`
	Rol         string  `db:"rol" json:"rol"`
	UltimoLogin *string `db:"ultimo_login" json:"ultimo_login"`
	CreatedAt   string  `db:"created_at" json:"created_at"`
}
