package services

import (
	"errors"

	"tienda3d/internal/domain"
	"tienda3d/internal/repos"
	"tienda3d/internal/validate"
)

var (
	ErrRolInvalido    = errors.New("rol inválido")
	ErrEmailRequerido = errors.New("email es requerido")
)

type UserService struct {
	Users *repos.UserRepo
}

func NewUserService(users *repos.UserRepo) *UserService {
	return &UserService{Users: users}
}

// Autorizado checks the allow-list that gates access independently of the
// usuarios table.
func (s *UserService) Autorizado(email string) (bool, error) {
	if email == "" {
		return false, ErrEmailRequerido
	}
	return s.Users.Autorizado(email)
}

// Profile returns the row for the token's email, creating a default
// user-role row on first login.
func (s *UserService) Profile(email string) (*domain.Usuario, error) {
	if email == "" {
		return nil, ErrEmailRequerido
	}
	return s.Users.GetOrCreate(email)
}

func (s *UserService) ByEmail(email string) (*domain.Usuario, error) {
	return s.Users.ByEmail(email)
}

func (s *UserService) List() ([]domain.Usuario, error) {
	return s.Users.List()
}

// UpdateRole validates against the fixed role set and updates by id or email.
func (s *UserService) UpdateRole(id *int64, email *string, rol string) error {
	rol, ok := validate.Rol(rol)
	if !ok {
		return ErrRolInvalido
	}
	if id == nil && (email == nil || *email == "") {
		return ErrEmailRequerido
	}
	return s.Users.UpdateRol(id, email, rol)
}

func (s *UserService) LastLogin(email string) error {
	if email == "" {
		return ErrEmailRequerido
	}
	return s.Users.TouchLastLogin(email)
}
