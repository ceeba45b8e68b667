package services

import (
	"errors"
	"strings"

	"tienda3d/internal/domain"
	"tienda3d/internal/repos"
)

var ErrDatosIncompletos = errors.New("datos incompletos")

type FeriaService struct {
	Ferias *repos.FeriaRepo

	// ClampStock rejects sales that would leave negative remaining stock.
	// Off by default: the ledger historically permits oversell.
	ClampStock bool
}

func NewFeriaService(ferias *repos.FeriaRepo, clampStock bool) *FeriaService {
	return &FeriaService{Ferias: ferias, ClampStock: clampStock}
}

func (s *FeriaService) List() ([]domain.Feria, error) {
	return s.Ferias.List()
}

func (s *FeriaService) Get(id int64) (*domain.Feria, error) {
	return s.Ferias.Get(id)
}

func (s *FeriaService) Create(f *domain.Feria) (int64, error) {
	if strings.TrimSpace(f.Nombre) == "" {
		return 0, ErrNombreRequerido
	}
	return s.Ferias.Create(f)
}

func (s *FeriaService) Update(id int64, u domain.FeriaUpdate) error {
	return s.Ferias.Update(id, u)
}

func (s *FeriaService) Delete(id int64) error {
	return s.Ferias.SoftDelete(id)
}

func (s *FeriaService) Stock(feriaID int64) ([]domain.FeriaStock, error) {
	return s.Ferias.Stock(feriaID)
}

// SaveInventory replaces the feria's allocation list wholesale.
func (s *FeriaService) SaveInventory(feriaID int64, items []domain.FeriaProducto) error {
	if feriaID == 0 || items == nil {
		return ErrDatosIncompletos
	}
	return s.Ferias.ReplaceInventory(feriaID, items)
}

// RecordSales appends the sale lines, all-or-nothing.
func (s *FeriaService) RecordSales(feriaID int64, ventas []domain.Venta) error {
	if feriaID == 0 || ventas == nil {
		return ErrDatosIncompletos
	}
	return s.Ferias.RecordSales(feriaID, ventas, s.ClampStock)
}
