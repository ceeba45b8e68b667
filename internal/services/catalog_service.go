package services

import (
	"errors"
	"fmt"
	"strings"

	"tienda3d/internal/domain"
	"tienda3d/internal/repos"
)

var ErrNombreRequerido = errors.New("nombre es requerido")

// ErrProductosAsociados refuses a taxonomy delete while active products
// still reference the row.
type ErrProductosAsociados struct {
	Entidad string
	Total   int
}

func (e ErrProductosAsociados) Error() string {
	return fmt.Sprintf("no se puede eliminar la %s porque tiene %d productos asociados", e.Entidad, e.Total)
}

type CatalogService struct {
	Prods  *repos.ProductRepo
	Cats   *repos.CategoryRepo
	Marcas *repos.BrandRepo
	Attrs  *repos.AttributeRepo
}

func NewCatalogService(prods *repos.ProductRepo, cats *repos.CategoryRepo, marcas *repos.BrandRepo, attrs *repos.AttributeRepo) *CatalogService {
	return &CatalogService{Prods: prods, Cats: cats, Marcas: marcas, Attrs: attrs}
}

// ListProductos runs the filtered page plus its count and shapes the
// pagination envelope. total_paginas is ceil(total/limite).
func (s *CatalogService) ListProductos(f domain.ProductoFiltro) ([]domain.ProductoListado, domain.Paginacion, error) {
	if f.Pagina < 1 {
		f.Pagina = 1
	}
	if f.Limite <= 0 {
		f.Limite = 20
	}
	if f.OrderBy == "" {
		f.OrderBy = "p.created_at DESC"
	}

	rows, total, err := s.Prods.List(f)
	if err != nil {
		return nil, domain.Paginacion{}, err
	}

	pag := domain.Paginacion{
		PaginaActual:       f.Pagina,
		TotalPaginas:       (total + f.Limite - 1) / f.Limite,
		TotalProductos:     total,
		ProductosPorPagina: f.Limite,
	}
	return rows, pag, nil
}

func (s *CatalogService) GetProducto(idOrSlug string) (*domain.ProductoDetalle, error) {
	return s.Prods.Get(idOrSlug)
}

// CreateProducto derives the slug from the name and inserts the product with
// its optional geometry and attributes. Returns id, sku and slug.
func (s *CatalogService) CreateProducto(p *domain.Producto, alto, ancho, largo, scale *float64, attrs []domain.AtributoInput) (int64, string, string, error) {
	if strings.TrimSpace(p.Nombre) == "" {
		return 0, "", "", ErrNombreRequerido
	}
	p.Slug = domain.Slugify(p.Nombre)

	var dims map[string]*float64
	if alto != nil || ancho != nil || largo != nil || scale != nil {
		dims = map[string]*float64{"alto": alto, "ancho": ancho, "largo": largo, "scale": scale}
	}

	id, err := s.Prods.Create(p, dims, attrs)
	if err != nil {
		return 0, "", "", err
	}
	return id, *p.SKU, p.Slug, nil
}

func (s *CatalogService) UpdateProducto(id int64, u domain.ProductoUpdate) error {
	return s.Prods.Update(id, u)
}

func (s *CatalogService) DeleteProducto(id int64) error {
	return s.Prods.SoftDelete(id)
}

func (s *CatalogService) Destacados() ([]domain.ProductoListado, error) {
	return s.Prods.Destacados(10)
}

func (s *CatalogService) StockBajo() ([]domain.ProductoListado, error) {
	return s.Prods.StockBajo()
}

func (s *CatalogService) Relacionados(id int64, limite int) ([]domain.ProductoListado, error) {
	if limite <= 0 || limite > 24 {
		limite = 6
	}
	return s.Prods.Relacionados(id, limite)
}

func (s *CatalogService) Resenas(productoID int64, pagina, limite int) ([]domain.Resena, error) {
	if pagina < 1 {
		pagina = 1
	}
	if limite <= 0 {
		limite = 10
	}
	return s.Prods.Resenas(productoID, limite, (pagina-1)*limite)
}

func (s *CatalogService) ListCategorias() ([]domain.CategoriaListado, error) {
	return s.Cats.List()
}

func (s *CatalogService) CreateCategoria(c *domain.Categoria) (int64, string, error) {
	if strings.TrimSpace(c.Nombre) == "" {
		return 0, "", ErrNombreRequerido
	}
	c.Slug = domain.Slugify(c.Nombre)
	id, err := s.Cats.Create(c)
	return id, c.Slug, err
}

func (s *CatalogService) UpdateCategoria(id int64, u domain.CategoriaUpdate) error {
	return s.Cats.Update(id, u)
}

// DeleteCategoria soft-deletes unless active products still reference the
// category.
func (s *CatalogService) DeleteCategoria(id int64) error {
	n, err := s.Cats.ActiveProducts(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrProductosAsociados{Entidad: "categoría", Total: n}
	}
	return s.Cats.SoftDelete(id)
}

func (s *CatalogService) ListMarcas() ([]domain.MarcaListado, error) {
	return s.Marcas.List()
}

func (s *CatalogService) CreateMarca(m *domain.Marca) (int64, error) {
	if strings.TrimSpace(m.Nombre) == "" {
		return 0, ErrNombreRequerido
	}
	return s.Marcas.Create(m)
}

func (s *CatalogService) UpdateMarca(id int64, u domain.MarcaUpdate) error {
	return s.Marcas.Update(id, u)
}

func (s *CatalogService) DeleteMarca(id int64) error {
	n, err := s.Marcas.ActiveProducts(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrProductosAsociados{Entidad: "marca", Total: n}
	}
	return s.Marcas.SoftDelete(id)
}

func (s *CatalogService) ListAtributos() ([]domain.Atributo, error) {
	return s.Attrs.List()
}

func (s *CatalogService) CreateAtributo(a *domain.Atributo) (int64, error) {
	if strings.TrimSpace(a.Nombre) == "" {
		return 0, ErrNombreRequerido
	}
	return s.Attrs.Create(a)
}

func (s *CatalogService) UpdateAtributo(id int64, u domain.AtributoUpdate) error {
	return s.Attrs.Update(id, u)
}

func (s *CatalogService) DeleteAtributo(id int64) error {
	return s.Attrs.SoftDelete(id)
}
