package services_test

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"

	"tienda3d/internal/domain"
	"tienda3d/internal/repos"
	"tienda3d/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func catalog(db *sqlx.DB) *services.CatalogService {
	return services.NewCatalogService(
		repos.NewProductRepo(db),
		repos.NewCategoryRepo(db),
		repos.NewBrandRepo(db),
		repos.NewAttributeRepo(db),
	)
}

func str(s string) *string   { return &s }
func num(f float64) *float64 { return &f }
func iptr(n int64) *int64    { return &n }

func TestCreateProductoGeneratesSKUAndSlug(t *testing.T) {
	svc := catalog(memdb(t))

	p := domain.Producto{Nombre: "Mi Producto!", PrecioPublico: num(1500)}
	id, sku, slug, err := svc.CreateProducto(&p, nil, nil, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if id == 0 {
		t.Fatal("id not returned")
	}
	if sku != "3D-0001" {
		t.Fatalf("sku = %q", sku)
	}
	if slug != "mi-producto" {
		t.Fatalf("slug = %q", slug)
	}

	// explicit SKU is kept as-is
	p2 := domain.Producto{Nombre: "Otro", SKU: str("CUSTOM-9")}
	_, sku2, _, err := svc.CreateProducto(&p2, nil, nil, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if sku2 != "CUSTOM-9" {
		t.Fatalf("sku2 = %q", sku2)
	}
}

func TestCreateProductoRequiresNombre(t *testing.T) {
	svc := catalog(memdb(t))
	_, _, _, err := svc.CreateProducto(&domain.Producto{Nombre: "   "}, nil, nil, nil, nil, nil)
	if !errors.Is(err, services.ErrNombreRequerido) {
		t.Fatalf("err = %v", err)
	}
}

func TestListProductosPagination(t *testing.T) {
	svc := catalog(memdb(t))
	for i := 0; i < 7; i++ {
		p := domain.Producto{Nombre: "Pieza " + string(rune('A'+i))}
		if _, _, _, err := svc.CreateProducto(&p, nil, nil, nil, nil, nil); err != nil {
			t.Fatal(err)
		}
	}

	activo := true
	rows, pag, err := svc.ListProductos(domain.ProductoFiltro{Activo: &activo, Pagina: 2, Limite: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("page len = %d", len(rows))
	}
	if pag.TotalProductos != 7 || pag.TotalPaginas != 3 || pag.PaginaActual != 2 || pag.ProductosPorPagina != 3 {
		t.Fatalf("paginacion = %+v", pag)
	}
}

func TestGetProductoByIDOrSlug(t *testing.T) {
	svc := catalog(memdb(t))
	p := domain.Producto{Nombre: "Soporte Celular", PrecioPublico: num(900)}
	id, _, slug, err := svc.CreateProducto(&p, num(10), num(5), num(7), nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	byID, err := svc.GetProducto("1")
	if err != nil || byID.ID != id {
		t.Fatalf("by id: %v %+v", err, byID)
	}
	bySlug, err := svc.GetProducto(slug)
	if err != nil || bySlug.ID != id {
		t.Fatalf("by slug: %v", err)
	}
	if bySlug.Alto == nil || *bySlug.Alto != 10 {
		t.Fatalf("alto = %v", bySlug.Alto)
	}

	if _, err := svc.GetProducto("no-existe"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("miss err = %v", err)
	}
}

func TestUpdateProductoPartial(t *testing.T) {
	svc := catalog(memdb(t))
	p := domain.Producto{Nombre: "Base Original", PrecioPublico: num(100), StockActual: 4}
	id, _, _, err := svc.CreateProducto(&p, nil, nil, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	// only the price moves; name, slug and stock stay put
	if err := svc.UpdateProducto(id, domain.ProductoUpdate{PrecioPublico: num(250)}); err != nil {
		t.Fatal(err)
	}
	det, err := svc.GetProducto("1")
	if err != nil {
		t.Fatal(err)
	}
	if det.PrecioPublico == nil || *det.PrecioPublico != 250 {
		t.Fatalf("precio = %v", det.PrecioPublico)
	}
	if det.Nombre != "Base Original" || det.Slug != "base-original" || det.StockActual != 4 {
		t.Fatalf("untouched fields changed: %+v", det)
	}

	// rename regenerates the slug
	if err := svc.UpdateProducto(id, domain.ProductoUpdate{Nombre: str("Base Nueva!")}); err != nil {
		t.Fatal(err)
	}
	det, _ = svc.GetProducto("1")
	if det.Slug != "base-nueva" {
		t.Fatalf("slug = %q", det.Slug)
	}

	if err := svc.UpdateProducto(9999, domain.ProductoUpdate{Nombre: str("x")}); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("missing row err = %v", err)
	}
}

func TestUpdateGeometryMergesDimensiones(t *testing.T) {
	svc := catalog(memdb(t))
	p := domain.Producto{Nombre: "Caja"}
	id, _, _, err := svc.CreateProducto(&p, num(10), num(5), num(7), nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	// supplying one field leaves the other stored dimensions alone
	if err := svc.UpdateProducto(id, domain.ProductoUpdate{Alto: num(12)}); err != nil {
		t.Fatal(err)
	}
	det, err := svc.GetProducto("caja")
	if err != nil {
		t.Fatal(err)
	}
	if det.Alto == nil || *det.Alto != 12 {
		t.Fatalf("alto = %v", det.Alto)
	}
	if det.Ancho == nil || *det.Ancho != 5 {
		t.Fatalf("ancho = %v", det.Ancho)
	}
	if det.Largo == nil || *det.Largo != 7 {
		t.Fatalf("largo = %v", det.Largo)
	}
	if det.Scale != nil {
		t.Fatalf("scale = %v", det.Scale)
	}

	// a product without a dimension row gains one on first geometry update
	p2 := domain.Producto{Nombre: "Plano"}
	id2, _, _, err := svc.CreateProducto(&p2, nil, nil, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.UpdateProducto(id2, domain.ProductoUpdate{Ancho: num(3)}); err != nil {
		t.Fatal(err)
	}
	det2, _ := svc.GetProducto("plano")
	if det2.Ancho == nil || *det2.Ancho != 3 || det2.Alto != nil {
		t.Fatalf("dims = %v %v", det2.Alto, det2.Ancho)
	}
}

func TestAtributosRoundTrip(t *testing.T) {
	db := memdb(t)
	svc := catalog(db)

	colorID, err := svc.CreateAtributo(&domain.Atributo{Nombre: "Color"})
	if err != nil {
		t.Fatal(err)
	}

	p := domain.Producto{Nombre: "Llavero"}
	attrs := []domain.AtributoInput{{AtributoID: colorID, Valor: "red"}}
	if _, _, _, err := svc.CreateProducto(&p, nil, nil, nil, nil, attrs); err != nil {
		t.Fatal(err)
	}

	det, err := svc.GetProducto("llavero")
	if err != nil {
		t.Fatal(err)
	}
	if len(det.Atributos) != 1 || det.Atributos[0].Nombre != "Color" {
		t.Fatalf("atributos = %+v", det.Atributos)
	}
	if det.Atributos[0].Valor != "red" {
		t.Fatalf("valor = %v", det.Atributos[0].Valor)
	}

	// replace wholesale on update
	matID, _ := svc.CreateAtributo(&domain.Atributo{Nombre: "Material"})
	u := domain.ProductoUpdate{Atributos: []domain.AtributoInput{{AtributoID: matID, Valor: "PLA"}}}
	if err := svc.UpdateProducto(det.ID, u); err != nil {
		t.Fatal(err)
	}
	det, _ = svc.GetProducto("llavero")
	if len(det.Atributos) != 1 || det.Atributos[0].Nombre != "Material" {
		t.Fatalf("after replace: %+v", det.Atributos)
	}
}

func TestDeleteCategoriaGuarded(t *testing.T) {
	db := memdb(t)
	svc := catalog(db)

	catID, _, err := svc.CreateCategoria(&domain.Categoria{Nombre: "Hogar"})
	if err != nil {
		t.Fatal(err)
	}
	p := domain.Producto{Nombre: "Macetero", CategoriaID: iptr(catID)}
	prodID, _, _, err := svc.CreateProducto(&p, nil, nil, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	err = svc.DeleteCategoria(catID)
	var asociados services.ErrProductosAsociados
	if !errors.As(err, &asociados) || asociados.Total != 1 {
		t.Fatalf("err = %v", err)
	}

	// soft-deleting the product releases the category
	if err := svc.DeleteProducto(prodID); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteCategoria(catID); err != nil {
		t.Fatal(err)
	}

	cats, err := svc.ListCategorias()
	if err != nil {
		t.Fatal(err)
	}
	if len(cats) != 0 {
		t.Fatalf("inactive category still listed: %+v", cats)
	}
}

func TestSoftDeleteExcludesFromActiveListing(t *testing.T) {
	svc := catalog(memdb(t))
	p := domain.Producto{Nombre: "Figura"}
	id, _, _, err := svc.CreateProducto(&p, nil, nil, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteProducto(id); err != nil {
		t.Fatal(err)
	}

	activo := true
	rows, pag, err := svc.ListProductos(domain.ProductoFiltro{Activo: &activo})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 || pag.TotalProductos != 0 {
		t.Fatalf("soft-deleted row still active: %d", pag.TotalProductos)
	}

	// still reachable directly
	det, err := svc.GetProducto("figura")
	if err != nil {
		t.Fatal(err)
	}
	if det.Activo {
		t.Fatal("activo flag not cleared")
	}
}
