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

func feriaFixture(t *testing.T, clamp bool) (*sqlx.DB, *services.FeriaService, int64, int64) {
	t.Helper()
	db := memdb(t)
	svc := services.NewFeriaService(repos.NewFeriaRepo(db), clamp)

	cat := catalog(db)
	prodID, _, _, err := cat.CreateProducto(&domain.Producto{Nombre: "Llavero", Total: num(500)}, nil, nil, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	feriaID, err := svc.Create(&domain.Feria{Nombre: "Expo Maker", FechaDesde: str("2026-09-01")})
	if err != nil {
		t.Fatal(err)
	}
	return db, svc, feriaID, prodID
}

func TestFeriaStockMath(t *testing.T) {
	_, svc, feriaID, prodID := feriaFixture(t, false)

	if err := svc.SaveInventory(feriaID, []domain.FeriaProducto{{ProductoID: prodID, Cantidad: 10}}); err != nil {
		t.Fatal(err)
	}
	if err := svc.RecordSales(feriaID, []domain.Venta{{ProductoID: prodID, Cantidad: 3, MedioPago: str("efectivo")}}); err != nil {
		t.Fatal(err)
	}

	stock, err := svc.Stock(feriaID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stock) != 1 {
		t.Fatalf("rows = %d", len(stock))
	}
	s := stock[0]
	if s.StockInicial != 10 || s.Vendidos != 3 || s.StockActual != 7 {
		t.Fatalf("stock = %+v", s)
	}
	if s.TotalLinea == nil || *s.TotalLinea != 7*500 {
		t.Fatalf("totalLinea = %v", s.TotalLinea)
	}
}

func TestFeriaInventoryReplaceOnWrite(t *testing.T) {
	db, svc, feriaID, prodID := feriaFixture(t, false)

	cat := catalog(db)
	otroID, _, _, err := cat.CreateProducto(&domain.Producto{Nombre: "Macetero"}, nil, nil, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.SaveInventory(feriaID, []domain.FeriaProducto{{ProductoID: prodID, Cantidad: 5}}); err != nil {
		t.Fatal(err)
	}
	// second write replaces, never accumulates
	if err := svc.SaveInventory(feriaID, []domain.FeriaProducto{{ProductoID: otroID, Cantidad: 2}}); err != nil {
		t.Fatal(err)
	}

	stock, err := svc.Stock(feriaID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stock) != 1 || stock[0].ID != otroID || stock[0].StockInicial != 2 {
		t.Fatalf("stock = %+v", stock)
	}
}

func TestFeriaSalesOversellPolicy(t *testing.T) {
	// default: oversell is recorded as-is
	_, open, feriaID, prodID := feriaFixture(t, false)
	if err := open.SaveInventory(feriaID, []domain.FeriaProducto{{ProductoID: prodID, Cantidad: 2}}); err != nil {
		t.Fatal(err)
	}
	if err := open.RecordSales(feriaID, []domain.Venta{{ProductoID: prodID, Cantidad: 5}}); err != nil {
		t.Fatal(err)
	}
	stock, _ := open.Stock(feriaID)
	if stock[0].StockActual != -3 {
		t.Fatalf("stock_actual = %d", stock[0].StockActual)
	}

	// clamped: the whole batch aborts
	_, clamped, feriaID2, prodID2 := feriaFixture(t, true)
	if err := clamped.SaveInventory(feriaID2, []domain.FeriaProducto{{ProductoID: prodID2, Cantidad: 2}}); err != nil {
		t.Fatal(err)
	}
	err := clamped.RecordSales(feriaID2, []domain.Venta{
		{ProductoID: prodID2, Cantidad: 1},
		{ProductoID: prodID2, Cantidad: 5},
	})
	if !errors.Is(err, repos.ErrStockInsuficiente) {
		t.Fatalf("err = %v", err)
	}
	stock, _ = clamped.Stock(feriaID2)
	if stock[0].Vendidos != 0 {
		t.Fatalf("partial batch persisted: %+v", stock[0])
	}
}

func TestFeriaValidationAndMisses(t *testing.T) {
	_, svc, feriaID, _ := feriaFixture(t, false)

	if err := svc.SaveInventory(0, []domain.FeriaProducto{}); !errors.Is(err, services.ErrDatosIncompletos) {
		t.Fatalf("err = %v", err)
	}
	if err := svc.RecordSales(feriaID, nil); !errors.Is(err, services.ErrDatosIncompletos) {
		t.Fatalf("err = %v", err)
	}
	if _, err := svc.Get(9999); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("get miss = %v", err)
	}
	if err := svc.Update(9999, domain.FeriaUpdate{Nombre: str("x")}); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("update miss = %v", err)
	}
	if err := svc.Delete(9999); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("delete miss = %v", err)
	}
}

func TestFeriaSoftDelete(t *testing.T) {
	_, svc, feriaID, _ := feriaFixture(t, false)
	if err := svc.Delete(feriaID); err != nil {
		t.Fatal(err)
	}
	rows, err := svc.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Fatalf("inactive feria listed: %+v", rows)
	}
}
