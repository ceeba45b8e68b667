package domain_test

import (
	"testing"

	"tienda3d/internal/domain"
)

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Mi Producto!", "mi-producto"},
		{"Soporte  Celular", "soporte-celular"},
		{"  Llavero 3D  ", "llavero-3d"},
		{"Árbol (Navidad)", "rbol-navidad"},
		{"ya-con-guiones", "ya-con-guiones"},
		{"", ""},
	}
	for _, c := range cases {
		if got := domain.Slugify(c.in); got != c.want {
			t.Fatalf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSKUFormat(t *testing.T) {
	if got := domain.SKU(1); got != "3D-0001" {
		t.Fatalf("SKU(1) = %q", got)
	}
	if got := domain.SKU(123); got != "3D-0123" {
		t.Fatalf("SKU(123) = %q", got)
	}
	if got := domain.SKU(54321); got != "3D-54321" {
		t.Fatalf("SKU(54321) = %q", got)
	}
}
