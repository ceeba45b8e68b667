package validate_test

import (
	"testing"

	"tienda3d/internal/validate"
)

func TestOrderByAllowList(t *testing.T) {
	if got := validate.OrderBy("precio_publico", "asc"); got != "p.precio_publico ASC" {
		t.Fatalf("got %q", got)
	}
	if got := validate.OrderBy("calificacion_promedio", "DESC"); got != "calificacion_promedio DESC" {
		t.Fatalf("got %q", got)
	}
	// anything outside the allow-list falls back silently
	if got := validate.OrderBy("sku; DROP TABLE productos", "ASC"); got != "p.created_at DESC" {
		t.Fatalf("got %q", got)
	}
	if got := validate.OrderBy("nombre", "sideways"); got != "p.created_at DESC" {
		t.Fatalf("got %q", got)
	}
}

func TestRol(t *testing.T) {
	for _, r := range []string{"user", "admin", "webmaster"} {
		if _, ok := validate.Rol(r); !ok {
			t.Fatalf("rol %q rejected", r)
		}
	}
	if _, ok := validate.Rol("root"); ok {
		t.Fatal("rol root accepted")
	}
}

func TestPaginaLimite(t *testing.T) {
	if validate.Pagina("") != 1 || validate.Pagina("0") != 1 || validate.Pagina("-3") != 1 {
		t.Fatal("pagina default")
	}
	if validate.Pagina("7") != 7 {
		t.Fatal("pagina parse")
	}
	if validate.Limite("") != 20 || validate.Limite("abc") != 20 {
		t.Fatal("limite default")
	}
	if validate.Limite("500") != 100 {
		t.Fatal("limite clamp")
	}
}

func TestBoolTriState(t *testing.T) {
	if v := validate.Bool("true"); v == nil || !*v {
		t.Fatal("true")
	}
	if v := validate.Bool("0"); v == nil || *v {
		t.Fatal("0")
	}
	if validate.Bool("") != nil || validate.Bool("maybe") != nil {
		t.Fatal("absent")
	}
}
