package repos_test

import (
	"testing"

	"tienda3d/internal/repos"
)

func TestGetOrCreateIdempotent(t *testing.T) {
	db, err := repos.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	users := repos.NewUserRepo(db)

	u1, err := users.GetOrCreate("ana@tienda.test")
	if err != nil {
		t.Fatal(err)
	}
	if u1.Rol != "user" {
		t.Fatalf("rol = %q", u1.Rol)
	}

	u2, err := users.GetOrCreate("ANA@tienda.test")
	if err != nil {
		t.Fatal(err)
	}
	if u2.ID != u1.ID {
		t.Fatalf("ids differ: %d vs %d", u1.ID, u2.ID)
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM usuarios`); err != nil || n != 1 {
		t.Fatalf("rows = %d, err = %v", n, err)
	}

	// the insert absorbs an already-existing row instead of erroring, so a
	// lost first-login race falls through to the re-read
	db.MustExec(`INSERT INTO usuarios(email, rol) VALUES ('luz@tienda.test', 'admin')`)
	u3, err := users.GetOrCreate("luz@tienda.test")
	if err != nil {
		t.Fatal(err)
	}
	if u3.Rol != "admin" {
		t.Fatalf("existing row overwritten: %+v", u3)
	}
}
