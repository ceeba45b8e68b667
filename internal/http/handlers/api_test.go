package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/jmoiron/sqlx"

	"tienda3d/internal/config"
	"tienda3d/internal/http/handlers"
	"tienda3d/internal/repos"
)

const (
	testSecret   = "test-secret"
	testIssuer   = "https://issuer.test/"
	testAudience = "tienda3d-api"
)

func testApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Config{
		UploadDir:    t.TempDir(),
		AuthSecret:   testSecret,
		AuthIssuer:   testIssuer,
		AuthAudience: testAudience,
	}
	deps := handlers.NewDeps(db, cfg)
	token := handlers.RequireToken(deps.Verifier)
	webmasterOnly := handlers.RequireRole(deps.Users, "webmaster")

	app := fiber.New()
	api := app.Group("/api")
	api.Get("/productos", deps.ProductHandler.List)
	api.Get("/productos/:id", deps.ProductHandler.Get)
	api.Post("/productos", deps.ProductHandler.Create)
	api.Delete("/productos/:id", deps.ProductHandler.Delete)
	api.Get("/categorias", deps.CategoryHandler.List)
	api.Post("/categorias", deps.CategoryHandler.Create)
	api.Delete("/categorias/:id", deps.CategoryHandler.Delete)
	api.Get("/usuario/validar", deps.UserHandler.Validar)
	api.Get("/usuario/profile", token, deps.UserHandler.Profile)
	api.Put("/usuario/update-role", token, webmasterOnly, deps.UserHandler.UpdateRole)
	api.Get("/privado", token, deps.UserHandler.Privado)
	return app, db
}

func signToken(t *testing.T, email string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"email": email,
		"iss":   testIssuer,
		"aud":   testAudience,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func jsonReq(method, path string, body any) *http.Request {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestTokenRequiredBeforeAnyWork(t *testing.T) {
	app, _ := testApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/usuario/profile", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("missing token: %d", resp.StatusCode)
	}

	req := httptest.NewRequest("GET", "/api/privado", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("garbage token: %d", resp.StatusCode)
	}

	// wrong issuer is rejected even with a valid signature
	claims := jwt.MapClaims{"email": "a@b.co", "iss": "https://otro/", "aud": testAudience, "exp": time.Now().Add(time.Hour).Unix()}
	bad, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	req = httptest.NewRequest("GET", "/api/privado", nil)
	req.Header.Set("Authorization", "Bearer "+bad)
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong issuer: %d", resp.StatusCode)
	}
}

func TestProfileCreatesUserOnFirstLogin(t *testing.T) {
	app, db := testApp(t)

	req := httptest.NewRequest("GET", "/api/usuario/profile", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "nuevo@tienda.test"))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decode(t, resp)
	data := body["data"].(map[string]any)
	if data["email"] != "nuevo@tienda.test" || data["rol"] != "user" {
		t.Fatalf("data = %+v", data)
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM usuarios WHERE email = 'nuevo@tienda.test'`); err != nil || n != 1 {
		t.Fatalf("row not created: %d %v", n, err)
	}
}

func TestValidarAllowList(t *testing.T) {
	app, db := testApp(t)
	db.MustExec(`INSERT INTO usuarios_autorizados(email) VALUES ('vip@tienda.test')`)

	resp, _ := app.Test(httptest.NewRequest("GET", "/api/usuario/validar", nil))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing email: %d", resp.StatusCode)
	}

	resp, _ = app.Test(httptest.NewRequest("GET", "/api/usuario/validar?email=otro@tienda.test", nil))
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("unlisted: %d", resp.StatusCode)
	}
	if body := decode(t, resp); body["autorizado"] != false {
		t.Fatalf("body = %+v", body)
	}

	resp, _ = app.Test(httptest.NewRequest("GET", "/api/usuario/validar?email=vip@tienda.test", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("listed: %d", resp.StatusCode)
	}
	if body := decode(t, resp); body["autorizado"] != true {
		t.Fatalf("body = %+v", body)
	}
}

func TestUpdateRoleNeedsWebmaster(t *testing.T) {
	app, db := testApp(t)
	db.MustExec(`INSERT INTO usuarios(email, rol) VALUES ('boss@tienda.test', 'webmaster'), ('peon@tienda.test', 'user')`)

	payload := map[string]any{"email": "peon@tienda.test", "rol": "admin"}

	req := jsonReq("PUT", "/api/usuario/update-role", payload)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "peon@tienda.test"))
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("non-webmaster: %d", resp.StatusCode)
	}

	req = jsonReq("PUT", "/api/usuario/update-role", payload)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "boss@tienda.test"))
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("webmaster: %d", resp.StatusCode)
	}

	var rol string
	db.Get(&rol, `SELECT rol FROM usuarios WHERE email = 'peon@tienda.test'`)
	if rol != "admin" {
		t.Fatalf("rol = %q", rol)
	}

	// invalid role names are refused before touching the row
	req = jsonReq("PUT", "/api/usuario/update-role", map[string]any{"email": "peon@tienda.test", "rol": "root"})
	req.Header.Set("Authorization", "Bearer "+signToken(t, "boss@tienda.test"))
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad role: %d", resp.StatusCode)
	}
}

func TestProductoCreateAndFetchRoundTrip(t *testing.T) {
	app, _ := testApp(t)

	resp, err := app.Test(jsonReq("POST", "/api/productos", map[string]any{
		"nombre":         "Soporte Celular",
		"precio_publico": 1200.0,
		"stock_actual":   5,
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: %d", resp.StatusCode)
	}
	created := decode(t, resp)["data"].(map[string]any)
	if created["sku"] != "3D-0001" || created["slug"] != "soporte-celular" {
		t.Fatalf("created = %+v", created)
	}

	// fetch by slug
	resp, _ = app.Test(httptest.NewRequest("GET", "/api/productos/soporte-celular", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get: %d", resp.StatusCode)
	}
	data := decode(t, resp)["data"].(map[string]any)
	if data["nombre"] != "Soporte Celular" || data["precio_publico"] != 1200.0 {
		t.Fatalf("data = %+v", data)
	}

	// listing envelope carries pagination
	resp, _ = app.Test(httptest.NewRequest("GET", "/api/productos?limite=10", nil))
	body := decode(t, resp)
	if body["success"] != true {
		t.Fatalf("body = %+v", body)
	}
	pag := body["paginacion"].(map[string]any)
	if pag["total_productos"] != 1.0 || pag["total_paginas"] != 1.0 {
		t.Fatalf("paginacion = %+v", pag)
	}

	// unknown product 404s with the envelope
	resp, _ = app.Test(httptest.NewRequest("GET", "/api/productos/no-existe", nil))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("miss: %d", resp.StatusCode)
	}
}

func TestListadoVacioRindeArreglo(t *testing.T) {
	app, _ := testApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/productos", nil))
	if err != nil {
		t.Fatal(err)
	}
	body := decode(t, resp)
	data, isArr := body["data"].([]any)
	if !isArr {
		t.Fatalf("data is %T, want array", body["data"])
	}
	if len(data) != 0 {
		t.Fatalf("data = %+v", data)
	}
}

func TestProductoCreateMultipartImagen(t *testing.T) {
	app, _ := testApp(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("nombre", "Con Foto")
	fw, err := mw.CreateFormFile("imagen", "foto.PNG")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("png-bytes"))
	mw.Close()

	req := httptest.NewRequest("POST", "/api/productos", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: %d", resp.StatusCode)
	}

	resp, _ = app.Test(httptest.NewRequest("GET", "/api/productos/con-foto", nil))
	data := decode(t, resp)["data"].(map[string]any)
	imagen, _ := data["imagen"].(string)
	if imagen == "" {
		t.Fatal("imagen not stored")
	}
	if filepath.Ext(imagen) != ".png" {
		t.Fatalf("imagen = %q", imagen)
	}

	// a broken multipart body is refused, not treated as "no file"
	req = httptest.NewRequest("POST", "/api/productos", bytes.NewReader([]byte("nombre=x")))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("broken multipart: %d", resp.StatusCode)
	}
}

func TestCategoriaDeleteGuardHTTP(t *testing.T) {
	app, _ := testApp(t)

	resp, _ := app.Test(jsonReq("POST", "/api/categorias", map[string]any{"nombre": "Hogar"}))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create cat: %d", resp.StatusCode)
	}
	resp, _ = app.Test(jsonReq("POST", "/api/productos", map[string]any{"nombre": "Macetero", "categoria_id": 1}))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create prod: %d", resp.StatusCode)
	}

	resp, _ = app.Test(httptest.NewRequest("DELETE", "/api/categorias/1", nil))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("guarded delete: %d", resp.StatusCode)
	}
	if body := decode(t, resp); body["error"] != "no se puede eliminar la categoría porque tiene 1 productos asociados" {
		t.Fatalf("body = %+v", body)
	}

	resp, _ = app.Test(httptest.NewRequest("DELETE", "/api/productos/1", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete prod: %d", resp.StatusCode)
	}
	resp, _ = app.Test(httptest.NewRequest("DELETE", "/api/categorias/1", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("free delete: %d", resp.StatusCode)
	}
}
