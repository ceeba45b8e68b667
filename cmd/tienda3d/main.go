package main

import (
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"tienda3d/internal/config"
	"tienda3d/internal/http/handlers"
	applog "tienda3d/internal/log"
	"tienda3d/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "error interno del servidor",
			})
		},
	})
	// Uploads arrive as multipart; cap the body well above any plausible image.
	app.Server().MaxRequestBodySize = 10 << 20 // 10 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   "demasiadas solicitudes",
			})
		},
	}))

	// ---------- Static uploads ----------
	app.Static("/uploads", cfg.UploadDir)

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg)
	token := handlers.RequireToken(deps.Verifier)
	adminOnly := handlers.RequireRole(deps.Users, "admin", "webmaster")
	webmasterOnly := handlers.RequireRole(deps.Users, "webmaster")

	api := app.Group("/api")

	// Products
	api.Get("/productos", deps.ProductHandler.List)
	api.Get("/productos/destacados", deps.ProductHandler.Destacados)
	api.Get("/productos/stock-bajo", deps.ProductHandler.StockBajo)
	api.Get("/productos/:id", deps.ProductHandler.Get)
	api.Get("/productos/:id/relacionados", deps.ProductHandler.Relacionados)
	api.Get("/productos/:id/resenas", deps.ProductHandler.Resenas)
	api.Post("/productos", deps.ProductHandler.Create)
	api.Put("/productos/:id", deps.ProductHandler.Update)
	api.Delete("/productos/:id", deps.ProductHandler.Delete)

	// Categories
	api.Get("/categorias", deps.CategoryHandler.List)
	api.Post("/categorias", deps.CategoryHandler.Create)
	api.Put("/categorias/:id", deps.CategoryHandler.Update)
	api.Delete("/categorias/:id", deps.CategoryHandler.Delete)

	// Brands
	api.Get("/marcas", deps.BrandHandler.List)
	api.Post("/marcas", deps.BrandHandler.Create)
	api.Put("/marcas/:id", deps.BrandHandler.Update)
	api.Delete("/marcas/:id", deps.BrandHandler.Delete)

	// Attributes
	api.Get("/atributos", deps.AttributeHandler.List)
	api.Post("/atributos", deps.AttributeHandler.Create)
	api.Put("/atributos/:id", deps.AttributeHandler.Update)
	api.Delete("/atributos/:id", deps.AttributeHandler.Delete)

	// Lookups
	api.Get("/impresoras", deps.LookupHandler.Impresoras)
	api.Get("/filamentos", deps.LookupHandler.Filamentos)

	// Ferias
	api.Get("/ferias", deps.FeriaHandler.List)
	api.Get("/ferias/:id", deps.FeriaHandler.Get)
	api.Get("/ferias/:id/productos", deps.FeriaHandler.Stock)
	api.Post("/ferias", deps.FeriaHandler.Create)
	api.Put("/ferias/:id", deps.FeriaHandler.Update)
	api.Delete("/ferias/:id", deps.FeriaHandler.Delete)
	api.Post("/ferias/:id/inventario", deps.FeriaHandler.SaveInventory)
	api.Post("/ferias/:id/ventas", deps.FeriaHandler.RecordSales)

	// Legacy flat routes kept for the deployed frontend; same handlers.
	api.Post("/post/productos", deps.ProductHandler.Create)
	api.Get("/get/productos", deps.ProductHandler.List)
	api.Get("/get/producto/:id", deps.ProductHandler.Get)
	api.Put("/put/productos/:id", deps.ProductHandler.Update)
	api.Delete("/del/productos/:id", deps.ProductHandler.Delete)
	api.Post("/post/feria", deps.FeriaHandler.Create)
	api.Get("/get/ferias", deps.FeriaHandler.List)
	api.Get("/get/ferias/:id", deps.FeriaHandler.Get)
	api.Get("/get/ferias/:id/productos", deps.FeriaHandler.Stock)
	api.Put("/put/feria/:id", deps.FeriaHandler.Update)
	api.Delete("/del/ferias/:id", deps.FeriaHandler.Delete)
	api.Post("/post/inventario_feria", deps.FeriaHandler.SaveInventoryLegacy)
	api.Post("/post/ventas_feria", deps.FeriaHandler.RecordSalesLegacy)
	api.Get("/get/impresoras", deps.LookupHandler.Impresoras)
	api.Get("/get/filamentos", deps.LookupHandler.Filamentos)

	// Users
	api.Get("/usuario/validar", deps.UserHandler.Validar)
	api.Get("/usuario/profile", token, deps.UserHandler.Profile)
	api.Get("/usuario/list", token, adminOnly, deps.UserHandler.List)
	api.Put("/usuario/update-role", token, webmasterOnly, deps.UserHandler.UpdateRole)
	api.Put("/usuario/last-login", token, deps.UserHandler.LastLogin)
	api.Get("/privado", token, deps.UserHandler.Privado)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "ruta no encontrada"})
	})

	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		go redirectHTTP(cfg.HTTPRedirectPort)
		log.Fatal(app.ListenTLS(":"+cfg.Port, cfg.TLSCertFile, cfg.TLSKeyFile))
	}
	log.Fatal(app.Listen(":" + cfg.Port))
}

// redirectHTTP answers plain-HTTP traffic with a permanent redirect to the
// HTTPS host when TLS is enabled.
func redirectHTTP(port string) {
	err := http.ListenAndServe(":"+port, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		target := "https://" + r.Host + r.URL.RequestURI()
		http.Redirect(w, r, target, http.StatusMovedPermanently)
	}))
	if err != nil {
		log.Printf("[warn] http redirect listener: %v", err)
	}
}
