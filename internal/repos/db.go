package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/jackc/pgx/v4/stdlib"
	_ "modernc.org/sqlite"
)

// Open connects through the named driver ("sqlite" or "pgx") and, for
// sqlite, ensures the schema and baseline lookup rows exist. Postgres
// schemas are managed outside the process.
func Open(driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		// One connection: sqlite serializes writes anyway, and an in-memory
		// database exists per connection.
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		if err := ensureSchema(db); err != nil {
			return nil, err
		}
		if err := seedLookups(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS categorias(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  nombre TEXT NOT NULL,
  slug TEXT NOT NULL,
  descripcion TEXT,
  imagen TEXT,
  padre_id INTEGER REFERENCES categorias(id),
  orden INTEGER NOT NULL DEFAULT 0,
  activo BOOLEAN NOT NULL DEFAULT TRUE,
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_categorias_slug ON categorias(slug);

CREATE TABLE IF NOT EXISTS marcas(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  nombre TEXT NOT NULL,
  descripcion TEXT,
  logo TEXT,
  activo BOOLEAN NOT NULL DEFAULT TRUE,
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS impresoras(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  nombre TEXT NOT NULL,
  modelo TEXT,
  activo BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS filamentos(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  nombre TEXT NOT NULL,
  material TEXT,
  color TEXT,
  activo BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS atributos(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  nombre TEXT NOT NULL,
  tipo TEXT,
  unidad TEXT,
  orden INTEGER NOT NULL DEFAULT 0,
  activo BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS productos(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  nombre TEXT NOT NULL,
  slug TEXT NOT NULL,
  sku TEXT,
  categoria_id INTEGER REFERENCES categorias(id),
  marca_id INTEGER REFERENCES marcas(id),
  impresora_id INTEGER REFERENCES impresoras(id),
  descripcion_corta TEXT,
  descripcion_larga TEXT,
  precio_publico NUMERIC,
  precio_oferta NUMERIC,
  stock_actual INTEGER NOT NULL DEFAULT 0,
  stock_minimo INTEGER NOT NULL DEFAULT 0,
  peso NUMERIC,
  imagen TEXT,
  destacado BOOLEAN NOT NULL DEFAULT FALSE,
  nuevo BOOLEAN NOT NULL DEFAULT FALSE,
  tags TEXT,
  filamento TEXT,
  gramos NUMERIC,
  horas NUMERIC,
  margen NUMERIC,
  iva NUMERIC,
  energia NUMERIC,
  material NUMERIC,
  desgaste NUMERIC,
  utilidad NUMERIC,
  impuesto NUMERIC,
  total NUMERIC,
  usuario_id INTEGER,
  activo BOOLEAN NOT NULL DEFAULT TRUE,
  fecha_publicacion TEXT,
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_productos_slug      ON productos(slug);
CREATE INDEX IF NOT EXISTS idx_productos_categoria ON productos(categoria_id);
CREATE INDEX IF NOT EXISTS idx_productos_marca     ON productos(marca_id);
CREATE INDEX IF NOT EXISTS idx_productos_activo    ON productos(activo);

CREATE TABLE IF NOT EXISTS dimensiones(
  producto_id INTEGER PRIMARY KEY REFERENCES productos(id) ON DELETE CASCADE,
  alto NUMERIC,
  ancho NUMERIC,
  largo NUMERIC,
  scale NUMERIC
);

CREATE TABLE IF NOT EXISTS producto_atributos(
  producto_id INTEGER NOT NULL REFERENCES productos(id) ON DELETE CASCADE,
  atributo_id INTEGER NOT NULL REFERENCES atributos(id),
  valor TEXT,
  PRIMARY KEY (producto_id, atributo_id)
);

CREATE TABLE IF NOT EXISTS producto_resenas(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  producto_id INTEGER NOT NULL REFERENCES productos(id) ON DELETE CASCADE,
  usuario_id INTEGER,
  calificacion INTEGER NOT NULL,
  comentario TEXT,
  aprobado BOOLEAN NOT NULL DEFAULT FALSE,
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_resenas_producto ON producto_resenas(producto_id);

CREATE TABLE IF NOT EXISTS ferias(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  nombre TEXT NOT NULL,
  fecha_desde TEXT,
  fecha_hasta TEXT,
  direccion TEXT,
  organizadores TEXT,
  contacto TEXT,
  valor NUMERIC,
  activo BOOLEAN NOT NULL DEFAULT TRUE,
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS feria_productos(
  feria_id INTEGER NOT NULL REFERENCES ferias(id) ON DELETE CASCADE,
  producto_id INTEGER NOT NULL REFERENCES productos(id),
  cantidad INTEGER NOT NULL DEFAULT 0,
  PRIMARY KEY (feria_id, producto_id)
);

CREATE TABLE IF NOT EXISTS ventas_feria(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  feria_id INTEGER NOT NULL REFERENCES ferias(id),
  producto_id INTEGER NOT NULL REFERENCES productos(id),
  cantidad INTEGER NOT NULL,
  medio_pago TEXT,
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_ventas_feria ON ventas_feria(feria_id, producto_id);

CREATE TABLE IF NOT EXISTS usuarios(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  email TEXT NOT NULL UNIQUE,
  nombre TEXT,
  rol TEXT NOT NULL DEFAULT 'user' CHECK (rol IN ('user','admin','webmaster')),
  ultimo_login TEXT,
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS usuarios_autorizados(
  email TEXT PRIMARY KEY
);
`
	_, err := db.Exec(schema)
	return err
}

// seedLookups inserts the printer and filament catalogs when empty so a
// fresh dev database is immediately usable. Idempotent.
func seedLookups(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM impresoras`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting impresoras/filamentos")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO impresoras(nombre, modelo) VALUES
	  ('Ender 3', 'Creality Ender 3 V2'),
	  ('Prusa MK4', 'Original Prusa MK4'),
	  ('Bambu A1', 'Bambu Lab A1 Mini')`)
	tx.MustExec(`INSERT INTO filamentos(nombre, material, color) VALUES
	  ('PLA Negro', 'PLA', 'negro'),
	  ('PLA Blanco', 'PLA', 'blanco'),
	  ('PETG Gris', 'PETG', 'gris')`)
	return tx.Commit()
}
