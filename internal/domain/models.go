package domain

// Producto is the catalog row for a 3D-printed item. Nullable columns map to
// pointers; Tags carries a JSON-encoded list as stored.
type Producto struct {
	ID               int64    `db:"id" json:"id"`
	Nombre           string   `db:"nombre" json:"nombre"`
	Slug             string   `db:"slug" json:"slug"`
	SKU              *string  `db:"sku" json:"sku"`
	CategoriaID      *int64   `db:"categoria_id" json:"categoria_id"`
	MarcaID          *int64   `db:"marca_id" json:"marca_id"`
	ImpresoraID      *int64   `db:"impresora_id" json:"impresora_id"`
	DescripcionCorta *string  `db:"descripcion_corta" json:"descripcion_corta"`
	DescripcionLarga *string  `db:"descripcion_larga" json:"descripcion_larga"`
	PrecioPublico    *float64 `db:"precio_publico" json:"precio_publico"`
	PrecioOferta     *float64 `db:"precio_oferta" json:"precio_oferta"`
	StockActual      int      `db:"stock_actual" json:"stock_actual"`
	StockMinimo      int      `db:"stock_minimo" json:"stock_minimo"`
	Peso             *float64 `db:"peso" json:"peso"`
	Imagen           *string  `db:"imagen" json:"imagen"`
	Destacado        bool     `db:"destacado" json:"destacado"`
	Nuevo            bool     `db:"nuevo" json:"nuevo"`
	Tags             *string  `db:"tags" json:"tags"`
	Filamento        *string  `db:"filamento" json:"filamento"`
	Gramos           *float64 `db:"gramos" json:"gramos"`
	Horas            *float64 `db:"horas" json:"horas"`
	Margen           *float64 `db:"margen" json:"margen"`
	IVA              *float64 `db:"iva" json:"iva"`
	Energia          *float64 `db:"energia" json:"energia"`
	Material         *float64 `db:"material" json:"material"`
	Desgaste         *float64 `db:"desgaste" json:"desgaste"`
	Utilidad         *float64 `db:"utilidad" json:"utilidad"`
	Impuesto         *float64 `db:"impuesto" json:"impuesto"`
	Total            *float64 `db:"total" json:"total"`
	UsuarioID        *int64   `db:"usuario_id" json:"usuario_id"`
	Activo           bool     `db:"activo" json:"activo"`
	FechaPublicacion *string  `db:"fecha_publicacion" json:"fecha_publicacion"`
	CreatedAt        string   `db:"created_at" json:"created_at"`
	UpdatedAt        *string  `db:"updated_at" json:"updated_at"`
}

// ProductoListado is a Producto with the names joined in for listings.
type ProductoListado struct {
	Producto
	Categoria            *string `db:"categoria" json:"categoria"`
	CategoriaSlug        *string `db:"categoria_slug" json:"categoria_slug"`
	Marca                *string `db:"marca" json:"marca"`
	Impresora            *string `db:"impresora" json:"impresora"`
	CalificacionPromedio float64 `db:"calificacion_promedio" json:"calificacion_promedio"`
	TotalResenas         int     `db:"total_resenas" json:"total_resenas"`
}

// ProductoDetalle adds geometry and the ordered attribute values.
type ProductoDetalle struct {
	ProductoListado
	Alto      *float64        `db:"alto" json:"alto"`
	Ancho     *float64        `db:"ancho" json:"ancho"`
	Largo     *float64        `db:"largo" json:"largo"`
	Scale     *float64        `db:"scale" json:"scale"`
	Atributos []AtributoValor `json:"atributos"`
}

type AtributoValor struct {
	Nombre string  `db:"nombre" json:"nombre"`
	Tipo   *string `db:"tipo" json:"tipo"`
	Unidad *string `db:"unidad" json:"unidad"`
	Valor  string  `db:"valor" json:"valor"`
}

type AtributoInput struct {
	AtributoID int64  `json:"atributo_id" form:"atributo_id"`
	Valor      string `json:"valor" form:"valor"`
}

// Paginacion is the listing envelope.
type Paginacion struct {
	PaginaActual       int `json:"pagina_actual"`
	TotalPaginas       int `json:"total_paginas"`
	TotalProductos     int `json:"total_productos"`
	ProductosPorPagina int `json:"productos_por_pagina"`
}

// ProductoFiltro carries the validated listing parameters. OrderBy is a
// ready-to-splice ORDER BY clause produced by the validate allow-list, never
// raw client input.
type ProductoFiltro struct {
	CategoriaID *int64
	MarcaID     *int64
	Activo      *bool
	Destacado   *bool
	Nuevo       *bool
	PrecioMin   *float64
	PrecioMax   *float64
	Buscar      string
	OrderBy     string
	Pagina      int
	Limite      int
}

// ProductoUpdate enumerates every column a PUT may touch; nil means leave
// alone. Atributos non-nil replaces the association set wholesale.
type ProductoUpdate struct {
	Nombre           *string  `json:"nombre" form:"nombre"`
	CategoriaID      *int64   `json:"categoria_id" form:"categoria_id"`
	MarcaID          *int64   `json:"marca_id" form:"marca_id"`
	ImpresoraID      *int64   `json:"impresora_id" form:"impresora_id"`
	SKU              *string  `json:"sku" form:"sku"`
	DescripcionCorta *string  `json:"descripcion_corta" form:"descripcion_corta"`
	DescripcionLarga *string  `json:"descripcion_larga" form:"descripcion_larga"`
	PrecioPublico    *float64 `json:"precio_publico" form:"precio_publico"`
	PrecioOferta     *float64 `json:"precio_oferta" form:"precio_oferta"`
	StockActual      *int     `json:"stock_actual" form:"stock_actual"`
	StockMinimo      *int     `json:"stock_minimo" form:"stock_minimo"`
	Peso             *float64 `json:"peso" form:"peso"`
	Imagen           *string  `json:"-" form:"-"`
	Destacado        *bool    `json:"destacado" form:"destacado"`
	Nuevo            *bool    `json:"nuevo" form:"nuevo"`
	Tags             *string  `json:"tags" form:"tags"`
	Filamento        *string  `json:"filamento" form:"filamento"`
	Gramos           *float64 `json:"gramos" form:"gramos"`
	Horas            *float64 `json:"horas" form:"horas"`
	Margen           *float64 `json:"margen" form:"margen"`
	IVA              *float64 `json:"iva" form:"iva"`
	Energia          *float64 `json:"energia" form:"energia"`
	Material         *float64 `json:"material" form:"material"`
	Desgaste         *float64 `json:"desgaste" form:"desgaste"`
	Utilidad         *float64 `json:"utilidad" form:"utilidad"`
	Impuesto         *float64 `json:"impuesto" form:"impuesto"`
	Total            *float64 `json:"total" form:"total"`
	Activo           *bool    `json:"activo" form:"activo"`

	Alto  *float64 `json:"alto" form:"alto"`
	Ancho *float64 `json:"ancho" form:"ancho"`
	Largo *float64 `json:"largo" form:"largo"`
	Scale *float64 `json:"scale" form:"scale"`

	Atributos []AtributoInput `json:"atributos" form:"-"`
}

type Categoria struct {
	ID          int64   `db:"id" json:"id"`
	Nombre      string  `db:"nombre" json:"nombre"`
	Slug        string  `db:"slug" json:"slug"`
	Descripcion *string `db:"descripcion" json:"descripcion"`
	Imagen      *string `db:"imagen" json:"imagen"`
	PadreID     *int64  `db:"padre_id" json:"padre_id"`
	Orden       int     `db:"orden" json:"orden"`
	Activo      bool    `db:"activo" json:"activo"`
	CreatedAt   string  `db:"created_at" json:"created_at"`
	UpdatedAt   *string `db:"updated_at" json:"updated_at"`
}

type CategoriaListado struct {
	Categoria
	Padre          *string `db:"padre" json:"padre"`
	TotalProductos int     `db:"total_productos" json:"total_productos"`
}

type CategoriaUpdate struct {
	Nombre      *string `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Imagen      *string `json:"imagen"`
	PadreID     *int64  `json:"padre_id"`
	Orden       *int    `json:"orden"`
	Activo      *bool   `json:"activo"`
}

type Marca struct {
	ID          int64   `db:"id" json:"id"`
	Nombre      string  `db:"nombre" json:"nombre"`
	Descripcion *string `db:"descripcion" json:"descripcion"`
	Logo        *string `db:"logo" json:"logo"`
	Activo      bool    `db:"activo" json:"activo"`
	CreatedAt   string  `db:"created_at" json:"created_at"`
	UpdatedAt   *string `db:"updated_at" json:"updated_at"`
}

type MarcaListado struct {
	Marca
	TotalProductos int `db:"total_productos" json:"total_productos"`
}

type MarcaUpdate struct {
	Nombre      *string `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Logo        *string `json:"logo"`
	Activo      *bool   `json:"activo"`
}

type Atributo struct {
	ID     int64   `db:"id" json:"id"`
	Nombre string  `db:"nombre" json:"nombre"`
	Tipo   *string `db:"tipo" json:"tipo"`
	Unidad *string `db:"unidad" json:"unidad"`
	Orden  int     `db:"orden" json:"orden"`
	Activo bool    `db:"activo" json:"activo"`
}

type AtributoUpdate struct {
	Nombre *string `json:"nombre"`
	Tipo   *string `json:"tipo"`
	Unidad *string `json:"unidad"`
	Orden  *int    `json:"orden"`
	Activo *bool   `json:"activo"`
}

type Resena struct {
	ID            int64   `db:"id" json:"id"`
	ProductoID    int64   `db:"producto_id" json:"producto_id"`
	UsuarioID     *int64  `db:"usuario_id" json:"usuario_id"`
	Calificacion  int     `db:"calificacion" json:"calificacion"`
	Comentario    *string `db:"comentario" json:"comentario"`
	Aprobado      bool    `db:"aprobado" json:"aprobado"`
	CreatedAt     string  `db:"created_at" json:"created_at"`
	UsuarioNombre *string `db:"usuario_nombre" json:"usuario_nombre"`
}

type Impresora struct {
	ID     int64   `db:"id" json:"id"`
	Nombre string  `db:"nombre" json:"nombre"`
	Modelo *string `db:"modelo" json:"modelo"`
	Activo bool    `db:"activo" json:"activo"`
}

type Filamento struct {
	ID       int64   `db:"id" json:"id"`
	Nombre   string  `db:"nombre" json:"nombre"`
	Material *string `db:"material" json:"material"`
	Color    *string `db:"color" json:"color"`
	Activo   bool    `db:"activo" json:"activo"`
}

type Feria struct {
	ID            int64    `db:"id" json:"id"`
	Nombre        string   `db:"nombre" json:"nombre"`
	FechaDesde    *string  `db:"fecha_desde" json:"fecha_desde"`
	FechaHasta    *string  `db:"fecha_hasta" json:"fecha_hasta"`
	Direccion     *string  `db:"direccion" json:"direccion"`
	Organizadores *string  `db:"organizadores" json:"organizadores"`
	Contacto      *string  `db:"contacto" json:"contacto"`
	Valor         *float64 `db:"valor" json:"valor"`
	Activo        bool     `db:"activo" json:"activo"`
	CreatedAt     string   `db:"created_at" json:"created_at"`
}

type FeriaUpdate struct {
	Nombre        *string  `json:"nombre"`
	FechaDesde    *string  `json:"fechaDesde"`
	FechaHasta    *string  `json:"fechaHasta"`
	Direccion     *string  `json:"direccion"`
	Organizadores *string  `json:"organizadores"`
	Contacto      *string  `json:"contacto"`
	Valor         *float64 `json:"valor"`
	Activo        *bool    `json:"activo"`
}

// FeriaProducto allocates a quantity of a product to a feria.
type FeriaProducto struct {
	ProductoID int64 `json:"producto_id"`
	Cantidad   int   `json:"cantidad"`
}

// FeriaStock reports per-product stock for a feria: remaining = allocated
// minus the summed sales.
type FeriaStock struct {
	ID           int64    `db:"id" json:"id"`
	Nombre       string   `db:"nombre" json:"nombre"`
	StockInicial int      `db:"stock_inicial" json:"stock_inicial"`
	Vendidos     int      `db:"vendidos" json:"vendidos"`
	StockActual  int      `db:"stock_actual" json:"stock_actual"`
	Total        *float64 `db:"total" json:"total"`
	TotalLinea   *float64 `db:"total_linea" json:"totalLinea"`
}

// Venta is one append-only sale line for a feria.
type Venta struct {
	ProductoID int64   `json:"producto_id"`
	Cantidad   int     `json:"cantidad"`
	MedioPago  *string `json:"medio_pago"`
}
