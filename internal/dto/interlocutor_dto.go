package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// InterlocutorDatos is the table-independent payload the service works with.
type InterlocutorDatos struct {
	Nombre    string
	Empresa   string
	Rut       *string
	Email     *string
	Telefono  *string
	Direccion *string
}

type CrearClienteRequest struct {
	NombreCliente  string  `json:"nombre_cliente"  validate:"required,max=100"`
	EmpresaCliente string  `json:"empresa_cliente" validate:"required,max=100"`
	Rut            *string `json:"rut"             validate:"omitempty,max=20"`
	Email          *string `json:"email"           validate:"omitempty,max=100"`
	Telefono       *string `json:"telefono"        validate:"omitempty,max=20"`
	Direccion      *string `json:"direccion"       validate:"omitempty,max=200"`
}

func (r CrearClienteRequest) Datos() InterlocutorDatos {
	return InterlocutorDatos{
		Nombre: r.NombreCliente, Empresa: r.EmpresaCliente,
		Rut: r.Rut, Email: r.Email, Telefono: r.Telefono, Direccion: r.Direccion,
	}
}

type CrearProveedorRequest struct {
	NombreProveedor  string  `json:"nombre_proveedor"  validate:"required,max=100"`
	EmpresaProveedor string  `json:"empresa_proveedor" validate:"required,max=100"`
	Rut              *string `json:"rut"               validate:"omitempty,max=20"`
	Email            *string `json:"email"             validate:"omitempty,max=100"`
	Telefono         *string `json:"telefono"          validate:"omitempty,max=20"`
	Direccion        *string `json:"direccion"         validate:"omitempty,max=200"`
}

func (r CrearProveedorRequest) Datos() InterlocutorDatos {
	return InterlocutorDatos{
		Nombre: r.NombreProveedor, Empresa: r.EmpresaProveedor,
		Rut: r.Rut, Email: r.Email, Telefono: r.Telefono, Direccion: r.Direccion,
	}
}

// ActualizarInterlocutorRequest is a partial update of either kind.
type ActualizarInterlocutorRequest struct {
	Nombre    *string `json:"nombre"    validate:"omitempty,min=1,max=100"`
	Empresa   *string `json:"empresa"   validate:"omitempty,min=1,max=100"`
	Email     *string `json:"email"     validate:"omitempty,max=100"`
	Telefono  *string `json:"telefono"  validate:"omitempty,max=20"`
	Direccion *string `json:"direccion" validate:"omitempty,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClienteResumen struct {
	ID             uint    `json:"id"`
	NombreCliente  string  `json:"nombre_cliente"`
	EmpresaCliente string  `json:"empresa_cliente"`
	Email          *string `json:"email"`
	Telefono       *string `json:"telefono"`
}

type ProveedorResumen struct {
	ID               uint    `json:"id"`
	NombreProveedor  string  `json:"nombre_proveedor"`
	EmpresaProveedor string  `json:"empresa_proveedor"`
	Email            *string `json:"email"`
	Telefono         *string `json:"telefono"`
}

type InterlocutorListaResponse struct {
	Clientes    []ClienteResumen   `json:"clientes"`
	Proveedores []ProveedorResumen `json:"proveedores"`
}

type InterlocutorInfo struct {
	ID        uint    `json:"id"`
	Nombre    string  `json:"nombre"`
	Empresa   string  `json:"empresa"`
	Tipo      string  `json:"tipo"`
	Rut       *string `json:"rut"`
	Email     *string `json:"email"`
	Telefono  *string `json:"telefono"`
	Direccion *string `json:"direccion"`
}

type InterlocutorEstadisticas struct {
	TotalOrdenes int64   `json:"total_ordenes"`
	ValorTotal   float64 `json:"valor_total"`
	UltimaOrden  *string `json:"ultima_orden"`
}

type InterlocutorOrden struct {
	ID     uint    `json:"id"`
	Tipo   string  `json:"tipo"`
	Valor  float64 `json:"valor"`
	Fecha  string  `json:"fecha"`
	Estado string  `json:"estado"`
}

type InterlocutorDetalleResponse struct {
	InfoInterlocutor InterlocutorInfo         `json:"info_interlocutor"`
	Estadisticas     InterlocutorEstadisticas `json:"estadisticas"`
	Ordenes          []InterlocutorOrden      `json:"ordenes"`
}

type OrdenesPaginadasResponse struct {
	Ordenes     []InterlocutorOrden `json:"ordenes"`
	TotalPages  int                 `json:"total_pages"`
	CurrentPage int                 `json:"current_page"`
	TotalItems  int64               `json:"total_items"`
}

type BusquedaInterlocutor struct {
	ID      uint   `json:"id"`
	Nombre  string `json:"nombre"`
	Empresa string `json:"empresa"`
	Tipo    string `json:"tipo"`
}

type TopInterlocutorResponse struct {
	ID         uint    `json:"id"`
	Nombre     string  `json:"nombre"`
	Empresa    string  `json:"empresa"`
	TotalValor float64 `json:"total_valor"`
}

type EstadisticasResponse struct {
	Totales struct {
		Clientes    int64 `json:"clientes"`
		Proveedores int64 `json:"proveedores"`
	} `json:"totales"`
	TopClientes    []TopInterlocutorResponse `json:"top_clientes"`
	TopProveedores []TopInterlocutorResponse `json:"top_proveedores"`
}
