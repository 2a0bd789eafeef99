package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type DireccionRequest struct {
	CodigoPostal *string `json:"codigo_postal" validate:"omitempty,max=10"`
	Ciudad       *string `json:"ciudad"        validate:"omitempty,max=50"`
	RegionID     *uint   `json:"region_id"`
	ComunaID     *uint   `json:"comuna_id"`
}

// CrearEmpleadoRequest creates a Usuario, its Cuenta and its permission
// grants in one step. Permisos maps modulo → accion → granted.
type CrearEmpleadoRequest struct {
	TipoUsuario     string            `json:"tipo_usuario"     validate:"required,max=50"`
	Sexo            string            `json:"sexo"             validate:"required,oneof=M F Otro"`
	NombreCompleto  string            `json:"nombre_completo"  validate:"required,max=100"`
	Email           string            `json:"email"            validate:"required,max=100"`
	FechaNacimiento string            `json:"fecha_nacimiento" validate:"required"`
	Rut             string            `json:"rut"              validate:"required,max=20"`
	Telefono        *string           `json:"telefono"         validate:"omitempty,max=15"`
	NumeroCasa      *string           `json:"numero_casa"      validate:"omitempty,max=10"`
	Direccion       *DireccionRequest `json:"direccion"`

	NombreUsuario string  `json:"nombre_usuario" validate:"required,max=50"`
	Contrasena    string  `json:"contrasena"     validate:"required"`
	Estado        string  `json:"estado"         validate:"omitempty,oneof=Activo Inactivo"`
	Cargo         *string `json:"cargo"          validate:"omitempty,max=50"`

	Permisos map[string]map[string]bool `json:"permisos"`
}

// ActualizarEmpleadoRequest is a partial update: nil fields are left untouched.
type ActualizarEmpleadoRequest struct {
	NombreCompleto *string           `json:"nombre_completo" validate:"omitempty,min=1,max=100"`
	Email          *string           `json:"email"           validate:"omitempty,max=100"`
	Telefono       *string           `json:"telefono"        validate:"omitempty,max=15"`
	TipoUsuario    *string           `json:"tipo_usuario"    validate:"omitempty,min=1,max=50"`
	NumeroCasa     *string           `json:"numero_casa"     validate:"omitempty,max=10"`
	Sexo           *string           `json:"sexo"            validate:"omitempty,oneof=M F Otro"`
	Direccion      *DireccionRequest `json:"direccion"`
}

type ValidarRegionComunaRequest struct {
	RegionID uint `json:"region_id"`
	ComunaID uint `json:"comuna_id"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type EmpleadoCreadoResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      uint   `json:"id"`
	UserID  uint   `json:"user_id"`
}

// EmpleadoFilaResponse is one row of the employee table.
type EmpleadoFilaResponse struct {
	ID             uint    `json:"ID"`
	NombreCompleto string  `json:"Nombre_Completo"`
	Rut            string  `json:"RUT"`
	Sexo           string  `json:"Sexo"`
	Telefono       *string `json:"Teléfono"`
	Email          string  `json:"email"`
	TipoUsuario    string  `json:"Tipo_Usuario"`
	Estado         *string `json:"Estado"`
}

type EmpleadoResponse struct {
	ID              uint    `json:"id"`
	TipoUsuario     string  `json:"tipo_usuario"`
	Sexo            string  `json:"sexo"`
	NombreCompleto  string  `json:"nombre_completo"`
	Email           string  `json:"email"`
	FechaNacimiento string  `json:"fecha_nacimiento"`
	DireccionID     *uint   `json:"direccion_id"`
	Rut             string  `json:"rut"`
	NumeroCasa      *string `json:"numero_casa"`
	Telefono        *string `json:"telefono"`
	FechaCreacion   string  `json:"fecha_creacion"`

	NombreUsuario *string `json:"nombre_usuario"`
	Estado        *string `json:"estado"`
	Cargo         *string `json:"cargo"`

	Ciudad       *string `json:"ciudad"`
	CodigoPostal *string `json:"codigo_postal"`
	RegionID     *uint   `json:"region_id"`
	ComunaID     *uint   `json:"comuna_id"`

	Permisos []PermisoResponse `json:"permisos"`
}

type PermisoResponse struct {
	Modulo string `json:"modulo"`
	Accion string `json:"accion"`
}

type EmpleadoDetalleResponse struct {
	Success bool             `json:"success"`
	Data    EmpleadoResponse `json:"data"`
}
