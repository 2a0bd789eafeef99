package model

import "time"

// TipoInterlocutor selects between the two counterparty tables.
type TipoInterlocutor string

const (
	InterlocutorCliente   TipoInterlocutor = "cliente"
	InterlocutorProveedor TipoInterlocutor = "proveedor"
)

func (t TipoInterlocutor) Valido() bool {
	return t == InterlocutorCliente || t == InterlocutorProveedor
}

// Etiqueta is the capitalized name shown to clients ("Cliente", "Proveedor").
func (t TipoInterlocutor) Etiqueta() string {
	if t == InterlocutorProveedor {
		return "Proveedor"
	}
	return "Cliente"
}

// TipoOrden is the order type a counterparty of this kind takes part in.
func (t TipoInterlocutor) TipoOrden() string {
	if t == InterlocutorProveedor {
		return TipoEntrada
	}
	return TipoSalida
}

// Interlocutor is the table-independent view of a Cliente or Proveedor.
type Interlocutor struct {
	ID            uint
	Tipo          TipoInterlocutor
	Nombre        string
	Empresa       string
	Rut           *string
	Direccion     *string
	Telefono      *string
	Email         *string
	FechaCreacion time.Time
}

func (c *Cliente) Interlocutor() Interlocutor {
	return Interlocutor{
		ID: c.ID, Tipo: InterlocutorCliente, Nombre: c.NombreCliente, Empresa: c.EmpresaCliente,
		Rut: c.Rut, Direccion: c.Direccion, Telefono: c.Telefono, Email: c.Email,
		FechaCreacion: c.FechaCreacion,
	}
}

func (c *Cliente) Asignar(i Interlocutor) {
	c.ID, c.NombreCliente, c.EmpresaCliente = i.ID, i.Nombre, i.Empresa
	c.Rut, c.Direccion, c.Telefono, c.Email = i.Rut, i.Direccion, i.Telefono, i.Email
}

func (p *Proveedor) Interlocutor() Interlocutor {
	return Interlocutor{
		ID: p.ID, Tipo: InterlocutorProveedor, Nombre: p.NombreProveedor, Empresa: p.EmpresaProveedor,
		Rut: p.Rut, Direccion: p.Direccion, Telefono: p.Telefono, Email: p.Email,
		FechaCreacion: p.FechaCreacion,
	}
}

func (p *Proveedor) Asignar(i Interlocutor) {
	p.ID, p.NombreProveedor, p.EmpresaProveedor = i.ID, i.Nombre, i.Empresa
	p.Rut, p.Direccion, p.Telefono, p.Email = i.Rut, i.Direccion, i.Telefono, i.Email
}
