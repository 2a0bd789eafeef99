package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pagina describes one server-rendered view.
type Pagina struct {
	Template string
	Titulo   string
	Vista    string
}

// Paginas maps each page route to its view.
var Paginas = map[string]Pagina{
	"/":                     {"login.html", "Iniciar sesión", "login"},
	"/home":                 {"home.html", "Órdenes", "home"},
	"/configuracion":        {"configuracion.html", "Configuración", "configuracion"},
	"/empleados":            {"empleados.html", "Empleados", "empleados"},
	"/informes":             {"informe.html", "Informes", "informes"},
	"/interlocutor":         {"interlocutor.html", "Interlocutores", "interlocutor"},
	"/interlocutor/detalle": {"interlocutor-detalle.html", "Detalle de interlocutor", "interlocutor-detalle"},
	"/inventario":           {"inventario.html", "Inventario", "inventario"},
	"/inventario/detalle":   {"inventario-detalle.html", "Detalle de producto", "inventario-detalle"},
}

// Page renders p. The login page is the only one without the navigation menu.
func Page(p Pagina) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, p.Template, gin.H{
			"Titulo": p.Titulo,
			"Vista":  p.Vista,
			"Menu":   p.Vista != "login",
			"ID":     c.Query("id"),
			"Tipo":   c.Query("tipo"),
		})
	}
}

// InventarioDetalle sends the client back to the inventory list when no
// product id was given.
func InventarioDetalle(p Pagina) gin.HandlerFunc {
	render := Page(p)
	return func(c *gin.Context) {
		if c.Query("id") == "" {
			c.Redirect(http.StatusFound, "/inventario")
			return
		}
		render(c)
	}
}
