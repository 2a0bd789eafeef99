package model

import (
	"strings"

	"github.com/glYohanny/Gucci/internal/apierror"
)

// Reglas holds the replaceable validation predicates. Services receive a
// Reglas value at construction; callers never change when a predicate does.
type Reglas struct {
	// RUTValido reports whether a RUT is well formed. Nil accepts everything.
	RUTValido func(rut string) bool
}

// ReglasPorDefecto accepts every RUT.
func ReglasPorDefecto() Reglas {
	return Reglas{RUTValido: func(string) bool { return true }}
}

// ValidarRUT applies the configured RUT predicate.
func (r Reglas) ValidarRUT(rut string) error {
	if r.RUTValido != nil && !r.RUTValido(rut) {
		return apierror.Validacion("Formato de RUT inválido")
	}
	return nil
}

// ValidarUsuario runs the format checks for a Usuario before it is written.
func (r Reglas) ValidarUsuario(u *Usuario) error {
	if err := ValidarEmail(u.Email); err != nil {
		return err
	}
	return r.ValidarRUT(u.Rut)
}

// ValidarEmail requires an "@" in non-empty emails.
func ValidarEmail(email string) error {
	if email != "" && !strings.Contains(email, "@") {
		return apierror.Validacion("Formato de email inválido")
	}
	return nil
}

// FormatearRUT renders a stored RUT as body-dv ("12345678-9"). Values already
// containing a dash or shorter than two characters are returned unchanged.
func FormatearRUT(rut string) string {
	rut = strings.TrimSpace(rut)
	if len(rut) < 2 || strings.Contains(rut, "-") {
		return rut
	}
	return rut[:len(rut)-1] + "-" + rut[len(rut)-1:]
}
