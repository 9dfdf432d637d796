package personas

import (
	"net/mail"
	"strings"

	"github.com/trezcool/escuela/core"
)

// WelcomeEmail builds the message sent to a newly registered Padre, or nil when they gave no email.
// alumnos are the display names of the Alumnos in their charge.
func WelcomeEmail(p Padre, alumnos []string) *core.EmailMessage {
	if p.Email == "" {
		return nil
	}
	return &core.EmailMessage{
		To:           []mail.Address{{Name: strings.TrimSpace(p.Nombres + " " + p.Apellidos), Address: p.Email}},
		Subject:      "Bienvenido(a)",
		TemplateName: "padre_registrado",
		TemplateData: map[string]interface{}{
			"Nombres":    p.Nombres,
			"Apellidos":  p.Apellidos,
			"Parentesco": p.Parentesco,
			"Alumnos":    alumnos,
		},
	}
}
