package genai

import (
	"fmt"
	"strings"
)

// Default models per provider. Overridable via configuration.
var (
	DefaultGeminiModel = "gemini-2.0-flash"
	DefaultGroqModel   = "llama-3.3-70b-versatile"
)

// IdeasPrompt builds the generation prompt for a program slot. The model
// answers in Spanish with a short dash-prefixed list, ready to drop into
// the slot's ideas field.
func IdeasPrompt(req IdeasRequest) string {
	var b strings.Builder

	b.WriteString("Eres asesor editorial de Radio Ciudad Monumento, la emisora de Bayamo, Cuba.\n")
	fmt.Fprintf(&b, "Propón 3 ideas de contenido para el programa %q que sale al aire el %s",
		req.ProgramName, req.DayName)
	if req.Month != "" {
		fmt.Fprintf(&b, " de %s", req.Month)
	}
	b.WriteString(".\n")

	if req.Theme != "" {
		fmt.Fprintf(&b, "Temática del día: %s.\n", req.Theme)
	}
	if req.Instructions != "" {
		fmt.Fprintf(&b, "Orientación editorial: %s\n", req.Instructions)
	}
	if len(req.Events) > 0 {
		fmt.Fprintf(&b, "Efemérides de la fecha: %s.\n", strings.Join(req.Events, "; "))
	}

	b.WriteString("Responde solo la lista, una idea por línea empezando con \"- \", ")
	b.WriteString("con enfoque local (Bayamo y la provincia Granma) y en español.")
	return b.String()
}
