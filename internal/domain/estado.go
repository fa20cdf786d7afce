package domain

import "strings"

// Canonical estado values as stored. Input is accepted case- and
// accent-insensitively ("Almacén" and "almacen" are the same estado) but
// always written in this form.
const (
	EstadoEnUso         = "en uso"
	EstadoMantenimiento = "mantenimiento"
	EstadoGuardado      = "guardado"
	EstadoAlmacen       = "almacen"
	EstadoDesechado     = "desechado"
)

// EstadoDesconocido is the display fallback for values that predate the
// closed vocabulary. Reads never reject them; writes do.
const EstadoDesconocido = "desconocido"

var estadosValidos = map[string]string{
	EstadoEnUso:         EstadoEnUso,
	EstadoMantenimiento: EstadoMantenimiento,
	EstadoGuardado:      EstadoGuardado,
	EstadoAlmacen:       EstadoAlmacen,
	EstadoDesechado:     EstadoDesechado,
}

var acentos = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u", "Ü", "u",
)

// NormalizarEstado maps free-form input onto the canonical vocabulary.
// The second return reports membership.
func NormalizarEstado(s string) (string, bool) {
	key := acentos.Replace(strings.ToLower(strings.TrimSpace(s)))
	canon, ok := estadosValidos[key]
	return canon, ok
}

// EstadoDisplay returns the canonical estado for display, degrading
// unrecognized stored values to "desconocido" instead of failing the read.
func EstadoDisplay(s string) string {
	if canon, ok := NormalizarEstado(s); ok {
		return canon
	}
	return EstadoDesconocido
}
