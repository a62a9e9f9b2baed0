package http

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

// WarningColors secuencia del borde del modal de borrado con advertencia.
var WarningColors = []string{"#FF0000", "#FFA500", "#FFFF00", "#008000", "#0000FF", "#4B0082", "#EE82EE"}

// WarningInterval tiempo que dura cada color.
const WarningInterval = 200 * time.Millisecond

// AdminDeleteWarning texto del modal al borrar un usuario administrador.
const AdminDeleteWarning = "¡ADVERTENCIA: Este es un usuario administrador!"

// deleteView datos del modal "Confirmar Eliminación".
type deleteView struct {
	Name        string
	Item        string
	ID          int
	Warning     bool
	WarningText string
	Error       string
}

// RainbowBorderCSS keyframes del borde: cada color se mantiene WarningInterval y el ciclo
// se repite mientras el modal está abierto.
func RainbowBorderCSS() template.CSS {
	n := len(WarningColors)
	total := time.Duration(n) * WarningInterval

	var b strings.Builder
	b.WriteString("@keyframes rainbow-border {\n")
	for i, color := range WarningColors {
		fmt.Fprintf(&b, "  %s { border-color: %s; }\n", keyframePercent(i, n), color)
	}
	b.WriteString("}\n")
	fmt.Fprintf(&b, ".modal-warning { border: 3px solid %s; animation: rainbow-border %dms step-end infinite; }\n",
		WarningColors[0], total.Milliseconds())
	return template.CSS(b.String())
}

func keyframePercent(i, n int) string {
	p := float64(i) * 100 / float64(n)
	s := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", p), "0"), ".")
	return s + "%"
}
