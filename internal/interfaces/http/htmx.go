package http

import (
	"encoding/json"
	"strings"
	"unicode/utf16"

	"github.com/gofiber/fiber/v2"
)

// Encabezados htmx usados por las tablas y los modales.
const (
	HeaderTrigger = "HX-Trigger"
	HeaderReswap  = "HX-Reswap"
	HeaderRequest = "HX-Request"
)

// CrudAlertEvent evento que el cliente muestra con alert() (fallo al borrar).
const CrudAlertEvent = "crud-alert"

// setTrigger dispara eventos en el cliente vía HX-Trigger. El JSON se escribe solo con
// ASCII porque el navegador lee los encabezados como latin-1.
func setTrigger(c *fiber.Ctx, events map[string]any) error {
	raw, err := json.Marshal(events)
	if err != nil {
		return err
	}
	c.Set(HeaderTrigger, asciiJSON(raw))
	return nil
}

// asciiJSON reemplaza los caracteres no ASCII por escapes \uXXXX.
func asciiJSON(raw []byte) string {
	var b strings.Builder
	for _, r := range string(raw) {
		if r < 0x80 {
			b.WriteRune(r)
			continue
		}
		if r > 0xFFFF {
			r1, r2 := utf16.EncodeRune(r)
			writeEscape(&b, r1)
			writeEscape(&b, r2)
			continue
		}
		writeEscape(&b, r)
	}
	return b.String()
}

func writeEscape(b *strings.Builder, r rune) {
	const hexDigits = "0123456789abcdef"
	b.WriteString(`\u`)
	for shift := 12; shift >= 0; shift -= 4 {
		b.WriteByte(hexDigits[(r>>uint(shift))&0xF])
	}
}

// isHTMX indica si el request vino de htmx.
func isHTMX(c *fiber.Ctx) bool {
	return c.Get(HeaderRequest) == "true"
}
