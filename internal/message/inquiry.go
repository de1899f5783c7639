package message

import (
	"fmt"
	"strings"
)

const modelPending = "a confirmar"

// Inquiry describes a configured product the buyer wants to ask about
type Inquiry struct {
	ProductName     string
	ModelLabel      string
	Size            string
	Interior        string
	Cover           string
	Personalization string
	Quantity        int
}

func (q Inquiry) model() string {
	if q.ModelLabel == "" {
		return modelPending
	}
	return q.ModelLabel
}

func (q Inquiry) name() string {
	if q.ProductName == "" {
		return "Producto"
	}
	return q.ProductName
}

// FormatProductInquiry asks whether a configured product is available
func FormatProductInquiry(q Inquiry) string {
	lines := []string{
		"¡Hola! Me interesa este producto:",
		"",
		"*" + q.name() + "*",
		"Modelo: " + q.model(),
		"Tamaño: " + q.Size,
		"Interior: " + q.Interior,
		"Tapa: " + q.Cover,
	}
	if q.Personalization != "" {
		lines = append(lines, fmt.Sprintf("Personalización: “%s”", q.Personalization))
	}
	quantity := q.Quantity
	if quantity < 1 {
		quantity = 1
	}
	lines = append(lines,
		fmt.Sprintf("Cantidad: %d", quantity),
		"",
		"¿Está disponible? ✨",
	)
	return strings.Join(lines, "\n")
}

// FormatPersonalizationInquiry opens a conversation about a custom design
func FormatPersonalizationInquiry(q Inquiry, styleID string) string {
	style, ok := StyleLabel(styleID)
	if !ok {
		style = "A definir"
	}

	text := "Texto: a definir"
	if q.Personalization != "" {
		text = fmt.Sprintf("Texto (opcional): “%s”", q.Personalization)
	}

	lines := []string{
		"¡Hola! Quiero personalizar este producto:",
		"",
		"*" + q.name() + "*",
		"Modelo: " + q.model(),
		fmt.Sprintf("Tamaño: %s | Interior: %s | Tapa: %s", q.Size, q.Interior, q.Cover),
		text,
		"",
		"Estilo de personalización elegido: *" + style + "*",
		"¿Podemos ver opciones? Si hace falta, te envío imagen/referencia acá mismo.",
	}
	return strings.Join(lines, "\n")
}
