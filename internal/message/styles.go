package message

// Style is a personalization style offered on the product page
type Style struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Styles lists the personalization styles in display order
var Styles = []Style{
	{ID: "nombre", Label: "Nombre/Iniciales"},
	{ID: "frase", Label: "Frase/Versículo"},
	{ID: "foto", Label: "Foto/Imagen"},
	{ID: "trama", Label: "Trama/Patrón"},
	{ID: "logo", Label: "Logo/Marca"},
}

// DefaultStyle is preselected on the product page
const DefaultStyle = "nombre"

// StyleLabel resolves a style id
func StyleLabel(id string) (string, bool) {
	for _, s := range Styles {
		if s.ID == id {
			return s.Label, true
		}
	}
	return "", false
}
