// Package message builds the plain-text messages handed to the shop's chat
// line. Every function is deterministic: equal inputs give byte-identical
// output. Percent-encoding is left to the caller.
package message

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/alpiedelaletra/storefront/internal/cart"
	"github.com/alpiedelaletra/storefront/internal/domain"
	"github.com/alpiedelaletra/storefront/internal/money"
	"github.com/alpiedelaletra/storefront/pkg/errors"
)

const (
	OrderGreeting    = "¡Hola! Quiero *finalizar la compra* desde la tienda:"
	EmptyCartNotice  = "_(Aún no tengo productos en el carrito. Te contacto para asesoramiento)_"
	MissingValue     = "A completar"
	OrderClosing     = "¿Me ayudás a coordinar el pedido? ¡Gracias!"
	ShippingTerms    = "🚚 Método de envío: A coordinar"
	PaymentTerms     = "💳 Método de pago: Mercado Pago o Transferencia"
	pickupLabel      = "Retiro en punto de entrega"
	shippingLabel    = "Envío a domicilio"
	itemDetailIndent = "   "
)

// FormatOrder renders the checkout hand-off message
func FormatOrder(items []cart.Item, total decimal.Decimal, buyer domain.BuyerInfo) string {
	var lines []string

	lines = append(lines, OrderGreeting, "")

	if len(items) == 0 {
		lines = append(lines, EmptyCartNotice, "")
	} else {
		lines = append(lines, "*Carrito:*")
		for i, item := range items {
			lines = append(lines, itemLines(i+1, item)...)
			lines = append(lines, "")
		}
		lines = append(lines, "*Total estimado:* "+money.Format(total), "")
	}

	lines = append(lines, buyerLines(buyer)...)
	lines = append(lines, "")

	if label, ok := StyleLabel(buyer.PreferredStyle); ok {
		lines = append(lines, "*Estilo de personalización preferido (guía):* "+label, "")
	}

	lines = append(lines, ShippingTerms, PaymentTerms, "")
	lines = append(lines, OrderClosing)

	return strings.Join(lines, "\n")
}

func itemLines(n int, item cart.Item) []string {
	lines := []string{
		fmt.Sprintf("• %d) *%s* x%d", n, item.Product.Name, item.Quantity),
	}

	detail := func(label, value string) {
		if value != "" {
			lines = append(lines, itemDetailIndent+label+": "+value)
		}
	}
	detail("Modelo", item.SelectedModel)
	detail("Tamaño", string(item.SelectedSize))
	detail("Interior", string(item.SelectedInterior))
	detail("Tapa", string(item.SelectedCover))
	if item.Personalization != "" {
		detail("Personalización", "“"+item.Personalization+"”")
	}

	lines = append(lines, fmt.Sprintf("%sUnitario: %s  |  Subtotal: %s",
		itemDetailIndent, money.Format(item.Price), money.Format(item.Subtotal())))
	return lines
}

func buyerLines(b domain.BuyerInfo) []string {
	lines := []string{
		"*Datos del comprador:*",
		"• Nombre: " + orMissing(b.FullName()),
		"• Email: " + orMissing(b.Email),
		"• Teléfono: " + orMissing(b.Phone),
		"• Ciudad/Localidad: " + orMissing(b.City),
		"• Provincia: " + orMissing(b.Province),
	}

	if b.DeliveryMethod == domain.DeliveryShipping {
		lines = append(lines,
			"• Entrega: "+shippingLabel,
			"• Dirección: "+orMissing(b.Address),
			"• Código Postal: "+orMissing(b.PostalCode),
		)
	} else {
		lines = append(lines, "• Entrega: "+pickupLabel)
	}

	if notes := strings.TrimSpace(b.Notes); notes != "" {
		lines = append(lines, "• Notas: "+notes)
	}
	return lines
}

func orMissing(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return MissingValue
	}
	return s
}

// CheckTotal confirms total equals the sum of the item subtotals the message shows
func CheckTotal(items []cart.Item, total decimal.Decimal) error {
	sum := cart.TotalOf(items)
	if !sum.Equal(total) {
		return &errors.ErrTotalMismatch{Total: total.String(), Computed: sum.String()}
	}
	return nil
}
