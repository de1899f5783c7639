package messaging

import (
	"net/url"
	"strings"
)

// BuildLink returns {base}/{recipient}?text={encoded text}. The recipient is
// reduced to its digits and the text is percent-encoded with spaces as %20.
func BuildLink(base, recipient, text string) string {
	return strings.TrimSuffix(base, "/") + "/" + digits(recipient) + "?text=" + EncodeText(text)
}

// EncodeText percent-encodes a message for the text query parameter
func EncodeText(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
