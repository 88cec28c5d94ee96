package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
)

// OrderSummary carries the fields the admin hand-off message is built from.
type OrderSummary struct {
	Game     string
	PlayerID string
	Server   string
	Nominal  string
	SN       string
}

// Message renders the human-readable order summary sent to the store admin.
func Message(o OrderSummary) string {
	return fmt.Sprintf(
		"Halo Admin, saya ingin top up.\n\nGame: %s\nID: %s\nServer: %s\nNominal: %s\nSN Order: %s",
		o.Game, o.PlayerID, o.Server, o.Nominal, o.SN,
	)
}

// OrderLink builds a wa.me deep link that opens a chat with phone (digits
// only, country code included) pre-filled with the order summary.
func OrderLink(phone string, o OrderSummary) string {
	// url.QueryEscape emits "+" for spaces; wa.me expects percent encoding.
	text := strings.ReplaceAll(url.QueryEscape(Message(o)), "+", "%20")
	return "https://wa.me/" + phone + "?text=" + text
}
