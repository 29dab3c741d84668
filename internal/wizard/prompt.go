package wizard

import (
	"fmt"
	"strings"

	"github.com/kitestore-next/internal/models"
)

// Option is one discrete choice offered alongside a prompt.
type Option struct {
	Key   string
	Label string
}

// Prompt is what a state machine says back after consuming an event. The
// transport renders Text and Options however its medium allows. Terminal
// marks the machine finished; Product carries the committed record on a
// successful commit or edit so the view can reference it.
type Prompt struct {
	Text     string
	Options  []Option
	Terminal bool
	Product  *models.Product
}

func terminal(text string) Prompt {
	return Prompt{Text: text, Terminal: true}
}

// FormatPrice renders an integer ruble amount with thousands separators.
func FormatPrice(value int) string {
	digits := fmt.Sprintf("%d", value)
	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)
	out := strings.Join(groups, ",")
	if negative {
		out = "-" + out
	}
	return out
}
