package checkout

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Order is a confirmed checkout. Orders are not persisted; they exist for
// the confirmation page and email.
type Order struct {
	Number   string    `json:"number"`
	PlacedAt time.Time `json:"placedAt"`
	Customer Customer  `json:"customer"`
	Address  Address   `json:"address"`
	Payment  Payment   `json:"payment"`
	Lines    []Line    `json:"lines"`
	Totals   Totals    `json:"totals"`
}

// newOrderNumber returns a short human-readable order number.
func newOrderNumber() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "PED-" + strings.ToUpper(id[:10])
}
