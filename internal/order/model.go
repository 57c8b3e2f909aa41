package order

import "time"

// ItemRequest is one requested line. SelectedOptions maps an option group
// name to the chosen label; groups left out are not applied.
type ItemRequest struct {
	MenuItemID      int64
	Quantity        int
	SelectedOptions map[string]string
	Notes           *string
}

// SelectedOption is a choice that matched one of the item's groups.
type SelectedOption struct {
	Group      string `json:"group"`
	Label      string `json:"label"`
	PriceCents int64  `json:"price_cents"`
}

// Line is a priced line item. It keeps a snapshot of the menu item so later
// catalog edits don't rewrite history.
type Line struct {
	MenuItemID     int64            `json:"menu_item_id"`
	Name           string           `json:"name"`
	Quantity       int              `json:"quantity"`
	BasePriceCents int64            `json:"base_price_cents"`
	Options        []SelectedOption `json:"options"`
	Notes          *string          `json:"notes"`
	LineTotalCents int64            `json:"line_total_cents"`
}

type Order struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Name       string    `json:"name"`
	Items      []Line    `json:"items"`
	TotalCents int64     `json:"total_cents"`
	Served     bool      `json:"served"`
	CreatedAt  time.Time `json:"created_at"`
}

// Viewer is who is asking for orders.
type Viewer struct {
	UserID   int64
	IsMaster bool
}
