package order

import (
	"math"
	"strings"

	"brewline/internal/apperr"
	"brewline/internal/menu"
)

// MaxQuantity caps a single line. The binding tag in handler.go mirrors it.
const MaxQuantity = 1000

var ErrTotalTooLarge = apperr.Validation("order total is too large")

// ResolveLine prices one request against its menu item.
//
// Groups are walked in the item's stored order. A group with no selection,
// or whose selected label isn't one of its choices, contributes nothing;
// this holds for required groups too. Quantity is assumed to be >= 1.
// The only error is ErrTotalTooLarge when the line total can't be
// represented.
func ResolveLine(item menu.MenuItem, req ItemRequest) (Line, error) {
	var (
		selected []SelectedOption
		extra    int64
	)

	for _, group := range item.Options {
		label, ok := req.SelectedOptions[group.Name]
		if !ok || label == "" {
			continue
		}

		choice, ok := group.Choice(label)
		if !ok {
			continue
		}

		selected = append(selected, SelectedOption{
			Group:      group.Name,
			Label:      choice.Label,
			PriceCents: choice.PriceCents,
		})
		if extra, ok = addCents(extra, choice.PriceCents); !ok {
			return Line{}, ErrTotalTooLarge
		}
	}

	if selected == nil {
		selected = []SelectedOption{}
	}

	unit, ok := addCents(item.PriceCents, extra)
	if !ok {
		return Line{}, ErrTotalTooLarge
	}
	total, ok := mulCents(unit, req.Quantity)
	if !ok {
		return Line{}, ErrTotalTooLarge
	}

	return Line{
		MenuItemID:     item.ID,
		Name:           item.Name,
		Quantity:       req.Quantity,
		BasePriceCents: item.PriceCents,
		Options:        selected,
		Notes:          trimNotes(req.Notes),
		LineTotalCents: total,
	}, nil
}

// Total sums the line totals.
func Total(lines []Line) (int64, error) {
	var total int64
	for _, l := range lines {
		var ok bool
		if total, ok = addCents(total, l.LineTotalCents); !ok {
			return 0, ErrTotalTooLarge
		}
	}
	return total, nil
}

// addCents and mulCents work on non-negative amounts and report false on
// overflow.
func addCents(a, b int64) (int64, bool) {
	if b > math.MaxInt64-a {
		return 0, false
	}
	return a + b, true
}

func mulCents(a int64, n int) (int64, bool) {
	if n <= 0 || a == 0 {
		return 0, true
	}
	if a > math.MaxInt64/int64(n) {
		return 0, false
	}
	return a * int64(n), true
}

func trimNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	v := strings.TrimSpace(*notes)
	if v == "" {
		return nil
	}
	return &v
}
