package menu

// OptionChoice is one selectable value within a group. PriceCents is the
// delta added to the item's base price when chosen.
type OptionChoice struct {
	Label      string `json:"label"`
	PriceCents int64  `json:"price_cents"`
}

// OptionGroup is a named set of choices attached to a menu item, e.g. "Size".
// Required is informational: pricing does not enforce it.
type OptionGroup struct {
	Name     string         `json:"name"`
	Required bool           `json:"required"`
	Choices  []OptionChoice `json:"choices"`
}

type MenuItem struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description *string       `json:"description"`
	PriceCents  int64         `json:"price_cents"`
	Category    string        `json:"category"`
	ImageURL    *string       `json:"image_url"`
	Options     []OptionGroup `json:"options"`
}

// ItemInput is the administrative create/replace payload.
type ItemInput struct {
	Name        string
	Description *string
	PriceCents  int64
	Category    string
	ImageURL    *string
	Options     []OptionGroup
}

func (in ItemInput) toItem(id int64) *MenuItem {
	return &MenuItem{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		Options:     in.Options,
	}
}

// Choice returns the choice with the given label.
func (g OptionGroup) Choice(label string) (OptionChoice, bool) {
	for _, c := range g.Choices {
		if c.Label == label {
			return c, true
		}
	}
	return OptionChoice{}, false
}
