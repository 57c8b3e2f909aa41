package menu

func strPtr(s string) *string { return &s }

func sizes(grande, venti int64) OptionGroup {
	return OptionGroup{
		Name:     "Size",
		Required: true,
		Choices: []OptionChoice{
			{Label: "Tall", PriceCents: 0},
			{Label: "Grande", PriceCents: grande},
			{Label: "Venti", PriceCents: venti},
		},
	}
}

func freeChoices(name string, labels ...string) OptionGroup {
	g := OptionGroup{Name: name}
	for _, l := range labels {
		g.Choices = append(g.Choices, OptionChoice{Label: l})
	}
	return g
}

// SampleItems is the starter catalog inserted into an empty database.
func SampleItems() []ItemInput {
	return []ItemInput{
		{
			Name:        "Caramel Latte",
			Description: strPtr("Espresso, steamed milk, caramel drizzle."),
			PriceCents:  495,
			Category:    "Lattes",
			Options: []OptionGroup{
				sizes(50, 90),
				{
					Name: "Milk",
					Choices: []OptionChoice{
						{Label: "Whole", PriceCents: 0},
						{Label: "Oat", PriceCents: 70},
						{Label: "Almond", PriceCents: 70},
					},
				},
				{
					Name: "Shots",
					Choices: []OptionChoice{
						{Label: "Single", PriceCents: 0},
						{Label: "Double", PriceCents: 80},
					},
				},
			},
		},
		{
			Name:        "Vanilla Cold Brew",
			Description: strPtr("Slow-steeped coffee, vanilla, light cream."),
			PriceCents:  465,
			Category:    "Cold Brew",
			Options: []OptionGroup{
				sizes(60, 110),
				freeChoices("Sweetness", "Light", "Regular", "Extra"),
				freeChoices("Cream", "Splash", "Light", "Extra"),
			},
		},
		{
			Name:        "Matcha Green Tea",
			Description: strPtr("Creamy matcha with a soft, sweet finish."),
			PriceCents:  525,
			Category:    "Tea Lattes",
			Options: []OptionGroup{
				sizes(55, 95),
				{
					Name: "Milk",
					Choices: []OptionChoice{
						{Label: "2%", PriceCents: 0},
						{Label: "Oat", PriceCents: 70},
						{Label: "Coconut", PriceCents: 70},
					},
				},
				freeChoices("Sweetener", "None", "Classic", "Vanilla"),
			},
		},
	}
}
