package menu

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"brewline/internal/apperr"
)

const (
	maxNameLen        = 120
	maxCategoryLen    = 80
	maxDescriptionLen = 500
	maxImageURLLen    = 500

	// price columns are INTEGER
	maxPriceCents = math.MaxInt32
)

// ValidateItem checks a catalog write and normalizes it in place (trimmed
// names, labels and categories; empty optional strings become nil).
func ValidateItem(in *ItemInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.Description = trimOptional(in.Description)
	in.ImageURL = trimOptional(in.ImageURL)

	switch {
	case in.Name == "":
		return apperr.Validation("name is required")
	case len(in.Name) > maxNameLen:
		return apperr.Validation("name must be at most 120 characters")
	case in.Category == "":
		return apperr.Validation("category is required")
	case len(in.Category) > maxCategoryLen:
		return apperr.Validation("category must be at most 80 characters")
	case in.PriceCents < 0:
		return apperr.Validation("price_cents must not be negative")
	case in.PriceCents > maxPriceCents:
		return apperr.Validation(fmt.Sprintf("price_cents must be at most %d", maxPriceCents))
	case in.Description != nil && len(*in.Description) > maxDescriptionLen:
		return apperr.Validation("description must be at most 500 characters")
	case in.ImageURL != nil && len(*in.ImageURL) > maxImageURLLen:
		return apperr.Validation("image_url must be at most 500 characters")
	}

	return validateOptions(in.Options)
}

func validateOptions(groups []OptionGroup) error {
	seenGroups := make(map[string]bool, len(groups))

	for i := range groups {
		g := &groups[i]
		g.Name = strings.TrimSpace(g.Name)

		if g.Name == "" {
			return apperr.Validation(fmt.Sprintf("option group %d: name is required", i+1))
		}
		if seenGroups[g.Name] {
			return apperr.Validation(fmt.Sprintf("option group %q is defined twice", g.Name))
		}
		seenGroups[g.Name] = true

		if len(g.Choices) == 0 {
			return apperr.Validation(fmt.Sprintf("option group %q needs at least one choice", g.Name))
		}

		seenLabels := make(map[string]bool, len(g.Choices))
		for j := range g.Choices {
			c := &g.Choices[j]
			c.Label = strings.TrimSpace(c.Label)

			if c.Label == "" {
				return apperr.Validation(fmt.Sprintf("option group %q: choice %d has no label", g.Name, j+1))
			}
			if seenLabels[c.Label] {
				return apperr.Validation(fmt.Sprintf("option group %q: choice %q is defined twice", g.Name, c.Label))
			}
			seenLabels[c.Label] = true

			if c.PriceCents < 0 {
				return apperr.Validation(fmt.Sprintf("option group %q: choice %q has a negative price", g.Name, c.Label))
			}
			if c.PriceCents > maxPriceCents {
				return apperr.Validation(fmt.Sprintf("option group %q: choice %q price must be at most %d", g.Name, c.Label, maxPriceCents))
			}
		}
	}

	return nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

var allowedImageExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// ValidateImageExtension returns the lower-cased extension and its content
// type.
func ValidateImageExtension(filename string) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	if ext == "" {
		return "", "", errors.New("file extension missing")
	}

	contentType, ok := allowedImageExt[ext]
	if !ok {
		return "", "", errors.New("file type not allowed")
	}

	return ext, contentType, nil
}
