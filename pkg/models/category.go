package models

import (
	"fmt"
	"strings"
)

// Category is the closed set of genres the catalog understands.
// Each value has two textual aliases: the spelling OMDb uses and a
// Spanish spelling accepted by the console front-end.
type Category string

const (
	CategoryAction  Category = "action"
	CategoryRomance Category = "romance"
	CategoryComedy  Category = "comedy"
	CategoryDrama   Category = "drama"
	CategoryCrime   Category = "crime"
)

// Alias tables, both keyed lowercase. Built once; never mutated after init.
var (
	primaryAliases = map[string]Category{
		"action":  CategoryAction,
		"romance": CategoryRomance,
		"comedy":  CategoryComedy,
		"drama":   CategoryDrama,
		"crime":   CategoryCrime,
	}
	spanishAliases = map[string]Category{
		"acción":  CategoryAction,
		"romance": CategoryRomance,
		"comedia": CategoryComedy,
		"drama":   CategoryDrama,
		"crimen":  CategoryCrime,
	}
)

// CategoryNotFoundError is returned when a genre string matches no alias.
type CategoryNotFoundError struct {
	Text string
}

func (e *CategoryNotFoundError) Error() string {
	return fmt.Sprintf("no category found for %q", e.Text)
}

// CategoryFromPrimary resolves an OMDb genre string. Case-insensitive
// exact match only; unknown text is a hard error, never a default.
func CategoryFromPrimary(text string) (Category, error) {
	if c, ok := primaryAliases[lowerTrim(text)]; ok {
		return c, nil
	}
	return "", &CategoryNotFoundError{Text: text}
}

// CategoryFromSpanish resolves the Spanish alias of a category.
func CategoryFromSpanish(text string) (Category, error) {
	if c, ok := spanishAliases[lowerTrim(text)]; ok {
		return c, nil
	}
	return "", &CategoryNotFoundError{Text: text}
}

// ParseCategory resolves stored/canonical category values (the Category
// constants themselves), used when reading rows back from the database.
func ParseCategory(text string) (Category, error) {
	switch Category(lowerTrim(text)) {
	case CategoryAction, CategoryRomance, CategoryComedy, CategoryDrama, CategoryCrime:
		return Category(lowerTrim(text)), nil
	}
	return "", &CategoryNotFoundError{Text: text}
}

func (c Category) String() string { return string(c) }

// PrimaryAlias is the OMDb spelling of the category.
func (c Category) PrimaryAlias() string {
	switch c {
	case CategoryAction:
		return "Action"
	case CategoryRomance:
		return "Romance"
	case CategoryComedy:
		return "Comedy"
	case CategoryDrama:
		return "Drama"
	case CategoryCrime:
		return "Crime"
	}
	return string(c)
}

// SpanishAlias is the localized spelling of the category.
func (c Category) SpanishAlias() string {
	switch c {
	case CategoryAction:
		return "Acción"
	case CategoryRomance:
		return "Romance"
	case CategoryComedy:
		return "Comedia"
	case CategoryDrama:
		return "Drama"
	case CategoryCrime:
		return "Crimen"
	}
	return string(c)
}

// Categories lists every known value in declaration order.
func Categories() []Category {
	return []Category{CategoryAction, CategoryRomance, CategoryComedy, CategoryDrama, CategoryCrime}
}

func lowerTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
