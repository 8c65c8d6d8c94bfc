package models

import "strings"

// Category is an exam vehicle-class grouping
type Category string

const (
	CategoryAB Category = "A,B"
	CategoryCD Category = "C,D"
)

// Categories returns every known category in display order
func Categories() []Category {
	return []Category{CategoryAB, CategoryCD}
}

// Folder returns the asset folder name backing the category
func (c Category) Folder() string {
	switch c {
	case CategoryAB:
		return "A_B"
	case CategoryCD:
		return "C_D"
	}
	return ""
}

// IsValid returns true if the category is one of the known values
func (c Category) IsValid() bool {
	return c.Folder() != ""
}

// ParseCategory accepts a raw value ("A,B"), a folder name ("A_B")
// or the compact form ("ab") and returns the matching category
func ParseCategory(s string) (Category, bool) {
	key := strings.ToUpper(strings.TrimSpace(s))
	for _, c := range Categories() {
		compact := strings.ReplaceAll(string(c), ",", "")
		if key == string(c) || key == c.Folder() || key == compact {
			return c, true
		}
	}
	return "", false
}
