// Package catalog holds the fixed lookup tables shared by the API and the
// uploader: funding sources, grant types, document categories and fiscal
// years. The database lookups are seeded with exactly these values and the
// API refuses to start when they disagree.
package catalog

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Funding sources. Values must equal the rows of the sources table.
const (
	SourceFederal    = "Federal Government"
	SourceProvincial = "Provincial Government"
	SourceLocal      = "Local Municipality"
	SourceOther      = "Other"
)

// Grant types. Values must equal the rows of the grant_types table.
const (
	GrantCurrent       = "Current Expenditure"
	GrantCapital       = "Capital Expenditure"
	GrantSupplementary = "Supplementary Grant"
	GrantSpecial       = "Special Grant"
	GrantOther         = "Other Grant"
)

// Sources lists funding sources in display order.
var Sources = []string{SourceFederal, SourceProvincial, SourceLocal, SourceOther}

// GrantTypes lists grant types in display order.
var GrantTypes = []string{GrantCurrent, GrantCapital, GrantSupplementary, GrantSpecial, GrantOther}

// IsSource reports whether name is a known funding source.
func IsSource(name string) bool { return contains(Sources, name) }

// IsGrantType reports whether name is a known grant type.
func IsGrantType(name string) bool { return contains(GrantTypes, name) }

// Category is one of the four document buckets a draft can attach files to.
type Category int

const (
	CategoryA4 Category = iota
	CategoryNepali
	CategoryExtra
	CategoryOther

	NumCategories = 4
)

type categoryInfo struct {
	field  string
	label  string
	accept []string
}

// accept lists are the picker filters; an empty list accepts anything.
var categories = [NumCategories]categoryInfo{
	CategoryA4:     {field: "a4Files", label: "A4 Documents", accept: []string{".pdf"}},
	CategoryNepali: {field: "nepaliFiles", label: "Nepali Documents", accept: []string{".pdf", ".doc", ".docx"}},
	CategoryExtra:  {field: "extraFiles", label: "Extra Documents", accept: []string{".pdf", ".xls", ".xlsx", ".csv"}},
	CategoryOther:  {field: "otherFiles", label: "Other Documents"},
}

// Categories returns all categories in form order.
func Categories() []Category {
	return []Category{CategoryA4, CategoryNepali, CategoryExtra, CategoryOther}
}

// Valid reports whether c is one of the four categories.
func (c Category) Valid() bool { return c >= 0 && c < NumCategories }

// Field is the multipart field name for the category, e.g. "a4Files".
func (c Category) Field() string {
	if !c.Valid() {
		return ""
	}
	return categories[c].field
}

// Label is the human title of the category.
func (c Category) Label() string {
	if !c.Valid() {
		return ""
	}
	return categories[c].label
}

// Accept returns the picker accept list as an HTML-style attribute value.
func (c Category) Accept() string {
	if !c.Valid() {
		return ""
	}
	return strings.Join(categories[c].accept, ",")
}

// Accepts reports whether filename passes the category's extension filter.
func (c Category) Accepts(filename string) bool {
	if !c.Valid() {
		return false
	}
	list := categories[c].accept
	if len(list) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(filename))
	return contains(list, ext)
}

func (c Category) String() string { return c.Field() }

// CategoryByField resolves a multipart field name to its category.
func CategoryByField(field string) (Category, bool) {
	for _, c := range Categories() {
		if categories[c].field == field {
			return c, true
		}
	}
	return -1, false
}

// Validate checks the tables for blanks and duplicates. It runs at init.
func Validate() error {
	if err := distinct("source", Sources); err != nil {
		return err
	}
	if err := distinct("grant type", GrantTypes); err != nil {
		return err
	}
	fields := make([]string, 0, NumCategories)
	for _, c := range Categories() {
		fields = append(fields, c.Field())
	}
	if err := distinct("category field", fields); err != nil {
		return err
	}
	ids := make([]string, 0, len(fiscalYears))
	for _, fy := range fiscalYears {
		ids = append(ids, fy.ID)
	}
	return distinct("fiscal year", ids)
}

func init() {
	if err := Validate(); err != nil {
		panic(err)
	}
}

func distinct(kind string, values []string) error {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("catalog: blank %s", kind)
		}
		if _, ok := seen[v]; ok {
			return fmt.Errorf("catalog: duplicate %s %q", kind, v)
		}
		seen[v] = struct{}{}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
