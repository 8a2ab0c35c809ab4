package metadata

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed subcat_to_cat.json
var canonicalTableJSON []byte

// Table maps canonical subcategory names to their parent category.
type Table map[string]string

// DefaultTable returns the embedded canonical subcategory table.
func DefaultTable() Table {
	var table Table
	if err := json.Unmarshal(canonicalTableJSON, &table); err != nil {
		// The embedded table is fixed at build time.
		panic(fmt.Sprintf("metadata: embedded category table invalid: %v", err))
	}
	return table
}

// LoadTable reads a subcategory table from a JSON file, for sources whose
// taxonomy differs from the embedded canon.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read category table: %w", err)
	}
	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse category table: %w", err)
	}
	return table, nil
}

// Category resolves a subcategory to its parent category, falling back to
// the subcategory itself when it is not in the table.
func (t Table) Category(subcategory string) string {
	if category, ok := t[subcategory]; ok {
		return category
	}
	return subcategory
}
