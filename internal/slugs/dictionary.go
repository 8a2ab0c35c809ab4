// Package slugs hands out collision-free slugs within a caller-owned scope.
//
// Each import unit (a question set, a tournament's team or player namespace)
// owns its own Dictionary, so the same base slug can resolve differently in
// different scopes. Dictionaries are in-memory only and are discarded when
// the unit finishes.
package slugs

import "strconv"

// Dictionary tracks how many times each base slug has been assigned.
type Dictionary map[string]int

// NewDictionary returns an empty slug scope.
func NewDictionary() Dictionary {
	return make(Dictionary)
}

// Assign returns base unchanged on its first occurrence. Every later
// occurrence gets an ordinal suffix: base, base-2, base-3, ...
func (d Dictionary) Assign(base string) string {
	if count, ok := d[base]; ok {
		d[base] = count + 1
		return base + "-" + strconv.Itoa(count+1)
	}
	d[base] = 1
	return base
}
