package collections

import "sort"

// MultiMap associates a case-sensitive key with an ordered set of values.
// Re-inserting a key appends to its value set instead of replacing it.
type MultiMap struct {
	entries map[string]*OrderedStringSet
}

// NewMultiMap constructs an empty index.
func NewMultiMap() *MultiMap {
	return &MultiMap{entries: make(map[string]*OrderedStringSet)}
}

// Add appends value to the set stored under key.
func (index *MultiMap) Add(key string, value string) bool {
	if len(key) == 0 {
		return false
	}
	return index.valuesFor(key).Add(value)
}

// AddUnique appends value under key unless the pair is already recorded.
func (index *MultiMap) AddUnique(key string, value string) bool {
	if len(key) == 0 {
		return false
	}
	return index.valuesFor(key).AddUnique(value)
}

func (index *MultiMap) valuesFor(key string) *OrderedStringSet {
	values, exists := index.entries[key]
	if !exists {
		values = NewOrderedStringSet()
		index.entries[key] = values
	}
	return values
}

// Contains reports whether key holds at least one value.
func (index *MultiMap) Contains(key string) bool {
	if index == nil {
		return false
	}
	values, exists := index.entries[key]
	return exists && values.Len() > 0
}

// Values returns a copy of the values recorded under key in insertion order.
func (index *MultiMap) Values(key string) ([]string, bool) {
	if !index.Contains(key) {
		return nil, false
	}
	return index.entries[key].Values(), true
}

// Keys returns every key holding values. The order carries no meaning; it is sorted for reproducibility.
func (index *MultiMap) Keys() []string {
	if index == nil {
		return nil
	}
	keys := make([]string, 0, len(index.entries))
	for key, values := range index.entries {
		if values.Len() == 0 {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of keys holding values.
func (index *MultiMap) Len() int {
	keyCount := 0
	for _, values := range index.entries {
		if values.Len() > 0 {
			keyCount++
		}
	}
	return keyCount
}
