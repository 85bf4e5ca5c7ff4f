package collections

// OrderedStringSet is an append-only sequence of strings that preserves insertion order.
// Duplicates are permitted unless callers use AddUnique. Empty strings are never stored.
type OrderedStringSet struct {
	items []string
}

// NewOrderedStringSet constructs a set seeded with the provided values in order.
func NewOrderedStringSet(values ...string) *OrderedStringSet {
	set := &OrderedStringSet{items: make([]string, 0, len(values))}
	for _, value := range values {
		set.Add(value)
	}
	return set
}

// Add appends the value and reports whether it was stored.
func (set *OrderedStringSet) Add(value string) bool {
	if len(value) == 0 {
		return false
	}
	set.items = append(set.items, value)
	return true
}

// AddUnique appends the value only when it is not already present.
func (set *OrderedStringSet) AddUnique(value string) bool {
	if set.Contains(value) {
		return false
	}
	return set.Add(value)
}

// Contains performs a linear membership test.
func (set *OrderedStringSet) Contains(value string) bool {
	if set == nil {
		return false
	}
	for _, item := range set.items {
		if item == value {
			return true
		}
	}
	return false
}

// Len returns the number of stored values.
func (set *OrderedStringSet) Len() int {
	if set == nil {
		return 0
	}
	return len(set.items)
}

// Values returns a copy of the stored values in insertion order.
func (set *OrderedStringSet) Values() []string {
	if set == nil {
		return nil
	}
	duplicatedItems := make([]string, len(set.items))
	copy(duplicatedItems, set.items)
	return duplicatedItems
}
