package netmih

// categoryTable holds the ordered, distinct set of category labels known to
// an Index. A label's position in insertion order is its stable id — ids
// are never reassigned, and re-adding an existing label is a no-op.
type categoryTable struct {
	labels []string
	ids    map[string]int
}

func newCategoryTable() *categoryTable {
	return &categoryTable{ids: make(map[string]int)}
}

// idFor returns the id of label, appending it to the table (assigning the
// next id) if it has not been seen before.
func (t *categoryTable) idFor(label string) int {
	if id, ok := t.ids[label]; ok {
		return id
	}
	id := len(t.labels)
	t.labels = append(t.labels, label)
	t.ids[label] = id
	return id
}

// label returns the label for id, or "" and false if id is out of range.
func (t *categoryTable) label(id int) (string, bool) {
	if id < 0 || id >= len(t.labels) {
		return "", false
	}
	return t.labels[id], true
}

// list returns the labels for the given ids, in the order the ids are
// given. A nil filter returns every known label in insertion order.
func (t *categoryTable) list(filter []int) []string {
	if filter == nil {
		out := make([]string, len(t.labels))
		copy(out, t.labels)
		return out
	}
	out := make([]string, 0, len(filter))
	for _, id := range filter {
		if label, ok := t.label(id); ok {
			out = append(out, label)
		}
	}
	return out
}
