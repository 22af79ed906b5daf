package spawn

// Templates maps series labels to the template each series spawns.
type Templates struct {
	byLabel  map[string]string
	fallback string
}

// NewTemplates copies m. fallback is used for unmapped labels; leave it empty
// to skip those series.
func NewTemplates(m map[string]string, fallback string) Templates {
	t := Templates{byLabel: make(map[string]string, len(m)), fallback: fallback}
	for k, v := range m {
		t.byLabel[k] = v
	}
	return t
}

// Resolve returns the template for label, or false when nothing resolves.
func (t Templates) Resolve(label string) (string, bool) {
	if name, ok := t.byLabel[label]; ok && name != "" {
		return name, true
	}
	if t.fallback != "" {
		return t.fallback, true
	}
	return "", false
}
