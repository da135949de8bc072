package schema

import (
	"maps"

	"crm-sync/core/record"
)

// Field copies one source column into one or more target properties.
type Field struct {
	Source  string
	Targets []string
}

// One maps a source column to a single property.
func One(source, target string) Field {
	return Field{Source: source, Targets: []string{target}}
}

// Many fans a source column out to several properties.
func Many(source string, targets ...string) Field {
	return Field{Source: source, Targets: targets}
}

// Mapping is the fixed translation table of one entity kind.
type Mapping struct {
	// Name identifies the mapping in configuration errors.
	Name   string
	Fields []Field

	// Transforms registers timestamp conversions by target property.
	Transforms map[string]Transform

	// Labels registers label substitution tables by target property.
	Labels map[string]map[string]string
}

// Sources returns the source columns in declaration order.
func (m Mapping) Sources() []string {
	out := make([]string, 0, len(m.Fields))
	for _, f := range m.Fields {
		out = append(out, f.Source)
	}
	return out
}

// Targets returns every target property in declaration order.
func (m Mapping) Targets() []string {
	var out []string
	for _, f := range m.Fields {
		out = append(out, f.Targets...)
	}
	return out
}

// Validate checks that every source column exists in the header.
func (m Mapping) Validate(h *record.Header) error {
	return record.Require(h, m.Name+" mapping", m.Sources())
}

// WithLabels returns a copy whose label table for target is extended by labels.
// Entries in labels win over the built-in ones.
func (m Mapping) WithLabels(target string, labels map[string]string) Mapping {
	if len(labels) == 0 {
		return m
	}
	out := m
	out.Labels = make(map[string]map[string]string, len(m.Labels)+1)
	for k, v := range m.Labels {
		out.Labels[k] = v
	}
	merged := maps.Clone(m.Labels[target])
	if merged == nil {
		merged = make(map[string]string, len(labels))
	}
	maps.Copy(merged, labels)
	out.Labels[target] = merged
	return out
}
