package schema

import (
	"iter"
	"time"

	"crm-sync/core/record"
)

// InvalidValue describes a cell a transform could not convert.
type InvalidValue struct {
	Line      int
	Source    string
	Target    string
	Value     string
	Transform Transform
}

// Translator converts rows into property maps.
type Translator struct {
	loc       *time.Location
	onInvalid func(InvalidValue)
}

// Option configures a Translator.
type Option func(*Translator)

// WithOffsetHours sets the offset used by TransformExact.
func WithOffsetHours(hours int) Option {
	return func(t *Translator) {
		t.loc = SourceZone(hours)
	}
}

// WithInvalidValueHandler registers a callback for values that fail to transform.
func WithInvalidValueHandler(fn func(InvalidValue)) Option {
	return func(t *Translator) {
		t.onInvalid = fn
	}
}

// NewTranslator creates a translator using the export's default offset.
func NewTranslator(opts ...Option) *Translator {
	t := &Translator{loc: SourceZone(DefaultOffsetHours)}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate builds the property map for one row.
// Every target of the mapping is present in the result.
func (t *Translator) Translate(row record.Row, m Mapping) map[string]string {
	props := make(map[string]string, len(m.Fields))
	for _, f := range m.Fields {
		raw := row.Value(f.Source)
		for _, target := range f.Targets {
			props[target] = t.convert(row.Line, f.Source, target, raw, m)
		}
	}
	return props
}

// TranslateAll lazily yields the property map of each row with its index.
func (t *Translator) TranslateAll(rows []record.Row, m Mapping) iter.Seq2[int, map[string]string] {
	return func(yield func(int, map[string]string) bool) {
		for i, row := range rows {
			if !yield(i, t.Translate(row, m)) {
				return
			}
		}
	}
}

func (t *Translator) convert(line int, source, target, raw string, m Mapping) string {
	if labels, ok := m.Labels[target]; ok {
		return Substitute(labels, raw)
	}

	tr := m.Transforms[target]
	var (
		out string
		ok  bool
	)
	switch tr {
	case TransformMidnight:
		out, ok = MidnightMillis(raw)
	case TransformExact:
		out, ok = ExactMillis(raw, t.loc)
	default:
		return raw
	}

	// blank cells are absent values, not malformed ones
	if !ok && raw != "" && t.onInvalid != nil {
		t.onInvalid(InvalidValue{Line: line, Source: source, Target: target, Value: raw, Transform: tr})
	}
	return out
}
