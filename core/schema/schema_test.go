package schema

import (
	"errors"
	"testing"

	"crm-sync/core/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMidnightMillis(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		valid bool
	}{
		{"Padded", "2024/03/05", "1709596800000", true},
		{"Unpadded", "2024/3/5", "1709596800000", true},
		{"Epoch", "1970/01/01", "0", true},
		{"InvalidMonthDay", "2024/13/40", "", false},
		{"WrongSeparator", "2024-03-05", "", false},
		{"DateTime", "2024/03/05 10:00:00", "", false},
		{"Empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MidnightMillis(tt.in)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExactMillis(t *testing.T) {
	loc := SourceZone(9)

	got, ok := ExactMillis("2024/03/05 09:00:00", loc)
	assert.True(t, ok)
	assert.Equal(t, "1709596800000", got)

	got, ok = ExactMillis("2024/03/05 08:30:15", loc)
	assert.True(t, ok)
	assert.Equal(t, "1709595015000", got, "crosses back into the previous UTC hour")

	got, ok = ExactMillis("2024/03/05", loc)
	assert.False(t, ok)
	assert.Equal(t, "", got)

	got, ok = ExactMillis("2024/03/05 09:00:00", SourceZone(0))
	assert.True(t, ok)
	assert.Equal(t, "1709629200000", got)
}

func TestSubstitute(t *testing.T) {
	labels := map[string]string{"実績": "79111068"}
	assert.Equal(t, "79111068", Substitute(labels, "実績"))
	assert.Equal(t, "新規", Substitute(labels, "新規"), "unknown labels pass through")
	assert.Equal(t, "", Substitute(labels, ""))
}

func testMapping() Mapping {
	return Mapping{
		Name: "test",
		Fields: []Field{
			One("stage", "dealstage"),
			One("close", "closedate"),
			One("touched", "modified_at"),
			Many("price", "hs_price_jpy", "list_price"),
			One("name", "dealname"),
		},
		Transforms: map[string]Transform{
			"closedate":   TransformMidnight,
			"modified_at": TransformExact,
		},
		Labels: map[string]map[string]string{
			"dealstage": {"FAX受注 (実績)": "149884283"},
		},
	}
}

func TestTranslator_Translate(t *testing.T) {
	h := record.NewHeader([]string{"stage", "close", "touched", "price", "name", "ignored"})
	row := record.NewRow(h, []string{"FAX受注 (実績)", "2024/03/05", "2024/03/05 09:00:00", "1200", "Acme", "zzz"}, 2)

	var invalid []InvalidValue
	tr := NewTranslator(WithInvalidValueHandler(func(v InvalidValue) { invalid = append(invalid, v) }))
	props := tr.Translate(row, testMapping())

	assert.Equal(t, map[string]string{
		"dealstage":    "149884283",
		"closedate":    "1709596800000",
		"modified_at":  "1709596800000",
		"hs_price_jpy": "1200",
		"list_price":   "1200",
		"dealname":     "Acme",
	}, props)
	assert.Empty(t, invalid)
}

func TestTranslator_LenientTransforms(t *testing.T) {
	h := record.NewHeader([]string{"stage", "close", "touched", "price", "name"})
	row := record.NewRow(h, []string{"新ステージ", "2024/13/40", "", "", "Acme"}, 7)

	var invalid []InvalidValue
	tr := NewTranslator(WithInvalidValueHandler(func(v InvalidValue) { invalid = append(invalid, v) }))
	props := tr.Translate(row, testMapping())

	assert.Equal(t, "新ステージ", props["dealstage"])
	assert.Equal(t, "", props["closedate"])
	assert.Equal(t, "", props["modified_at"])
	assert.Contains(t, props, "hs_price_jpy", "every declared target is present")
	assert.Len(t, props, 6)

	require.Len(t, invalid, 1, "blank cells are not reported")
	assert.Equal(t, InvalidValue{Line: 7, Source: "close", Target: "closedate", Value: "2024/13/40", Transform: TransformMidnight}, invalid[0])
}

func TestTranslator_TranslateAllIsLazy(t *testing.T) {
	h := record.NewHeader([]string{"stage", "close", "touched", "price", "name"})
	rows := []record.Row{
		record.NewRow(h, []string{"", "", "", "", "a"}, 2),
		record.NewRow(h, []string{"", "", "", "", "b"}, 3),
		record.NewRow(h, []string{"", "", "", "", "c"}, 4),
	}

	var names []string
	for i, props := range NewTranslator().TranslateAll(rows, testMapping()) {
		names = append(names, props["dealname"])
		if i == 1 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestMapping_Validate(t *testing.T) {
	m := testMapping()

	assert.NoError(t, m.Validate(record.NewHeader([]string{"stage", "close", "touched", "price", "name"})))

	err := m.Validate(record.NewHeader([]string{"stage", "name"}))
	var mce *record.MissingColumnsError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, []string{"close", "touched", "price"}, mce.Columns)
}

func TestMapping_WithLabels(t *testing.T) {
	m := testMapping()
	extended := m.WithLabels("dealstage", map[string]string{"新ステージ": "1", "FAX受注 (実績)": "2"})

	assert.Equal(t, "149884283", m.Labels["dealstage"]["FAX受注 (実績)"], "original table untouched")
	assert.Equal(t, "2", extended.Labels["dealstage"]["FAX受注 (実績)"])
	assert.Equal(t, "1", extended.Labels["dealstage"]["新ステージ"])

	assert.Equal(t, []string{"dealstage", "closedate", "modified_at", "hs_price_jpy", "list_price", "dealname"}, m.Targets())
}
