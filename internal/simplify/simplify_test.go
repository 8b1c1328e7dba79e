package simplify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinushey/jsonlite/internal/parser"
	"github.com/kevinushey/jsonlite/internal/wire"
	"github.com/kevinushey/jsonlite/value"
)

func decode(t *testing.T, src string, opts Options) value.Value {
	t.Helper()
	tree, err := parser.Parse([]byte(src), 0)
	require.NoError(t, err)
	return Simplify(tree, opts)
}

func allOn() Options {
	return Options{Vector: true, DataFrame: true, Matrix: true}
}

func TestSequencePromotion(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		want *value.Sequence
	}{
		{
			"Strings", `["a", "b", null, "c"]`,
			&value.Sequence{Kind: value.KindString, Elems: []value.Value{
				value.Str("a"), value.Str("b"), value.NA(), value.Str("c"),
			}},
		},
		{"Bools", `[true, false]`, value.Bools(true, false)},
		{"Ints", `[1, 2, 3]`, value.Ints(1, 2, 3)},
		{"IntAndDouble", `[1, 2.5]`, value.Doubles(1, 2.5)},
		{"BoolPromotesToInt", `[true, 1]`, value.Ints(1, 1)},
		{"BoolPromotesToDouble", `[true, 2.5]`, value.Doubles(1, 2.5)},
		{"NumberPromotesToString", `[1, "a"]`, value.Strings("1", "a")},
		{"BoolPromotesToString", `[true, "x"]`, value.Strings("true", "x")},
		{"NumberTextVerbatim", `[1.50, "a"]`, value.Strings("1.50", "a")},
		{"AllNull", `[null, null]`, value.NAs(value.KindBool, 2)},
		{
			"NullBecomesNA", `[1, null, 3]`,
			&value.Sequence{Kind: value.KindInt, Elems: []value.Value{
				value.Int(1), value.NA(), value.Int(3),
			}},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, decode(t, tc.src, allOn()))
		})
	}
}

func TestScalarRoots(t *testing.T) {
	assert.Equal(t, value.Int(42), decode(t, `42`, allOn()))
	assert.Equal(t, value.Double(0.5), decode(t, `0.5`, allOn()))
	assert.Equal(t, value.Str("x"), decode(t, `"x"`, allOn()))
	assert.Equal(t, value.Bool(true), decode(t, `true`, allOn()))
	assert.Equal(t, value.Null{}, decode(t, `null`, allOn()))
}

func TestVectorDisabled(t *testing.T) {
	got := decode(t, `["a", "b"]`, Options{})
	want := &value.List{Entries: []value.Entry{
		{Value: value.Str("a")}, {Value: value.Str("b")},
	}}
	assert.Equal(t, want, got)
}

func TestEmptyArray(t *testing.T) {
	assert.Equal(t, &value.List{}, decode(t, `[]`, allOn()))
	assert.Equal(t, &value.List{}, decode(t, `[]`, Options{}))
}

func TestObjectIsNamedList(t *testing.T) {
	got := decode(t, `{"b": 1, "a": null}`, allOn())
	want := &value.List{Entries: []value.Entry{
		{Name: "b", Value: value.Int(1)},
		{Name: "a", Value: value.Null{}},
	}}
	assert.Equal(t, want, got)
}

func TestObjectKeepsDuplicateKeys(t *testing.T) {
	got := decode(t, `{"a": 1, "a": [true]}`, Options{})
	want := &value.List{Entries: []value.Entry{
		{Name: "a", Value: value.Int(1)},
		{Name: "a", Value: &value.List{Entries: []value.Entry{{Value: value.Bool(true)}}}},
	}}
	assert.Equal(t, want, got)
}

func TestMixedArrayFallsBack(t *testing.T) {
	got := decode(t, `[1, [2]]`, allOn())
	want := &value.List{Entries: []value.Entry{
		{Value: value.Int(1)},
		{Value: value.Ints(2)},
	}}
	assert.Equal(t, want, got)
}

func TestTablePromotion(t *testing.T) {
	src := `[
		{"Name": "Mario", "Age": 32, "Occupation": "Plumber"},
		{"Name": "Peach", "Age": 21, "Occupation": "Princess"},
		{},
		{"Name": "Bowser", "Occupation": "Koopa"}
	]`
	got, ok := decode(t, src, allOn()).(*value.Table)
	require.True(t, ok, "array of records promotes to a table")
	assert.Equal(t, 4, got.Rows())

	cols := got.Cols()
	require.Len(t, cols, 3)
	assert.Equal(t, "Name", cols[0].Name)
	assert.Equal(t, "Age", cols[1].Name)
	assert.Equal(t, "Occupation", cols[2].Name)

	assert.Equal(t, &value.Sequence{Kind: value.KindString, Elems: []value.Value{
		value.Str("Mario"), value.Str("Peach"), value.NA(), value.Str("Bowser"),
	}}, cols[0].Value)
	assert.Equal(t, &value.Sequence{Kind: value.KindInt, Elems: []value.Value{
		value.Int(32), value.Int(21), value.NA(), value.NA(),
	}}, cols[1].Value)
}

func TestTableDisabled(t *testing.T) {
	got := decode(t, `[{"a": 1}, {"a": 2}]`, Options{Vector: true})
	lst, ok := got.(*value.List)
	require.True(t, ok)
	require.Equal(t, 2, lst.Len())
	_, ok = lst.Entries[0].Value.(*value.List)
	assert.True(t, ok, "records stay named lists without table promotion")
}

func TestTableKeyUnionOrder(t *testing.T) {
	got, ok := decode(t, `[{"c": 1, "a": 2}, {"b": 3, "a": 4}]`, allOn()).(*value.Table)
	require.True(t, ok)

	var names []string
	for _, c := range got.Cols() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)

	b, _ := got.Col("b")
	assert.Equal(t, &value.Sequence{Kind: value.KindInt, Elems: []value.Value{
		value.NA(), value.Int(3),
	}}, b.Value)
}

func TestEmptyRecordsKeepRows(t *testing.T) {
	got, ok := decode(t, `[{}, {}]`, allOn()).(*value.Table)
	require.True(t, ok, "records without fields still promote to a table")
	assert.Equal(t, 2, got.Rows())
	assert.Empty(t, got.Cols())
}

func TestEmptyRecordColumnKeepsRows(t *testing.T) {
	got, ok := decode(t, `[{"a": {}}, {"a": {}}]`, allOn()).(*value.Table)
	require.True(t, ok)
	require.Equal(t, 2, got.Rows())

	a, _ := got.Col("a")
	nested, ok := a.Value.(*value.Table)
	require.True(t, ok)
	assert.Equal(t, 2, nested.Rows(), "column-less nested tables keep the outer row count")
	assert.Empty(t, nested.Cols())
}

func TestEmptyRecordColumnBesideScalars(t *testing.T) {
	got, ok := decode(t, `[{"a": {}, "b": 1}, {"a": {}, "b": 2}]`, allOn()).(*value.Table)
	require.True(t, ok, "an all-empty record column must not break table promotion")

	b, _ := got.Col("b")
	assert.Equal(t, value.Ints(1, 2), b.Value)
}

func TestNestedTableColumn(t *testing.T) {
	src := `[
		{"driver": {"name": "Bowser", "occupation": "Koopa"}, "vehicle": "Kart"},
		{"driver": {"name": "Peach", "occupation": "Princess"}, "vehicle": "Bike"}
	]`
	got, ok := decode(t, src, allOn()).(*value.Table)
	require.True(t, ok)

	driver, found := got.Col("driver")
	require.True(t, found)
	nested, ok := driver.Value.(*value.Table)
	require.True(t, ok, "record-valued fields become nested table columns")
	assert.Equal(t, 2, nested.Rows())

	name, _ := nested.Col("name")
	assert.Equal(t, value.Strings("Bowser", "Peach"), name.Value)
}

func TestNestedTableAbsentRow(t *testing.T) {
	got, ok := decode(t, `[{"a": {"x": 1}}, {}]`, allOn()).(*value.Table)
	require.True(t, ok)

	a, _ := got.Col("a")
	nested, ok := a.Value.(*value.Table)
	require.True(t, ok)
	require.Equal(t, 2, nested.Rows(), "missing records keep the outer row count")

	x, _ := nested.Col("x")
	assert.Equal(t, &value.Sequence{Kind: value.KindInt, Elems: []value.Value{
		value.Int(1), value.NA(),
	}}, x.Value)
}

func TestListColumn(t *testing.T) {
	got, ok := decode(t, `[{"a": [1, 2]}, {"a": 3}, {}]`, allOn()).(*value.Table)
	require.True(t, ok)

	a, _ := got.Col("a")
	lst, ok := a.Value.(*value.List)
	require.True(t, ok, "mixed cell shapes fall back to a list column")
	require.Equal(t, 3, lst.Len())
	assert.Equal(t, value.Ints(1, 2), lst.Entries[0].Value)
	assert.Equal(t, value.Int(3), lst.Entries[1].Value)
	assert.Equal(t, value.Null{}, lst.Entries[2].Value, "absent cells are null in list columns")
}

func TestMatrixPromotion(t *testing.T) {
	got, ok := decode(t, `[[1, 2, 3, 4], [5, 6, 7, 8], [9, 10, 11, 12]]`, allOn()).(*value.Array)
	require.True(t, ok, "uniform nesting promotes to a dimensioned array")
	assert.Equal(t, []int{3, 4}, got.Dims())
	assert.Equal(t, value.Ints(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12), got.Seq())
}

func TestMatrixKindPromotion(t *testing.T) {
	got, ok := decode(t, `[[1, 2], [3, "a"]]`, allOn()).(*value.Array)
	require.True(t, ok)
	assert.Equal(t, []int{2, 2}, got.Dims())
	assert.Equal(t, value.Strings("1", "2", "3", "a"), got.Seq())
}

func TestMatrixWithNulls(t *testing.T) {
	got, ok := decode(t, `[[1, null], [3, 4]]`, allOn()).(*value.Array)
	require.True(t, ok)
	assert.Equal(t, &value.Sequence{Kind: value.KindInt, Elems: []value.Value{
		value.Int(1), value.NA(), value.Int(3), value.Int(4),
	}}, got.Seq())
}

func TestRankThreeArray(t *testing.T) {
	src := `[[[1, 2], [3, 4]], [[5, 6], [7, 8]], [[9, 10], [11, 12]]]`
	got, ok := decode(t, src, allOn()).(*value.Array)
	require.True(t, ok)
	assert.Equal(t, []int{3, 2, 2}, got.Dims())
	assert.Equal(t, value.Ints(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12), got.Seq())
}

func TestRaggedFallsBack(t *testing.T) {
	got, ok := decode(t, `[[1, 2], [3, 4, 5]]`, allOn()).(*value.List)
	require.True(t, ok, "ragged lengths fall back to a list of sequences")
	require.Equal(t, 2, got.Len())
	assert.Equal(t, value.Ints(1, 2), got.Entries[0].Value)
	assert.Equal(t, value.Ints(3, 4, 5), got.Entries[1].Value)
}

func TestDivergentDepthFallsBack(t *testing.T) {
	got, ok := decode(t, `[[1, [2]], [3, 4]]`, allOn()).(*value.List)
	require.True(t, ok)
	assert.Equal(t, value.Ints(3, 4), got.Entries[1].Value)
}

func TestEmptyInnerArraysFallBack(t *testing.T) {
	got, ok := decode(t, `[[], []]`, allOn()).(*value.List)
	require.True(t, ok)
	assert.Equal(t, &value.List{}, got.Entries[0].Value)
}

func TestMatrixDisabled(t *testing.T) {
	opts := allOn()
	opts.Matrix = false
	got, ok := decode(t, `[[1, 2], [3, 4]]`, opts).(*value.List)
	require.True(t, ok)
	assert.Equal(t, value.Ints(1, 2), got.Entries[0].Value)
}

func TestKeyCase(t *testing.T) {
	camel := decode(t, `{"user_name": 1, "UserAge": 2}`, Options{KeyCase: "camel"}).(*value.List)
	assert.Equal(t, "userName", camel.Entries[0].Name)
	assert.Equal(t, "userAge", camel.Entries[1].Name)

	snake := decode(t, `{"userName": 1}`, Options{KeyCase: "snake"}).(*value.List)
	assert.Equal(t, "user_name", snake.Entries[0].Name)

	kebab := decode(t, `{"userName": 1}`, Options{KeyCase: "kebab"}).(*value.List)
	assert.Equal(t, "user-name", kebab.Entries[0].Name)
}

func TestKeyCaseRenamesColumns(t *testing.T) {
	opts := allOn()
	opts.KeyCase = "camel"
	got, ok := decode(t, `[{"first_name": "a"}, {"first_name": "b"}]`, opts).(*value.Table)
	require.True(t, ok)
	assert.Equal(t, "firstName", got.Cols()[0].Name)
}

func TestFlattenOption(t *testing.T) {
	src := `[
		{"driver": {"name": "Bowser", "age": 34}, "vehicle": "Kart"},
		{"driver": {"name": "Peach", "age": 21}, "vehicle": "Bike"}
	]`
	opts := allOn()
	opts.Flatten = true
	got, ok := decode(t, src, opts).(*value.Table)
	require.True(t, ok)

	var names []string
	for _, c := range got.Cols() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"driver.name", "driver.age", "vehicle"}, names)
	assert.Equal(t, 2, got.Rows())
}

func TestFlattenRecursesNestedLevels(t *testing.T) {
	inner, err := value.NewTable(value.Col("z", value.Ints(1, 2)))
	require.NoError(t, err)
	mid, err := value.NewTable(value.Col("y", inner), value.Col("w", value.Ints(3, 4)))
	require.NoError(t, err)
	outer, err := value.NewTable(value.Col("x", mid), value.Col("v", value.Strings("a", "b")))
	require.NoError(t, err)

	flat := Flatten(outer)
	var names []string
	for _, c := range flat.Cols() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"x.y.z", "x.w", "v"}, names)
	assert.Equal(t, 2, flat.Rows())
}

func TestUnifyKeys(t *testing.T) {
	records := []*wire.Value{
		wire.Object(
			wire.Member{Key: "c", Value: wire.Number("1")},
			wire.Member{Key: "a", Value: wire.Number("2")},
		),
		wire.Object(
			wire.Member{Key: "b", Value: wire.Number("3")},
			wire.Member{Key: "a", Value: wire.Number("4")},
		),
	}
	assert.Equal(t, []string{"c", "a", "b"}, unifyKeys(records))
}
