package introspect

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gadget struct {
	Label     string
	Count     int
	Tags      []string
	Payload   any
	Transform func(int) int
	serial    string
}

func (g gadget) Describe() string { return g.Label }

func (g *gadget) Reset() { g.Count = 0 }

func newGadget() *gadget {
	return &gadget{
		Label:     "test",
		Count:     3,
		Tags:      []string{"a"},
		Payload:   42,
		Transform: func(i int) int { return i },
		serial:    "x-1",
	}
}

func reportNames(r *Report) []string {
	names := make([]string, 0)
	for _, a := range r.DataAttributes {
		names = append(names, a.Name)
	}
	for _, bucket := range r.Methods {
		names = append(names, bucket...)
	}
	sort.Strings(names)
	return names
}

func TestClassifyStruct(t *testing.T) {
	r, err := ClassifyValue(newGadget())
	require.NoError(t, err)
	require.NotNil(t, r)

	assert.Equal(t, []string{"Describe", "Reset"}, r.Methods[BindingInstance])
	assert.Equal(t, []string{"Transform"}, r.Methods[BindingStatic])
	assert.Empty(t, r.Methods[BindingClass])

	want := []Attribute{
		{Name: "Count", TypeLabel: "int"},
		{Name: "Label", TypeLabel: "string"},
		{Name: "Payload", TypeLabel: "int"},
		{Name: "Tags", TypeLabel: "[]string"},
		{Name: "serial", TypeLabel: Inaccessible},
	}
	assert.Equal(t, want, r.DataAttributes)
}

func TestClassifyPartition(t *testing.T) {
	r, err := ClassifyValue(newGadget())
	require.NoError(t, err)

	// every member in exactly one category
	want := []string{"Count", "Describe", "Label", "Payload", "Reset", "Tags", "Transform", "serial"}
	assert.Equal(t, want, reportNames(r))

	attrNames := map[string]bool{}
	for _, a := range r.DataAttributes {
		attrNames[a.Name] = true
	}
	for _, bucket := range r.Methods {
		for _, n := range bucket {
			assert.False(t, attrNames[n], "member %s classified twice", n)
		}
	}
}

func TestClassifyValueMethodSet(t *testing.T) {
	// value subject: only the value-receiver method is visible
	r, err := ClassifyValue(gadget{Label: "v"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Describe"}, r.Methods[BindingInstance])
}

type base struct {
	ID int
}

type derived struct {
	base
	Name string
}

func TestClassifyPromotedFields(t *testing.T) {
	r, err := ClassifyValue(derived{base: base{ID: 7}, Name: "d"})
	require.NoError(t, err)

	want := []Attribute{
		{Name: "ID", TypeLabel: "int"},
		{Name: "Name", TypeLabel: "string"},
	}
	assert.Equal(t, want, r.DataAttributes)
}

func TestClassifyMap(t *testing.T) {
	doc := map[string]any{
		"zeta":     true,
		"alpha":    "one",
		"count":    2,
		"ratio":    0.5,
		"callback": func() {},
		"__hook":   "hidden",
	}

	r, err := ClassifyValue(doc)
	require.NoError(t, err)

	want := []Attribute{
		{Name: "alpha", TypeLabel: "string"},
		{Name: "count", TypeLabel: "int"},
		{Name: "ratio", TypeLabel: "float64"},
		{Name: "zeta", TypeLabel: "bool"},
	}
	assert.Equal(t, want, r.DataAttributes)
	assert.Equal(t, []string{"callback"}, r.Methods[BindingStatic])
}

func TestClassifyInternalNameFiltering(t *testing.T) {
	obj := NewDynamic().
		SetAttr("visible", 1).
		SetAttr("__init", "plumbing").
		SetCallable("__del", BindingInstance)

	r, err := Classify(obj)
	require.NoError(t, err)

	assert.Equal(t, []string{"visible"}, reportNames(r))
}

func TestClassifyBindingModes(t *testing.T) {
	obj := NewDynamic().
		SetCallable("greet", BindingInstance).
		SetCallable("make", BindingClass).
		SetCallable("util", BindingStatic)

	r, err := Classify(obj)
	require.NoError(t, err)

	assert.Equal(t, []string{"greet"}, r.Methods[BindingInstance])
	assert.Equal(t, []string{"make"}, r.Methods[BindingClass])
	assert.Equal(t, []string{"util"}, r.Methods[BindingStatic])
}

func TestClassifyUnknownBindingDefaultsToInstance(t *testing.T) {
	obj := NewDynamic().SetCallable("mystery", BindingMode("bogus"))

	r, err := Classify(obj)
	require.NoError(t, err)

	assert.Equal(t, []string{"mystery"}, r.Methods[BindingInstance])
}

func TestClassifyResilience(t *testing.T) {
	obj := NewDynamic().
		SetAttr("good", "value").
		SetFailing("broken", nil).
		SetCallable("work", BindingInstance)

	r, err := Classify(obj)
	require.NoError(t, err)

	want := []Attribute{
		{Name: "broken", TypeLabel: Inaccessible},
		{Name: "good", TypeLabel: "string"},
	}
	assert.Equal(t, want, r.DataAttributes)
	assert.Equal(t, []string{"work"}, r.Methods[BindingInstance])
}

func TestClassifyDeterminism(t *testing.T) {
	subject := newGadget()

	r1, err := ClassifyValue(subject)
	require.NoError(t, err)
	r2, err := ClassifyValue(subject)
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
	assert.Equal(t, Format(r1, "gadget"), Format(r2, "gadget"))
}

func TestClassifyNilObject(t *testing.T) {
	_, err := Classify(nil)
	assert.ErrorIs(t, err, ErrNotReflectable)
}

func TestNewRejectsUnsupportedSubjects(t *testing.T) {
	for _, subject := range []any{nil, 42, "str", []int{1}, map[int]string{1: "a"}, (*gadget)(nil)} {
		_, err := New(subject)
		assert.ErrorIs(t, err, ErrNotReflectable, "subject %#v", subject)
	}
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "gadget", TypeName(gadget{}))
	assert.Equal(t, "gadget", TypeName(&gadget{}))
	assert.Equal(t, "int", TypeName(7))
	assert.Equal(t, "map[string]interface {}", TypeName(map[string]any{}))
	assert.Equal(t, "nil", TypeName(nil))
}
