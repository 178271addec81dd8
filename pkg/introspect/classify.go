package introspect

import (
	"sort"
	"strings"
)

// internalPrefix marks runtime-internal members. Names carrying it are
// implementation plumbing and never classified.
const internalPrefix = "__"

// Attribute pairs a data member with the name of its value's runtime type.
type Attribute struct {
	Name      string `json:"name" yaml:"name"`
	TypeLabel string `json:"type" yaml:"type"`
}

// Report is the immutable result of classifying one object: every
// non-internal member lands in exactly one place, either as a data
// attribute or in exactly one method bucket, each list sorted ascending
// by name. The report holds no reference back to the subject.
type Report struct {
	DataAttributes []Attribute              `json:"data_attributes" yaml:"data_attributes"`
	Methods        map[BindingMode][]string `json:"methods" yaml:"methods"`
}

// Classify partitions the members of obj into data attributes and
// binding-mode method buckets in a single pass.
//
// Per-member resolution failures are absorbed: the member is recorded
// with the Inaccessible label and classification continues. Resolving a
// member may run computed accessors on the subject; any side effects of
// those are the subject's, introspection adds none of its own.
func Classify(obj Object) (*Report, error) {
	if obj == nil {
		return nil, ErrNotReflectable
	}

	r := &Report{
		DataAttributes: []Attribute{},
		Methods: map[BindingMode][]string{
			BindingInstance: {},
			BindingClass:    {},
			BindingStatic:   {},
		},
	}

	for _, name := range obj.Members() {
		if strings.HasPrefix(name, internalPrefix) {
			continue
		}

		m, err := obj.Member(name)
		if err != nil {
			r.DataAttributes = append(r.DataAttributes, Attribute{Name: name, TypeLabel: Inaccessible})
			continue
		}

		if m.Callable {
			mode := m.Binding
			if mode != BindingClass && mode != BindingStatic {
				mode = BindingInstance
			}
			r.Methods[mode] = append(r.Methods[mode], name)
			continue
		}

		r.DataAttributes = append(r.DataAttributes, Attribute{Name: name, TypeLabel: m.TypeName})
	}

	sort.Slice(r.DataAttributes, func(i, j int) bool {
		return r.DataAttributes[i].Name < r.DataAttributes[j].Name
	})
	for _, names := range r.Methods {
		sort.Strings(names)
	}

	return r, nil
}

// ClassifyValue reflects over an arbitrary Go value and classifies it.
// Returns ErrNotReflectable for subjects the native reflector cannot
// enumerate.
func ClassifyValue(subject any) (*Report, error) {
	obj, err := New(subject)
	if err != nil {
		return nil, err
	}
	return Classify(obj)
}
