package introspect

import (
	"reflect"
	"sort"

	"github.com/pkg/errors"
)

// Dynamic is an explicitly assembled Object for object models that
// declare member binding modes directly (or for tests). Members are
// registered one by one; registration order does not matter, the
// classifier sorts its output.
type Dynamic struct {
	members map[string]dynMember
}

type dynMember struct {
	member Member
	err    error
}

// NewDynamic returns an empty Dynamic object.
func NewDynamic() *Dynamic {
	return &Dynamic{members: map[string]dynMember{}}
}

// SetAttr registers a data attribute with its current value.
func (d *Dynamic) SetAttr(name string, value any) *Dynamic {
	label := "nil"
	if value != nil {
		label = typeLabel(reflect.ValueOf(value))
	}
	d.members[name] = dynMember{member: Member{TypeName: label}}
	return d
}

// SetCallable registers a callable member with an explicit binding mode.
func (d *Dynamic) SetCallable(name string, mode BindingMode) *Dynamic {
	d.members[name] = dynMember{member: Member{Callable: true, Binding: mode}}
	return d
}

// SetFailing registers a member whose resolution fails, mimicking a
// broken accessor. A nil err is recorded as a generic access failure.
func (d *Dynamic) SetFailing(name string, err error) *Dynamic {
	if err == nil {
		err = errors.Errorf("member %q is not accessible", name)
	}
	d.members[name] = dynMember{err: err}
	return d
}

func (d *Dynamic) Members() []string {
	names := make([]string, 0, len(d.members))
	for name := range d.members {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (d *Dynamic) Member(name string) (Member, error) {
	m, ok := d.members[name]
	if !ok {
		return Member{}, errors.Errorf("no member %q", name)
	}
	if m.err != nil {
		return Member{}, m.err
	}
	return m.member, nil
}
