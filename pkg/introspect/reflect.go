package introspect

import (
	"reflect"
	"sort"

	"github.com/pkg/errors"
)

// ErrNotReflectable indicates the subject cannot be enumerated by the
// native Go reflector: nil, or a kind with no member surface.
var ErrNotReflectable = errors.New("subject is not reflectable")

// New wraps an arbitrary Go value in an Object backed by the reflect
// package. Supported subjects are structs, pointers to structs, and
// string-keyed maps. Anything else returns ErrNotReflectable.
//
// Go has no class-method concept: methods bind to the instance and
// func-typed fields carry no receiver, so the native reflector only
// ever reports the instance and static modes.
func New(subject any) (Object, error) {
	if subject == nil {
		return nil, ErrNotReflectable
	}

	v := reflect.ValueOf(subject)
	switch v.Kind() {
	case reflect.Struct:
		return &structObject{val: v}, nil
	case reflect.Pointer:
		if v.IsNil() || v.Elem().Kind() != reflect.Struct {
			return nil, errors.Wrapf(ErrNotReflectable, "pointer to %s", v.Type().Elem().Kind())
		}
		return &structObject{val: v}, nil
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, errors.Wrapf(ErrNotReflectable, "map keyed by %s", v.Type().Key().Kind())
		}
		return &mapObject{val: v}, nil
	default:
		return nil, errors.Wrapf(ErrNotReflectable, "kind %s", v.Kind())
	}
}

// TypeName returns the human-readable runtime type name for any value,
// using the same labeling rules the reflector applies to members.
func TypeName(subject any) string {
	if subject == nil {
		return "nil"
	}
	v := reflect.ValueOf(subject)
	if v.Kind() == reflect.Pointer && !v.IsNil() {
		v = v.Elem()
	}
	return typeLabel(v)
}

// structObject reflects over a struct or pointer-to-struct subject.
// Promoted fields from embedded structs count as inherited members.
type structObject struct {
	val reflect.Value
}

func (o *structObject) elem() reflect.Value {
	if o.val.Kind() == reflect.Pointer {
		return o.val.Elem()
	}
	return o.val
}

func (o *structObject) Members() []string {
	names := make([]string, 0, o.val.NumMethod())

	for _, f := range reflect.VisibleFields(o.elem().Type()) {
		if f.Anonymous {
			// the embedded struct itself is plumbing, its promoted
			// fields are listed in their own right
			continue
		}
		names = append(names, f.Name)
	}

	t := o.val.Type()
	for i := 0; i < t.NumMethod(); i++ {
		names = append(names, t.Method(i).Name)
	}

	sort.Strings(names)
	return names
}

func (o *structObject) Member(name string) (Member, error) {
	if m := o.val.MethodByName(name); m.IsValid() {
		return Member{
			Callable: true,
			Binding:  BindingInstance,
			TypeName: m.Type().String(),
		}, nil
	}

	ev := o.elem()
	if _, ok := ev.Type().FieldByName(name); !ok {
		return Member{}, errors.Errorf("no member %q on %s", name, ev.Type())
	}

	fv := ev.FieldByName(name)
	if !fv.CanInterface() {
		return Member{}, errors.Errorf("cannot read unexported field %q on %s", name, ev.Type())
	}

	return memberOf(fv), nil
}

// mapObject reflects over a string-keyed map subject. Keys are the
// member names; func-typed values are unbound callables.
type mapObject struct {
	val reflect.Value
}

func (o *mapObject) Members() []string {
	names := make([]string, 0, o.val.Len())
	for _, k := range o.val.MapKeys() {
		names = append(names, k.String())
	}
	sort.Strings(names)
	return names
}

func (o *mapObject) Member(name string) (Member, error) {
	v := o.val.MapIndex(reflect.ValueOf(name).Convert(o.val.Type().Key()))
	if !v.IsValid() {
		return Member{}, errors.Errorf("no member %q in map", name)
	}
	return memberOf(v), nil
}

// memberOf classifies a readable value: funcs are unbound callables,
// everything else is data labeled with its runtime type.
func memberOf(v reflect.Value) Member {
	uv := unwrap(v)
	if uv.Kind() == reflect.Func {
		return Member{
			Callable: true,
			Binding:  BindingStatic,
			TypeName: uv.Type().String(),
		}
	}
	return Member{TypeName: typeLabel(v)}
}

// unwrap resolves interface values to their dynamic value.
func unwrap(v reflect.Value) reflect.Value {
	if v.Kind() == reflect.Interface && !v.IsNil() {
		return v.Elem()
	}
	return v
}

// typeLabel names the runtime type of a value: the bare type name when
// one exists (int, string, Person), the full type expression otherwise
// ([]string, map[string]int), and "nil" for nil interface values.
func typeLabel(v reflect.Value) string {
	v = unwrap(v)
	if v.Kind() == reflect.Interface {
		return "nil"
	}
	t := v.Type()
	if n := t.Name(); n != "" {
		return n
	}
	return t.String()
}
