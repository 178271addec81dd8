package introspect

// BindingMode characterizes how a callable member receives its receiver.
type BindingMode string

const (
	// BindingInstance callables implicitly receive the object instance.
	BindingInstance BindingMode = "instance"
	// BindingClass callables implicitly receive the owning type.
	BindingClass BindingMode = "class"
	// BindingStatic callables carry no implicit receiver.
	BindingStatic BindingMode = "static"
)

// Inaccessible is the type label recorded for members whose value could not be read.
const Inaccessible = "inaccessible"

// Member is a single resolved member value, reduced to the facts the
// classifier needs: whether it can be called, how it binds, and the
// human-readable name of its runtime type.
type Member struct {
	Callable bool
	Binding  BindingMode
	TypeName string
}

// Object is the narrow reflection surface the classifier depends on.
// Implement it once per object model; Classify never reaches past it.
type Object interface {
	// Members lists every member name visible on the subject,
	// including members inherited through the object model.
	Members() []string

	// Member resolves a single member by name. An error means the value
	// could not be read (broken accessor, restricted field); the
	// classifier absorbs it, it is never fatal.
	Member(name string) (Member, error)
}
