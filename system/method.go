package system

import (
	"fmt"
	"reflect"
)

// ---------------------------------------------------------------------------
// Invocation results
// ---------------------------------------------------------------------------

// InvokeResult reports the outcome of a dynamic invocation. Only
// pre-invocation validation is distinguished; errors raised inside the
// native method body propagate to the caller unchanged.
type InvokeResult int

const (
	// InvokeOK means validation passed and the native call ran.
	InvokeOK InvokeResult = iota
	// InvokeArgumentCountMismatch means the supplied argument count is
	// outside [params - defaults, params]. No native call was made.
	InvokeArgumentCountMismatch
	// InvokeInvalidReceiver means an instance binding was given a nil,
	// released, or class-incompatible receiver. No native call was made.
	InvokeInvalidReceiver
	// InvokeMissingAccessor means a property was read without a getter
	// or written without a setter.
	InvokeMissingAccessor
)

// String returns the result name, e.g. "OK".
func (r InvokeResult) String() string {
	switch r {
	case InvokeOK:
		return "OK"
	case InvokeArgumentCountMismatch:
		return "ArgumentCountMismatch"
	case InvokeInvalidReceiver:
		return "InvalidReceiver"
	case InvokeMissingAccessor:
		return "MissingAccessor"
	default:
		return "Unknown"
	}
}

// ParamInfo describes one declared parameter of a MethodBind.
type ParamInfo struct {
	Name string
	Type Type
}

// ---------------------------------------------------------------------------
// MethodBind
// ---------------------------------------------------------------------------

// MethodBind is a type-erased wrapper around a native Go function that
// can be invoked with Variant arguments and produce a Variant result.
//
// The wrapper captures, per declared parameter, its name and semantic
// type tag; whether a trailing suffix of parameters is defaultable is
// carried by the defaults slice. Static/instance shape and const-ness
// are derived from the native signature: an instance binding's first
// parameter is the receiver, and a value receiver marks the binding
// const.
type MethodBind struct {
	owner      *ClassData
	name       string
	fn         reflect.Value
	static     bool
	isConst    bool
	returnType Type
	params     []ParamInfo
	defaults   []Variant
}

// newStaticMethodBind wraps a free function as a static binding.
func newStaticMethodBind(owner *ClassData, name string, fn any, paramNames []string, defaults []Variant) *MethodBind {
	m := &MethodBind{owner: owner, name: name, static: true}
	m.bind(fn, paramNames, defaults, 0)
	return m
}

// newMethodBind wraps a method expression (first parameter is the
// receiver) as an instance binding.
func newMethodBind(owner *ClassData, name string, fn any, paramNames []string, defaults []Variant) *MethodBind {
	m := &MethodBind{owner: owner, name: name}
	m.bind(fn, paramNames, defaults, 1)
	return m
}

// bind performs the construction-time capture of signature metadata.
// Malformed bindings are programming errors and panic during the
// registration phase.
func (m *MethodBind) bind(fn any, paramNames []string, defaults []Variant, recvArgs int) {
	m.fn = reflect.ValueOf(fn)
	ft := m.fn.Type()
	if ft.Kind() != reflect.Func {
		panic(fmt.Sprintf("system: binding %s on %s: not a function", m.name, m.owner.name))
	}
	if ft.IsVariadic() {
		panic(fmt.Sprintf("system: binding %s on %s: variadic functions cannot be bound", m.name, m.owner.name))
	}
	if ft.NumIn() < recvArgs {
		panic(fmt.Sprintf("system: binding %s on %s: instance method needs a receiver parameter", m.name, m.owner.name))
	}

	if recvArgs == 1 {
		m.isConst = ft.In(0).Kind() != reflect.Pointer
	}

	numParams := ft.NumIn() - recvArgs
	if len(paramNames) != numParams {
		panic(fmt.Sprintf("system: binding %s on %s: %d parameter names for %d parameters",
			m.name, m.owner.name, len(paramNames), numParams))
	}
	if len(defaults) > numParams {
		panic(fmt.Sprintf("system: binding %s on %s: more defaults than parameters", m.name, m.owner.name))
	}

	m.params = make([]ParamInfo, numParams)
	for i := 0; i < numParams; i++ {
		tag, ok := typeTagOf(ft.In(i + recvArgs))
		if !ok {
			panic(fmt.Sprintf("system: binding %s on %s: parameter %s has unsupported type %s",
				m.name, m.owner.name, paramNames[i], ft.In(i+recvArgs)))
		}
		m.params[i] = ParamInfo{Name: paramNames[i], Type: tag}
	}
	m.defaults = append([]Variant(nil), defaults...)

	switch ft.NumOut() {
	case 0:
		m.returnType = TypeNull
	case 1:
		tag, ok := typeTagOf(ft.Out(0))
		if !ok {
			panic(fmt.Sprintf("system: binding %s on %s: unsupported return type %s",
				m.name, m.owner.name, ft.Out(0)))
		}
		m.returnType = tag
	default:
		panic(fmt.Sprintf("system: binding %s on %s: at most one return value", m.name, m.owner.name))
	}
}

// Name returns the bound method name.
func (m *MethodBind) Name() string { return m.name }

// Owner returns the declaring class descriptor.
func (m *MethodBind) Owner() *ClassData { return m.owner }

// IsStatic reports whether the binding ignores its receiver.
func (m *MethodBind) IsStatic() bool { return m.static }

// IsConst reports whether an instance binding cannot mutate its
// receiver. Always false for static bindings.
func (m *MethodBind) IsConst() bool { return m.isConst }

// ReturnType returns the declared return tag; Null for void.
func (m *MethodBind) ReturnType() Type { return m.returnType }

// ArgumentCount returns the declared parameter count, excluding the
// receiver.
func (m *MethodBind) ArgumentCount() int { return len(m.params) }

// DefaultArgumentCount returns how many trailing parameters carry a
// class-declared default.
func (m *MethodBind) DefaultArgumentCount() int { return len(m.defaults) }

// Param returns the i-th declared parameter.
func (m *MethodBind) Param(i int) ParamInfo { return m.params[i] }

// Params returns a copy of the declared parameter list.
func (m *MethodBind) Params() []ParamInfo {
	return append([]ParamInfo(nil), m.params...)
}

// ---------------------------------------------------------------------------
// Invocation
// ---------------------------------------------------------------------------

// Invoke calls the native function with receiver and args.
//
// The argument count must be between ArgumentCount minus
// DefaultArgumentCount and ArgumentCount inclusive; parameters beyond
// the supplied count take their class-declared defaults. Each Variant
// converts to its native parameter type with the permissive accessor
// semantics, so a mismatched payload degrades to a default value
// rather than failing. The receiver is ignored for static bindings;
// for instance bindings it must be a live instance of the declaring
// class or a descendant. A non-void native return value comes back as
// a Variant, void as a Null Variant.
func (m *MethodBind) Invoke(receiver Object, args []Variant) (Variant, InvokeResult) {
	required := len(m.params) - len(m.defaults)
	if len(args) < required || len(args) > len(m.params) {
		return Variant{}, InvokeArgumentCountMismatch
	}

	ft := m.fn.Type()
	in := make([]reflect.Value, 0, ft.NumIn())

	recvArgs := 0
	if !m.static {
		recvArgs = 1
		rv, ok := m.receiverValue(receiver)
		if !ok {
			return Variant{}, InvokeInvalidReceiver
		}
		in = append(in, rv)
	}

	for i := range m.params {
		var v Variant
		if i < len(args) {
			v = args[i]
		} else {
			v = m.defaults[i-required]
		}
		in = append(in, variantToNative(v, ft.In(i+recvArgs)))
	}

	out := m.fn.Call(in)
	if len(out) == 0 {
		return Variant{}, InvokeOK
	}
	return nativeToVariant(out[0]), InvokeOK
}

// receiverValue validates the receiver and adapts it to the native
// receiver type. A value-receiver (const) binding accepts the pointer
// the caller holds and dereferences it.
func (m *MethodBind) receiverValue(receiver Object) (reflect.Value, bool) {
	if receiver == nil {
		return reflect.Value{}, false
	}
	if !IsInstanceValid(receiver.InstanceID()) {
		return reflect.Value{}, false
	}

	// The receiver's registered class must be the declaring class or a
	// descendant of it.
	rc := m.owner.db.Lookup(receiver.ClassName())
	if rc == nil || (rc != m.owner && !m.owner.IsParentOf(rc)) {
		return reflect.Value{}, false
	}

	rt := m.fn.Type().In(0)
	rv := reflect.ValueOf(receiver)
	if rv.Type().AssignableTo(rt) {
		return rv, true
	}
	if rt.Kind() != reflect.Pointer && rv.Kind() == reflect.Pointer && rv.Elem().Type().AssignableTo(rt) {
		return rv.Elem(), true
	}
	return reflect.Value{}, false
}
