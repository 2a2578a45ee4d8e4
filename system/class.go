package system

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotInstantiatable is returned by Instantiate for classes without
// a concrete factory (abstract roles, including the engine roots).
var ErrNotInstantiatable = errors.New("class is not instantiatable")

// ClassData is the runtime descriptor for one compiled class: its
// place in the hierarchy, its instantiatability, and the method and
// property bindings registered against it.
//
// Descriptors are created during registration and never mutated
// afterwards; they live for the process lifetime.
type ClassData struct {
	db           *ClassDB
	name         string
	parent       *ClassData
	instantiable bool
	factory      func() Object
	methods      map[string]*MethodBind
	properties   map[string]*PropertyBind
}

// Name returns the fully qualified class name.
func (c *ClassData) Name() string { return c.name }

// Parent returns the parent descriptor, nil only for a root class.
func (c *ClassData) Parent() *ClassData { return c.parent }

// String implements fmt.Stringer.
func (c *ClassData) String() string { return c.name }

// ---------------------------------------------------------------------------
// Instantiation
// ---------------------------------------------------------------------------

// SetFactory installs the concrete constructor, making the class
// instantiatable. Returns c for chaining during registration.
func (c *ClassData) SetFactory(fn func() Object) *ClassData {
	if fn == nil {
		panic("system: nil factory for class " + c.name)
	}
	c.factory = fn
	c.instantiable = true
	return c
}

// IsInstantiatable reports whether the class provides a concrete
// factory. Abstract roles report false.
func (c *ClassData) IsInstantiatable() bool { return c.instantiable }

// Instantiate constructs a new instance through the class factory.
func (c *ClassData) Instantiate() (Object, error) {
	if !c.instantiable {
		return nil, fmt.Errorf("%w: %s", ErrNotInstantiatable, c.name)
	}
	return c.factory(), nil
}

// ---------------------------------------------------------------------------
// Hierarchy queries
// ---------------------------------------------------------------------------

// IsParentOf returns true if other descends from c. A class is not
// its own parent. The walk is bounded by tree depth; cycles cannot
// occur because a parent must be registered before any child.
func (c *ClassData) IsParentOf(other *ClassData) bool {
	if other == nil {
		return false
	}
	for cur := other.parent; cur != nil; cur = cur.parent {
		if cur == c {
			return true
		}
	}
	return false
}

// IsChildOf returns true if c descends from other. A class is not its
// own child.
func (c *ClassData) IsChildOf(other *ClassData) bool {
	if other == nil {
		return false
	}
	return other.IsParentOf(c)
}

// Depth returns the inheritance depth, 0 for a root class.
func (c *ClassData) Depth() int {
	depth := 0
	for cur := c.parent; cur != nil; cur = cur.parent {
		depth++
	}
	return depth
}

// ---------------------------------------------------------------------------
// Method and property tables
// ---------------------------------------------------------------------------

// GetMethod resolves a method by name, searching this class first and
// then the parent chain. Returns nil if no class in the chain binds
// the name.
func (c *ClassData) GetMethod(name string) *MethodBind {
	for cur := c; cur != nil; cur = cur.parent {
		if m, ok := cur.methods[name]; ok {
			return m
		}
	}
	return nil
}

// GetProperty resolves a property by name, searching this class first
// and then the parent chain.
func (c *ClassData) GetProperty(name string) *PropertyBind {
	for cur := c; cur != nil; cur = cur.parent {
		if p, ok := cur.properties[name]; ok {
			return p
		}
	}
	return nil
}

// MethodNames returns the names bound directly on this class, sorted.
func (c *ClassData) MethodNames() []string {
	names := make([]string, 0, len(c.methods))
	for name := range c.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PropertyNames returns the property names bound directly on this
// class, sorted.
func (c *ClassData) PropertyNames() []string {
	names := make([]string, 0, len(c.properties))
	for name := range c.properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// addMethod inserts a bind, panicking on duplicate names: bindings are
// part of the class's one-time registration.
func (c *ClassData) addMethod(name string, m *MethodBind) *MethodBind {
	if _, exists := c.methods[name]; exists {
		panic(fmt.Sprintf("system: method %s bound twice on %s", name, c.name))
	}
	c.methods[name] = m
	return m
}

// BindMethod binds an instance method. fn's first parameter is the
// receiver; a value receiver marks the binding const, a pointer
// receiver mutable. paramNames name the remaining parameters and
// defaults cover a trailing suffix of them.
func (c *ClassData) BindMethod(name string, fn any, paramNames []string, defaults ...Variant) *MethodBind {
	return c.addMethod(name, newMethodBind(c, name, fn, paramNames, defaults))
}

// BindStaticMethod binds a static method: fn has no receiver and is
// invoked with a nil receiver at call time.
func (c *ClassData) BindStaticMethod(name string, fn any, paramNames []string, defaults ...Variant) *MethodBind {
	return c.addMethod(name, newStaticMethodBind(c, name, fn, paramNames, defaults))
}

// BindProperty exposes a get/set method pair as one named accessor.
// getterName or setterName may be empty, making the property
// write-only or read-only respectively. The accessors are resolved
// through the parent chain and validated: getter takes no arguments,
// setter takes exactly one through a mutable instance binding, and
// their value types must agree. Violations are registration-time
// programming errors and panic.
func (c *ClassData) BindProperty(name, getterName, setterName string) *PropertyBind {
	if _, exists := c.properties[name]; exists {
		panic(fmt.Sprintf("system: property %s bound twice on %s", name, c.name))
	}

	var getter, setter *MethodBind
	if getterName != "" {
		getter = c.GetMethod(getterName)
		if getter == nil {
			panic(fmt.Sprintf("system: property %s on %s: getter %s not found", name, c.name, getterName))
		}
		if getter.ArgumentCount() != 0 {
			panic(fmt.Sprintf("system: property %s on %s: getter %s must take no arguments", name, c.name, getterName))
		}
	}
	if setterName != "" {
		setter = c.GetMethod(setterName)
		if setter == nil {
			panic(fmt.Sprintf("system: property %s on %s: setter %s not found", name, c.name, setterName))
		}
		if setter.ArgumentCount() != 1 {
			panic(fmt.Sprintf("system: property %s on %s: setter %s must take one argument", name, c.name, setterName))
		}
		if setter.IsStatic() || setter.IsConst() {
			panic(fmt.Sprintf("system: property %s on %s: setter %s must be a mutable instance method", name, c.name, setterName))
		}
	}
	if getter == nil && setter == nil {
		panic(fmt.Sprintf("system: property %s on %s has neither getter nor setter", name, c.name))
	}
	if getter != nil && setter != nil && getter.ReturnType() != setter.Param(0).Type {
		panic(fmt.Sprintf("system: property %s on %s: getter returns %s but setter takes %s",
			name, c.name, getter.ReturnType(), setter.Param(0).Type))
	}

	p := &PropertyBind{name: name, getter: getter, setter: setter}
	c.properties[name] = p
	return p
}
