package system

// PropertyBind exposes a get/set method pair as a single named
// read/write accessor over Variant values. Either accessor may be
// absent, making the property write-only or read-only.
type PropertyBind struct {
	name   string
	getter *MethodBind
	setter *MethodBind
}

// Name returns the property name.
func (p *PropertyBind) Name() string { return p.name }

// Getter returns the get binding, or nil for a write-only property.
func (p *PropertyBind) Getter() *MethodBind { return p.getter }

// Setter returns the set binding, or nil for a read-only property.
func (p *PropertyBind) Setter() *MethodBind { return p.setter }

// Type returns the declared value type: the getter's return tag, or
// the setter's parameter tag when no getter exists.
func (p *PropertyBind) Type() Type {
	if p.getter != nil {
		return p.getter.ReturnType()
	}
	return p.setter.Param(0).Type
}

// Get invokes the getter with zero arguments. A property without a
// getter reports InvokeMissingAccessor.
func (p *PropertyBind) Get(receiver Object) (Variant, InvokeResult) {
	if p.getter == nil {
		return Variant{}, InvokeMissingAccessor
	}
	return p.getter.Invoke(receiver, nil)
}

// Set invokes the setter with value as the sole argument. A property
// without a setter reports InvokeMissingAccessor.
func (p *PropertyBind) Set(receiver Object, value Variant) InvokeResult {
	if p.setter == nil {
		return InvokeMissingAccessor
	}
	_, result := p.setter.Invoke(receiver, []Variant{value})
	return result
}
