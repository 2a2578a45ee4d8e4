package system

import (
	"sync"
	"sync/atomic"
)

// ---------------------------------------------------------------------------
// Instance identity
// ---------------------------------------------------------------------------

// InstanceID is a stable handle identifying one object instance for
// its whole life. IDs are allocated from a monotonic counter and never
// reused, so a handle held after its object is released can never
// alias a newer instance; liveness is a membership test against the
// live-instance table. 0 is never a valid ID.
type InstanceID uint64

var instanceCounter atomic.Uint64

// Live-instance table. Objects enter at construction and leave when
// released; Variants consult it before handing out their object
// payload.
var instances = struct {
	mu   sync.RWMutex
	live map[InstanceID]Object
}{live: make(map[InstanceID]Object)}

// IsInstanceValid returns true if the instance behind id has not been
// released.
func IsInstanceValid(id InstanceID) bool {
	instances.mu.RLock()
	_, ok := instances.live[id]
	instances.mu.RUnlock()
	return ok
}

// InstanceFromID returns the live object behind id, or nil.
func InstanceFromID(id InstanceID) Object {
	instances.mu.RLock()
	o := instances.live[id]
	instances.mu.RUnlock()
	return o
}

// LiveInstanceCount returns the number of objects currently in the
// live-instance table.
func LiveInstanceCount() int {
	instances.mu.RLock()
	n := len(instances.live)
	instances.mu.RUnlock()
	return n
}

// ---------------------------------------------------------------------------
// Object
// ---------------------------------------------------------------------------

// Object is the contract every reflected instance satisfies: a stable
// instance identity plus the fully qualified name of its most-derived
// class. Concrete classes embed ObjectCore (usually through
// ManualObject or ReferencedObject) to get both.
type Object interface {
	InstanceID() InstanceID
	ClassName() string
}

// ObjectCore provides identity for an embedding object. The zero
// ObjectCore is unattached; AttachInstance wires it up.
type ObjectCore struct {
	id    InstanceID
	class string
}

// InstanceID returns the identity handle, or 0 if never attached.
func (c *ObjectCore) InstanceID() InstanceID { return c.id }

// ClassName returns the fully qualified class name recorded at attach
// time.
func (c *ObjectCore) ClassName() string { return c.class }

// AttachInstance assigns a fresh instance identity to self and enters
// it into the live-instance table. Call once from the constructor of
// the most-derived class; class is its fully qualified name.
func AttachInstance(self Object, core *ObjectCore, class string) {
	if core.id != 0 {
		panic("system: AttachInstance called twice for " + core.class)
	}
	core.id = InstanceID(instanceCounter.Add(1))
	core.class = class
	instances.mu.Lock()
	instances.live[core.id] = self
	instances.mu.Unlock()
}

// ReleaseInstance removes the object from the live-instance table.
// Variants still holding the reference observe it as stale from this
// point on. Releasing an unattached or already-released core is a
// no-op.
func ReleaseInstance(core *ObjectCore) {
	if core.id == 0 {
		return
	}
	instances.mu.Lock()
	delete(instances.live, core.id)
	instances.mu.Unlock()
}

// ---------------------------------------------------------------------------
// Root object kinds
// ---------------------------------------------------------------------------

// ManualObject is the root for objects with manually managed
// lifetimes: the owner decides when the instance dies by calling Free.
type ManualObject struct {
	ObjectCore
}

// Free releases the instance identity. The Go object itself is
// reclaimed by the garbage collector once unreferenced; Free only
// marks it dead for the reflection layer.
func (o *ManualObject) Free() {
	ReleaseInstance(&o.ObjectCore)
}

// ReferencedObject is the root for reference-counted objects. New
// instances start with one reference; the identity is released when
// the count reaches zero.
type ReferencedObject struct {
	ObjectCore
	refs atomic.Int64
}

// InitRef sets the initial reference count. Call once right after
// AttachInstance.
func (o *ReferencedObject) InitRef() {
	o.refs.Store(1)
}

// Reference adds a reference and returns the new count.
func (o *ReferencedObject) Reference() int64 {
	return o.refs.Add(1)
}

// Unreference drops a reference. When the count reaches zero the
// instance identity is released and true is returned.
func (o *ReferencedObject) Unreference() bool {
	if o.refs.Add(-1) > 0 {
		return false
	}
	ReleaseInstance(&o.ObjectCore)
	return true
}

// RefCount returns the current reference count.
func (o *ReferencedObject) RefCount() int64 {
	return o.refs.Load()
}
