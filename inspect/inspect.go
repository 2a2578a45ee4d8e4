// Package inspect produces structured, tool-friendly views of a class
// database: an in-memory snapshot model, a canonical CBOR wire
// encoding, and a plain-text report. It reads registry metadata only
// and never touches object instances.
package inspect

import (
	"time"

	"github.com/google/uuid"

	"github.com/TML233/PawsEngine/system"
)

// ParamInfo describes one declared method parameter.
type ParamInfo struct {
	Name string `cbor:"name"`
	Type string `cbor:"type"`
}

// MethodInfo describes one method binding.
type MethodInfo struct {
	Name         string      `cbor:"name"`
	Static       bool        `cbor:"static"`
	Const        bool        `cbor:"const"`
	ReturnType   string      `cbor:"return"`
	Params       []ParamInfo `cbor:"params,omitempty"`
	DefaultCount int         `cbor:"defaults,omitempty"`
}

// PropertyInfo describes one property binding.
type PropertyInfo struct {
	Name      string `cbor:"name"`
	Type      string `cbor:"type"`
	HasGetter bool   `cbor:"getter"`
	HasSetter bool   `cbor:"setter"`
}

// ClassInfo describes one registered class with its directly bound
// members (inherited members appear on the declaring class only).
type ClassInfo struct {
	Name           string         `cbor:"name"`
	Parent         string         `cbor:"parent,omitempty"`
	Instantiatable bool           `cbor:"instantiatable"`
	Methods        []MethodInfo   `cbor:"methods,omitempty"`
	Properties     []PropertyInfo `cbor:"properties,omitempty"`
}

// Snapshot is a point-in-time view of a whole class database. The ID
// distinguishes snapshots taken from different processes or runs;
// Classes are ordered by name so two snapshots of the same registry
// encode identically apart from ID and timestamp.
type Snapshot struct {
	ID        string      `cbor:"id"`
	CreatedAt time.Time   `cbor:"created_at"`
	Classes   []ClassInfo `cbor:"classes"`
}

// Capture builds a snapshot of db.
func Capture(db *system.ClassDB) *Snapshot {
	classes := db.All()
	s := &Snapshot{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Classes:   make([]ClassInfo, 0, len(classes)),
	}
	for _, c := range classes {
		s.Classes = append(s.Classes, captureClass(c))
	}
	return s
}

// Class returns the captured info for a class name, or nil.
func (s *Snapshot) Class(name string) *ClassInfo {
	for i := range s.Classes {
		if s.Classes[i].Name == name {
			return &s.Classes[i]
		}
	}
	return nil
}

func captureClass(c *system.ClassData) ClassInfo {
	info := ClassInfo{
		Name:           c.Name(),
		Instantiatable: c.IsInstantiatable(),
	}
	if p := c.Parent(); p != nil {
		info.Parent = p.Name()
	}
	for _, name := range c.MethodNames() {
		info.Methods = append(info.Methods, captureMethod(c.GetMethod(name)))
	}
	for _, name := range c.PropertyNames() {
		info.Properties = append(info.Properties, captureProperty(c.GetProperty(name)))
	}
	return info
}

func captureMethod(m *system.MethodBind) MethodInfo {
	info := MethodInfo{
		Name:         m.Name(),
		Static:       m.IsStatic(),
		Const:        m.IsConst(),
		ReturnType:   m.ReturnType().String(),
		DefaultCount: m.DefaultArgumentCount(),
	}
	for _, p := range m.Params() {
		info.Params = append(info.Params, ParamInfo{Name: p.Name, Type: p.Type.String()})
	}
	return info
}

func captureProperty(p *system.PropertyBind) PropertyInfo {
	return PropertyInfo{
		Name:      p.Name(),
		Type:      p.Type().String(),
		HasGetter: p.Getter() != nil,
		HasSetter: p.Setter() != nil,
	}
}
