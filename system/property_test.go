package system

import (
	"testing"
)

func TestPropertyRoundTrip(t *testing.T) {
	_, cl, obj := newBarFixture(t)
	prop := cl.GetProperty("Value")
	if prop == nil {
		t.Fatal("property Value should resolve")
	}
	if prop.Type() != TypeString {
		t.Errorf("property type = %s, want String", prop.Type())
	}

	want := FromString("I AM SB")
	if status := prop.Set(obj, want); status != InvokeOK {
		t.Fatalf("Set status = %s, want OK", status)
	}
	if obj.value != "I AM SB" {
		t.Errorf("backing field = %q, want %q", obj.value, "I AM SB")
	}

	got, status := prop.Get(obj)
	if status != InvokeOK {
		t.Fatalf("Get status = %s, want OK", status)
	}
	if !got.Equals(want) {
		t.Errorf("Get = %s, want %s", got, want)
	}
}

func TestPropertyUnknownName(t *testing.T) {
	_, cl, _ := newBarFixture(t)
	if cl.GetProperty("Nope") != nil {
		t.Error("unknown property should resolve to nil")
	}
}

type gaugeObject struct {
	ManualObject
	level int64
}

func (g *gaugeObject) setLevel(v int64) { g.level = v }
func (g gaugeObject) getLevel() int64   { return g.level }

// One-argument value-receiver method: right arity for a setter, but
// const, so property validation must reject it.
func (g gaugeObject) levelAbove(floor int64) bool { return g.level > floor }

func TestReadOnlyProperty(t *testing.T) {
	db := NewClassDB()
	cl := db.Register("::Gauge", "")
	cl.BindMethod("GetLevel", gaugeObject.getLevel, nil)
	prop := cl.BindProperty("Level", "GetLevel", "")

	obj := &gaugeObject{level: 7}
	AttachInstance(obj, &obj.ObjectCore, "::Gauge")
	t.Cleanup(obj.Free)

	if prop.Getter() == nil || prop.Setter() != nil {
		t.Fatal("property should have only a getter")
	}
	got, status := prop.Get(obj)
	if status != InvokeOK || got.AsInt64(-1) != 7 {
		t.Errorf("Get = (%s, %s), want (7, OK)", got, status)
	}
	if status := prop.Set(obj, FromInt64(9)); status != InvokeMissingAccessor {
		t.Errorf("Set status = %s, want MissingAccessor", status)
	}
	if obj.level != 7 {
		t.Error("read-only property must not write the backing field")
	}
}

func TestWriteOnlyProperty(t *testing.T) {
	db := NewClassDB()
	cl := db.Register("::GaugeW", "")
	cl.BindMethod("SetLevel", (*gaugeObject).setLevel, []string{"value"})
	prop := cl.BindProperty("Level", "", "SetLevel")

	obj := &gaugeObject{}
	AttachInstance(obj, &obj.ObjectCore, "::GaugeW")
	t.Cleanup(obj.Free)

	// With no getter the declared type comes from the setter.
	if prop.Type() != TypeInt64 {
		t.Errorf("property type = %s, want Int64", prop.Type())
	}
	if status := prop.Set(obj, FromInt64(3)); status != InvokeOK {
		t.Fatalf("Set status = %s, want OK", status)
	}
	if obj.level != 3 {
		t.Errorf("backing field = %d, want 3", obj.level)
	}
	if _, status := prop.Get(obj); status != InvokeMissingAccessor {
		t.Errorf("Get status = %s, want MissingAccessor", status)
	}
}

func TestPropertyValidation(t *testing.T) {
	tests := []struct {
		name string
		bind func(cl *ClassData)
	}{
		{"missing getter name", func(cl *ClassData) {
			cl.BindProperty("P", "Nope", "SetLevel")
		}},
		{"getter with arguments", func(cl *ClassData) {
			cl.BindProperty("P", "SetLevel", "")
		}},
		{"setter with wrong arity", func(cl *ClassData) {
			cl.BindProperty("P", "", "GetLevel")
		}},
		{"const setter", func(cl *ClassData) {
			cl.BindProperty("P", "", "LevelAbove")
		}},
		{"static setter", func(cl *ClassData) {
			cl.BindProperty("P", "", "StaticSet")
		}},
		{"type disagreement", func(cl *ClassData) {
			cl.BindProperty("P", "GetName", "SetLevel")
		}},
		{"no accessors at all", func(cl *ClassData) {
			cl.BindProperty("P", "", "")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := NewClassDB()
			cl := db.Register("::Validated", "")
			cl.BindMethod("GetLevel", gaugeObject.getLevel, nil)
			cl.BindMethod("SetLevel", (*gaugeObject).setLevel, []string{"value"})
			cl.BindMethod("LevelAbove", gaugeObject.levelAbove, []string{"floor"})
			cl.BindStaticMethod("StaticSet", func(v int64) {}, []string{"value"})
			cl.BindStaticMethod("GetName", func() string { return "" }, nil)
			defer func() {
				if recover() == nil {
					t.Errorf("%s: BindProperty should panic", tt.name)
				}
			}()
			tt.bind(cl)
		})
	}
}
