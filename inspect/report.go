package inspect

import (
	"fmt"
	"io"
	"strings"
)

// WriteReport renders the snapshot as a human-readable class listing.
func WriteReport(w io.Writer, s *Snapshot) error {
	for i, c := range s.Classes {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeClass(w, c); err != nil {
			return err
		}
	}
	return nil
}

func writeClass(w io.Writer, c ClassInfo) error {
	header := c.Name
	if c.Parent != "" {
		header += " : " + c.Parent
	}
	if !c.Instantiatable {
		header += " (abstract)"
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	for _, m := range c.Methods {
		if _, err := fmt.Fprintf(w, "  %s\n", formatMethod(m)); err != nil {
			return err
		}
	}
	for _, p := range c.Properties {
		if _, err := fmt.Fprintf(w, "  %s\n", formatProperty(p)); err != nil {
			return err
		}
	}
	return nil
}

func formatMethod(m MethodInfo) string {
	var b strings.Builder
	if m.Static {
		b.WriteString("static ")
	}
	b.WriteString(m.Name)
	b.WriteByte('(')
	for i, p := range m.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		b.WriteString(": ")
		b.WriteString(p.Type)
		// Mark the defaultable trailing suffix.
		if i >= len(m.Params)-m.DefaultCount {
			b.WriteString(" = ...")
		}
	}
	b.WriteString(") -> ")
	b.WriteString(m.ReturnType)
	if m.Const {
		b.WriteString(" const")
	}
	return b.String()
}

func formatProperty(p PropertyInfo) string {
	access := "rw"
	switch {
	case !p.HasSetter:
		access = "ro"
	case !p.HasGetter:
		access = "wo"
	}
	return fmt.Sprintf("property %s: %s (%s)", p.Name, p.Type, access)
}
