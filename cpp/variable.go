package cpp

import (
	"fmt"
	"strings"
)

// emitDoc writes the entity's documentation verbatim, line by line,
// above the code it documents.
func emitDoc(e *Emitter, doc string) {
	if doc == "" {
		return
	}
	for _, line := range strings.Split(doc, "\n") {
		e.Line(line)
	}
}

var integralTypes = map[string]bool{
	"int":    true,
	"long":   true,
	"size_t": true,
}

// defaultValue picks an initializer for a variable defined without one.
// Only the common type families have an obvious zero; anything else is
// an error the caller must surface.
func defaultValue(v *Variable) (string, error) {
	if v.Init != "" {
		return v.Init, nil
	}
	switch {
	case integralTypes[v.Type]:
		return "0", nil
	case strings.Contains(v.Type, "string"), strings.Contains(v.Type, "char"):
		return `""`, nil
	case strings.Contains(v.Type, "float"), strings.Contains(v.Type, "double"):
		return "0.0", nil
	}
	return "", fmt.Errorf("no default init value for %q of type %s", v.Name, v.Type)
}

// variableSpecifiers returns the prefix keywords in canonical order:
// static before const/constexpr, whatever order the caller set them in.
func variableSpecifiers(v *Variable, includeStatic bool) string {
	var sb strings.Builder
	if v.Static && includeStatic {
		sb.WriteString("static ")
	}
	if v.Const {
		sb.WriteString("const ")
	}
	if v.Constexpr {
		sb.WriteString("constexpr ")
	}
	return sb.String()
}

// renderVariableDecl emits the declaration of v at the current depth.
// Inside a class, constexpr and non-static members show their
// initializer in-class; static non-constexpr members defer it to the
// out-of-line definition.
func renderVariableDecl(e *Emitter, v *Variable, member bool) {
	emitDoc(e, v.Doc)
	line := fmt.Sprintf("%s%s %s", variableSpecifiers(v, true), v.Type, v.Name)
	showInit := v.Init != ""
	if member {
		showInit = v.Constexpr || (!v.Static && v.Init != "")
	}
	if showInit {
		line += " = " + v.Init
	}
	e.Line(line + ";")
}

// renderVariableDef emits the out-of-line definition of v. qualifier is
// the owning scope prefix ("MyClass::"), synthesized by the caller; the
// variable itself knows nothing about its owner. static is dropped at
// the definition site.
func renderVariableDef(e *Emitter, v *Variable, qualifier string) error {
	init, err := defaultValue(v)
	if err != nil {
		return err
	}
	e.Linef("%s%s %s%s = %s;", variableSpecifiers(v, false), v.Type, qualifier, v.Name, init)
	return nil
}
