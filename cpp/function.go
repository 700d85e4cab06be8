package cpp

import "strings"

func functionRet(f *Function) string {
	if f.Ret == "" {
		return "void"
	}
	return f.Ret
}

// functionArgs joins the argument list in declaration order. Default
// values appear only on the declaration surface.
func functionArgs(f *Function, withDefaults bool) string {
	parts := make([]string, 0, len(f.Args))
	for _, a := range f.Args {
		if withDefaults {
			parts = append(parts, a.decl())
		} else {
			parts = append(parts, a.def())
		}
	}
	return strings.Join(parts, ", ")
}

// functionSpecifiers returns the declaration prefix keywords in
// canonical order: static, virtual, constexpr.
func functionSpecifiers(f *Function) string {
	var sb strings.Builder
	if f.Static {
		sb.WriteString("static ")
	}
	if f.Virtual {
		sb.WriteString("virtual ")
	}
	if f.Constexpr {
		sb.WriteString("constexpr ")
	}
	return sb.String()
}

// renderFunctionDecl emits the declaration of f. Constructors carry no
// return type.
func renderFunctionDecl(e *Emitter, f *Function, ctor bool) {
	emitDoc(e, f.Doc)
	ret := ""
	if !ctor {
		ret = functionRet(f) + " "
	}
	line := functionSpecifiers(f) + ret + f.Name + "(" + functionArgs(f, true) + ")"
	if f.ConstPostfix {
		line += " const"
	}
	if f.Pure {
		line += " = 0"
	}
	e.Line(line + ";")
}

// renderFunctionDef emits the out-of-line definition of f: the
// signature with the owning qualifier, then the body one block deeper.
// Prefix specifiers stay at the declaration site; only the trailing
// const travels. The body callback runs inside the block scope, so the
// closing brace lands even when the callback fails.
func renderFunctionDef(e *Emitter, f *Function, qualifier string, ctor bool) error {
	if f.Body == nil {
		return nil
	}
	ret := ""
	if !ctor {
		ret = functionRet(f) + " "
	}
	line := ret + qualifier + f.Name + "(" + functionArgs(f, false) + ")"
	if f.ConstPostfix {
		line += " const"
	}
	e.Line(line)
	return e.Scope("{", "}", func() error {
		return f.Body(e)
	})
}
