package cpp

// isCtor reports whether a method is a constructor of the class whose
// name it shares.
func isCtor(c *Class, f *Function) bool {
	return f.Name == c.Name
}

// renderClassDecl emits the full declaration block of c: the class or
// struct keyword, the optional base, then every member in declared
// order. Access labels are emitted whenever the visibility changes from
// the previous member, starting from the kind's default, so a leading
// run of default-visibility members gets no label at all.
func renderClassDecl(e *Emitter, c *Class) error {
	emitDoc(e, c.Doc)
	proto := c.Kind.String() + " " + c.Name
	if c.Base != "" {
		proto += " : public " + c.Base
	}
	e.Line(proto)
	return e.Scope("{", "};", func() error {
		last := c.Kind.DefaultVisibility()
		for _, m := range c.Members {
			if m.Visibility != last {
				e.Label(m.Visibility.String() + ":")
				last = m.Visibility
			}
			switch {
			case m.Variable != nil:
				renderVariableDecl(e, m.Variable, true)
			case m.Function != nil:
				renderFunctionDecl(e, m.Function, isCtor(c, m.Function))
			case m.Class != nil:
				if err := renderClassDecl(e, m.Class); err != nil {
					return err
				}
			case m.Enum != nil:
				if err := renderEnumDecl(e, m.Enum); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// needsDefinition reports whether a member variable gets an out-of-line
// definition. Constexpr members are defined inline in the declaration;
// everything static and non-constexpr is defined in the source surface.
func needsDefinition(v *Variable) bool {
	return v.Static && !v.Constexpr
}

// renderClassDef emits the definition surface of c: out-of-line
// definitions for static member variables and for methods that carry a
// body, in the exact order the members were declared. Nested classes
// contribute their own definitions at their declared position, with the
// qualifier extended. Visibility plays no part here; the two surfaces
// stay in the same order so they read side by side.
//
// wrote tracks whether anything was emitted yet, across nesting, so
// consecutive definitions are separated by one blank line.
func renderClassDef(e *Emitter, c *Class, outer string, wrote *bool) error {
	qualifier := outer + c.Name + "::"
	sep := func() {
		if *wrote {
			e.Blank()
		}
		*wrote = true
	}
	for _, m := range c.Members {
		switch {
		case m.Variable != nil:
			if !needsDefinition(m.Variable) {
				continue
			}
			sep()
			if err := renderVariableDef(e, m.Variable, qualifier); err != nil {
				return err
			}
		case m.Function != nil:
			if m.Function.Body == nil {
				continue
			}
			sep()
			if err := renderFunctionDef(e, m.Function, qualifier, isCtor(c, m.Function)); err != nil {
				return err
			}
		case m.Class != nil:
			if err := renderClassDef(e, m.Class, qualifier, wrote); err != nil {
				return err
			}
		}
	}
	return nil
}
