package cpp

// renderEnumDecl emits the declaration block of en: the enum prototype,
// then every item one level deeper, comma-separated with no trailing
// comma. Items carry the enum's prefix and an explicit value when one
// was given.
func renderEnumDecl(e *Emitter, en *Enum) error {
	emitDoc(e, en.Doc)
	e.Line("enum " + en.Name)
	return e.Scope("{", "};", func() error {
		for i, it := range en.Items {
			line := en.Prefix + it.Name
			if it.Value != "" {
				line += " = " + it.Value
			}
			if i < len(en.Items)-1 {
				line += ","
			}
			e.Line(line)
		}
		return nil
	})
}
