package cpp

import "fmt"

// Surface selects which of the two coupled outputs a render produces:
// the header-like declaration text or the source-like definition text.
type Surface int

const (
	Declaration Surface = iota
	Definition
)

func (s Surface) String() string {
	if s == Definition {
		return "definition"
	}
	return "declaration"
}

// Render produces the text of one entity on one surface. A fresh
// emitter is created per call and discarded on failure; a failed render
// never returns partial text.
func Render(en Entity, s Surface, style Style) (string, error) {
	e := NewEmitter(style)
	var err error
	switch v := en.(type) {
	case *Variable:
		if s == Declaration {
			renderVariableDecl(e, v, false)
		} else {
			err = renderVariableDef(e, v, "")
		}
	case *Function:
		if s == Declaration {
			renderFunctionDecl(e, v, false)
		} else {
			err = renderFunctionDef(e, v, "", false)
		}
	case *Enum:
		if s == Declaration {
			err = renderEnumDecl(e, v)
		}
		// Enums have nothing to define out of line.
	case *Class:
		if s == Declaration {
			err = renderClassDecl(e, v)
		} else {
			wrote := false
			err = renderClassDef(e, v, "", &wrote)
		}
	default:
		return "", fmt.Errorf("cannot render %T", en)
	}
	if err != nil {
		return "", err
	}
	if !e.Balanced() {
		return "", ErrUnbalancedBlock
	}
	return e.Text(), nil
}

// RenderDeclaration produces the declaration-surface text of an entity.
func RenderDeclaration(en Entity, style Style) (string, error) {
	return Render(en, Declaration, style)
}

// RenderDefinition produces the definition-surface text of an entity.
// Entities with nothing to define out of line produce an empty string.
func RenderDefinition(en Entity, style Style) (string, error) {
	return Render(en, Definition, style)
}

// RenderPair produces both surfaces of a class from a single tree,
// keeping member order identical on both sides.
func RenderPair(c *Class, style Style) (decl, def string, err error) {
	decl, err = Render(c, Declaration, style)
	if err != nil {
		return "", "", err
	}
	def, err = Render(c, Definition, style)
	if err != nil {
		return "", "", err
	}
	return decl, def, nil
}
