package cpp

import (
	"fmt"
	"regexp"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func checkIdent(name string) error {
	if !identPattern.MatchString(name) {
		return &IdentifierError{Name: name}
	}
	return nil
}

// Entity is the interface for all C++ constructs the renderers accept.
type Entity interface {
	entity()
}

// Visibility is a C++ class access specifier.
type Visibility int

const (
	Public Visibility = iota
	Protected
	Private
)

func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case Protected:
		return "protected"
	default:
		return "private"
	}
}

// Variable describes a C++ variable. Type and Init are opaque text
// fragments; only Name is shape-checked. Variables are read-only once
// constructed.
type Variable struct {
	Name      string
	Type      string
	Init      string // initializer expression, empty for none
	Doc       string // verbatim documentation lines placed above
	Static    bool
	Const     bool
	Constexpr bool
}

func (v *Variable) entity() {}

// NewVariable validates v and returns a copy. Constexpr variables need
// an initializer, and const/constexpr are mutually exclusive spellings
// of the same intent.
func NewVariable(v Variable) (*Variable, error) {
	if err := checkIdent(v.Name); err != nil {
		return nil, err
	}
	if v.Type == "" {
		return nil, fmt.Errorf("variable %s: type cannot be empty", v.Name)
	}
	if v.Const && v.Constexpr {
		return nil, fmt.Errorf("variable %s: const and constexpr are mutually exclusive", v.Name)
	}
	if v.Constexpr && v.Init == "" {
		return nil, fmt.Errorf("variable %s: constexpr requires an initializer", v.Name)
	}
	return &v, nil
}

// Arg is one function parameter. Order in Function.Args defines the
// call signature. Default is the parameter's default value expression
// and appears only at the declaration site.
type Arg struct {
	Type    string
	Name    string
	Default string
}

func (a Arg) decl() string {
	s := a.Type
	if a.Name != "" {
		s += " " + a.Name
	}
	if a.Default != "" {
		s += " = " + a.Default
	}
	return s
}

func (a Arg) def() string {
	s := a.Type
	if a.Name != "" {
		s += " " + a.Name
	}
	return s
}

// BodyFunc produces the statements of a function body by driving the
// emitter it is handed. It sees nothing but the emitter; the entity
// graph is not its business.
type BodyFunc func(*Emitter) error

// Function describes a C++ function or method. A nil Body means the
// function is declaration-only (an interface method, say) and is
// omitted from the definition surface.
type Function struct {
	Name         string
	Ret          string // empty means void
	Args         []Arg
	Doc          string
	Static       bool
	Virtual      bool
	Constexpr    bool
	ConstPostfix bool // trailing const qualifier
	Pure         bool // pure virtual, "= 0"
	Body         BodyFunc
}

func (f *Function) entity() {}

// NewFunction validates f and returns a copy.
func NewFunction(f Function) (*Function, error) {
	if err := checkIdent(f.Name); err != nil {
		return nil, err
	}
	for _, a := range f.Args {
		if a.Type == "" {
			return nil, fmt.Errorf("function %s: argument type cannot be empty", f.Name)
		}
		if a.Name != "" {
			if err := checkIdent(a.Name); err != nil {
				return nil, err
			}
		}
	}
	if f.Static && f.Virtual {
		return nil, fmt.Errorf("function %s: static and virtual are mutually exclusive", f.Name)
	}
	if f.Pure && !f.Virtual {
		return nil, fmt.Errorf("function %s: pure requires virtual", f.Name)
	}
	if f.Pure && f.Body != nil {
		return nil, fmt.Errorf("function %s: pure virtual functions cannot have a body", f.Name)
	}
	if f.Constexpr && f.Body == nil {
		return nil, fmt.Errorf("function %s: constexpr requires a body", f.Name)
	}
	return &f, nil
}

// EnumItem is one enumerator. An empty Value lets the compiler assign
// the constant.
type EnumItem struct {
	Name  string
	Value string
}

// Enum describes a C++ enumeration. Prefix, when set, is prepended to
// every item name as emitted. Enums are declaration-only; the
// definition surface has nothing to add for them.
type Enum struct {
	Name   string
	Prefix string
	Doc    string
	Items  []EnumItem
}

func (e *Enum) entity() {}

// NewEnum validates e and returns a copy. Item names are shape-checked
// before the prefix is applied; Value is an opaque expression.
func NewEnum(e Enum) (*Enum, error) {
	if err := checkIdent(e.Name); err != nil {
		return nil, err
	}
	for _, it := range e.Items {
		if err := checkIdent(it.Name); err != nil {
			return nil, err
		}
	}
	return &e, nil
}

// AddItem appends an enumerator, with an explicit value when value is
// non-empty.
func (e *Enum) AddItem(name, value string) *Enum {
	e.Items = append(e.Items, EnumItem{Name: name, Value: value})
	return e
}

// Kind distinguishes class from struct. The kind decides the default
// member visibility.
type Kind int

const (
	ClassKind Kind = iota
	StructKind
)

func (k Kind) String() string {
	if k == StructKind {
		return "struct"
	}
	return "class"
}

// DefaultVisibility returns the access members get when none is given:
// private for classes, public for structs.
func (k Kind) DefaultVisibility() Visibility {
	if k == StructKind {
		return Public
	}
	return Private
}

// Member pairs one class member with its access specifier. Exactly one
// of Variable, Function, Class, Enum is set.
type Member struct {
	Visibility Visibility
	Variable   *Variable
	Function   *Function
	Class      *Class
	Enum       *Enum
}

// Class describes a C++ class or struct. Members keep declaration
// order; both output surfaces preserve it.
type Class struct {
	Name    string
	Kind    Kind
	Base    string // base type name, empty for none
	Doc     string
	Members []Member
}

func (c *Class) entity() {}

// NewClass validates c and returns a copy.
func NewClass(c Class) (*Class, error) {
	if err := checkIdent(c.Name); err != nil {
		return nil, err
	}
	return &c, nil
}

// AddVariable appends a member variable with the given visibility.
func (c *Class) AddVariable(vis Visibility, v *Variable) *Class {
	c.Members = append(c.Members, Member{Visibility: vis, Variable: v})
	return c
}

// AddFunction appends a method with the given visibility.
func (c *Class) AddFunction(vis Visibility, f *Function) *Class {
	c.Members = append(c.Members, Member{Visibility: vis, Function: f})
	return c
}

// AddClass appends a nested class with the given visibility.
func (c *Class) AddClass(vis Visibility, nested *Class) *Class {
	c.Members = append(c.Members, Member{Visibility: vis, Class: nested})
	return c
}

// AddEnum appends a nested enum with the given visibility.
func (c *Class) AddEnum(vis Visibility, en *Enum) *Class {
	c.Members = append(c.Members, Member{Visibility: vis, Enum: en})
	return c
}
