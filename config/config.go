// Package config loads the JSON codefile configuration and builds the
// entity tree the renderers consume. The file format allows // comments;
// unknown fields are rejected so typos surface as load errors instead of
// silently dropped attributes.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"muzzammil.xyz/jsonc"

	"github.com/rubiojr/cppgen/cpp"
)

// Config is the root of a codefile document.
type Config struct {
	Codefiles []Codefile `json:"codefiles"`
}

// Codefile describes one header/source pair to generate.
type Codefile struct {
	Name          string         `json:"name"`
	Guard         string         `json:"guard,omitempty"`
	Includes      []string       `json:"includes,omitempty"`
	LocalIncludes []string       `json:"local_includes,omitempty"`
	Enums         []EnumSpec     `json:"enums,omitempty"`
	Variables     []VariableSpec `json:"variables,omitempty"`
	Functions     []FunctionSpec `json:"functions,omitempty"`
	Classes       []ClassSpec    `json:"classes,omitempty"`
}

// VariableSpec mirrors cpp.Variable field by field.
type VariableSpec struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Init      string `json:"init,omitempty"`
	Doc       string `json:"doc,omitempty"`
	Static    bool   `json:"static,omitempty"`
	Const     bool   `json:"const,omitempty"`
	Constexpr bool   `json:"constexpr,omitempty"`
}

// ArgSpec is one function parameter.
type ArgSpec struct {
	Type    string `json:"type"`
	Name    string `json:"name,omitempty"`
	Default string `json:"default,omitempty"`
}

// FunctionSpec mirrors cpp.Function. Body holds raw statement lines;
// a missing body means declaration-only.
type FunctionSpec struct {
	Name      string    `json:"name"`
	Return    string    `json:"return,omitempty"`
	Args      []ArgSpec `json:"args,omitempty"`
	Doc       string    `json:"doc,omitempty"`
	Static    bool      `json:"static,omitempty"`
	Virtual   bool      `json:"virtual,omitempty"`
	Constexpr bool      `json:"constexpr,omitempty"`
	Const     bool      `json:"const,omitempty"`
	Pure      bool      `json:"pure,omitempty"`
	Body      []string  `json:"body,omitempty"`
}

// EnumItemSpec is one enumerator: a name, and optionally an explicit
// value expression.
type EnumItemSpec struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// EnumSpec mirrors cpp.Enum. Prefix is prepended to every item name.
type EnumSpec struct {
	Name   string         `json:"name"`
	Prefix string         `json:"prefix,omitempty"`
	Doc    string         `json:"doc,omitempty"`
	Items  []EnumItemSpec `json:"items,omitempty"`
}

// MemberSpec is one class member: exactly one of variable, function,
// class or enum must be set. A single ordered array keeps the declared
// member order, which both output surfaces preserve.
type MemberSpec struct {
	Visibility string        `json:"visibility,omitempty"`
	Variable   *VariableSpec `json:"variable,omitempty"`
	Function   *FunctionSpec `json:"function,omitempty"`
	Class      *ClassSpec    `json:"class,omitempty"`
	Enum       *EnumSpec     `json:"enum,omitempty"`
}

// ClassSpec describes a class or struct and its members.
type ClassSpec struct {
	Name    string       `json:"name"`
	Kind    string       `json:"kind,omitempty"` // "class" (default) or "struct"
	Base    string       `json:"base,omitempty"`
	Doc     string       `json:"doc,omitempty"`
	Members []MemberSpec `json:"members,omitempty"`
}

// Load reads, strips comments from, and parses a codefile document.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithMessagef(err, "reading config %s", path)
	}
	cfg, err := Parse(raw)
	if err != nil {
		return nil, errors.WithMessagef(err, "config %s", path)
	}
	return cfg, nil
}

// Parse parses a codefile document from memory.
func Parse(raw []byte) (*Config, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(raw)))
	dec.DisallowUnknownFields()
	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.WithMessage(err, "parsing JSON")
	}
	if len(cfg.Codefiles) == 0 {
		return nil, errors.New("no codefiles defined")
	}
	for i := range cfg.Codefiles {
		if cfg.Codefiles[i].Name == "" {
			return nil, errors.Errorf("codefile %d: name is required", i)
		}
	}
	return &cfg, nil
}

func parseVisibility(s string, kind cpp.Kind) (cpp.Visibility, error) {
	switch s {
	case "":
		return kind.DefaultVisibility(), nil
	case "public":
		return cpp.Public, nil
	case "protected":
		return cpp.Protected, nil
	case "private":
		return cpp.Private, nil
	}
	return 0, errors.Errorf("unknown visibility %q", s)
}

func parseKind(s string) (cpp.Kind, error) {
	switch s {
	case "", "class":
		return cpp.ClassKind, nil
	case "struct":
		return cpp.StructKind, nil
	}
	return 0, errors.Errorf("unknown kind %q", s)
}

func buildEnum(spec *EnumSpec) (*cpp.Enum, error) {
	items := make([]cpp.EnumItem, 0, len(spec.Items))
	for _, it := range spec.Items {
		items = append(items, cpp.EnumItem{Name: it.Name, Value: it.Value})
	}
	return cpp.NewEnum(cpp.Enum{
		Name:   spec.Name,
		Prefix: spec.Prefix,
		Doc:    spec.Doc,
		Items:  items,
	})
}

func buildVariable(spec *VariableSpec) (*cpp.Variable, error) {
	return cpp.NewVariable(cpp.Variable{
		Name:      spec.Name,
		Type:      spec.Type,
		Init:      spec.Init,
		Doc:       spec.Doc,
		Static:    spec.Static,
		Const:     spec.Const,
		Constexpr: spec.Constexpr,
	})
}

// bodyFromLines turns raw statement lines into a body callback that
// plays them back through the emitter it is handed.
func bodyFromLines(stmts []string) cpp.BodyFunc {
	if stmts == nil {
		return nil
	}
	return func(e *cpp.Emitter) error {
		for _, s := range stmts {
			e.Line(s)
		}
		return nil
	}
}

func buildFunction(spec *FunctionSpec) (*cpp.Function, error) {
	args := make([]cpp.Arg, 0, len(spec.Args))
	for _, a := range spec.Args {
		args = append(args, cpp.Arg{Type: a.Type, Name: a.Name, Default: a.Default})
	}
	return cpp.NewFunction(cpp.Function{
		Name:         spec.Name,
		Ret:          spec.Return,
		Args:         args,
		Doc:          spec.Doc,
		Static:       spec.Static,
		Virtual:      spec.Virtual,
		Constexpr:    spec.Constexpr,
		ConstPostfix: spec.Const,
		Pure:         spec.Pure,
		Body:         bodyFromLines(spec.Body),
	})
}

func buildClass(spec *ClassSpec) (*cpp.Class, error) {
	kind, err := parseKind(spec.Kind)
	if err != nil {
		return nil, errors.WithMessagef(err, "class %s", spec.Name)
	}
	cls, err := cpp.NewClass(cpp.Class{
		Name: spec.Name,
		Kind: kind,
		Base: spec.Base,
		Doc:  spec.Doc,
	})
	if err != nil {
		return nil, err
	}
	for i, m := range spec.Members {
		set := 0
		for _, has := range []bool{m.Variable != nil, m.Function != nil, m.Class != nil, m.Enum != nil} {
			if has {
				set++
			}
		}
		if set != 1 {
			return nil, errors.Errorf("class %s: member %d must set exactly one of variable, function, class, enum", spec.Name, i)
		}
		vis, err := parseVisibility(m.Visibility, kind)
		if err != nil {
			return nil, errors.WithMessagef(err, "class %s: member %d", spec.Name, i)
		}
		switch {
		case m.Variable != nil:
			v, err := buildVariable(m.Variable)
			if err != nil {
				return nil, errors.WithMessagef(err, "class %s", spec.Name)
			}
			cls.AddVariable(vis, v)
		case m.Function != nil:
			f, err := buildFunction(m.Function)
			if err != nil {
				return nil, errors.WithMessagef(err, "class %s", spec.Name)
			}
			cls.AddFunction(vis, f)
		case m.Class != nil:
			nested, err := buildClass(m.Class)
			if err != nil {
				return nil, errors.WithMessagef(err, "class %s", spec.Name)
			}
			cls.AddClass(vis, nested)
		case m.Enum != nil:
			en, err := buildEnum(m.Enum)
			if err != nil {
				return nil, errors.WithMessagef(err, "class %s", spec.Name)
			}
			cls.AddEnum(vis, en)
		}
	}
	return cls, nil
}

// Build constructs the ordered entity tree of a codefile: enums first
// so their constants precede any use, then file-scope variables, free
// functions, and classes. All entity validation happens here, before
// any rendering starts.
func (cf *Codefile) Build() ([]cpp.Entity, error) {
	var out []cpp.Entity
	for i := range cf.Enums {
		en, err := buildEnum(&cf.Enums[i])
		if err != nil {
			return nil, fmt.Errorf("codefile %s: %w", cf.Name, err)
		}
		out = append(out, en)
	}
	for i := range cf.Variables {
		v, err := buildVariable(&cf.Variables[i])
		if err != nil {
			return nil, fmt.Errorf("codefile %s: %w", cf.Name, err)
		}
		out = append(out, v)
	}
	for i := range cf.Functions {
		f, err := buildFunction(&cf.Functions[i])
		if err != nil {
			return nil, fmt.Errorf("codefile %s: %w", cf.Name, err)
		}
		out = append(out, f)
	}
	for i := range cf.Classes {
		c, err := buildClass(&cf.Classes[i])
		if err != nil {
			return nil, fmt.Errorf("codefile %s: %w", cf.Name, err)
		}
		out = append(out, c)
	}
	return out, nil
}
