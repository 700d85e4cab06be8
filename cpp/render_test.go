package cpp

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustVariable(t *testing.T, v Variable) *Variable {
	t.Helper()
	out, err := NewVariable(v)
	require.NoError(t, err)
	return out
}

func mustFunction(t *testing.T, f Function) *Function {
	t.Helper()
	out, err := NewFunction(f)
	require.NoError(t, err)
	return out
}

func mustClass(t *testing.T, c Class) *Class {
	t.Helper()
	out, err := NewClass(c)
	require.NoError(t, err)
	return out
}

func lines(body ...string) BodyFunc {
	return func(e *Emitter) error {
		for _, l := range body {
			e.Line(l)
		}
		return nil
	}
}

func TestVariableDeclaration(t *testing.T) {
	v := mustVariable(t, Variable{Name: "count", Type: "int", Init: "0"})
	got, err := RenderDeclaration(v, nil)
	require.NoError(t, err)
	assert.Equal(t, "int count = 0;", got)
}

func TestVariableDeclarationConst(t *testing.T) {
	v := mustVariable(t, Variable{Name: "var1", Type: "char*", Const: true, Init: "0"})
	got, err := RenderDeclaration(v, nil)
	require.NoError(t, err)
	assert.Equal(t, "const char* var1 = 0;", got)
}

func TestVariableDeclarationConstexpr(t *testing.T) {
	v := mustVariable(t, Variable{Name: "COUNT", Type: "int", Constexpr: true, Init: "0"})
	got, err := RenderDeclaration(v, nil)
	require.NoError(t, err)
	assert.Equal(t, "constexpr int COUNT = 0;", got)
}

func TestVariableDeclarationNoInit(t *testing.T) {
	v := mustVariable(t, Variable{Name: "x", Type: "int"})
	got, err := RenderDeclaration(v, nil)
	require.NoError(t, err)
	assert.Equal(t, "int x;", got)
}

func TestVariableDeclarationDoc(t *testing.T) {
	v := mustVariable(t, Variable{
		Name: "a", Type: "int", Init: "0",
		Doc: "/// Example documentation for variable a.",
	})
	got, err := RenderDeclaration(v, nil)
	require.NoError(t, err)
	assert.Equal(t, "/// Example documentation for variable a.\nint a = 0;", got)
}

func TestVariableDefinitionDefaults(t *testing.T) {
	cases := []struct {
		typ  string
		want string
	}{
		{"int", "int x = 0;"},
		{"size_t", "size_t x = 0;"},
		{"float", "float x = 0.0;"},
		{"std::string", `std::string x = "";`},
		{"char*", `char* x = "";`},
	}
	for _, tc := range cases {
		v := mustVariable(t, Variable{Name: "x", Type: tc.typ})
		got, err := RenderDefinition(v, nil)
		require.NoError(t, err, tc.typ)
		assert.Equal(t, tc.want, got, tc.typ)
	}
}

func TestVariableDefinitionNoDefaultKnown(t *testing.T) {
	v := mustVariable(t, Variable{Name: "obj", Type: "Widget"})
	_, err := RenderDefinition(v, nil)
	assert.ErrorContains(t, err, "no default init value")
}

func TestFunctionDeclaration(t *testing.T) {
	f := mustFunction(t, Function{Name: "GetItem", Ret: "int"})
	got, err := RenderDeclaration(f, nil)
	require.NoError(t, err)
	assert.Equal(t, "int GetItem();", got)
}

func TestFunctionDeclarationVoidDefault(t *testing.T) {
	f := mustFunction(t, Function{Name: "Foo"})
	got, err := RenderDeclaration(f, nil)
	require.NoError(t, err)
	assert.Equal(t, "void Foo();", got)
}

func TestFunctionDeclarationSpecifierOrder(t *testing.T) {
	f := mustFunction(t, Function{
		Name: "factorial", Ret: "int", Constexpr: true,
		Args: []Arg{{Type: "int", Name: "n"}},
		Body: lines("return n <= 1 ? 1 : (n * factorial(n - 1));"),
	})
	got, err := RenderDeclaration(f, nil)
	require.NoError(t, err)
	assert.Equal(t, "constexpr int factorial(int n);", got)
}

func TestFunctionDeclarationPureVirtual(t *testing.T) {
	f := mustFunction(t, Function{
		Name: "Area", Ret: "double", Virtual: true, Pure: true, ConstPostfix: true,
	})
	got, err := RenderDeclaration(f, nil)
	require.NoError(t, err)
	assert.Equal(t, "virtual double Area() const = 0;", got)
}

func TestFunctionDeclarationArgDefaults(t *testing.T) {
	f := mustFunction(t, Function{
		Name: "Log", Args: []Arg{
			{Type: "const char*", Name: "msg"},
			{Type: "int", Name: "level", Default: "0"},
		},
	})
	got, err := RenderDeclaration(f, nil)
	require.NoError(t, err)
	assert.Equal(t, "void Log(const char* msg, int level = 0);", got)
}

func TestFunctionDefinition(t *testing.T) {
	f := mustFunction(t, Function{
		Name: "factorial", Ret: "int", Constexpr: true,
		Args: []Arg{{Type: "int", Name: "n"}},
		Body: lines("return n <= 1 ? 1 : (n * factorial(n - 1));"),
	})
	got, err := RenderDefinition(f, nil)
	require.NoError(t, err)
	want := "int factorial(int n)\n" +
		"{\n" +
		"\treturn n <= 1 ? 1 : (n * factorial(n - 1));\n" +
		"}"
	assert.Equal(t, want, got)
}

func TestFunctionDefinitionOmitsArgDefaults(t *testing.T) {
	f := mustFunction(t, Function{
		Name: "Log", Args: []Arg{{Type: "int", Name: "level", Default: "0"}},
		Body: lines("(void)level;"),
	})
	got, err := RenderDefinition(f, nil)
	require.NoError(t, err)
	assert.Equal(t, "void Log(int level)\n{\n\t(void)level;\n}", got)
}

func TestFunctionDefinitionNoBody(t *testing.T) {
	f := mustFunction(t, Function{Name: "Foo"})
	got, err := RenderDefinition(f, nil)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestFunctionDefinitionBodyError(t *testing.T) {
	boom := errors.New("body failed")
	f := mustFunction(t, Function{
		Name: "Foo",
		Body: func(e *Emitter) error { return boom },
	})
	_, err := RenderDefinition(f, nil)
	assert.ErrorIs(t, err, boom)
}

func mustEnum(t *testing.T, e Enum) *Enum {
	t.Helper()
	out, err := NewEnum(e)
	require.NoError(t, err)
	return out
}

func TestEnumDeclaration(t *testing.T) {
	e := mustEnum(t, Enum{Name: "Color"})
	e.AddItem("RED", "").AddItem("GREEN", "").AddItem("BLUE", "4")
	got, err := RenderDeclaration(e, nil)
	require.NoError(t, err)
	want := "enum Color\n" +
		"{\n" +
		"\tRED,\n" +
		"\tGREEN,\n" +
		"\tBLUE = 4\n" +
		"};"
	assert.Equal(t, want, got)
}

func TestEnumDeclarationPrefix(t *testing.T) {
	e := mustEnum(t, Enum{Name: "State", Prefix: "STATE_"})
	e.AddItem("IDLE", "").AddItem("BUSY", "")
	got, err := RenderDeclaration(e, nil)
	require.NoError(t, err)
	want := "enum State\n" +
		"{\n" +
		"\tSTATE_IDLE,\n" +
		"\tSTATE_BUSY\n" +
		"};"
	assert.Equal(t, want, got)
}

func TestEnumDefinitionEmpty(t *testing.T) {
	e := mustEnum(t, Enum{Name: "Color", Items: []EnumItem{{Name: "RED"}}})
	got, err := RenderDefinition(e, nil)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestEnumMemberInClass(t *testing.T) {
	c := mustClass(t, Class{Name: "Socket"})
	c.AddEnum(Public, mustEnum(t, Enum{Name: "State", Items: []EnumItem{
		{Name: "CLOSED"}, {Name: "OPEN"},
	}})).
		AddVariable(Private, mustVariable(t, Variable{Name: "m_state", Type: "State"}))
	decl, def, err := RenderPair(c, nil)
	require.NoError(t, err)
	wantDecl := "class Socket\n" +
		"{\n" +
		"public:\n" +
		"\tenum State\n" +
		"\t{\n" +
		"\t\tCLOSED,\n" +
		"\t\tOPEN\n" +
		"\t};\n" +
		"private:\n" +
		"\tState m_state;\n" +
		"};"
	assert.Equal(t, wantDecl, decl)
	assert.Equal(t, "", def)
}

func TestEmptyClass(t *testing.T) {
	c := mustClass(t, Class{Name: "Empty"})
	decl, def, err := RenderPair(c, nil)
	require.NoError(t, err)
	assert.Equal(t, "class Empty\n{\n};", decl)
	assert.Equal(t, "", def)
}

func TestClassVisibilityLabels(t *testing.T) {
	c := mustClass(t, Class{Name: "A"})
	c.AddVariable(Private, mustVariable(t, Variable{Name: "x", Type: "int"})).
		AddFunction(Public, mustFunction(t, Function{Name: "Foo"})).
		AddVariable(Private, mustVariable(t, Variable{Name: "y", Type: "float"}))
	got, err := RenderDeclaration(c, nil)
	require.NoError(t, err)
	want := "class A\n" +
		"{\n" +
		"\tint x;\n" +
		"public:\n" +
		"\tvoid Foo();\n" +
		"private:\n" +
		"\tfloat y;\n" +
		"};"
	assert.Equal(t, want, got)
}

func TestStructDefaultVisibility(t *testing.T) {
	c := mustClass(t, Class{Name: "Point", Kind: StructKind})
	c.AddVariable(Public, mustVariable(t, Variable{Name: "x", Type: "int"})).
		AddVariable(Public, mustVariable(t, Variable{Name: "y", Type: "int"}))
	got, err := RenderDeclaration(c, nil)
	require.NoError(t, err)
	want := "struct Point\n" +
		"{\n" +
		"\tint x;\n" +
		"\tint y;\n" +
		"};"
	assert.Equal(t, want, got)
}

func TestClassBase(t *testing.T) {
	c := mustClass(t, Class{Name: "Circle", Base: "Shape"})
	got, err := RenderDeclaration(c, nil)
	require.NoError(t, err)
	assert.Equal(t, "class Circle : public Shape\n{\n};", got)
}

func TestStaticMemberPair(t *testing.T) {
	c := mustClass(t, Class{Name: "MyClass", Kind: StructKind})
	c.AddVariable(Public, mustVariable(t, Variable{
		Name: "m_var", Type: "size_t", Static: true, Const: true, Init: "255",
	}))
	decl, def, err := RenderPair(c, nil)
	require.NoError(t, err)
	wantDecl := "struct MyClass\n" +
		"{\n" +
		"\tstatic const size_t m_var;\n" +
		"};"
	assert.Equal(t, wantDecl, decl)
	assert.Equal(t, "const size_t MyClass::m_var = 255;", def)
}

func TestMemberInitializerStaysInClass(t *testing.T) {
	c := mustClass(t, Class{Name: "Cfg"})
	c.AddVariable(Public, mustVariable(t, Variable{Name: "retries", Type: "int", Init: "5"}))
	decl, def, err := RenderPair(c, nil)
	require.NoError(t, err)
	wantDecl := "class Cfg\n" +
		"{\n" +
		"public:\n" +
		"\tint retries = 5;\n" +
		"};"
	assert.Equal(t, wantDecl, decl)
	assert.Equal(t, "", def)
}

func TestConstexprMemberStaysInline(t *testing.T) {
	c := mustClass(t, Class{Name: "Limits"})
	c.AddVariable(Public, mustVariable(t, Variable{
		Name: "MAX", Type: "int", Static: true, Constexpr: true, Init: "255",
	}))
	decl, def, err := RenderPair(c, nil)
	require.NoError(t, err)
	wantDecl := "class Limits\n" +
		"{\n" +
		"public:\n" +
		"\tstatic constexpr int MAX = 255;\n" +
		"};"
	assert.Equal(t, wantDecl, decl)
	assert.Equal(t, "", def)
}

func TestConstructor(t *testing.T) {
	c := mustClass(t, Class{Name: "A"})
	c.AddFunction(Public, mustFunction(t, Function{Name: "A", Body: lines()}))
	decl, def, err := RenderPair(c, nil)
	require.NoError(t, err)
	wantDecl := "class A\n" +
		"{\n" +
		"public:\n" +
		"\tA();\n" +
		"};"
	assert.Equal(t, wantDecl, decl)
	assert.Equal(t, "A::A()\n{\n}", def)
}

func TestDefinitionOrderMatchesDeclarationOrder(t *testing.T) {
	c := mustClass(t, Class{Name: "Counter"})
	c.AddVariable(Private, mustVariable(t, Variable{Name: "a", Type: "int", Static: true})).
		AddFunction(Public, mustFunction(t, Function{Name: "Bump", Body: lines("++a;")})).
		AddVariable(Private, mustVariable(t, Variable{Name: "c", Type: "int", Static: true}))
	def, err := RenderDefinition(c, nil)
	require.NoError(t, err)
	want := "int Counter::a = 0;\n" +
		"\n" +
		"void Counter::Bump()\n" +
		"{\n" +
		"\t++a;\n" +
		"}\n" +
		"\n" +
		"int Counter::c = 0;"
	assert.Equal(t, want, def)
}

func TestDeclarationOnlyMethodSkippedInDefinition(t *testing.T) {
	c := mustClass(t, Class{Name: "Iface"})
	c.AddFunction(Public, mustFunction(t, Function{Name: "Run", Virtual: true, Pure: true})).
		AddFunction(Public, mustFunction(t, Function{Name: "Stop", Body: lines("running = false;")}))
	def, err := RenderDefinition(c, nil)
	require.NoError(t, err)
	assert.Equal(t, "void Iface::Stop()\n{\n\trunning = false;\n}", def)
}

func TestNestedClassDefinitions(t *testing.T) {
	inner := mustClass(t, Class{Name: "Inner"})
	inner.AddFunction(Public, mustFunction(t, Function{Name: "Get", Ret: "int", Body: lines("return 1;")}))
	outer := mustClass(t, Class{Name: "Outer"})
	outer.AddClass(Private, inner).
		AddFunction(Public, mustFunction(t, Function{Name: "Run", Body: lines("Inner i;")}))
	def, err := RenderDefinition(outer, nil)
	require.NoError(t, err)
	want := "int Outer::Inner::Get()\n" +
		"{\n" +
		"\treturn 1;\n" +
		"}\n" +
		"\n" +
		"void Outer::Run()\n" +
		"{\n" +
		"\tInner i;\n" +
		"}"
	assert.Equal(t, want, def)
}

func TestNestedClassDeclaration(t *testing.T) {
	inner := mustClass(t, Class{Name: "B"})
	outer := mustClass(t, Class{Name: "A"})
	outer.AddClass(Private, inner)
	got, err := RenderDeclaration(outer, nil)
	require.NoError(t, err)
	want := "class A\n" +
		"{\n" +
		"\tclass B\n" +
		"\t{\n" +
		"\t};\n" +
		"};"
	assert.Equal(t, want, got)
}

func TestRenderPairDeterministic(t *testing.T) {
	c := mustClass(t, Class{Name: "Stable"})
	c.AddVariable(Private, mustVariable(t, Variable{Name: "n", Type: "int", Static: true, Init: "7"})).
		AddFunction(Public, mustFunction(t, Function{Name: "Get", Ret: "int", ConstPostfix: true, Body: lines("return n;")}))
	decl1, def1, err := RenderPair(c, nil)
	require.NoError(t, err)
	decl2, def2, err := RenderPair(c, nil)
	require.NoError(t, err)
	if diff := cmp.Diff(decl1, decl2); diff != "" {
		t.Fatalf("declaration surface not deterministic (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(def1, def2); diff != "" {
		t.Fatalf("definition surface not deterministic (-first +second):\n%s", diff)
	}
}

func TestRenderUnknownEntity(t *testing.T) {
	_, err := Render(nil, Declaration, nil)
	assert.Error(t, err)
}

func TestSurfaceString(t *testing.T) {
	assert.Equal(t, "declaration", Declaration.String())
	assert.Equal(t, "definition", Definition.String())
}
