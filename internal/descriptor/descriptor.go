// Package descriptor parses JVM field and method descriptors into semantic types.
package descriptor

import (
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Sort identifies the kind of a Type
type Sort int

const (
	Void Sort = iota
	Boolean
	Char
	Byte
	Short
	Int
	Float
	Long
	Double
	Array
	Object
)

// String returns the Java spelling of the sort
func (s Sort) String() string {
	switch s {
	case Void:
		return "void"
	case Boolean:
		return "boolean"
	case Char:
		return "char"
	case Byte:
		return "byte"
	case Short:
		return "short"
	case Int:
		return "int"
	case Float:
		return "float"
	case Long:
		return "long"
	case Double:
		return "double"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

var primitiveSorts = map[string]Sort{
	"V": Void,
	"Z": Boolean,
	"C": Char,
	"B": Byte,
	"S": Short,
	"I": Int,
	"F": Float,
	"J": Long,
	"D": Double,
}

// Type is a single field type, return type or argument type
type Type struct {
	Sort Sort
	// InternalName is set for Object types, e.g. "java/lang/String"
	InternalName string
	// Elem and Dims describe array types
	Elem *Type
	Dims int
}

// IsObject reports whether the type is a class or interface reference.
// Arrays are not objects here.
func (t Type) IsObject() bool {
	return t.Sort == Object
}

// ClassName returns the dotted Java name of the type, e.g. "java.lang.String" or "int[]"
func (t Type) ClassName() string {
	switch t.Sort {
	case Object:
		return strings.ReplaceAll(t.InternalName, "/", ".")
	case Array:
		return t.Elem.ClassName() + strings.Repeat("[]", t.Dims)
	default:
		return t.Sort.String()
	}
}

// Method is a parsed method descriptor
type Method struct {
	Args   []Type
	Return Type
}

// NumArgs returns the number of declared parameters
func (m Method) NumArgs() int {
	return len(m.Args)
}

// ArgClassNames returns the dotted names of all arguments
func (m Method) ArgClassNames() []string {
	names := make([]string, len(m.Args))
	for i, arg := range m.Args {
		names[i] = arg.ClassName()
	}
	return names
}

type methodGrammar struct {
	Params []*fieldGrammar `parser:"'(' @@* ')'"`
	Return *fieldGrammar   `parser:"@@"`
}

type fieldGrammar struct {
	Dims      []string `parser:"( @'[' )*"`
	Object    string   `parser:"( @Object"`
	Primitive string   `parser:"| @Primitive )"`
}

var descriptorLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Object", Pattern: `L[^;()\[]+;`},
	{Name: "Primitive", Pattern: `[VZCBSIFJD]`},
	{Name: "Bracket", Pattern: `\[`},
	{Name: "Punct", Pattern: `[()]`},
})

var methodParser = participle.MustBuild[methodGrammar](participle.Lexer(descriptorLexer))

var methodCache sync.Map // descriptor string -> Method

// ParseMethod parses a method descriptor such as "(Ljava/lang/Object;I)V"
func ParseMethod(desc string) (Method, error) {
	if cached, ok := methodCache.Load(desc); ok {
		return cached.(Method), nil
	}

	parsed, err := methodParser.ParseString("", desc)
	if err != nil {
		return Method{}, fmt.Errorf("invalid method descriptor %q: %w", desc, err)
	}

	m := Method{Args: make([]Type, 0, len(parsed.Params))}
	for i, p := range parsed.Params {
		arg, err := p.toType()
		if err != nil {
			return Method{}, fmt.Errorf("invalid method descriptor %q: %w", desc, err)
		}
		if arg.Sort == Void {
			return Method{}, fmt.Errorf("invalid method descriptor %q: argument %d is void", desc, i)
		}
		m.Args = append(m.Args, arg)
	}

	ret, err := parsed.Return.toType()
	if err != nil {
		return Method{}, fmt.Errorf("invalid method descriptor %q: %w", desc, err)
	}
	m.Return = ret

	methodCache.Store(desc, m)
	return m, nil
}

func (f *fieldGrammar) toType() (Type, error) {
	var elem Type
	switch {
	case f.Object != "":
		elem = Type{Sort: Object, InternalName: f.Object[1 : len(f.Object)-1]}
	case f.Primitive != "":
		elem = Type{Sort: primitiveSorts[f.Primitive]}
	default:
		return Type{}, fmt.Errorf("missing element type")
	}

	if len(f.Dims) == 0 {
		return elem, nil
	}
	if elem.Sort == Void {
		return Type{}, fmt.Errorf("array of void")
	}
	return Type{Sort: Array, Elem: &elem, Dims: len(f.Dims)}, nil
}
