package classfile

// Annotation is one runtime (visible or invisible) annotation
type Annotation struct {
	Type     string // field descriptor, e.g. "Lorg/moe/natj/objc/ann/Selector;"
	Elements []Element
}

// Element is one name/value pair of an annotation
type Element struct {
	Name  string
	Value ElementValue
}

// ElementValue holds one annotation element value. Tag selects the populated field.
type ElementValue struct {
	Tag        byte
	Const      interface{} // int32, int64, float32, float64 or string
	EnumType   string
	EnumConst  string
	Class      string
	Annotation *Annotation
	Values     []ElementValue
}

// Value returns the element with the given name
func (a Annotation) Value(name string) (ElementValue, bool) {
	for _, e := range a.Elements {
		if e.Name == name {
			return e.Value, true
		}
	}
	return ElementValue{}, false
}

// String returns a string-typed element
func (a Annotation) String(name string) (string, bool) {
	v, ok := a.Value(name)
	if !ok || v.Tag != 's' {
		return "", false
	}
	s, ok := v.Const.(string)
	return s, ok
}

func findAnnotation(anns []Annotation, desc string) (Annotation, bool) {
	for _, a := range anns {
		if a.Type == desc {
			return a, true
		}
	}
	return Annotation{}, false
}

func readAnnotations(r *reader, pool constantPool) []Annotation {
	count := int(r.u2("annotations count"))
	anns := make([]Annotation, 0, count)
	for i := 0; i < count && r.ok(); i++ {
		anns = append(anns, readAnnotation(r, pool, 0))
	}
	return anns
}

func readAnnotation(r *reader, pool constantPool, depth int) Annotation {
	a := Annotation{Type: pool.utf8(r, r.u2("annotation type"), "annotation type")}
	count := int(r.u2("element count"))
	for i := 0; i < count && r.ok(); i++ {
		name := pool.utf8(r, r.u2("element name"), "element name")
		a.Elements = append(a.Elements, Element{Name: name, Value: readElementValue(r, pool, depth)})
	}
	return a
}

// maxElementDepth bounds nested annotation/array values
const maxElementDepth = 64

func readElementValue(r *reader, pool constantPool, depth int) ElementValue {
	if depth > maxElementDepth {
		r.fail("annotation values nested deeper than %d", maxElementDepth)
		return ElementValue{}
	}

	v := ElementValue{Tag: r.u1("element tag")}
	if !r.ok() {
		return v
	}

	switch v.Tag {
	case 'B', 'C', 'I', 'S', 'Z':
		v.Const = pool.value(r, r.u2("const value"), tagInteger, "annotation constant")
	case 'J':
		v.Const = pool.value(r, r.u2("const value"), tagLong, "annotation constant")
	case 'F':
		v.Const = pool.value(r, r.u2("const value"), tagFloat, "annotation constant")
	case 'D':
		v.Const = pool.value(r, r.u2("const value"), tagDouble, "annotation constant")
	case 's':
		v.Const = pool.utf8(r, r.u2("const value"), "annotation string")
	case 'e':
		v.EnumType = pool.utf8(r, r.u2("enum type"), "enum type")
		v.EnumConst = pool.utf8(r, r.u2("enum constant"), "enum constant")
	case 'c':
		v.Class = pool.utf8(r, r.u2("class info"), "class value")
	case '@':
		nested := readAnnotation(r, pool, depth+1)
		v.Annotation = &nested
	case '[':
		count := int(r.u2("array length"))
		v.Values = make([]ElementValue, 0, count)
		for i := 0; i < count && r.ok(); i++ {
			v.Values = append(v.Values, readElementValue(r, pool, depth+1))
		}
	default:
		r.pos--
		r.fail("unknown element value tag %q", v.Tag)
	}
	return v
}
