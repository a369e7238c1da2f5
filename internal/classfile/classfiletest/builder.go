// Package classfiletest assembles minimal class files for tests.
package classfiletest

import (
	"bytes"
	"encoding/binary"
	"unicode/utf16"
)

// Ann describes one annotation with string-valued elements
type Ann struct {
	Type      string // descriptor, e.g. "Lorg/moe/natj/objc/ann/Selector;"
	Values    []KV
	Invisible bool // emit as RuntimeInvisibleAnnotations
}

// KV is one string element of an annotation
type KV struct {
	Name  string
	Value string
}

// A builds an annotation from a descriptor and name/value pairs
func A(desc string, pairs ...string) Ann {
	a := Ann{Type: desc}
	for i := 0; i+1 < len(pairs); i += 2 {
		a.Values = append(a.Values, KV{Name: pairs[i], Value: pairs[i+1]})
	}
	return a
}

// MethodSpec describes one method
type MethodSpec struct {
	Access      uint16
	Name        string
	Descriptor  string
	Annotations []Ann
	Code        []byte // emitted as an opaque Code attribute when non-nil
}

type fieldSpec struct {
	name, desc string
}

// Builder assembles a class file
type Builder struct {
	name        string
	super       string
	access      uint16
	interfaces  []string
	annotations []Ann
	methods     []MethodSpec
	fields      []fieldSpec
	longs       []int64

	pool    bytes.Buffer
	count   uint16
	utf8s   map[string]uint16
	classes map[string]uint16
}

// Class starts a public class extending java/lang/Object
func Class(name string) *Builder {
	return &Builder{
		name:   name,
		super:  "java/lang/Object",
		access: 0x0021,
	}
}

// Super sets the super class; an empty name emits super_class = 0
func (b *Builder) Super(name string) *Builder {
	b.super = name
	return b
}

// Access replaces the class access flags
func (b *Builder) Access(flags uint16) *Builder {
	b.access = flags
	return b
}

// Implements adds directly implemented interfaces
func (b *Builder) Implements(names ...string) *Builder {
	b.interfaces = append(b.interfaces, names...)
	return b
}

// Annotate adds class annotations
func (b *Builder) Annotate(anns ...Ann) *Builder {
	b.annotations = append(b.annotations, anns...)
	return b
}

// Method adds a method
func (b *Builder) Method(m MethodSpec) *Builder {
	b.methods = append(b.methods, m)
	return b
}

// Field adds a field without attributes
func (b *Builder) Field(name, desc string) *Builder {
	b.fields = append(b.fields, fieldSpec{name: name, desc: desc})
	return b
}

// Long adds an unused long constant to the pool
func (b *Builder) Long(v int64) *Builder {
	b.longs = append(b.longs, v)
	return b
}

// Bytes returns the assembled class file
func (b *Builder) Bytes() []byte {
	b.pool.Reset()
	b.count = 1
	b.utf8s = make(map[string]uint16)
	b.classes = make(map[string]uint16)

	var body bytes.Buffer
	u2 := func(v uint16) { _ = binary.Write(&body, binary.BigEndian, v) }

	for _, v := range b.longs {
		b.pool.WriteByte(5)
		_ = binary.Write(&b.pool, binary.BigEndian, v)
		b.count += 2
	}

	u2(b.access)
	u2(b.class(b.name))
	if b.super == "" {
		u2(0)
	} else {
		u2(b.class(b.super))
	}

	u2(uint16(len(b.interfaces)))
	for _, itf := range b.interfaces {
		u2(b.class(itf))
	}

	u2(uint16(len(b.fields)))
	for _, f := range b.fields {
		u2(0x0002)
		u2(b.utf8(f.name))
		u2(b.utf8(f.desc))
		u2(0)
	}

	u2(uint16(len(b.methods)))
	for _, m := range b.methods {
		u2(m.Access)
		u2(b.utf8(m.Name))
		u2(b.utf8(m.Descriptor))
		attrs := b.annotationAttributes(m.Annotations)
		if m.Code != nil {
			var code bytes.Buffer
			_ = binary.Write(&code, binary.BigEndian, b.utf8("Code"))
			_ = binary.Write(&code, binary.BigEndian, uint32(len(m.Code)))
			code.Write(m.Code)
			attrs = append(attrs, code.Bytes())
		}
		u2(uint16(len(attrs)))
		for _, a := range attrs {
			body.Write(a)
		}
	}

	attrs := b.annotationAttributes(b.annotations)
	u2(uint16(len(attrs)))
	for _, a := range attrs {
		body.Write(a)
	}

	var out bytes.Buffer
	_ = binary.Write(&out, binary.BigEndian, uint32(0xCAFEBABE))
	_ = binary.Write(&out, binary.BigEndian, uint16(0))
	_ = binary.Write(&out, binary.BigEndian, uint16(52))
	_ = binary.Write(&out, binary.BigEndian, b.count)
	out.Write(b.pool.Bytes())
	out.Write(body.Bytes())
	return out.Bytes()
}

func (b *Builder) annotationAttributes(anns []Ann) [][]byte {
	var visible, invisible []Ann
	for _, a := range anns {
		if a.Invisible {
			invisible = append(invisible, a)
		} else {
			visible = append(visible, a)
		}
	}

	var attrs [][]byte
	if len(visible) > 0 {
		attrs = append(attrs, b.annotationAttribute("RuntimeVisibleAnnotations", visible))
	}
	if len(invisible) > 0 {
		attrs = append(attrs, b.annotationAttribute("RuntimeInvisibleAnnotations", invisible))
	}
	return attrs
}

func (b *Builder) annotationAttribute(name string, anns []Ann) []byte {
	var payload bytes.Buffer
	_ = binary.Write(&payload, binary.BigEndian, uint16(len(anns)))
	for _, a := range anns {
		_ = binary.Write(&payload, binary.BigEndian, b.utf8(a.Type))
		_ = binary.Write(&payload, binary.BigEndian, uint16(len(a.Values)))
		for _, kv := range a.Values {
			_ = binary.Write(&payload, binary.BigEndian, b.utf8(kv.Name))
			payload.WriteByte('s')
			_ = binary.Write(&payload, binary.BigEndian, b.utf8(kv.Value))
		}
	}

	var attr bytes.Buffer
	_ = binary.Write(&attr, binary.BigEndian, b.utf8(name))
	_ = binary.Write(&attr, binary.BigEndian, uint32(payload.Len()))
	attr.Write(payload.Bytes())
	return attr.Bytes()
}

func (b *Builder) utf8(s string) uint16 {
	if idx, ok := b.utf8s[s]; ok {
		return idx
	}
	enc := EncodeModifiedUTF8(s)
	b.pool.WriteByte(1)
	_ = binary.Write(&b.pool, binary.BigEndian, uint16(len(enc)))
	b.pool.Write(enc)
	idx := b.count
	b.count++
	b.utf8s[s] = idx
	return idx
}

func (b *Builder) class(name string) uint16 {
	if idx, ok := b.classes[name]; ok {
		return idx
	}
	nameIdx := b.utf8(name)
	b.pool.WriteByte(7)
	_ = binary.Write(&b.pool, binary.BigEndian, nameIdx)
	idx := b.count
	b.count++
	b.classes[name] = idx
	return idx
}

// EncodeModifiedUTF8 encodes s the way the JVM stores CONSTANT_Utf8 entries
func EncodeModifiedUTF8(s string) []byte {
	var out []byte
	for _, u := range utf16.Encode([]rune(s)) {
		switch {
		case u != 0 && u < 0x80:
			out = append(out, byte(u))
		case u < 0x800:
			out = append(out, byte(0xC0|u>>6), byte(0x80|u&0x3F))
		default:
			out = append(out, byte(0xE0|u>>12), byte(0x80|(u>>6)&0x3F), byte(0x80|u&0x3F))
		}
	}
	return out
}
