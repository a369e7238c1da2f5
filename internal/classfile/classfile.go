// Package classfile reads the subset of the JVM class file format needed to
// recover type hierarchy, method signatures and annotations. Method bodies are
// skipped, not verified.
package classfile

import (
	"io"
	"strings"

	"github.com/toyz/ibcompose/internal/errors"
)

// Magic is the first word of every class file
const Magic = 0xCAFEBABE

// Access flags used by the scanner
const (
	AccPublic    = 0x0001
	AccStatic    = 0x0008
	AccInterface = 0x0200
	AccAbstract  = 0x0400
	AccModule    = 0x8000
)

const (
	attrVisibleAnnotations   = "RuntimeVisibleAnnotations"
	attrInvisibleAnnotations = "RuntimeInvisibleAnnotations"
)

// ClassFile is the parsed view of one class
type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	Access       uint16
	Name         string // internal name, e.g. "com/acme/Foo"
	SuperName    string // empty for java/lang/Object and module descriptors
	Interfaces   []string
	Annotations  []Annotation
	Methods      []Method
}

// IsModule reports whether the class file is a module descriptor
func (c *ClassFile) IsModule() bool {
	return c.Access&AccModule != 0
}

// Annotation returns the first annotation with the given type descriptor
func (c *ClassFile) Annotation(desc string) (Annotation, bool) {
	return findAnnotation(c.Annotations, desc)
}

// Method is a declared method
type Method struct {
	Access      uint16
	Name        string
	Descriptor  string
	Annotations []Annotation
}

// IsStatic reports whether the method is static
func (m Method) IsStatic() bool {
	return m.Access&AccStatic != 0
}

// Annotation returns the first annotation with the given type descriptor
func (m Method) Annotation(desc string) (Annotation, bool) {
	return findAnnotation(m.Annotations, desc)
}

// Read parses a class file from r
func Read(r io.Reader) (*ClassFile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.FileSystemErrorCode, "failed to read class data", err)
	}
	return Parse(data)
}

// Parse parses a class file held in memory
func Parse(data []byte) (*ClassFile, error) {
	r := newReader(data)
	cf := parse(r)
	if r.err != nil {
		return nil, errors.NewMalformedClassError("", r.err.offset, r.err.reason)
	}
	return cf, nil
}

func parse(r *reader) *ClassFile {
	if magic := r.u4("magic"); r.ok() && magic != Magic {
		r.pos -= 4
		r.fail("bad magic 0x%08X", magic)
	}

	cf := &ClassFile{
		MinorVersion: r.u2("minor version"),
		MajorVersion: r.u2("major version"),
	}
	pool := readConstantPool(r)
	if !r.ok() {
		return nil
	}

	cf.Access = r.u2("access flags")
	cf.Name = pool.className(r, r.u2("this class"), "this class")
	if super := r.u2("super class"); super != 0 {
		cf.SuperName = pool.className(r, super, "super class")
	} else if r.ok() && cf.Name != "java/lang/Object" && !cf.IsModule() {
		r.fail("class %s has no super class", cf.Name)
	}

	count := int(r.u2("interfaces count"))
	cf.Interfaces = make([]string, 0, count)
	for i := 0; i < count && r.ok(); i++ {
		cf.Interfaces = append(cf.Interfaces, pool.className(r, r.u2("interface"), "interface"))
	}

	// fields carry nothing the scanner needs; parse them only to skip
	count = int(r.u2("fields count"))
	for i := 0; i < count && r.ok(); i++ {
		r.u2("field access")
		pool.utf8(r, r.u2("field name"), "field name")
		pool.utf8(r, r.u2("field descriptor"), "field descriptor")
		readAttributes(r, pool, nil)
	}

	count = int(r.u2("methods count"))
	cf.Methods = make([]Method, 0, count)
	for i := 0; i < count && r.ok(); i++ {
		m := Method{Access: r.u2("method access")}
		m.Name = pool.utf8(r, r.u2("method name"), "method name")
		m.Descriptor = pool.utf8(r, r.u2("method descriptor"), "method descriptor")
		readAttributes(r, pool, &m.Annotations)
		cf.Methods = append(cf.Methods, m)
	}

	readAttributes(r, pool, &cf.Annotations)

	if r.ok() && r.remaining() > 0 {
		r.fail("%d trailing bytes after class attributes", r.remaining())
	}
	if !r.ok() {
		return nil
	}
	return cf
}

// readAttributes walks an attribute table, collecting annotations into dst
// when dst is non-nil and skipping everything else.
func readAttributes(r *reader, pool constantPool, dst *[]Annotation) {
	count := int(r.u2("attributes count"))
	for i := 0; i < count && r.ok(); i++ {
		name := pool.utf8(r, r.u2("attribute name"), "attribute name")
		length := int(r.u4("attribute length"))
		body := r.sub(length, "attribute "+name)
		if !r.ok() {
			return
		}
		if dst == nil || (name != attrVisibleAnnotations && name != attrInvisibleAnnotations) {
			continue
		}
		*dst = append(*dst, readAnnotations(body, pool)...)
		if body.err != nil {
			r.err = body.err
			return
		}
	}
}

// SimpleName returns the last segment of an internal class name, after any
// package and enclosing-class prefix.
func SimpleName(internalName string) string {
	name := internalName
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, '$'); i >= 0 && i < len(name)-1 {
		name = name[i+1:]
	}
	return name
}
