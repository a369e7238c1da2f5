package classfile

import "math"

// Constant pool tags
const (
	tagUtf8               = 1
	tagInteger            = 3
	tagFloat              = 4
	tagLong               = 5
	tagDouble             = 6
	tagClass              = 7
	tagString             = 8
	tagFieldref           = 9
	tagMethodref          = 10
	tagInterfaceMethodref = 11
	tagNameAndType        = 12
	tagMethodHandle       = 15
	tagMethodType         = 16
	tagDynamic            = 17
	tagInvokeDynamic      = 18
	tagModule             = 19
	tagPackage            = 20
)

type constant struct {
	tag   uint8
	utf8  string
	index uint16 // Class, String, MethodType, Module, Package
	value interface{}
}

type constantPool []constant

func readConstantPool(r *reader) constantPool {
	count := int(r.u2("constant pool count"))
	if count == 0 {
		r.fail("constant pool count is zero")
		return nil
	}

	pool := make(constantPool, count)
	for i := 1; i < count && r.ok(); i++ {
		start := r.pos
		tag := r.u1("constant tag")
		c := constant{tag: tag}

		switch tag {
		case tagUtf8:
			n := int(r.u2("utf8 length"))
			raw := r.bytes(n, "utf8 bytes")
			if !r.ok() {
				break
			}
			s, err := decodeModifiedUTF8(raw)
			if err != nil {
				r.pos = start
				r.fail("constant #%d: invalid modified UTF-8: %v", i, err)
				break
			}
			c.utf8 = s
		case tagInteger:
			c.value = int32(r.u4("integer constant"))
		case tagFloat:
			c.value = math.Float32frombits(r.u4("float constant"))
		case tagLong, tagDouble:
			hi := uint64(r.u4("wide constant"))
			lo := uint64(r.u4("wide constant"))
			bits := hi<<32 | lo
			if tag == tagLong {
				c.value = int64(bits)
			} else {
				c.value = math.Float64frombits(bits)
			}
			pool[i] = c
			// eight-byte constants take two slots
			i++
			if i >= count {
				r.fail("constant #%d: wide constant overflows the pool", i-1)
			}
			continue
		case tagClass, tagString, tagMethodType, tagModule, tagPackage:
			c.index = r.u2("constant index")
		case tagFieldref, tagMethodref, tagInterfaceMethodref, tagNameAndType, tagDynamic, tagInvokeDynamic:
			r.u2("constant index")
			r.u2("constant index")
		case tagMethodHandle:
			r.u1("method handle kind")
			r.u2("method handle index")
		default:
			r.pos = start
			r.fail("constant #%d: unknown tag %d", i, tag)
		}
		pool[i] = c
	}
	return pool
}

func (p constantPool) entry(r *reader, index uint16, tag uint8, what string) (constant, bool) {
	if int(index) == 0 || int(index) >= len(p) {
		r.fail("%s: constant index %d out of range", what, index)
		return constant{}, false
	}
	c := p[index]
	if c.tag != tag {
		r.fail("%s: constant #%d has tag %d, expected %d", what, index, c.tag, tag)
		return constant{}, false
	}
	return c, true
}

func (p constantPool) utf8(r *reader, index uint16, what string) string {
	c, ok := p.entry(r, index, tagUtf8, what)
	if !ok {
		return ""
	}
	return c.utf8
}

func (p constantPool) className(r *reader, index uint16, what string) string {
	c, ok := p.entry(r, index, tagClass, what)
	if !ok {
		return ""
	}
	return p.utf8(r, c.index, what)
}

func (p constantPool) value(r *reader, index uint16, tag uint8, what string) interface{} {
	c, ok := p.entry(r, index, tag, what)
	if !ok {
		return nil
	}
	return c.value
}
