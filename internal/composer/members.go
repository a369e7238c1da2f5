package composer

import (
	"strings"

	"github.com/toyz/ibcompose/internal/descriptor"
	"github.com/toyz/ibcompose/internal/models"
)

// member renders one method declaration or explains why it cannot be declared
func (r *run) member(m models.MethodRecord) (string, *Skip) {
	switch {
	case m.IsProperty:
		return r.property(m)
	case m.IsAction:
		return r.action(m)
	default:
		return "", skip(NonBindingMember, "neither a property nor an action")
	}
}

func (r *run) property(m models.MethodRecord) (string, *Skip) {
	if m.Type.NumArgs() > 0 {
		return "", skip(InvalidMember, "arguments are not allowed on a property")
	}
	ret := m.Type.Return
	if !ret.IsObject() {
		return "", skip(InvalidMember, "a property must have an object return type")
	}
	rc, ok := r.lookup.Get(ret.InternalName)
	if !ok {
		return "", skip(InvalidMember, "unsupported return type")
	}
	typeName, ok := rc.BindingTypeName()
	if !ok {
		return "", skip(InvalidMember, "unsupported return type")
	}
	if rc.Record.HasLibrary() {
		r.imports.Add(rc.Record.Library)
	}

	var b strings.Builder
	b.WriteString("@property (strong) ")
	if m.IsOutlet {
		b.WriteString("IBOutlet ")
	}
	b.WriteString(typeName)
	b.WriteString(" ")
	b.WriteString(m.Selector)
	b.WriteString(";")
	return b.String(), nil
}

func (r *run) action(m models.MethodRecord) (string, *Skip) {
	if m.Type.Return.Sort != descriptor.Void {
		return "", skip(InvalidMember, "an action must return void")
	}

	sel := m.Selector
	args := m.Type.Args
	if len(args) == 0 {
		return "- (IBAction)" + sel + ";", nil
	}

	if !args[0].IsObject() {
		return "", skip(InvalidMember, "the first argument of an action must be an object")
	}
	sender, ok := r.bindingType(args[0])
	if !ok {
		return "", skip(InvalidMember, "unsupported first argument type")
	}

	if len(args) == 1 {
		if s := checkSelector(sel, 1); s != nil {
			return "", s
		}
		return "- (IBAction)" + sel + "(" + sender + ")sender;", nil
	}

	if !r.isEventType(args[1]) {
		return "", skip(InvalidMember, "the second argument of an action must be %s", EventTypeName)
	}

	if len(args) == 2 {
		if s := checkSelector(sel, 2); s != nil {
			return "", s
		}
		split := strings.IndexByte(sel, ':') + 1
		return "- (IBAction)" + sel[:split] + "(" + sender + ")sender " + sel[split:] +
			"(" + EventTypeName + " *)event;", nil
	}

	return "", skip(InvalidMember, "unsupported arity, an action takes zero, one or two arguments")
}

// checkSelector requires exactly n ':' separators with one at the end
func checkSelector(sel string, n int) *Skip {
	if strings.Count(sel, ":") != n {
		if n == 1 {
			return skip(InvalidMember, "bad selector %q, expected one argument", sel)
		}
		return skip(InvalidMember, "bad selector %q, expected %d arguments", sel, n)
	}
	if !strings.HasSuffix(sel, ":") {
		return skip(InvalidMember, "malformed selector %q, selector must end in ':'", sel)
	}
	return nil
}

func (r *run) bindingType(t descriptor.Type) (string, bool) {
	rc, ok := r.lookup.Get(t.InternalName)
	if !ok {
		return "", false
	}
	return rc.BindingTypeName()
}

func (r *run) isEventType(t descriptor.Type) bool {
	if !t.IsObject() {
		return false
	}
	rc, ok := r.lookup.Get(t.InternalName)
	return ok && rc.Record.NativeClassBinding == EventTypeName
}
