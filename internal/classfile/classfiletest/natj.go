package classfiletest

const (
	objcAnn    = "Lorg/moe/natj/objc/ann/"
	generalAnn = "Lorg/moe/natj/general/ann/"
)

// ClassName is @ObjCClassName(value)
func ClassName(value string) Ann {
	return A(objcAnn+"ObjCClassName;", "value", value)
}

// Binding is @ObjCClassBinding, bare when value is empty
func Binding(value string) Ann {
	if value == "" {
		return A(objcAnn + "ObjCClassBinding;")
	}
	return A(objcAnn+"ObjCClassBinding;", "value", value)
}

// ProtocolName is @ObjCProtocolName(value)
func ProtocolName(value string) Ann {
	return A(objcAnn+"ObjCProtocolName;", "value", value)
}

// ProtocolSourceName is @ObjCProtocolSourceName(value)
func ProtocolSourceName(value string) Ann {
	return A(objcAnn+"ObjCProtocolSourceName;", "value", value)
}

// Library is @Library(value)
func Library(value string) Ann {
	return A(generalAnn+"Library;", "value", value)
}

// Selector is @Selector(value)
func Selector(value string) Ann {
	return A(objcAnn+"Selector;", "value", value)
}

// Property is @Property
func Property() Ann {
	return A(objcAnn + "Property;")
}

// IBAction is @IBAction
func IBAction() Ann {
	return A(objcAnn + "IBAction;")
}

// IBOutlet is @IBOutlet
func IBOutlet() Ann {
	return A(objcAnn + "IBOutlet;")
}

// Action builds a public instance method annotated as an action with an explicit selector
func Action(name, desc, selector string) MethodSpec {
	return MethodSpec{
		Access:      0x0001,
		Name:        name,
		Descriptor:  desc,
		Annotations: []Ann{Selector(selector), IBAction()},
	}
}

// Outlet builds a public getter annotated as a property outlet with an explicit selector
func Outlet(name, desc, selector string) MethodSpec {
	return MethodSpec{
		Access:      0x0001,
		Name:        name,
		Descriptor:  desc,
		Annotations: []Ann{Selector(selector), Property(), IBOutlet()},
	}
}
