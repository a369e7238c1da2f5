package annotations

import (
	"fmt"
	"sort"
	"sync"
)

const (
	natjObjC    = "Lorg/moe/natj/objc/ann/"
	natjGeneral = "Lorg/moe/natj/general/ann/"
)

// Vocabulary maps annotation type descriptors to binding roles
type Vocabulary interface {
	// Register maps a descriptor to an annotation type
	Register(descriptor string, annotationType AnnotationType) error

	// Lookup returns the annotation type for a descriptor
	Lookup(descriptor string) (AnnotationType, bool)

	// Descriptors returns all registered descriptors, sorted
	Descriptors() []string
}

type vocabulary struct {
	mu    sync.RWMutex
	types map[string]AnnotationType
}

// NewVocabulary creates an empty vocabulary
func NewVocabulary() Vocabulary {
	return &vocabulary{
		types: make(map[string]AnnotationType),
	}
}

var (
	defaultVocabulary     Vocabulary
	defaultVocabularyOnce sync.Once
)

// DefaultVocabulary returns the NatJ annotation set
func DefaultVocabulary() Vocabulary {
	defaultVocabularyOnce.Do(func() {
		v := NewVocabulary()
		for desc, t := range map[string]AnnotationType{
			natjObjC + "ObjCClassName;":          ClassNameAnnotation,
			natjObjC + "ObjCClassBinding;":       ClassBindingAnnotation,
			natjObjC + "ObjCProtocolName;":       ProtocolNameAnnotation,
			natjObjC + "ObjCProtocolSourceName;": ProtocolSourceNameAnnotation,
			natjGeneral + "Library;":             LibraryAnnotation,
			natjObjC + "Selector;":               SelectorAnnotation,
			natjObjC + "Property;":               PropertyAnnotation,
			natjObjC + "IBAction;":               IBActionAnnotation,
			natjObjC + "IBOutlet;":               IBOutletAnnotation,
		} {
			if err := v.Register(desc, t); err != nil {
				panic(err)
			}
		}
		defaultVocabulary = v
	})
	return defaultVocabulary
}

// Register maps a descriptor to an annotation type
func (v *vocabulary) Register(descriptor string, annotationType AnnotationType) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(descriptor) < 3 || descriptor[0] != 'L' || descriptor[len(descriptor)-1] != ';' {
		return fmt.Errorf("annotation descriptor %q is not an object descriptor", descriptor)
	}
	if existing, exists := v.types[descriptor]; exists && existing != annotationType {
		return fmt.Errorf("annotation descriptor %s is already registered as %s", descriptor, existing)
	}

	v.types[descriptor] = annotationType
	return nil
}

// Lookup returns the annotation type for a descriptor
func (v *vocabulary) Lookup(descriptor string) (AnnotationType, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	t, ok := v.types[descriptor]
	return t, ok
}

// Descriptors returns all registered descriptors, sorted
func (v *vocabulary) Descriptors() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	descs := make([]string, 0, len(v.types))
	for d := range v.types {
		descs = append(descs, d)
	}
	sort.Strings(descs)
	return descs
}
