package annotations

import (
	"github.com/toyz/ibcompose/internal/classfile"
)

// Extractor derives binding metadata from class and method annotations
type Extractor struct {
	vocab Vocabulary
	rule  SelectorRule
}

// NewExtractor creates an extractor. Nil arguments select the defaults.
func NewExtractor(vocab Vocabulary, rule SelectorRule) *Extractor {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	if rule == nil {
		rule = DerivedSelectors
	}
	return &Extractor{vocab: vocab, rule: rule}
}

// Class reads the native binding annotations of a class
func (e *Extractor) Class(internalName string, anns []classfile.Annotation) ClassMetadata {
	var meta ClassMetadata
	for _, a := range anns {
		t, ok := e.vocab.Lookup(a.Type)
		if !ok || t.Target() != ClassTarget {
			continue
		}
		value, _ := a.String("value")

		switch t {
		case ClassNameAnnotation:
			meta.NativeClassName = value
		case ClassBindingAnnotation:
			// a bare binding annotation binds to the class's own simple name
			if value == "" {
				value = classfile.SimpleName(internalName)
			}
			meta.NativeClassBinding = value
		case ProtocolNameAnnotation:
			meta.NativeProtocolName = value
		case ProtocolSourceNameAnnotation:
			meta.NativeProtocolSourceName = value
		case LibraryAnnotation:
			meta.Library = value
		}
	}
	return meta
}

// Method derives the selector and binding flags of one method
func (e *Extractor) Method(info MethodInfo) MethodMetadata {
	var meta MethodMetadata
	for _, a := range info.Annotations {
		t, ok := e.vocab.Lookup(a.Type)
		if !ok {
			continue
		}

		switch t {
		case SelectorAnnotation:
			if sel, ok := a.String("value"); ok && sel != "" {
				meta.Selector = sel
				meta.HasSelector = true
			}
		case PropertyAnnotation:
			meta.IsProperty = true
		case IBActionAnnotation:
			meta.IsAction = true
		case IBOutletAnnotation:
			meta.IsOutlet = true
		}
	}

	if !meta.HasSelector {
		meta.Selector, meta.HasSelector = e.rule(info)
	}
	return meta
}
