package registry

// Visitor receives each registered class during Resolve
type Visitor func(name string, rc *ResolvedClass)

// ClassLookup defines the read side of the registry used while composing
type ClassLookup interface {
	Get(name string) (*ResolvedClass, bool)
	Resolve(visit Visitor)
	Libraries(rc *ResolvedClass) []string
	Protocols(rc *ResolvedClass) []string
}

var _ ClassLookup = (*Registry)(nil)
