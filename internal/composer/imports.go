package composer

import (
	"sort"
)

// ImportSet accumulates the native libraries the generated file imports.
// It is owned by a single Compose call.
type ImportSet struct {
	libraries map[string]struct{}
}

// NewImportSet creates a set seeded with the given libraries
func NewImportSet(seed ...string) *ImportSet {
	s := &ImportSet{libraries: make(map[string]struct{})}
	s.Add(seed...)
	return s
}

// Add adds libraries, ignoring empty names
func (s *ImportSet) Add(libraries ...string) {
	for _, lib := range libraries {
		if lib != "" {
			s.libraries[lib] = struct{}{}
		}
	}
}

// Has reports whether a library was added
func (s *ImportSet) Has(library string) bool {
	_, ok := s.libraries[library]
	return ok
}

// Len returns the number of libraries
func (s *ImportSet) Len() int {
	return len(s.libraries)
}

// Without returns the sorted libraries minus the excluded ones
func (s *ImportSet) Without(exclude []string) []string {
	excluded := make(map[string]bool, len(exclude))
	for _, lib := range exclude {
		excluded[lib] = true
	}

	libs := make([]string, 0, len(s.libraries))
	for lib := range s.libraries {
		if !excluded[lib] {
			libs = append(libs, lib)
		}
	}
	sort.Strings(libs)
	return libs
}
