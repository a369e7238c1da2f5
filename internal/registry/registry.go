// Package registry accumulates ClassRecords from any number of scan passes
// and answers cross-module questions about them: native superclass, protocol
// conformance and contributing libraries.
//
// The registry is written during the scan phase and only read while
// resolving. Lookups that miss return ok == false, never an error, because
// platform classes routinely appear only as names.
package registry

import (
	"github.com/toyz/ibcompose/internal/models"
	"github.com/toyz/ibcompose/internal/utils"
)

// Registry indexes ClassRecords by internal name
type Registry struct {
	records  *utils.Registry[string, *models.ClassRecord]
	resolved *utils.Cache[string, *ResolvedClass]
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		records:  utils.NewRegistry[string, *models.ClassRecord](),
		resolved: utils.NewCache[string, *ResolvedClass](),
	}
}

// Add inserts a record. Re-adding a name replaces its content but keeps the
// position of the first insertion.
func (r *Registry) Add(rec *models.ClassRecord) {
	if rec == nil {
		return
	}
	if r.records.Register(rec.Name, rec) {
		r.resolved.Delete(rec.Name)
	}
}

// AddAll adds records in order
func (r *Registry) AddAll(recs []*models.ClassRecord) {
	for _, rec := range recs {
		r.Add(rec)
	}
}

// Get returns the resolved view of a registered class
func (r *Registry) Get(name string) (*ResolvedClass, bool) {
	rec, ok := r.records.Get(name)
	if !ok {
		return nil, false
	}
	return r.resolved.GetOrCompute(name, func() *ResolvedClass {
		return &ResolvedClass{Record: rec, reg: r}
	}), true
}

// Resolve calls visit once per registered class in insertion order
func (r *Registry) Resolve(visit Visitor) {
	for _, name := range r.records.Keys() {
		if rc, ok := r.Get(name); ok {
			visit(name, rc)
		}
	}
}

// Libraries returns the native libraries a class contributes to the imports:
// the first library on its own superclass chain (self first) and the library
// of the first directly implemented interface that declares one.
func (r *Registry) Libraries(rc *ResolvedClass) []string {
	var libs []string
	add := func(lib string) {
		for _, l := range libs {
			if l == lib {
				return
			}
		}
		libs = append(libs, lib)
	}

	seen := make(map[string]bool)
	for cur, ok := rc, true; ok && !seen[cur.Record.Name]; cur, ok = cur.Super() {
		seen[cur.Record.Name] = true
		if cur.Record.HasLibrary() {
			add(cur.Record.Library)
			break
		}
	}

	for _, itf := range rc.Record.SuperInterfaces {
		irc, ok := r.Get(itf)
		if !ok {
			continue
		}
		if irc.Record.HasLibrary() {
			add(irc.Record.Library)
			break
		}
	}
	return libs
}

// Protocols returns the native protocols a class directly conforms to, in
// declaration order. Interfaces without a registered protocol record are ignored.
func (r *Registry) Protocols(rc *ResolvedClass) []string {
	var protocols []string
	seen := make(map[string]bool)
	for _, itf := range rc.Record.SuperInterfaces {
		irc, ok := r.Get(itf)
		if !ok || !irc.Record.IsProtocol() {
			continue
		}
		name := irc.Record.ProtocolName()
		if seen[name] {
			continue
		}
		seen[name] = true
		protocols = append(protocols, name)
	}
	return protocols
}

// Len returns the number of registered classes
func (r *Registry) Len() int {
	return r.records.Size()
}

// Names returns the registered class names in insertion order
func (r *Registry) Names() []string {
	return r.records.Keys()
}
