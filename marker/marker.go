// Package marker keeps the load-time table of operations that require
// interception. A marked operation on a capability contract is inherited by
// every implementer, mirroring annotation inheritance from interface to
// implementation. Registration happens during init or bootstrap; lookups are
// lock-free afterwards.
package marker

import (
	"fmt"
	"reflect"
	"strings"
)

type opSet map[string]struct{}

type contractEntry struct {
	iface reflect.Type
	ops   opSet
}

var (
	namedMap        = make(map[string]opSet)
	contractEntries []contractEntry
)

// Reg marks operations on T. When T is an interface the marks are
// inheritable: a concrete operation is marked whenever the type implements T.
// When T is a concrete type the marks bind to its service name only.
func Reg[T any](ops ...string) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() == reflect.Interface {
		contractEntries = append(contractEntries, contractEntry{iface: t, ops: toSet(ops)})
		return
	}
	RegNamed(serviceName[T](), ops...)
}

// RegNamed marks operations on a type addressed by its service name
// ("pkg.Type" or "*pkg.Type"), the declaration surface used when the table
// comes from configuration rather than code.
func RegNamed(typeName string, ops ...string) {
	set, ok := namedMap[typeName]
	if !ok {
		set = make(opSet)
		namedMap[typeName] = set
	}
	for _, op := range ops {
		set[op] = struct{}{}
	}
}

// Load installs a whole table at once, type name to operation list.
func Load(table map[string][]string) {
	for name, ops := range table {
		RegNamed(name, ops...)
	}
}

// IsMarked reports whether the operation is marked on the target's own type
// or on any marked contract the target implements. Absence is a normal,
// common false.
func IsMarked(target any, op string) bool {
	if target == nil {
		return false
	}

	for _, set := range namedSets(target) {
		if _, ok := set[op]; ok {
			return true
		}
	}

	t := reflect.TypeOf(target)
	for _, entry := range contractEntries {
		if !t.Implements(entry.iface) {
			continue
		}
		if _, ok := entry.ops[op]; ok {
			return true
		}
	}
	return false
}

// HasAnyMarked reports whether any operation of the target is marked; the
// strategy selector skips proxying entirely when it is false.
func HasAnyMarked(target any) bool {
	if target == nil {
		return false
	}

	for _, set := range namedSets(target) {
		if len(set) > 0 {
			return true
		}
	}

	t := reflect.TypeOf(target)
	for _, entry := range contractEntries {
		if t.Implements(entry.iface) && len(entry.ops) > 0 {
			return true
		}
	}
	return false
}

// A pointer target answers for both "*pkg.Type" and "pkg.Type" entries, so
// declarations need not care about the receiver form.
func namedSets(target any) (sets []opSet) {
	name := fmt.Sprintf("%T", target)
	if set, ok := namedMap[name]; ok {
		sets = append(sets, set)
	}
	if trimmed := strings.TrimPrefix(name, "*"); trimmed != name {
		if set, ok := namedMap[trimmed]; ok {
			sets = append(sets, set)
		}
	}
	return
}

func toSet(ops []string) opSet {
	set := make(opSet, len(ops))
	for _, op := range ops {
		set[op] = struct{}{}
	}
	return set
}

func serviceName[T any]() string {
	var t T

	name := fmt.Sprintf("%T", t)
	if name != "<nil>" {
		return name
	}

	return fmt.Sprintf("%T", new(T))
}
