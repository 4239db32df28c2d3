package proxy

import (
	"fmt"
	"reflect"
)

// StandIn is implemented by every generated or hand-written stand-in.
// Unwrap returns the original target.
type StandIn interface {
	Unwrap() any
}

func IsStandIn(obj any) bool {
	_, ok := obj.(StandIn)
	return ok
}

// Unwrap peels a stand-in back to its target; other values pass through.
func Unwrap(obj any) any {
	if s, ok := obj.(StandIn); ok {
		return s.Unwrap()
	}
	return obj
}

type contractEntry struct {
	iface   reflect.Type
	factory func(any, *Chain) any
}

// Stand-in factories register during package init; both tables are
// read-only once the process is past its bootstrap phase.
var (
	contractEntries []contractEntry
	concreteMap     = make(map[string]func(any, *Chain) any)
)

// RegContract registers a contract-based stand-in factory for interface I.
// Selection walks registrations in order, so init order fixes which contract
// wins for targets implementing several.
func RegContract[I any](factory func(I, *Chain) I) {
	it := reflect.TypeOf((*I)(nil)).Elem()
	if it.Kind() != reflect.Interface {
		panic(fmt.Sprintf("contract must be an interface, got %s", serviceName[I]()))
	}

	contractEntries = append(contractEntries, contractEntry{
		iface: it,
		factory: func(obj any, chain *Chain) any {
			return factory(obj.(I), chain)
		},
	})
}

// RegConcrete registers a subclass-style delegator factory for the concrete
// type T, keyed by its service name. The delegator is a distinct type with
// the target's method set, so the factory returns it untyped.
func RegConcrete[T any](factory func(T, *Chain) any) {
	concreteMap[serviceName[T]()] = func(obj any, chain *Chain) any {
		return factory(obj.(T), chain)
	}
}

// Contract builds a contract-based stand-in for obj, or fails with
// *UnsupportedTargetError when no registered contract matches.
func Contract(obj any, chain *Chain) (any, error) {
	t := reflect.TypeOf(obj)
	for _, entry := range contractEntries {
		if t.Implements(entry.iface) {
			return entry.factory(obj, chain), nil
		}
	}
	return nil, &UnsupportedTargetError{Target: instanceName(obj), Strategy: "contract"}
}

// Concrete builds a subclass-style stand-in for obj, or fails with
// *UnsupportedTargetError when its type has no registered delegator.
func Concrete(obj any, chain *Chain) (any, error) {
	if factory, ok := concreteMap[instanceName(obj)]; ok {
		return factory(obj, chain), nil
	}
	return nil, &UnsupportedTargetError{Target: instanceName(obj), Strategy: "concrete"}
}

func HasContract(obj any) bool {
	t := reflect.TypeOf(obj)
	for _, entry := range contractEntries {
		if t.Implements(entry.iface) {
			return true
		}
	}
	return false
}

func HasConcrete(obj any) bool {
	_, ok := concreteMap[instanceName(obj)]
	return ok
}

func serviceName[T any]() string {
	var t T

	// struct
	name := fmt.Sprintf("%T", t)
	if name != "<nil>" {
		return name
	}

	// interface
	return fmt.Sprintf("%T", new(T))
}

func instanceName(t any) string {
	return fmt.Sprintf("%T", t)
}
