package proxies

import "fmt"

// Assert coerces t to T, panicking on a mismatch.
func Assert[T any](t any) T {
	obj, err := AssertToError[T](t)
	if err != nil {
		panic(err)
	}
	return obj
}

// AssertToError is the error-returning form, used on post-processed beans
// whose stand-in may not satisfy the requested type.
func AssertToError[T any](t any) (T, error) {
	if obj, ok := t.(T); ok {
		return obj, nil
	}

	var zero T
	return zero, fmt.Errorf("%T does not satisfy %s", t, typeName[T]())
}

func typeName[T any]() string {
	var t T

	// a concrete zero value prints its own type; an interface prints <nil>
	if name := fmt.Sprintf("%T", t); name != "<nil>" {
		return name
	}
	return fmt.Sprintf("%T", new(T))
}
