package annotation

import (
	"fmt"
	"go/ast"
)

// Delegate marks a concrete type: the generator emits a subclass-style
// delegator embedding the target and overriding its exported methods.
// Methods the delegator does not override pass through by promotion,
// unintercepted; there is no way to override an unexported method from
// another package, mirroring final-method pass-through.
type Delegate struct {
}

var _ M = (*Delegate)(nil)

func (d Delegate) Name() string {
	return "delegate"
}

func (d Delegate) Match(node ast.Node) (err error) {
	spec, ok := node.(*ast.TypeSpec)
	if !ok {
		return fmt.Errorf("the `@Delegate` annotation belongs on a struct declaration")
	}
	if _, ok = spec.Type.(*ast.StructType); !ok {
		err = fmt.Errorf("`@Delegate` target %s is not a struct", spec.Name.Name)
	}
	return
}

func (d Delegate) As() (_ M) {
	return
}
