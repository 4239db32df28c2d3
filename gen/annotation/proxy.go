package annotation

import (
	"fmt"
	"go/ast"
)

// Proxy marks a capability contract: the generator emits a contract-based
// stand-in implementing the annotated interface and registers its factory.
type Proxy struct {
}

var _ M = (*Proxy)(nil)

func (p Proxy) Name() string {
	return "proxy"
}

func (p Proxy) Match(node ast.Node) (err error) {
	spec, ok := node.(*ast.TypeSpec)
	if !ok {
		return fmt.Errorf("the `@Proxy` annotation belongs on an interface declaration")
	}
	if _, ok = spec.Type.(*ast.InterfaceType); !ok {
		err = fmt.Errorf("`@Proxy` target %s is not an interface", spec.Name.Name)
	}
	return
}

func (p Proxy) As() (_ M) {
	return
}
