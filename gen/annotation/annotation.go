package annotation

import (
	"go/ast"
)

type M interface {
	Name() string
	Match(node ast.Node) error
	As() M
}

type Anon struct {
}

func (g *Anon) Name() string {
	var m M = g
	for {
		if n := m.As(); n == nil {
			break
		} else {
			m = n
		}
	}
	return m.Name()
}

func (g *Anon) Match(node ast.Node) error {
	var m M = g
	for {
		if n := m.As(); n == nil {
			break
		} else {
			m = n
		}
	}
	return m.Match(node)
}

func (g *Anon) As() M {
	panic("implement me")
}

func TypeName(node ast.Node) string {
	if spec, ok := node.(*ast.TypeSpec); ok {
		return spec.Name.Name
	}
	return ""
}
