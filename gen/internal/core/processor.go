package core

import (
	"errors"
	"fmt"
	"go/ast"
	"reflect"

	annotation "github.com/bincooo/go-annotation/pkg"

	annotations "github.com/3636adesh/spring-proxies/gen/annotation"
)

type Builder func(proc *Processor) map[string][]byte

type job struct {
	tag  annotations.M
	node ast.Node
}

type Processor struct {
	builders map[string]Builder
	mapping  map[annotation.Node][]job
}

var _ annotation.AnnotationProcessor = (*Processor)(nil)

var (
	proc *Processor

	rootPath string
)

func init() {
	proc = &Processor{
		builders: make(map[string]Builder),
		mapping:  make(map[annotation.Node][]job),
	}

	annotation.Register[annotations.Proxy](proc)
	annotation.Register[annotations.Delegate](proc)
}

func Alias[T any]() {
	annotation.Register[T](proc)
}

func Root(root string) {
	rootPath = root
}

func (proc *Processor) Version() string {
	return "v1.0.0"
}

func (proc *Processor) Name() string {
	return "Proxies"
}

func (proc *Processor) Process(node annotation.Node) error {
	return errors.Join(
		scanAnnotated[annotations.Proxy](proc, node, Contract),
		scanAnnotated[annotations.Delegate](proc, node, Delegate),
	)
}

func (proc *Processor) Output() (ops map[string][]byte) {
	ops = make(map[string][]byte)
	for _, builder := range proc.builders {
		for k, v := range builder(proc) {
			ops[k] = v
		}
	}
	return
}

func scanAnnotated[T annotations.M](proc *Processor, node annotation.Node, builder Builder) (err error) {
	if rootPath != "" && node.Meta().Dir() != rootPath {
		return
	}

	slice := FindAnnotations[T](node.Annotations())
	if len(slice) == 0 {
		return
	}

	var zero T
	if len(slice) > 1 {
		return fmt.Errorf("expected 1 `%s` annotation, but got: %d", reflect.TypeOf(zero).String(), len(slice))
	}

	goAst := node.ASTNode()
	zero = slice[0]
	if err = zero.Match(goAst); err != nil {
		return
	}

	proc.mapping[node] = append(proc.mapping[node], job{tag: zero, node: goAst})
	if _, ok := proc.builders[zero.Name()]; !ok {
		proc.builders[zero.Name()] = builder
	}
	return
}

func FindAnnotations[T any](a []annotation.Annotation) (found []T) {
	for _, it := range a {
		if ofType[T](it) {
			found = append(found, toType[T](it))
		}
	}
	return
}

func ofType[T any](a annotation.Annotation) bool {
	if m, ok := a.(annotations.M); ok {
		for {
			if n := m.As(); n != nil {
				m = n
			} else {
				_, ok = m.(T)
				return ok
			}
		}
	}

	_, ok := a.(T)
	return ok
}

func toType[T any](a annotation.Annotation) (t T) {
	if m, ok := a.(annotations.M); ok {
		for {
			if n := m.As(); n != nil {
				m = n
			} else {
				return m.(T)
			}
		}
	}

	return a.(T)
}
