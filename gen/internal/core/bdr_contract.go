package core

import (
	"bytes"
	"fmt"
	"go/ast"
	"path/filepath"

	"github.com/3636adesh/spring-proxies/gen/annotation"
	"github.com/3636adesh/spring-proxies/gen/internal/meta"
)

// Contract emits a contract-based stand-in for every @Proxy interface: a
// struct holding the target and the advice chain, one intercepted method per
// contract operation, and an init registration of the factory.
func Contract(proc *Processor) (ops map[string][]byte) {
	ops = make(map[string][]byte)
	for node, jobs := range proc.mapping {
		for _, j := range jobs {
			if _, ok := j.tag.(annotation.Proxy); !ok {
				continue
			}

			dir := node.Meta().Dir()
			p := panicOnError(meta.Load(dir))

			name := annotation.TypeName(j.node)
			spec, file, err := p.TypeSpec(name)
			if err != nil {
				panic(err)
			}

			standIn := fmt.Sprintf("_%s_standin__", name)
			quals := make(map[string]struct{})

			var buf bytes.Buffer
			fmt.Fprintf(&buf, "type %s struct {\n\tproto %s\n\tchain *proxy.Chain\n}\n\n", standIn, name)
			fmt.Fprintf(&buf, "func init() {\n\tproxy.RegContract[%s](Make%sStandIn)\n}\n\n", name, name)
			fmt.Fprintf(&buf, "func Make%sStandIn(instance %s, chain *proxy.Chain) %s {\n\treturn &%s{instance, chain}\n}\n\n", name, name, name, standIn)
			fmt.Fprintf(&buf, "func (obj *%s) Unwrap() any {\n\treturn obj.proto\n}\n\n", standIn)

			emitInterface(p, &buf, standIn, spec.Type.(*ast.InterfaceType), quals)

			ops[filepath.Join(dir, ToSnakeCase(name)+"_standin.gen.go")] = assemble(p, file, buf.String(), quals)
		}
	}
	return
}

// emitInterface walks the contract's operations, recursing into embedded
// same-package interfaces so inherited operations are intercepted too.
func emitInterface(p *meta.Package, buf *bytes.Buffer, standIn string, iface *ast.InterfaceType, quals map[string]struct{}) {
	for _, method := range iface.Methods.List {
		switch expr := method.Type.(type) {
		case *ast.FuncType:
			buildMethod(p, buf, standIn, "obj.proto", method.Names[0].Name, expr, quals)
		case *ast.Ident:
			if spec, _, err := p.TypeSpec(expr.Name); err == nil {
				if embedded, ok := spec.Type.(*ast.InterfaceType); ok {
					emitInterface(p, buf, standIn, embedded, quals)
				}
			}
		}
	}
}
