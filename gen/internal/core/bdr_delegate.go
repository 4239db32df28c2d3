package core

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/3636adesh/spring-proxies/gen/annotation"
	"github.com/3636adesh/spring-proxies/gen/internal/meta"
)

// Delegate emits a subclass-style delegator for every @Delegate struct: the
// target is embedded so every method it declares stays reachable, and each
// exported method gets an intercepting override whose Do invokes the
// captured target, never the delegator itself.
func Delegate(proc *Processor) (ops map[string][]byte) {
	ops = make(map[string][]byte)
	for node, jobs := range proc.mapping {
		for _, j := range jobs {
			if _, ok := j.tag.(annotation.Delegate); !ok {
				continue
			}

			dir := node.Meta().Dir()
			p := panicOnError(meta.Load(dir))

			name := annotation.TypeName(j.node)
			_, file, err := p.TypeSpec(name)
			if err != nil {
				panic(err)
			}

			delegate := fmt.Sprintf("_%s_delegate__", name)
			quals := make(map[string]struct{})

			var buf bytes.Buffer
			fmt.Fprintf(&buf, "type %s struct {\n\t*%s\n\tchain *proxy.Chain\n}\n\n", delegate, name)
			fmt.Fprintf(&buf, "func init() {\n\tproxy.RegConcrete[*%s](Make%sDelegate)\n}\n\n", name, name)
			fmt.Fprintf(&buf, "func Make%sDelegate(instance *%s, chain *proxy.Chain) any {\n\treturn &%s{instance, chain}\n}\n\n", name, name, delegate)
			fmt.Fprintf(&buf, "func (obj *%s) Unwrap() any {\n\treturn obj.%s\n}\n\n", delegate, name)

			for _, fd := range p.MethodsOf(name) {
				buildMethod(p, &buf, delegate, "obj."+name, fd.Name.Name, fd.Type, quals)
			}

			ops[filepath.Join(dir, ToSnakeCase(name)+"_delegate.gen.go")] = assemble(p, file, buf.String(), quals)
		}
	}
	return
}
