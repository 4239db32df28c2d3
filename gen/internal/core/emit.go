package core

import (
	"bytes"
	"fmt"
	"go/ast"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/3636adesh/spring-proxies/gen/internal/meta"
)

const proxyImportPath = "github.com/3636adesh/spring-proxies/proxy"

var fileTemplate = template.Must(template.New("standin").Parse(`// Code generated by proxygen. DO NOT EDIT.

package {{ .package }}

import (
	"{{ .proxyImport }}"
{{- range $import := .imports }}
	"{{ $import }}"
{{- end }}
)

{{ .code }}`))

type argv struct {
	name     string
	typ      string
	variadic bool
}

// splitSignature flattens a function type into named parameter and result
// lists, synthesizing names for anonymous entries.
func splitSignature(p *meta.Package, ft *ast.FuncType) (params, results []argv) {
	pos := 0
	expand := func(list *ast.FieldList, prefix string) (out []argv) {
		if list == nil {
			return
		}
		for _, field := range list.List {
			typ := field.Type
			variadic := false
			if ellipsis, ok := typ.(*ast.Ellipsis); ok {
				typ = ellipsis.Elt
				variadic = true
			}

			names := make([]string, 0, 1)
			for _, ident := range field.Names {
				names = append(names, ident.Name)
			}
			if len(names) == 0 {
				names = append(names, "")
			}

			for _, name := range names {
				if name == "" || name == "_" {
					name = prefix + strconv.Itoa(pos)
				}
				pos++
				out = append(out, argv{name: name, typ: p.Render(typ), variadic: variadic})
			}
		}
		return
	}

	params = expand(ft.Params, "arg")
	pos = 0
	results = expand(ft.Results, "re")
	return
}

// buildMethod writes one intercepted method: build a Context, capture the
// real call in Do, dispatch through the chain and read the result slots
// back, so advice that replaced them wins.
func buildMethod(p *meta.Package, buf *bytes.Buffer, standIn, callee, method string, ft *ast.FuncType, quals map[string]struct{}) {
	params, results := splitSignature(p, ft)
	collectQualifiers(ft, quals)

	paramDecls := make([]string, len(params))
	callArgs := make([]string, len(params))
	inSlots := make([]string, len(params))
	for i, param := range params {
		typ := param.typ
		callArgs[i] = param.name
		if param.variadic {
			typ = "..." + typ
			callArgs[i] = param.name + "..."
		}
		paramDecls[i] = param.name + " " + typ
		inSlots[i] = param.name
	}

	resultDecls := make([]string, len(results))
	resultNames := make([]string, len(results))
	for i, result := range results {
		resultDecls[i] = result.name + " " + result.typ
		resultNames[i] = result.name
	}

	returns := ""
	if len(results) > 0 {
		returns = "(" + strings.Join(resultDecls, ", ") + ") "
	}

	fmt.Fprintf(buf, "func (obj *%s) %s(%s) %s{\n", standIn, method, strings.Join(paramDecls, ", "), returns)
	fmt.Fprintf(buf, "\tictx := &proxy.Context{\n")
	fmt.Fprintf(buf, "\t\tMethod:   %q,\n", method)
	fmt.Fprintf(buf, "\t\tReceiver: %s,\n", callee)
	fmt.Fprintf(buf, "\t\tIn:       []any{%s},\n", strings.Join(inSlots, ", "))
	fmt.Fprintf(buf, "\t\tOut:      make([]any, %d),\n", len(results))
	fmt.Fprintf(buf, "\t}\n")

	call := fmt.Sprintf("%s.%s(%s)", callee, method, strings.Join(callArgs, ", "))
	if len(results) > 0 {
		fmt.Fprintf(buf, "\tictx.Do = func() {\n")
		fmt.Fprintf(buf, "\t\t%s = %s\n", strings.Join(resultNames, ", "), call)
		for i, name := range resultNames {
			fmt.Fprintf(buf, "\t\tictx.Out[%d] = %s\n", i, name)
		}
		fmt.Fprintf(buf, "\t}\n\n")
	} else {
		fmt.Fprintf(buf, "\tictx.Do = func() { %s }\n\n", call)
	}

	trailingErr := len(results) > 0 && results[len(results)-1].typ == "error"
	fmt.Fprintf(buf, "\te := obj.chain.Invoke(ictx)\n")
	for i, result := range results {
		if trailingErr && i == len(results)-1 {
			fmt.Fprintf(buf, "\tif v, ok := ictx.Out[%d].(error); ok {\n\t\t%s = v\n\t} else if e != nil {\n\t\t%s = e\n\t}\n", i, result.name, result.name)
			continue
		}
		fmt.Fprintf(buf, "\tif v, ok := ictx.Out[%d].(%s); ok {\n\t\t%s = v\n\t}\n", i, result.typ, result.name)
	}
	if !trailingErr {
		fmt.Fprintf(buf, "\tif e != nil {\n\t\tpanic(e)\n\t}\n")
	}
	if len(results) > 0 {
		fmt.Fprintf(buf, "\treturn\n")
	}
	fmt.Fprintf(buf, "}\n\n")
}

func collectQualifiers(ft *ast.FuncType, quals map[string]struct{}) {
	if ft.Params != nil {
		for _, field := range ft.Params.List {
			meta.Qualifiers(field.Type, quals)
		}
	}
	if ft.Results != nil {
		for _, field := range ft.Results.List {
			meta.Qualifiers(field.Type, quals)
		}
	}
}

// assemble renders the generated file with the imports the signatures
// actually mention.
func assemble(p *meta.Package, file *ast.File, code string, quals map[string]struct{}) []byte {
	imports := make([]string, 0, len(quals))
	for qualifier := range quals {
		if path, ok := meta.ImportFor(file, qualifier); ok {
			imports = append(imports, path)
		}
	}
	sort.Strings(imports)

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, map[string]any{
		"package":     p.Name,
		"proxyImport": proxyImportPath,
		"imports":     imports,
		"code":        code,
	}); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func ToSnakeCase(str string) string {
	re := regexp.MustCompile("([A-Z])")
	snakeCase := re.ReplaceAllString(str, "_$1")
	snakeCase = strings.TrimPrefix(snakeCase, "_")
	return strings.ToLower(snakeCase)
}

func panicOnError[T any](t T, err error) T {
	if err != nil {
		panic(err)
	}
	return t
}
