// Package meta loads Go package ASTs for the stand-in builders: interface
// and struct lookup, method collection and type rendering.
package meta

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"strconv"
	"strings"
)

type Package struct {
	Name string
	Dir  string

	fset  *token.FileSet
	files map[string]*ast.File
}

func Load(dir string) (*Package, error) {
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, dir, nil, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	for name, pkg := range pkgs {
		if strings.HasSuffix(name, "_test") {
			continue
		}
		return &Package{
			Name:  name,
			Dir:   dir,
			fset:  fset,
			files: pkg.Files,
		}, nil
	}
	return nil, fmt.Errorf("no package found in %s", dir)
}

// TypeSpec finds a top-level named type declaration.
func (p *Package) TypeSpec(name string) (*ast.TypeSpec, *ast.File, error) {
	for _, file := range p.files {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				if ts.Name.Name == name {
					return ts, file, nil
				}
			}
		}
	}
	return nil, nil, fmt.Errorf("type %s not found in %s", name, p.Dir)
}

// MethodsOf collects the exported methods declared on T or *T, in source
// order per file.
func (p *Package) MethodsOf(typeName string) (decls []*ast.FuncDecl) {
	for _, file := range p.files {
		for _, decl := range file.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Recv == nil || !fd.Name.IsExported() {
				continue
			}
			if receiverName(fd) == typeName {
				decls = append(decls, fd)
			}
		}
	}
	return
}

// Render prints a type expression back to source form.
func (p *Package) Render(expr ast.Expr) string {
	var sb strings.Builder
	if err := printer.Fprint(&sb, p.fset, expr); err != nil {
		panic(err)
	}
	return sb.String()
}

// Qualifiers reports the package qualifiers a type expression mentions
// ("context" in context.Context).
func Qualifiers(expr ast.Expr, into map[string]struct{}) {
	ast.Inspect(expr, func(n ast.Node) bool {
		if sel, ok := n.(*ast.SelectorExpr); ok {
			if ident, ok := sel.X.(*ast.Ident); ok {
				into[ident.Name] = struct{}{}
				return false
			}
		}
		return true
	})
}

// ImportFor resolves a qualifier against a file's import table.
func ImportFor(file *ast.File, qualifier string) (string, bool) {
	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}

		name := path
		if i := strings.LastIndex(path, "/"); i >= 0 {
			name = path[i+1:]
		}
		if imp.Name != nil {
			name = imp.Name.Name
		}
		if name == qualifier {
			return path, true
		}
	}
	return "", false
}

func receiverName(decl *ast.FuncDecl) string {
	for _, v := range decl.Recv.List {
		switch rv := v.Type.(type) {
		case *ast.Ident:
			return rv.Name
		case *ast.StarExpr:
			if ident, ok := rv.X.(*ast.Ident); ok {
				return ident.Name
			}
		}
	}
	return ""
}
