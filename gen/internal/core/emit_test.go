package core

import (
	"bytes"
	"go/ast"
	"os"
	"path/filepath"
	"testing"

	"github.com/3636adesh/spring-proxies/gen/internal/meta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `package shop

import "context"

// @Proxy()
type OrderService interface {
	Place(ctx context.Context, id string, qty int) (string, error)
	Drop(ids ...string)
}

// @Delegate()
type Warehouse struct{}

func (w *Warehouse) Stock(id string) int { return 0 }

func (w *Warehouse) close() {}
`

func loadFixture(t *testing.T) *meta.Package {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shop.go"), []byte(fixture), 0o644))

	p, err := meta.Load(dir)
	require.NoError(t, err)
	require.Equal(t, "shop", p.Name)
	return p
}

func TestBuildMethodContract(t *testing.T) {
	p := loadFixture(t)
	spec, _, err := p.TypeSpec("OrderService")
	require.NoError(t, err)

	var buf bytes.Buffer
	quals := make(map[string]struct{})
	emitInterface(p, &buf, "_OrderService_standin__", spec.Type.(*ast.InterfaceType), quals)
	code := buf.String()

	assert.Contains(t, code, "func (obj *_OrderService_standin__) Place(ctx context.Context, id string, qty int) (re0 string, re1 error) {")
	assert.Contains(t, code, `Method:   "Place",`)
	assert.Contains(t, code, "In:       []any{ctx, id, qty},")
	assert.Contains(t, code, "re0, re1 = obj.proto.Place(ctx, id, qty)")
	assert.Contains(t, code, "if v, ok := ictx.Out[1].(error); ok {")

	// variadic, void method
	assert.Contains(t, code, "func (obj *_OrderService_standin__) Drop(ids ...string) {")
	assert.Contains(t, code, "ictx.Do = func() { obj.proto.Drop(ids...) }")
	assert.Contains(t, code, "panic(e)")

	_, ok := quals["context"]
	assert.True(t, ok, "qualified parameter types are tracked for imports")
}

func TestBuildMethodDelegate(t *testing.T) {
	p := loadFixture(t)

	decls := p.MethodsOf("Warehouse")
	require.Len(t, decls, 1, "unexported methods are not overridable")
	require.Equal(t, "Stock", decls[0].Name.Name)

	var buf bytes.Buffer
	quals := make(map[string]struct{})
	buildMethod(p, &buf, "_Warehouse_delegate__", "obj.Warehouse", decls[0].Name.Name, decls[0].Type, quals)
	code := buf.String()

	assert.Contains(t, code, "func (obj *_Warehouse_delegate__) Stock(id string) (re0 int) {")
	assert.Contains(t, code, "Receiver: obj.Warehouse,")
	assert.Contains(t, code, "re0 = obj.Warehouse.Stock(id)")
	assert.Contains(t, code, "if v, ok := ictx.Out[0].(int); ok {")
}

func TestAssembleImports(t *testing.T) {
	p := loadFixture(t)
	_, file, err := p.TypeSpec("OrderService")
	require.NoError(t, err)

	out := assemble(p, file, "// body\n", map[string]struct{}{"context": {}})
	code := string(out)

	assert.Contains(t, code, "// Code generated by proxygen. DO NOT EDIT.")
	assert.Contains(t, code, "package shop")
	assert.Contains(t, code, `"github.com/3636adesh/spring-proxies/proxy"`)
	assert.Contains(t, code, `"context"`)
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "order_service", ToSnakeCase("OrderService"))
	assert.Equal(t, "warehouse", ToSnakeCase("Warehouse"))
}
