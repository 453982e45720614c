package symtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhilkalige/elunar/object"
)

func TestInternIsIdempotent(t *testing.T) {
	table := New()
	a := table.Intern("foo")
	b := table.Intern("foo")
	assert.True(t, a.PtrEq(b))
}

func TestNilIsSymbolZero(t *testing.T) {
	table := New()
	n := table.Intern("nil")
	assert.True(t, n.IsNil())
	assert.Equal(t, int64(0), n.SymbolID())
}

func TestLookupMissing(t *testing.T) {
	table := New()
	_, ok := table.Lookup("not-yet-interned")
	assert.False(t, ok)
}

func TestBodyResolvesName(t *testing.T) {
	table := New()
	sym := table.Intern("quux")
	body := table.Body(sym)
	require.NotNil(t, body)
	assert.Equal(t, "quux", body.Name)
}

func TestGetFunctionConstructsVoidFunctionError(t *testing.T) {
	table := New()
	sym := table.Intern("unfbound-fn")

	_, err := table.GetFunction(sym)
	require.Error(t, err)
	var voidErr *object.VoidFunctionError
	require.ErrorAs(t, err, &voidErr)
	assert.Equal(t, "unfbound-fn", voidErr.Symbol)

	fn := table.Intern("some-lambda")
	table.SetFunction(sym, fn)
	got, err := table.GetFunction(sym)
	require.NoError(t, err)
	assert.True(t, got.PtrEq(fn))
}
