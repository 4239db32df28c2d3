package marker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type billing interface {
	Charge()
	Refund()
}

type cardBilling struct{}

func (cardBilling) Charge() {}
func (cardBilling) Refund() {}

type ledger struct{}

func (*ledger) Append() {}
func (*ledger) Read()   {}

type untouched struct{}

func (untouched) Noop() {}

func init() {
	Reg[billing]("Charge")
	Reg[*ledger]("Append")
}

func TestContractMarksAreInherited(t *testing.T) {
	assert.True(t, IsMarked(cardBilling{}, "Charge"), "mark on the contract reaches the implementer")
	assert.False(t, IsMarked(cardBilling{}, "Refund"))
	assert.True(t, HasAnyMarked(cardBilling{}))
}

func TestConcreteMarks(t *testing.T) {
	assert.True(t, IsMarked(&ledger{}, "Append"))
	assert.False(t, IsMarked(&ledger{}, "Read"))
	assert.True(t, HasAnyMarked(&ledger{}))
}

func TestAbsenceIsFalse(t *testing.T) {
	assert.False(t, IsMarked(untouched{}, "Noop"))
	assert.False(t, HasAnyMarked(untouched{}))
	assert.False(t, IsMarked(nil, "Anything"))
	assert.False(t, HasAnyMarked(nil))
}

type overlay struct{}

func TestNamedOverlayIgnoresPointerForm(t *testing.T) {
	RegNamed("marker.overlay", "Noop")

	assert.True(t, IsMarked(overlay{}, "Noop"))
	assert.True(t, IsMarked(&overlay{}, "Noop"), "pointer target answers for the value entry")
}

func TestLoadTable(t *testing.T) {
	type loaded struct{}

	Load(map[string][]string{"marker.loaded": {"Go"}})
	assert.True(t, IsMarked(loaded{}, "Go"))
	assert.False(t, IsMarked(loaded{}, "Stop"))
}
