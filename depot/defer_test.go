package depot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeferLog_ExecuteReplaysInInsertionOrder(t *testing.T) {
	d := NewDeferLog()
	d.Append(7, "Deliver:5:Nuts")
	d.Append(7, "Withdraw:2:Bolts")
	d.Append(9, "Deliver:1:Screws")

	lines := d.Execute(7)
	assert.Equal(t, []string{"Deliver:5:Nuts", "Withdraw:2:Bolts"}, lines)
}

func TestDeferLog_ExecuteIsNotIdempotent(t *testing.T) {
	d := NewDeferLog()
	d.Append(7, "Deliver:5:Nuts")

	first := d.Execute(7)
	assert.Equal(t, []string{"Deliver:5:Nuts"}, first)

	second := d.Execute(7)
	assert.Empty(t, second)
}

func TestDeferLog_ExecuteUnknownKeyIsEmpty(t *testing.T) {
	d := NewDeferLog()
	assert.Empty(t, d.Execute(42))
}
