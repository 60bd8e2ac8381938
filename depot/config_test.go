package depot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_ValidateRequiresName(t *testing.T) {
	c := Config{}
	assert.ErrorIs(t, c.Validate(), ErrNameRequired)
}

func TestConfig_ValidateRejectsBadName(t *testing.T) {
	c := Config{Name: "Bad Name"}
	assert.ErrorIs(t, c.Validate(), ErrInvalidName)
}

func TestConfig_ValidateRejectsNegativeSeedQuantity(t *testing.T) {
	c := Config{Name: "Depot1", Seeds: []Good{{Name: "Nuts", Qty: -1}}}
	assert.ErrorIs(t, c.Validate(), ErrInvalidQuantity)
}

func TestConfig_ValidateAcceptsZeroSeedQuantity(t *testing.T) {
	c := Config{Name: "Depot1", Seeds: []Good{{Name: "Nuts", Qty: 0}}}
	assert.NoError(t, c.Validate())
}
