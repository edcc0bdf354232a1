package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateOverrideTime(t *testing.T) {
	assert.NoError(t, ValidateOverrideTime("10:00"))
	assert.NoError(t, ValidateOverrideTime("00:00"))
	assert.NoError(t, ValidateOverrideTime("23:59"))
	assert.NoError(t, ValidateOverrideTime(OverrideNotApplicable))

	assert.Error(t, ValidateOverrideTime("25:00"))
	assert.Error(t, ValidateOverrideTime("n/a"))
	assert.Error(t, ValidateOverrideTime(""))
	assert.Error(t, ValidateOverrideTime("10:60"))
	// Loose workbook formats are fine for ingestion but not here.
	assert.Error(t, ValidateOverrideTime("8:30"))
	assert.Error(t, ValidateOverrideTime("08.30"))
	assert.Error(t, ValidateOverrideTime("08:30:00"))
}
