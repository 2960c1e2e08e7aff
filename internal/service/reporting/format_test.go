package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1.234,50 ₺", FormatAmount(1234.5))
	assert.Equal(t, "0,00 ₺", FormatAmount(0))
	assert.Equal(t, "-60,00 ₺", FormatAmount(-60))
}

func TestFormatLiters(t *testing.T) {
	assert.Equal(t, "1.250,5 L", FormatLiters(1250.5))
}
