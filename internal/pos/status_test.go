package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStatus_Sequence(t *testing.T) {
	assert.Equal(t, StatusEmPreparo, NextStatus(StatusNovo))
	assert.Equal(t, StatusPronto, NextStatus(StatusEmPreparo))
	assert.Equal(t, StatusConcluido, NextStatus(StatusPronto))
}

func TestNextStatus_TerminalIsIdempotent(t *testing.T) {
	assert.Equal(t, StatusConcluido, NextStatus(StatusConcluido))
	assert.Equal(t, StatusConcluido, NextStatus(NextStatus(StatusConcluido)))
}

func TestNextStatus_OutOfBandAndUnknownDoNotAdvance(t *testing.T) {
	assert.Equal(t, StatusPago, NextStatus(StatusPago))
	assert.Equal(t, Status("RASCUNHO"), NextStatus(Status("RASCUNHO")))
	assert.Equal(t, Status(""), NextStatus(Status("")))
}

func TestNextStatus_Pure(t *testing.T) {
	for _, s := range []Status{StatusNovo, StatusEmPreparo, StatusPronto, StatusConcluido} {
		first := NextStatus(s)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, NextStatus(s))
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusNovo, StatusEmPreparo, StatusPronto, StatusConcluido, StatusPago} {
		assert.True(t, s.Valid(), "%s", s)
	}
	assert.False(t, Status("NEW").Valid())
	assert.False(t, Status("").Valid())
}
