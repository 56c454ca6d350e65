package comet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRing(t *testing.T) {
	var r Ring
	r.Init(3)
	assert.True(t, r.Empty())

	for i := 0; i < 3; i++ {
		assert.Equal(t, i, r.NextWrite())
		r.Write()
	}
	assert.True(t, r.Full())
	r.Write()
	assert.Equal(t, 3, r.Len())

	r.Read()
	assert.Equal(t, 1, r.NextRead())
	assert.Equal(t, 0, r.NextWrite())
	r.Write()
	assert.Equal(t, 1, r.Index(0))
	assert.Equal(t, 0, r.Index(2))

	r.Read()
	r.Read()
	r.Read()
	assert.True(t, r.Empty())
	assert.Equal(t, 1, r.NextWrite())
}
