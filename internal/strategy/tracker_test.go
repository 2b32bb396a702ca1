package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker(t *testing.T) {
	tr := NewTracker()

	tr.Ensure(4)
	assert.Equal(t, Exploring, tr.Status(4))

	tr.Set(4, Returning)
	tr.Ensure(4)
	assert.Equal(t, Returning, tr.Status(4), "Ensure must not reset a known ship")

	assert.Equal(t, Exploring, tr.Status(9), "unknown ids start exploring")
	assert.Equal(t, 2, tr.Len())

	tr.Set(9, Rushing)
	counts := tr.Counts([]int{4, 9, 11})
	assert.Equal(t, 1, counts[Returning])
	assert.Equal(t, 1, counts[Rushing])
	assert.Equal(t, 1, counts[Exploring])
}

func TestTracker_ConversionFlag(t *testing.T) {
	tr := NewTracker()
	assert.False(t, tr.ConversionUsed())
	tr.MarkConversionUsed()
	assert.True(t, tr.ConversionUsed())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "exploring", Exploring.String())
	assert.Equal(t, "returning", Returning.String())
	assert.Equal(t, "stay", Stay.String())
	assert.Equal(t, "rushing", Rushing.String())
	assert.Equal(t, "Status(9)", Status(9).String())
}
