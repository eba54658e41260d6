package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAssign(t *testing.T) {
	changed := 0
	s := "old"

	assign(&s, "old", &changed)
	assert.Equal(t, 0, changed)

	assign(&s, "new", &changed)
	assert.Equal(t, 1, changed)
	assert.Equal(t, "new", s)
}

func TestAssignTime_ComparesInstants(t *testing.T) {
	changed := 0
	utc := time.Date(2023, 11, 6, 9, 30, 0, 0, time.UTC)
	prague, err := time.LoadLocation("Europe/Prague")
	assert.NoError(t, err)

	got := utc.In(prague)
	assignTime(&got, utc, &changed)
	assert.Equal(t, 0, changed)

	assignTime(&got, utc.Add(time.Minute), &changed)
	assert.Equal(t, 1, changed)
}

func TestAssignRef(t *testing.T) {
	one, two := uint(1), uint(2)
	changed := 0

	var ref *uint
	assignRef(&ref, nil, &changed)
	assert.Equal(t, 0, changed)

	assignRef(&ref, &one, &changed)
	assert.Equal(t, 1, changed)

	// Same value behind a different pointer is not a change.
	same := uint(1)
	assignRef(&ref, &same, &changed)
	assert.Equal(t, 1, changed)

	assignRef(&ref, &two, &changed)
	assert.Equal(t, 2, changed)

	assignRef(&ref, nil, &changed)
	assert.Equal(t, 3, changed)
	assert.Nil(t, ref)
}
