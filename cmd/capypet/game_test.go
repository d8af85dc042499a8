package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameCounter(t *testing.T) {
	start := time.Unix(100, 0)
	c := newFrameCounter(start)

	for i := 1; i < 60; i++ {
		_, ok := c.Frame(start.Add(time.Duration(i) * time.Second / 60))
		assert.False(t, ok)
	}

	n, ok := c.Frame(start.Add(time.Second))
	assert.True(t, ok)
	assert.Equal(t, 60, n)

	n, ok = c.Frame(start.Add(1500 * time.Millisecond))
	assert.False(t, ok)
	assert.Zero(t, n)

	n, ok = c.Frame(start.Add(2 * time.Second))
	assert.True(t, ok)
	assert.Equal(t, 2, n)
}
