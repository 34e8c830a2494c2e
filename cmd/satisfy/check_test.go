package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToString(t *testing.T) {
	assert.Equal(t, "101", toString([]bool{true, false, true}))
}

func TestToSet_DedupesIdenticalModels(t *testing.T) {
	set := toSet([][]bool{
		{true, false},
		{true, false},
		{false, true},
	})
	assert.Len(t, set, 2)
	assert.Contains(t, set, "10")
	assert.Contains(t, set, "01")
}
