package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeeded_Intn(t *testing.T) {
	a := assert.New(t)

	s1 := NewSeeded(42)
	s2 := NewSeeded(42)
	for i := 0; i < 100; i++ {
		v := s1.Intn(52)
		a.Equal(v, s2.Intn(52), "same seed, same sequence")
		a.True(v >= 0 && v < 52)
	}
}

func TestCrypto_Intn(t *testing.T) {
	a := assert.New(t)

	var g Generator = Crypto{}
	found := make(map[int]int)
	// it's possible this could fail, but not likely
	for i := 0; i < 2000; i++ {
		found[g.Intn(4)]++
	}

	a.Len(found, 4)
	for v := range found {
		a.True(v >= 0 && v < 4, "value %d out of range", v)
	}
}
