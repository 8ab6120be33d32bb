package ageenc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weontaekna/AOS-boom/ageenc"
)

func TestOldest(t *testing.T) {
	tests := []struct {
		name    string
		head    int
		n       int
		match   map[int]bool
		wantIdx int
		wantOK  bool
	}{
		{
			name:    "finds the slot nearest head first",
			head:    2,
			n:       4,
			match:   map[int]bool{0: true, 2: true},
			wantIdx: 2,
			wantOK:  true,
		},
		{
			name:    "wraps around past the end of the queue",
			head:    3,
			n:       4,
			match:   map[int]bool{1: true},
			wantIdx: 1,
			wantOK:  true,
		},
		{
			name:   "reports not-ok when nothing matches",
			head:   0,
			n:      4,
			match:  map[int]bool{},
			wantOK: false,
		},
		{
			name:   "reports not-ok for a zero-length queue",
			head:   0,
			n:      0,
			match:  map[int]bool{0: true},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := ageenc.Oldest(tt.head, tt.n, func(i int) bool { return tt.match[i] })

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantIdx, idx)
			}
		})
	}
}

func TestYoungest(t *testing.T) {
	match := map[int]bool{1: true, 3: true}

	idx, ok := ageenc.Youngest(0, 4, func(i int) bool { return match[i] })

	assert.True(t, ok)
	assert.Equal(t, 3, idx, "Youngest should prefer the slot farthest from head")
}

func TestYoungestNoMatch(t *testing.T) {
	_, ok := ageenc.Youngest(0, 4, func(i int) bool { return false })
	assert.False(t, ok)
}

func TestIsOlder(t *testing.T) {
	tests := []struct {
		name string
		a, b int
		head int
		n    int
		want bool
	}{
		{name: "a before b, no wrap", a: 1, b: 3, head: 0, n: 8, want: true},
		{name: "a after b, no wrap", a: 3, b: 1, head: 0, n: 8, want: false},
		{name: "equal slots are not older", a: 2, b: 2, head: 0, n: 8, want: false},
		{name: "a is younger once wrapped past head", a: 1, b: 6, head: 5, n: 8, want: false},
		{name: "b is younger once wrapped past head", a: 6, b: 1, head: 5, n: 8, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ageenc.IsOlder(tt.a, tt.b, tt.head, tt.n))
		})
	}
}
