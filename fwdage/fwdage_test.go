package fwdage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weontaekna/AOS-boom/fwdage"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		name           string
		matches        []int
		stqHead        int
		youngestStqIdx int
		stqLen         int
		wantIdx        int
		wantOK         bool
	}{
		{
			name:           "picks the match nearest the youngest older store",
			matches:        []int{0, 2, 5},
			stqHead:        0,
			youngestStqIdx: 6,
			stqLen:         8,
			wantIdx:        5,
			wantOK:         true,
		},
		{
			name:           "wraps the distance calculation across the queue boundary",
			matches:        []int{6, 7},
			stqHead:        6,
			youngestStqIdx: 1,
			stqLen:         8,
			wantIdx:        7,
			wantOK:         true,
		},
		{
			name:           "excludes a match that is not older than the load",
			matches:        []int{6},
			stqHead:        0,
			youngestStqIdx: 3,
			stqLen:         8,
			wantOK:         false,
		},
		{
			name:    "reports not-ok with no candidates",
			matches: nil,
			stqLen:  8,
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := fwdage.Select(tt.matches, tt.stqHead, tt.youngestStqIdx, tt.stqLen)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantIdx, idx)
			}
		})
	}
}

func TestIsForwardMatch(t *testing.T) {
	assert.True(t, fwdage.IsForwardMatch(3, []int{1, 3, 5}))
	assert.False(t, fwdage.IsForwardMatch(2, []int{1, 3, 5}))
	assert.False(t, fwdage.IsForwardMatch(0, nil))
}
