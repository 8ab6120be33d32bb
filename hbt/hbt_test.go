package hbt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weontaekna/AOS-boom/hbt"
)

func TestPAC(t *testing.T) {
	assert.Equal(t, uint64(0), hbt.PAC(0x1FFF_FFFF_FFFF))
	assert.Equal(t, uint64(1), hbt.PAC(1<<45))
	assert.Equal(t, uint64(0x7FFFF), hbt.PAC(^uint64(0)))
}

func TestAddr(t *testing.T) {
	tests := []struct {
		name string
		base uint64
		pac  uint64
		way  uint32
		want uint64
	}{
		{name: "base only", base: 0x10000, pac: 0, way: 0, want: 0x10000},
		{name: "pac shifted into bit 2", base: 0x10000, pac: 1, way: 0, want: 0x10004},
		{name: "way shifted into bit 3", base: 0x10000, pac: 0, way: 1, want: 0x10008},
		{name: "pac and way combine", base: 0x10000, pac: 3, way: 2, want: 0x10000 | (3 << 2) | (2 << 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hbt.Addr(tt.base, tt.pac, tt.way))
		})
	}
}

func TestAlwaysMatch(t *testing.T) {
	assert.True(t, hbt.AlwaysMatch(nil, 0, 0))
	assert.True(t, hbt.AlwaysMatch([]byte{1, 2, 3}, 0x4000, 3))
}
