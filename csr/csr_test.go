package csr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weontaekna/AOS-boom/csr"
)

func TestNewFileSeedsDefaultConfig(t *testing.T) {
	f := csr.NewFile()

	assert.Equal(t, csr.DefaultConfig(), f.Config())
	assert.Equal(t, csr.Counters{}, f.Counters())
}

func TestInitWYFYReloadsConfigAndResetsCounters(t *testing.T) {
	f := csr.NewFile()
	f.CountMemReq()

	cfg := csr.Config{EnableWYFY: true, HBTBaseAddr: 0x20000, HBTNumWay: 8}
	f.InitWYFY(cfg)

	assert.Equal(t, cfg, f.Config())
	assert.Equal(t, csr.Counters{}, f.Counters())
}

func TestCountersIncrement(t *testing.T) {
	f := csr.NewFile()

	f.CountSignedInst()
	f.CountUnsignedInst()
	f.CountUnsignedInst()
	f.CountBndStr()
	f.CountBndClr()
	f.CountBndSrch()
	f.CountMemReq()
	f.AddMemSize(8)
	f.AddMemSize(4)
	f.CountCacheHit()
	f.CountCacheMiss()

	got := f.Counters()

	assert.Equal(t, csr.Counters{
		SignedInst:   1,
		UnsignedInst: 2,
		BndStr:       1,
		BndClr:       1,
		BndSrch:      1,
		MemReq:       1,
		MemSize:      12,
		CacheHit:     1,
		CacheMiss:    1,
	}, got)
}

func TestAddMethodsFlushAccumulatedCounts(t *testing.T) {
	f := csr.NewFile()

	f.AddMemReq(3)
	f.AddMemSize(24)
	f.AddCacheHit(2)
	f.AddCacheMiss(1)

	f.AddMemReq(1)
	f.AddCacheHit(1)

	got := f.Counters()

	assert.Equal(t, csr.Counters{
		MemReq:    4,
		MemSize:   24,
		CacheHit:  3,
		CacheMiss: 1,
	}, got)
}
