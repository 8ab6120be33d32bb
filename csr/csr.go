// Package csr holds the LSU's configuration and counter registers: the
// hash-based bounds table geometry, the WYFY enable/reconfigure payload,
// and the nine counters. The LSU updates the counters at queue dequeue,
// except for hella-channel traffic, which it counts as it is issued and
// answered.
package csr

import "sync"

// Config is the reconfigurable payload loaded on an initWYFY rising edge.
type Config struct {
	EnableWYFY  bool
	HBTBaseAddr uint64
	HBTNumWay   uint32
}

// DefaultConfig returns the reference design's default configuration.
func DefaultConfig() Config {
	return Config{
		EnableWYFY:  false,
		HBTBaseAddr: 0x10000,
		HBTNumWay:   4,
	}
}

// Counters are the nine dequeue-time counters named in the configuration
// registers.
type Counters struct {
	SignedInst   uint64
	UnsignedInst uint64
	BndStr       uint64
	BndClr       uint64
	BndSrch      uint64
	MemReq       uint64
	MemSize      uint64
	CacheHit     uint64
	CacheMiss    uint64
}

// File is the LSU's CSR file: the active Config plus the live Counters,
// guarded by a mutex since the monitor's HTTP handlers read it from a
// different goroutine than the one ticking the simulation.
type File struct {
	mu       sync.Mutex
	config   Config
	counters Counters
}

// NewFile creates a File seeded with the default configuration.
func NewFile() *File {
	return &File{config: DefaultConfig()}
}

// InitWYFY reloads the configuration from cfg, as happens on an initWYFY
// rising edge. Counters are reset to zero; Config carries no counter
// values, so a reconfiguration cannot load them.
func (f *File) InitWYFY(cfg Config) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.config = cfg
	f.counters = Counters{}
}

// Config returns a snapshot of the current configuration.
func (f *File) Config() Config {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.config
}

// Counters returns a snapshot of the current counters.
func (f *File) Counters() Counters {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.counters
}

// CountSignedInst increments the signed-instruction counter. Called at
// dequeue for a load/store whose operand is sign-extended.
func (f *File) CountSignedInst() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.counters.SignedInst++
}

// CountUnsignedInst increments the unsigned-instruction counter.
func (f *File) CountUnsignedInst() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.counters.UnsignedInst++
}

// CountBndStr increments the bounds-store counter, at a BDQ entry's
// successful b_done dequeue.
func (f *File) CountBndStr() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.counters.BndStr++
}

// CountBndClr increments the bounds-clear counter.
func (f *File) CountBndClr() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.counters.BndClr++
}

// CountBndSrch increments the bounds-search counter, once per MCQ entry
// the LSU dequeues.
func (f *File) CountBndSrch() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.counters.BndSrch++
}

// CountMemReq increments the memory-request counter.
func (f *File) CountMemReq() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.counters.MemReq++
}

// AddMemReq adds n to the memory-request counter, flushing a queue entry's
// accumulated request count at dequeue.
func (f *File) AddMemReq(n uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.counters.MemReq += n
}

// AddMemSize adds n bytes to the memory-size counter.
func (f *File) AddMemSize(n uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.counters.MemSize += n
}

// CountCacheHit increments the cache-hit counter.
func (f *File) CountCacheHit() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.counters.CacheHit++
}

// AddCacheHit adds n to the cache-hit counter, flushing a queue entry's
// accumulated hit count at dequeue.
func (f *File) AddCacheHit(n uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.counters.CacheHit += n
}

// CountCacheMiss increments the cache-miss counter.
func (f *File) CountCacheMiss() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.counters.CacheMiss++
}

// AddCacheMiss adds n to the cache-miss counter, flushing a queue entry's
// accumulated miss count at dequeue.
func (f *File) AddCacheMiss(n uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.counters.CacheMiss += n
}
