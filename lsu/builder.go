package lsu

import (
	"github.com/weontaekna/AOS-boom/csr"
	"github.com/weontaekna/AOS-boom/sim"
)

// Builder constructs an LSU Comp, mirroring the wider module's engine/
// component builder convention.
type Builder struct {
	engine sim.Engine
	freq   sim.Freq
	cfg    Config
	csr    *csr.File
}

// MakeBuilder creates a builder seeded with DefaultConfig and a fresh CSR
// file.
func MakeBuilder() Builder {
	return Builder{
		freq: 1 * sim.GHz,
		cfg:  DefaultConfig(),
		csr:  csr.NewFile(),
	}
}

// WithEngine sets the event-driven engine the built Comp ticks on.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the clock frequency the built Comp ticks at.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithConfig sets the queue-depth configuration the built Comp uses.
func (b Builder) WithConfig(cfg Config) Builder {
	b.cfg = cfg
	return b
}

// WithCSR sets the CSR file the built Comp shares with its monitor.
func (b Builder) WithCSR(f *csr.File) Builder {
	b.csr = f
	return b
}

// Build creates the named Comp.
func (b Builder) Build(name string) *Comp {
	return NewComp(name, b.engine, b.freq, b.cfg, b.csr)
}
