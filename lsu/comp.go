// Package lsu implements the top-level Out-of-Order Load/Store Unit: a
// TickingComponent that owns the LDQ, STQ, MCQ, and BDQ, runs the fixed-
// priority fire arbiter, drives the DTLB/DCache/AGU ports, runs the LCAM
// memory-ordering search, and handles commit, branch-mispredict kill, and
// exception recovery.
//
// The ROB interface is intimately coupled (dispatch/commit/branch-info/
// exception are sampled every cycle, not exchanged as latency-bearing
// messages), so it is wired as plain Go method calls rather than through a
// sim.Port, the way a register file's read/write ports are simple
// function calls in the reference hardware description. The DTLB, AGU,
// and DCache are genuine asynchronous collaborators and are wired through
// sim.Port, since they are external components with their own response
// latency.
package lsu

import (
	"github.com/weontaekna/AOS-boom/bdq"
	"github.com/weontaekna/AOS-boom/csr"
	"github.com/weontaekna/AOS-boom/hella"
	"github.com/weontaekna/AOS-boom/iface"
	"github.com/weontaekna/AOS-boom/ldq"
	"github.com/weontaekna/AOS-boom/mcq"
	"github.com/weontaekna/AOS-boom/sim"
	"github.com/weontaekna/AOS-boom/stq"
)

// Config bundles the queue depths and CSR defaults a Comp is built with.
type Config struct {
	CoreWidth int
	MemWidth  int

	NumLdqEntries int
	NumStqEntries int
	NumMcqEntries int
	NumBdqEntries int

	// NumRobEntries bounds the circular space rob_head_idx and every
	// dispatched uop's RobIdx live in, used to compare exception age.
	NumRobEntries int
}

// DefaultConfig returns a modest single-lane configuration suitable for
// tests and the CLI's default run.
func DefaultConfig() Config {
	return Config{
		CoreWidth:     2,
		MemWidth:      1,
		NumLdqEntries: 16,
		NumStqEntries: 16,
		NumMcqEntries: 16,
		NumBdqEntries: 8,
		NumRobEntries: 32,
	}
}

// Comp is the Out-of-Order LSU.
type Comp struct {
	*sim.TickingComponent

	cfg Config

	Ldq *ldq.Queue
	Stq *stq.Queue
	Mcq *mcq.Queue
	Bdq *bdq.Queue

	hella *hella.Shim

	csr *csr.File

	nextLiveStoreMask uint64

	mcqCommitPtr int
	bdqCommitPtr int

	lrscCount int

	pendingDispatch iface.DispatchBundle
	pendingCommit   iface.CommitBundle
	pendingBrInfo   iface.BrInfo
	pendingExcept   bool
	robHeadIdx      int

	blockLoadMask   uint64
	p1BlockLoadMask uint64
	p2BlockLoadMask uint64

	lastSignals iface.Signals

	newlySucceededLdq []int
	newlySucceededStq []int
	ldMissThisTick    bool

	toDtlb    sim.Port
	toAgu     sim.Port
	toDcache  sim.Port
	toHellaCl sim.Port

	dtlbRemote   sim.Port
	dcacheRemote sim.Port
	hellaRemote  sim.Port

	inflight map[string]requestTag

	pendingHella *iface.HellaReq
}

// requestTag records what an in-flight DTLB/DCache request was for, so the
// response handler can route it back to the right queue entry.
type requestTag struct {
	kind string // "ldq", "stq", "stq-commit", "mcq-probe", "bdq-probe", "bdq-store", "hella"
	idx  int
}

// NewComp creates an LSU with the given configuration and CSR file. Its
// MCQ and BDQ are built with nil predicates, so every bounds and occupancy
// check matches.
func NewComp(
	name string,
	engine sim.Engine,
	freq sim.Freq,
	cfg Config,
	csrFile *csr.File,
) *Comp {
	c := &Comp{
		cfg:      cfg,
		Ldq:      ldq.New(cfg.NumLdqEntries),
		Stq:      stq.New(cfg.NumStqEntries),
		csr:      csrFile,
		hella:    hella.New(),
		inflight: make(map[string]requestTag),
	}

	cfgSnapshot := csrFile.Config()
	c.Mcq = mcq.New(cfg.NumMcqEntries, cfgSnapshot.HBTNumWay, nil)
	c.Bdq = bdq.New(cfg.NumBdqEntries, cfgSnapshot.HBTNumWay, nil)

	c.TickingComponent = sim.NewTickingComponent(name, engine, freq, c)

	c.toDtlb = sim.NewPort(c, 4, 4, name+".ToDTLB")
	c.toAgu = sim.NewPort(c, 4, 4, name+".ToAGU")
	c.toDcache = sim.NewPort(c, 4, 4, name+".ToDCache")
	c.toHellaCl = sim.NewPort(c, 4, 4, name+".ToHellaClient")

	c.AddPort("ToDTLB", c.toDtlb)
	c.AddPort("ToAGU", c.toAgu)
	c.AddPort("ToDCache", c.toDcache)
	c.AddPort("ToHellaClient", c.toHellaCl)

	return c
}

// SetDTLBRemote records the DTLB's port as the destination of future
// translation requests.
func (c *Comp) SetDTLBRemote(p sim.Port) { c.dtlbRemote = p }

// SetDCacheRemote records the data cache's port as the destination of
// future memory requests.
func (c *Comp) SetDCacheRemote(p sim.Port) { c.dcacheRemote = p }

// SetHellaRemote records the hella client's port as the destination of
// future hella responses.
func (c *Comp) SetHellaRemote(p sim.Port) { c.hellaRemote = p }

// ToDTLB returns the port connected to the DTLB.
func (c *Comp) ToDTLB() sim.Port { return c.toDtlb }

// ToAGU returns the port connected to the address-generation units.
func (c *Comp) ToAGU() sim.Port { return c.toAgu }

// ToDCache returns the port connected to the data cache.
func (c *Comp) ToDCache() sim.Port { return c.toDcache }

// ToHellaClient returns the port connected to the hella-channel client.
func (c *Comp) ToHellaClient() sim.Port { return c.toHellaCl }

// SetDispatch queues a dispatch bundle to be processed next tick.
func (c *Comp) SetDispatch(b iface.DispatchBundle) {
	c.pendingDispatch = b
	c.TickLater()
}

// SetCommit queues a commit bundle to be processed next tick.
func (c *Comp) SetCommit(b iface.CommitBundle) {
	c.pendingCommit = b
	c.TickLater()
}

// SetBrInfo queues resolved branch info to be processed next tick.
func (c *Comp) SetBrInfo(b iface.BrInfo) {
	c.pendingBrInfo = b
	c.TickLater()
}

// SetException arms an exception to be processed next tick.
func (c *Comp) SetException(v bool) {
	c.pendingExcept = v
	c.TickLater()
}

// SetRobHeadIdx records the ROB head index, used by the wakeup predicate's
// head-of-ROB check.
func (c *Comp) SetRobHeadIdx(idx int) { c.robHeadIdx = idx }

// Signals returns the sideband status bits computed by the last tick.
func (c *Comp) Signals() iface.Signals { return c.lastSignals }

// CSR returns the LSU's CSR file.
func (c *Comp) CSR() *csr.File { return c.csr }

// Tick runs dispatch, arbitration, the TLB/DCache/LCAM pipeline,
// writeback, and commit/kill/exception for one cycle.
func (c *Comp) Tick() bool {
	madeProgress := false

	c.lastSignals.Lxcpt = iface.Lxcpt{}

	if c.pendingExcept {
		c.handleException()
		c.pendingExcept = false
		madeProgress = true
	}

	if c.pendingBrInfo.Valid && c.pendingBrInfo.Mispredict {
		c.handleMispredict(c.pendingBrInfo)
		c.pendingBrInfo = iface.BrInfo{}
		madeProgress = true
	}

	if len(c.pendingDispatch.Uops) > 0 {
		c.dispatch(c.pendingDispatch)
		c.pendingDispatch = iface.DispatchBundle{}
		madeProgress = true
	}

	if c.drainResponses() {
		madeProgress = true
	}

	if c.arbitrateAndFire() {
		madeProgress = true
	}

	if c.commit(c.pendingCommit) {
		madeProgress = true
	}
	c.pendingCommit = iface.CommitBundle{}

	c.p2BlockLoadMask = c.p1BlockLoadMask
	c.p1BlockLoadMask = c.blockLoadMask
	c.blockLoadMask = 0

	if c.lrscCount > 0 {
		c.lrscCount--
	}

	c.computeSignals()

	return madeProgress
}
