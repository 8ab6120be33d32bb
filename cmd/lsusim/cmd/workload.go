package cmd

import (
	"strconv"
	"strings"

	"github.com/weontaekna/AOS-boom/csr"
	"github.com/weontaekna/AOS-boom/iface"
	"github.com/weontaekna/AOS-boom/lsu"
	"github.com/weontaekna/AOS-boom/sim"
	"github.com/weontaekna/AOS-boom/sim/directconnection"
	"github.com/weontaekna/AOS-boom/testfixture"
	"github.com/weontaekna/AOS-boom/uop"
)

// buildConfig assembles the lsu.Config and seeded csr.File the persistent
// coreWidth/memWidth/hbt-num-way/hbt-base-addr flags describe.
func buildConfig() (lsu.Config, *csr.File, error) {
	cfg := lsu.DefaultConfig()
	cfg.CoreWidth = coreWidth
	cfg.MemWidth = memWidth

	base, err := strconv.ParseUint(strings.TrimPrefix(hbtBaseHex, "0x"), 16, 64)
	if err != nil {
		return lsu.Config{}, nil, err
	}

	csrFile := csr.NewFile()
	csrFile.InitWYFY(csr.Config{
		EnableWYFY:  true,
		HBTBaseAddr: base,
		HBTNumWay:   hbtNumWay,
	})

	return cfg, csrFile, nil
}

// rig bundles an lsu.Comp with the memory-system stand-ins a headless run
// needs to make progress: a DTLB, a DCache, and an AGU that drip-feeds a
// synthetic stream of loads and stores.
type rig struct {
	engine *sim.SerialEngine
	comp   *lsu.Comp
	dtlb   *testfixture.DTLB
	dcache *testfixture.DCache
	agu    *testfixture.AGU
	rob    *testfixture.ROB
}

func newRig(cfg lsu.Config, csrFile *csr.File) *rig {
	engine := sim.NewSerialEngine()
	comp := lsu.MakeBuilder().
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		WithConfig(cfg).
		WithCSR(csrFile).
		Build("LSU")

	dtlb := testfixture.NewDTLB("DTLB", engine, 1*sim.GHz)
	dcache := testfixture.NewDCache("DCache", engine, 1*sim.GHz)
	agu := testfixture.NewAGU("AGU", engine, 1*sim.GHz)

	wire := func(a, b sim.Port) {
		conn := directconnection.MakeBuilder().WithEngine(engine).WithFreq(1 * sim.GHz).Build(a.Name() + "-" + b.Name())
		conn.PlugIn(a)
		conn.PlugIn(b)
	}

	wire(comp.ToDTLB(), dtlb.Port())
	wire(comp.ToDCache(), dcache.Port())
	wire(comp.ToAGU(), agu.Port())

	comp.SetDTLBRemote(dtlb.Port())
	comp.SetDCacheRemote(dcache.Port())

	return &rig{
		engine: engine,
		comp:   comp,
		dtlb:   dtlb,
		dcache: dcache,
		agu:    agu,
		rob:    testfixture.NewROB(),
	}
}

// runTicks dispatches a round-robin load/store stream for n cycles,
// committing each uop two cycles after it was dispatched and delivering
// its computed address on dispatch, the way a simple in-order AGU would.
func (r *rig) runTicks(n int) error {
	var inflight []uop.MicroOp

	for tick := 0; tick < n; tick++ {
		u := r.rob.Alloc(nextWorkloadUop(tick))
		if u.UsesStq {
			u.StqIdx = r.comp.Stq.Tail()
		}
		r.comp.SetDispatch(testfixture.Dispatch(u))

		addr := 0x1000 + uint64(tick%64)*8
		if u.UsesLdq {
			r.agu.Deliver(r.comp.ToAGU(), (iface.AguRespBuilder{}).
				WithLdqIdx(r.comp.Ldq.Tail()).
				WithAddr(addr).
				Build())
		} else {
			r.agu.Deliver(r.comp.ToAGU(), (iface.AguRespBuilder{}).
				WithStqIdx(r.comp.Stq.Tail()).
				WithAddr(addr).
				WithData([]byte{byte(tick), 0, 0, 0, 0, 0, 0, 0}).
				Build())
		}

		inflight = append(inflight, u)
		if len(inflight) > 2 {
			oldest := inflight[0]
			inflight = inflight[1:]
			r.comp.SetCommit(testfixture.Commit(oldest))
		}

		r.comp.TickNow()
		if err := r.engine.Run(); err != nil {
			return err
		}
	}

	return nil
}

func nextWorkloadUop(tick int) uop.MicroOp {
	if tick%3 == 0 {
		return uop.MicroOp{UsesStq: true, MemCmd: uop.CmdWrite, MemSize: uop.SizeDouble}
	}

	return uop.MicroOp{UsesLdq: true, MemCmd: uop.CmdRead, MemSize: uop.SizeDouble}
}
