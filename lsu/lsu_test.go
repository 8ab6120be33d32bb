package lsu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/weontaekna/AOS-boom/bdq"
	"github.com/weontaekna/AOS-boom/csr"
	"github.com/weontaekna/AOS-boom/iface"
	"github.com/weontaekna/AOS-boom/lsu"
	"github.com/weontaekna/AOS-boom/mcq"
	"github.com/weontaekna/AOS-boom/sim"
	"github.com/weontaekna/AOS-boom/sim/directconnection"
	"github.com/weontaekna/AOS-boom/testfixture"
	"github.com/weontaekna/AOS-boom/uop"
)

type harness struct {
	engine *sim.SerialEngine
	comp   *lsu.Comp
	dtlb   *testfixture.DTLB
	dcache *testfixture.DCache
	agu    *testfixture.AGU
	rob    *testfixture.ROB
}

func newHarness() *harness {
	engine := sim.NewSerialEngine()
	csrFile := csr.NewFile()
	comp := lsu.NewComp("LSU", engine, 1*sim.GHz, lsu.DefaultConfig(), csrFile)

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

	return &harness{
		engine: engine,
		comp:   comp,
		dtlb:   dtlb,
		dcache: dcache,
		agu:    agu,
		rob:    testfixture.NewROB(),
	}
}

func (h *harness) run() {
	h.comp.TickNow()
	Expect(h.engine.Run()).To(Succeed())
}

var _ = Describe("LSU", func() {
	var h *harness

	BeforeEach(func() {
		h = newHarness()
	})

	It("forwards a store's data directly to a fully-overlapping younger load", func() {
		st := h.rob.Alloc(uop.MicroOp{
			UsesStq: true,
			MemCmd:  uop.CmdWrite,
			MemSize: uop.SizeDouble,
		})
		ld := h.rob.Alloc(uop.MicroOp{
			UsesLdq: true,
			MemCmd:  uop.CmdRead,
			MemSize: uop.SizeDouble,
		})

		h.comp.SetDispatch(testfixture.Dispatch(st, ld))
		h.comp.TickNow()
		Expect(h.engine.Run()).To(Succeed())

		h.agu.Deliver(h.comp.ToAGU(), (iface.AguRespBuilder{}).
			WithStqIdx(h.comp.Stq.Head()).
			WithAddr(0x2000).
			WithData([]byte{1, 2, 3, 4, 5, 6, 7, 8}).
			Build())
		h.run()

		h.agu.Deliver(h.comp.ToAGU(), (iface.AguRespBuilder{}).
			WithLdqIdx(h.comp.Ldq.Head()).
			WithAddr(0x2000).
			Build())
		h.run()

		entry := h.comp.Ldq.Entry(h.comp.Ldq.Head())
		Expect(entry.Succeeded).To(BeTrue())
		Expect(entry.ForwardStdVal).To(BeTrue())
		Expect(entry.Data).To(Equal([]byte{1, 2, 3, 4, 5, 6, 7, 8}))
	})

	It("does not complete a load that only partially overlaps an older store", func() {
		st := h.rob.Alloc(uop.MicroOp{UsesStq: true, MemCmd: uop.CmdWrite, MemSize: uop.SizeWord})
		ld := h.rob.Alloc(uop.MicroOp{UsesLdq: true, MemCmd: uop.CmdRead, MemSize: uop.SizeDouble})

		h.comp.SetDispatch(testfixture.Dispatch(st, ld))
		h.run()

		h.agu.Deliver(h.comp.ToAGU(), (iface.AguRespBuilder{}).
			WithStqIdx(h.comp.Stq.Head()).
			WithAddr(0x3000).
			WithData([]byte{0xAA, 0xBB, 0xCC, 0xDD}).
			Build())
		h.run()

		h.agu.Deliver(h.comp.ToAGU(), (iface.AguRespBuilder{}).
			WithLdqIdx(h.comp.Ldq.Head()).
			WithAddr(0x3000).
			Build())
		h.run()

		entry := h.comp.Ldq.Entry(h.comp.Ldq.Head())
		Expect(entry.Succeeded).To(BeFalse())
	})

	It("dequeues a load once the data cache returns its bytes", func() {
		addr := uint64(0x4000)
		h.dcache.Write(addr, []byte{9, 9, 9, 9, 9, 9, 9, 9})

		ld := h.rob.Alloc(uop.MicroOp{UsesLdq: true, MemCmd: uop.CmdRead, MemSize: uop.SizeDouble})
		h.comp.SetDispatch(testfixture.Dispatch(ld))
		h.run()

		h.agu.Deliver(h.comp.ToAGU(), (iface.AguRespBuilder{}).
			WithLdqIdx(h.comp.Ldq.Head()).
			WithAddr(addr).
			Build())
		h.run()

		entry := h.comp.Ldq.Entry(h.comp.Ldq.Head())
		Expect(entry.Succeeded).To(BeTrue())
		Expect(entry.Data).To(Equal([]byte{9, 9, 9, 9, 9, 9, 9, 9}))

		head := h.comp.Ldq.Head()
		h.comp.SetCommit(testfixture.Commit(ld))
		h.run()

		Expect(h.comp.Ldq.Entry(head).Valid).To(BeFalse())
	})

	It("squashes younger queue entries on a branch mispredict", func() {
		ld1 := h.rob.Alloc(uop.MicroOp{UsesLdq: true, MemCmd: uop.CmdRead, MemSize: uop.SizeWord, BrMask: 0x1})
		ld2 := h.rob.Alloc(uop.MicroOp{UsesLdq: true, MemCmd: uop.CmdRead, MemSize: uop.SizeWord, BrMask: 0x2})

		h.comp.SetDispatch(testfixture.Dispatch(ld1))
		h.run()

		killTail := h.comp.Ldq.Tail()

		h.comp.SetDispatch(testfixture.Dispatch(ld2))
		h.run()

		Expect(h.comp.Ldq.Entry(h.comp.Ldq.Head()).Valid).To(BeTrue())

		h.comp.SetBrInfo(iface.BrInfo{
			Valid:          true,
			Mispredict:     true,
			MispredictMask: 0x2,
			LdqTail:        killTail,
		})
		h.run()

		second := (h.comp.Ldq.Head() + 1) % h.comp.Ldq.Len()
		Expect(h.comp.Ldq.Entry(second).Valid).To(BeFalse())
		Expect(h.comp.Ldq.Tail()).To(Equal(killTail))
	})

	It("clears a bounds-check entry once its HBT probe matches", func() {
		ld := h.rob.Alloc(uop.MicroOp{UsesLdq: true, MemCmd: uop.CmdRead, MemSize: uop.SizeWord})

		h.comp.SetDispatch(testfixture.Dispatch(ld))
		h.run()

		ldqIdx := h.comp.Ldq.Head()
		mcqIdx := h.comp.Mcq.Head()

		h.agu.Deliver(h.comp.ToAGU(), (iface.AguRespBuilder{}).
			WithLdqIdx(ldqIdx).
			WithMcqIdx(mcqIdx).
			WithAddr(0x5000).
			Build())
		h.run()

		Expect(h.comp.Mcq.Entry(mcqIdx).State).To(Equal(mcq.StateDone))
	})

	It("flags an order-fail when an older store's address aliases an already-succeeded younger load", func() {
		st := h.rob.Alloc(uop.MicroOp{UsesStq: true, MemCmd: uop.CmdWrite, MemSize: uop.SizeWord})
		ld := h.rob.Alloc(uop.MicroOp{UsesLdq: true, MemCmd: uop.CmdRead, MemSize: uop.SizeWord})

		h.comp.SetDispatch(testfixture.Dispatch(st, ld))
		h.run()

		ldqIdx := h.comp.Ldq.Head()
		stqIdx := h.comp.Stq.Head()

		h.dcache.Write(0x6000, []byte{0, 0, 0, 0})

		h.agu.Deliver(h.comp.ToAGU(), (iface.AguRespBuilder{}).
			WithLdqIdx(ldqIdx).
			WithAddr(0x6000).
			Build())
		h.run()

		Expect(h.comp.Ldq.Entry(ldqIdx).Succeeded).To(BeTrue())

		h.agu.Deliver(h.comp.ToAGU(), (iface.AguRespBuilder{}).
			WithStqIdx(stqIdx).
			WithAddr(0x6000).
			WithData([]byte{1, 1, 1, 1}).
			Build())
		h.run()

		Expect(h.comp.Ldq.Entry(ldqIdx).OrderFail).To(BeTrue())
	})

	It("stores a bounds descriptor through to retirement once committed and its HBT probe matches", func() {
		u := h.rob.Alloc(uop.MicroOp{UsesBdq: true, MemCmd: uop.CmdWrite})

		h.comp.SetDispatch(testfixture.Dispatch(u))
		h.run()

		bdqIdx := h.comp.Bdq.Head()

		h.agu.Deliver(h.comp.ToAGU(), (iface.AguRespBuilder{}).
			WithBdqIdx(bdqIdx).
			WithAddr(0x2000_0000_7000).
			WithData([]byte{1, 2, 3, 4, 5, 6, 7, 8}).
			Build())
		h.run()

		Expect(h.comp.Bdq.Entry(bdqIdx).State).To(Equal(bdq.StateBndStr))

		h.comp.SetCommit(testfixture.Commit(u))
		h.run()

		Expect(h.comp.Bdq.Entry(bdqIdx).Valid).To(BeFalse(), "a done, committed bounds-store entry dequeues")
	})
})
