package lsu

import "github.com/weontaekna/AOS-boom/iface"

// computeSignals rebuilds the sideband status bits the ROB samples every
// cycle from this tick's queue state, per §4.6 and §6: the four full
// flags, the clear-busy/clear-unsafe vectors for loads and stores that
// completed this cycle, the speculative-wakeup and load-miss bits, and
// whether a pending fencei can now retire.
func (c *Comp) computeSignals() {
	s := iface.Signals{
		LdqFull: c.Ldq.Full(),
		StqFull: c.Stq.Full(),
		McqFull: c.Mcq.Full(),
		BdqFull: c.Bdq.Full(),
		Lxcpt:   c.lastSignals.Lxcpt,
	}

	s.ClrBusy = make([]bool, c.cfg.CoreWidth)
	for i, idx := range c.newlySucceededLdq {
		if i >= c.cfg.CoreWidth {
			break
		}

		e := c.Ldq.Entry(idx)
		s.ClrBusy[i] = e.Valid && e.Succeeded
	}

	s.ClrUnsafe = make([]bool, c.cfg.CoreWidth)
	for i, idx := range c.newlySucceededStq {
		if i >= c.cfg.CoreWidth {
			break
		}

		s.ClrUnsafe[i] = c.Stq.Entry(idx).Succeeded
	}

	s.SpecLdWakeup = len(c.newlySucceededLdq) > 0
	s.LdMiss = c.ldMissThisTick
	s.FenceiReady = c.Stq.ExecuteHead() == c.Stq.CommitHead()

	c.lastSignals = s

	c.newlySucceededLdq = nil
	c.newlySucceededStq = nil
	c.ldMissThisTick = false
}
