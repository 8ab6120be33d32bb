package sim

import (
	"log"
	"math"
)

// Freq is a clock frequency.
type Freq float64

// Common frequency units.
const (
	Hz  Freq = 1
	KHz Freq = 1e3
	MHz Freq = 1e6
	GHz Freq = 1e9
)

// Period returns the time between two consecutive ticks of the clock.
func (f Freq) Period() VTimeInSec {
	if f == 0 {
		log.Panic("frequency cannot be 0")
	}

	return VTimeInSec(1.0 / f)
}

// Cycle returns the number of cycles elapsed since time 0.
func (f Freq) Cycle(now VTimeInSec) uint64 {
	return uint64(math.Round(float64(now) * float64(f)))
}

// ThisTick returns the tick time at or immediately after now.
func (f Freq) ThisTick(now VTimeInSec) VTimeInSec {
	count := math.Ceil(math.Round(float64(now)*10*float64(f)) / 10)
	return VTimeInSec(count / float64(f))
}

// NextTick returns the first tick time strictly after now.
func (f Freq) NextTick(now VTimeInSec) VTimeInSec {
	count := math.Floor(math.Round(float64(now)*10*float64(f)) / 10)
	return VTimeInSec((count + 1) / float64(f))
}
