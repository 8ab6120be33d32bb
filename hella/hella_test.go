package hella_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weontaekna/AOS-boom/hella"
)

func TestNewShimStartsReady(t *testing.T) {
	s := hella.New()
	assert.Equal(t, hella.Ready, s.State())
}

func TestHappyPathRequestToResponse(t *testing.T) {
	s := hella.New()

	assert.Equal(t, hella.S1, s.Handle(hella.EventRequest))
	assert.Equal(t, hella.S2, s.Handle(hella.EventFired))
	assert.Equal(t, hella.Wait, s.Handle(hella.EventFired))
	assert.Equal(t, hella.Ready, s.Handle(hella.EventResponse))
}

func TestBlockedRequestReplaysThenFires(t *testing.T) {
	s := hella.New()

	s.Handle(hella.EventRequest)
	assert.Equal(t, hella.Replay, s.Handle(hella.EventBlocked))
	assert.Equal(t, hella.Replay, s.Handle(hella.EventBlocked), "stays in replay until fired")
	assert.Equal(t, hella.S2, s.Handle(hella.EventFired))
}

func TestNackReplaysFromS2(t *testing.T) {
	s := hella.New()

	s.Handle(hella.EventRequest)
	s.Handle(hella.EventFired)
	assert.Equal(t, hella.Replay, s.Handle(hella.EventNack))

	assert.Equal(t, hella.S2, s.Handle(hella.EventFired))
	assert.Equal(t, hella.Wait, s.Handle(hella.EventFired))
	assert.Equal(t, hella.Ready, s.Handle(hella.EventResponse))
}

func TestExceptionGoesToS2NackThenResponds(t *testing.T) {
	s := hella.New()

	s.Handle(hella.EventRequest)
	s.Handle(hella.EventFired)
	assert.Equal(t, hella.S2Nack, s.Handle(hella.EventException))
	assert.Equal(t, hella.Ready, s.Handle(hella.EventResponse))
}

func TestUnhandledEventLeavesStateUnchanged(t *testing.T) {
	s := hella.New()

	assert.Equal(t, hella.Ready, s.Handle(hella.EventResponse), "Ready has no transition for EventResponse")
}

func TestKillForcesDeadAndStrayResponseRecovers(t *testing.T) {
	s := hella.New()

	s.Handle(hella.EventRequest)
	s.Kill()
	assert.Equal(t, hella.Dead, s.State())

	assert.Equal(t, hella.Ready, s.Handle(hella.EventStrayResponse))
}

func TestResetForcesReady(t *testing.T) {
	s := hella.New()

	s.Handle(hella.EventRequest)
	s.Handle(hella.EventFired)
	s.Reset()

	assert.Equal(t, hella.Ready, s.State())
}
