package sim

import "log"

// BufferedSender delegates the sending of a batch of messages to a single
// port, one per tick. Components that generate several outgoing messages in
// a single cycle push them here and let Tick drain them over time instead of
// blocking on port back pressure.
type BufferedSender interface {
	CanSend(count int) bool
	Send(msg Msg)
	Clear()
	Tick() bool
}

// NewBufferedSender creates a BufferedSender backed by buffer that drains
// into port.
func NewBufferedSender(port Port, buffer Buffer) BufferedSender {
	return &bufferedSenderImpl{port: port, buffer: buffer}
}

type bufferedSenderImpl struct {
	port   Port
	buffer Buffer
}

func (s *bufferedSenderImpl) CanSend(count int) bool {
	if count > s.buffer.Capacity() {
		log.Panic("trying to send more messages than the buffer can hold")
	}

	return count+s.buffer.Size() <= s.buffer.Capacity()
}

func (s *bufferedSenderImpl) Send(msg Msg) {
	s.buffer.Push(msg)
}

func (s *bufferedSenderImpl) Clear() {
	s.buffer.Clear()
}

func (s *bufferedSenderImpl) Tick() bool {
	item := s.buffer.Peek()
	if item == nil {
		return false
	}

	msg := item.(Msg)
	if !s.port.CanSend() {
		return false
	}

	err := s.port.Send(msg)
	if err != nil {
		return false
	}

	s.buffer.Pop()

	return true
}
