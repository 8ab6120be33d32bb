package sim

// SendError marks a failed send or deliver.
type SendError struct{}

// NewSendError creates a SendError.
func NewSendError() *SendError {
	return &SendError{}
}

// A Connection is responsible for moving messages from a port's outgoing
// buffer to the destination port's incoming buffer.
type Connection interface {
	Named
	Hookable

	PlugIn(port Port)
	Unplug(port Port)
	NotifyAvailable(port Port)
	NotifySend()
}

// HookPosConnDeliver marks a connection having delivered a message.
var HookPosConnDeliver = &HookPos{Name: "Conn Deliver"}
