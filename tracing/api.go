// Package tracing provides task-based hooks that LSU components invoke at
// well-known points (a request arriving, a state-machine step, a request
// retiring) so a Tracer attached via sim.Hookable can reconstruct what
// happened without the traced component knowing anything about tracers.
package tracing

import "github.com/weontaekna/AOS-boom/sim"

// NamedHookable is anything with a name that hooks can attach to.
type NamedHookable interface {
	sim.Named
	sim.Hookable
	InvokeHook(sim.HookCtx)
}

// Hook positions a Tracer can register for.
var (
	HookPosTaskStart = &sim.HookPos{Name: "HookPosTaskStart"}
	HookPosTaskStep  = &sim.HookPos{Name: "HookPosTaskStep"}
	HookPosTaskEnd   = &sim.HookPos{Name: "HookPosTaskEnd"}
)

func requiredFieldsMustBeSet(id string, domain NamedHookable, kind, what string) {
	if id == "" {
		panic("id must not be empty")
	}

	if domain == nil {
		panic("domain must not be nil")
	}

	if domain.Name() == "" {
		panic("domain must have a name")
	}

	if kind == "" {
		panic("kind must not be empty")
	}

	if what == "" {
		panic("what must not be empty")
	}
}

// StartTask notifies hooks attached to domain that a task has started.
func StartTask(
	id string,
	parentID string,
	domain NamedHookable,
	kind string,
	what string,
	detail interface{},
) {
	if domain.NumHooks() == 0 {
		return
	}

	requiredFieldsMustBeSet(id, domain, kind, what)

	task := Task{
		ID:       id,
		ParentID: parentID,
		Kind:     kind,
		What:     what,
		Where:    domain.Name(),
		Detail:   detail,
	}

	domain.InvokeHook(sim.HookCtx{Domain: domain, Item: task, Pos: HookPosTaskStart})
}

// AddTaskStep records that a milestone was reached while processing a task.
func AddTaskStep(id string, domain NamedHookable, what string) {
	if domain.NumHooks() == 0 {
		return
	}

	task := Task{ID: id, Steps: []TaskStep{{What: what}}}

	domain.InvokeHook(sim.HookCtx{Domain: domain, Item: task, Pos: HookPosTaskStep})
}

// EndTask notifies hooks attached to domain that a task has ended.
func EndTask(id string, domain NamedHookable) {
	if domain.NumHooks() == 0 {
		return
	}

	task := Task{ID: id}

	domain.InvokeHook(sim.HookCtx{Domain: domain, Item: task, Pos: HookPosTaskEnd})
}

// MsgIDAtReceiver generates a task ID scoped to a particular receiver, so
// the same message can be traced independently by every component it
// passes through.
func MsgIDAtReceiver(msg sim.Msg, domain NamedHookable) string {
	return msg.Meta().ID + "@" + domain.Name()
}
