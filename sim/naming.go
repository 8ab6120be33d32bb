package sim

import "log"

// Named is anything that can report its own name.
type Named interface {
	Name() string
}

// NameMustBeValid panics if name is empty. Every port, buffer, and component
// in a simulation is looked up by name, so an empty name can never be
// resolved again once created.
func NameMustBeValid(name string) {
	if name == "" {
		log.Panic("name must not be empty")
	}
}
