package sim

import (
	"fmt"
	"os"
	"sort"
	"sync"
)

// A Component is an element that is being simulated.
type Component interface {
	Named
	Handler
	Hookable

	AddPort(name string, port Port)
	GetPortByName(name string) Port
	Ports() []Port

	NotifyRecv(port Port)
	NotifyPortFree(port Port)
}

// ComponentBase provides the port bookkeeping and hook plumbing that nearly
// every component needs.
type ComponentBase struct {
	*HookableBase
	sync.Mutex

	name  string
	ports map[string]Port
}

// NewComponentBase creates a ComponentBase with the given name.
func NewComponentBase(name string) *ComponentBase {
	NameMustBeValid(name)

	return &ComponentBase{
		HookableBase: NewHookableBase(),
		name:         name,
		ports:        make(map[string]Port),
	}
}

// Name returns the component's name.
func (c *ComponentBase) Name() string {
	return c.name
}

// AddPort registers port under name so it can later be found with
// GetPortByName.
func (c *ComponentBase) AddPort(name string, port Port) {
	if _, found := c.ports[name]; found {
		panic("port " + name + " already exists on " + c.name)
	}

	c.ports[name] = port
}

// GetPortByName looks up a previously added port, panicking if it was never
// registered.
func (c *ComponentBase) GetPortByName(name string) Port {
	port, found := c.ports[name]
	if !found {
		msg := fmt.Sprintf("port %s is not available on component %s.\n"+
			"available ports:\n", name, c.name)
		for n := range c.ports {
			msg += fmt.Sprintf("\t%s\n", n)
		}

		fmt.Fprint(os.Stderr, msg)
		panic("port not found")
	}

	return port
}

// Ports returns every port owned by the component, sorted by name so that
// iteration order is deterministic.
func (c *ComponentBase) Ports() []Port {
	names := make([]string, 0, len(c.ports))
	for n := range c.ports {
		names = append(names, n)
	}

	sort.Strings(names)

	ports := make([]Port, 0, len(names))
	for _, n := range names {
		ports = append(ports, c.ports[n])
	}

	return ports
}
