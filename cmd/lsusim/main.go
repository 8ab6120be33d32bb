// Command lsusim drives the Out-of-Order Load/Store Unit simulation: it
// can run a synthetic workload headless, trace it to a SQLite file, or
// serve a live dashboard over it.
package main

import "github.com/weontaekna/AOS-boom/cmd/lsusim/cmd"

func main() {
	cmd.Execute()
}
