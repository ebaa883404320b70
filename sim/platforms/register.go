// register.go wires sim/platforms constructors into the sim package's
// registration variable (NewPlatformModelFunc). This init() runs when any
// package imports sim/platforms, breaking the import cycle between sim/
// (interface owner) and sim/platforms/ (implementations). Production code
// imports sim/platforms directly; test code in package sim uses
// platforms_import_test.go for the blank import.
package platforms

import "github.com/inference-sim/adsim/sim"

func init() {
	sim.NewPlatformModelFunc = New
}
