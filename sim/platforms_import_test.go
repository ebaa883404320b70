package sim_test

// Blank import triggers sim/platforms' init(), which registers NewPlatformModelFunc.
// This allows package sim's internal test files to build simulators
// without directly importing sim/platforms (which would create an import cycle).
import _ "github.com/inference-sim/adsim/sim/platforms"
