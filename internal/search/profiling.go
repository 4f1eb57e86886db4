package search

import (
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/standardbeagle/lmi/internal/debug"
)

// ProfilingConfig controls profiling behavior
type ProfilingConfig struct {
	CPUProfile string
	MemProfile string
}

// StartCPUProfile starts CPU profiling when a profile path is set and
// returns the function that stops it.
func StartCPUProfile(config ProfilingConfig) (func(), error) {
	if config.CPUProfile == "" {
		return func() {}, nil
	}

	f, err := os.Create(config.CPUProfile)
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, err
	}

	return func() {
		pprof.StopCPUProfile()
		f.Close()
		debug.Printf("CPU profile written to %s\n", config.CPUProfile)
	}, nil
}

// WriteMemProfile writes a heap profile when a profile path is set
func WriteMemProfile(config ProfilingConfig) error {
	if config.MemProfile == "" {
		return nil
	}

	f, err := os.Create(config.MemProfile)
	if err != nil {
		return err
	}
	defer f.Close()

	runtime.GC() // Get up-to-date statistics
	if err := pprof.WriteHeapProfile(f); err != nil {
		return err
	}

	debug.Printf("Memory profile written to %s\n", config.MemProfile)
	return nil
}
