// benchmark.go
// A reusable benchmarking module for GEO Buddy
// Measures execution time and memory usage for any wrapped tool run

package benchmark

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"
)

// Report is the resource usage of one measured run.
type Report struct {
	Label         string
	Started       time.Time
	Hostname      string
	Elapsed       time.Duration
	MemUsedMB     float64 // change in live heap; negative when GC freed more than the run kept
	TotalAllocMB  float64
	PeakHeapMB    float64
	SysMB         float64
	GCCycles      uint32
	CPUCores      int
	GoroutinesIn  int
	GoroutinesOut int
}

const mb = 1024.0 * 1024.0

// Measure runs f and records its runtime and memory usage.
// The error returned is f's own.
func Measure(label string, f func() error) (Report, error) {
	r := Report{Label: label, Started: time.Now(), CPUCores: runtime.NumCPU()}
	if host, err := os.Hostname(); err == nil {
		r.Hostname = host
	}

	runtime.GC() // Start from a collected heap
	var memStart, memEnd runtime.MemStats
	runtime.ReadMemStats(&memStart)
	r.GoroutinesIn = runtime.NumGoroutine()
	start := time.Now()

	err := f()

	r.Elapsed = time.Since(start)
	runtime.ReadMemStats(&memEnd)
	r.GoroutinesOut = runtime.NumGoroutine()

	r.MemUsedMB = (float64(memEnd.Alloc) - float64(memStart.Alloc)) / mb
	r.TotalAllocMB = float64(memEnd.TotalAlloc-memStart.TotalAlloc) / mb
	r.PeakHeapMB = float64(memEnd.HeapAlloc) / mb
	r.SysMB = float64(memEnd.Sys) / mb
	r.GCCycles = memEnd.NumGC - memStart.NumGC
	return r, err
}

// Fprint writes the report in the [Benchmark] block format.
func (r Report) Fprint(w io.Writer) {
	fmt.Fprintf(w, "[Benchmark] Running: %s\n", r.Label)
	fmt.Fprintln(w, "[Benchmark] Timestamp:", r.Started.Format(time.RFC1123))
	if r.Hostname != "" {
		fmt.Fprintln(w, "[Benchmark] Hostname:", r.Hostname)
	}
	fmt.Fprintln(w, "[Benchmark] Go Version:", runtime.Version())
	fmt.Fprintf(w, "[Benchmark] OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(w, "[Benchmark] Time Elapsed: %v\n", r.Elapsed)
	fmt.Fprintf(w, "[Benchmark] Memory Used: %.2f MB\n", r.MemUsedMB)
	fmt.Fprintf(w, "[Benchmark] Total Allocated: %.2f MB\n", r.TotalAllocMB)
	fmt.Fprintf(w, "[Benchmark] Peak Heap: %.2f MB\n", r.PeakHeapMB)
	fmt.Fprintf(w, "[Benchmark] GC Cycles: %d\n", r.GCCycles)
	fmt.Fprintf(w, "[Benchmark] Total System Memory Allocated: %.2f MB\n", r.SysMB)
	fmt.Fprintf(w, "[Benchmark] CPU Cores: %d\n", r.CPUCores)
	fmt.Fprintf(w, "[Benchmark] Goroutines Started: %d → %d\n", r.GoroutinesIn, r.GoroutinesOut)
	fmt.Fprintln(w, "[Benchmark] ----------------------------------------")
}

// Run measures f and prints the report to stdout, even when f fails.
func Run(label string, f func() error) error {
	r, err := Measure(label, f)
	r.Fprint(os.Stdout)
	return err
}
