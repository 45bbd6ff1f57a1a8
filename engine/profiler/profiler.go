package profiler

import (
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/renderer"
)

// Profiler tracks frame rate, rasterizer throughput and memory statistics for performance
// monitoring. Outputs stats to the package logger at a configurable interval.
type Profiler struct {
	frameCount     int
	frameTime      time.Duration
	stats          renderer.Stats
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// ProfilerBuilderOption is a functional option for configuring a Profiler via NewProfiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets how often statistics are logged.
//
// Parameters:
//   - d: the reporting interval; zero reports on every Tick
//
// Returns:
//   - ProfilerBuilderOption: a function that applies the interval
func WithInterval(d time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.updateInterval = max(d, 0)
	}
}

// NewProfiler creates a new Profiler.
// Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
		memStats:       runtime.MemStats{},
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Tick should be called once per frame with that frame's render statistics and the time spent
// producing it. Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, mean frame time, triangles and fragments per frame, heap usage,
// allocation rate and GC count/pause times.
//
// Parameters:
//   - stats: what the renderer did this frame
//   - frameTime: wall time spent on the frame, excluding the inter-frame sleep
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(stats renderer.Stats, frameTime time.Duration) bool {
	p.frameCount++
	p.frameTime += frameTime
	p.stats = p.stats.Add(stats)

	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	seconds := max(elapsed.Seconds(), 1e-9)
	fps := float64(p.frameCount) / seconds
	n := p.frameCount

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / seconds

	// PauseNs is a circular buffer of the last 256 GC pauses
	gcCount := p.memStats.NumGC
	var maxPauseUs uint64
	startIdx := p.lastGCCount
	if gcCount-startIdx > 256 {
		startIdx = gcCount - 256
	}
	for i := startIdx; i < gcCount; i++ {
		maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
	}

	common.Logger().Info("frame stats",
		"fps", fps,
		"frame_time", p.frameTime/time.Duration(p.frameCount),
		"triangles", p.stats.Triangles/n,
		"fragments", p.stats.Fragments/n,
		"written", p.stats.Written/n,
		"occluded", p.stats.Occluded/n,
		"clipped", p.stats.Clipped/n,
		"heap_mb", allocMB,
		"alloc_mb_s", allocRateMB,
		"gc", gcCount,
		"gc_max_pause_us", maxPauseUs,
	)

	p.frameCount = 0
	p.frameTime = 0
	p.stats = renderer.Stats{}
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
