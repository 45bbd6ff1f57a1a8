package profiler

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/renderer"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	common.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { common.SetLogger(nil) })
	return &buf
}

func TestTickReportsAverages(t *testing.T) {
	buf := captureLogs(t)
	p := NewProfiler(WithInterval(time.Hour))

	for i := 0; i < 3; i++ {
		if p.Tick(renderer.Stats{Triangles: 10, Fragments: 100, Written: 60}, time.Millisecond) {
			t.Fatalf("tick %d reported before the interval elapsed", i)
		}
	}
	if buf.Len() != 0 {
		t.Fatalf("unexpected output: %s", buf)
	}

	p.updateInterval = 0
	if !p.Tick(renderer.Stats{Triangles: 10, Fragments: 100, Written: 60}, time.Millisecond) {
		t.Fatal("tick did not report once the interval elapsed")
	}
	out := buf.String()
	for _, want := range []string{"frame stats", "triangles=10", "fragments=100", "written=60", "frame_time=1ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestTickResetsWindow(t *testing.T) {
	captureLogs(t)
	p := NewProfiler(WithInterval(0))
	p.Tick(renderer.Stats{Fragments: 5}, time.Millisecond)
	if p.frameCount != 0 || p.stats != (renderer.Stats{}) || p.frameTime != 0 {
		t.Errorf("window not reset: count=%d stats=%+v time=%v", p.frameCount, p.stats, p.frameTime)
	}
}
