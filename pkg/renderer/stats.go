package renderer

import (
	"fmt"
	"time"

	"github.com/df07/go-softraycast/pkg/integrator"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels       int           // Total number of pixels written
	PrimaryRays       int64         // Camera rays traced
	ShadowRays        int64         // Shadow rays cast toward lights
	ReflectionRays    int64         // Reflection rays spawned
	IntersectionTests int64         // Ray/primitive tests
	Hits              int64         // Primary and reflection rays that hit a primitive
	Misses            int64         // Primary and reflection rays that escaped to the background
	Elapsed           time.Duration // Wall time
}

func newRenderStats(pixels int, counts integrator.RayCounts, elapsed time.Duration) RenderStats {
	return RenderStats{
		TotalPixels:       pixels,
		PrimaryRays:       counts.Primary,
		ShadowRays:        counts.Shadow,
		ReflectionRays:    counts.Reflection,
		IntersectionTests: counts.IntersectionTests,
		Hits:              counts.Primary + counts.Reflection - counts.Misses,
		Misses:            counts.Misses,
		Elapsed:           elapsed,
	}
}

// Add accumulates another set of statistics
func (s RenderStats) Add(other RenderStats) RenderStats {
	return RenderStats{
		TotalPixels:       s.TotalPixels + other.TotalPixels,
		PrimaryRays:       s.PrimaryRays + other.PrimaryRays,
		ShadowRays:        s.ShadowRays + other.ShadowRays,
		ReflectionRays:    s.ReflectionRays + other.ReflectionRays,
		IntersectionTests: s.IntersectionTests + other.IntersectionTests,
		Hits:              s.Hits + other.Hits,
		Misses:            s.Misses + other.Misses,
		Elapsed:           s.Elapsed + other.Elapsed,
	}
}

// TotalRays counts every ray traced or tested for occlusion
func (s RenderStats) TotalRays() int64 {
	return s.PrimaryRays + s.ShadowRays + s.ReflectionRays
}

// RaysPerSecond returns throughput, or 0 if no time was measured
func (s RenderStats) RaysPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalRays()) / s.Elapsed.Seconds()
}

func (s RenderStats) String() string {
	return fmt.Sprintf("%d pixels, %d primary, %d shadow, %d reflection rays (%d hits, %d misses) in %v",
		s.TotalPixels, s.PrimaryRays, s.ShadowRays, s.ReflectionRays, s.Hits, s.Misses, s.Elapsed.Round(time.Millisecond))
}
