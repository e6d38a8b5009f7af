package integrator

import "sync/atomic"

// RayCounter tallies the work done by a trace. All methods are safe on a nil
// receiver, which counts nothing.
type RayCounter struct {
	primary    atomic.Int64
	shadow     atomic.Int64
	reflection atomic.Int64
	tests      atomic.Int64
	misses     atomic.Int64
}

// RayCounts is a point-in-time copy of a RayCounter
type RayCounts struct {
	Primary           int64 // Camera rays traced
	Shadow            int64 // Shadow rays cast toward point and directional lights
	Reflection        int64 // Reflection rays spawned
	IntersectionTests int64 // Ray/primitive intersection evaluations
	Misses            int64 // Traced rays that escaped to the background
}

// Snapshot returns the current counts
func (c *RayCounter) Snapshot() RayCounts {
	if c == nil {
		return RayCounts{}
	}
	return RayCounts{
		Primary:           c.primary.Load(),
		Shadow:            c.shadow.Load(),
		Reflection:        c.reflection.Load(),
		IntersectionTests: c.tests.Load(),
		Misses:            c.misses.Load(),
	}
}

// Reset zeroes every count
func (c *RayCounter) Reset() {
	if c == nil {
		return
	}
	c.primary.Store(0)
	c.shadow.Store(0)
	c.reflection.Store(0)
	c.tests.Store(0)
	c.misses.Store(0)
}

func (c *RayCounter) addPrimary() {
	if c != nil {
		c.primary.Add(1)
	}
}

func (c *RayCounter) addShadow() {
	if c != nil {
		c.shadow.Add(1)
	}
}

func (c *RayCounter) addReflection() {
	if c != nil {
		c.reflection.Add(1)
	}
}

func (c *RayCounter) addTest() {
	if c != nil {
		c.tests.Add(1)
	}
}

func (c *RayCounter) addMiss() {
	if c != nil {
		c.misses.Add(1)
	}
}
