// Package engine drives the colony tick by tick and gates the survey, plan
// and execute phases.
package engine

import (
	"log/slog"
	"math"
	"sync/atomic"
	"time"
)

// Default phase intervals, in ticks.
const (
	DefaultSurveyEvery = 100
	DefaultPlanEvery   = 5000
)

// Engine drives the colony forward. Within one tick the callbacks run in
// the order OnTick, OnSurvey, OnPlan, OnExecute.
type Engine struct {
	Tick     uint64        // Last tick stepped (monotonic, never resets)
	Interval time.Duration // Base tick interval

	SurveyEvery uint64
	PlanEvery   uint64

	OnTick    func(tick uint64) // Every tick, before any phase
	OnSurvey  func(tick uint64) // First tick, then every SurveyEvery
	OnPlan    func(tick uint64) // First tick, then every PlanEvery
	OnExecute func(tick uint64) // Every tick

	speed   atomic.Uint64 // float64 bits; 1.0 = real-time, 0 = paused
	running atomic.Bool
	started bool
}

// NewEngine creates an engine with default settings.
func NewEngine() *Engine {
	e := &Engine{
		Interval:    100 * time.Millisecond,
		SurveyEvery: DefaultSurveyEvery,
		PlanEvery:   DefaultPlanEvery,
	}
	e.SetSpeed(1.0)
	return e
}

// Speed returns the speed multiplier. Safe to call from any goroutine.
func (e *Engine) Speed() float64 {
	return math.Float64frombits(e.speed.Load())
}

// SetSpeed changes the speed multiplier while Run is looping.
func (e *Engine) SetSpeed(v float64) {
	e.speed.Store(math.Float64bits(v))
}

// Run starts the loop. Blocks until Stop() is called.
func (e *Engine) Run() {
	e.running.Store(true)
	slog.Info("colony engine started", "tick", e.Tick, "speed", e.Speed())

	for e.running.Load() {
		speed := e.Speed()
		if speed <= 0 {
			// Paused.
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()

		e.Step()

		elapsed := time.Since(start)
		target := time.Duration(float64(e.Interval) / speed)
		if elapsed < target {
			time.Sleep(target - elapsed)
		}
	}

	slog.Info("colony engine stopped", "tick", e.Tick)
}

// Stop halts the loop after the current tick.
func (e *Engine) Stop() {
	e.running.Store(false)
}

// Running reports whether Run is looping.
func (e *Engine) Running() bool {
	return e.running.Load()
}

// Step advances by one tick.
func (e *Engine) Step() {
	e.Tick++
	first := !e.started
	e.started = true

	if e.OnTick != nil {
		e.OnTick(e.Tick)
	}
	if e.OnSurvey != nil && (first || due(e.Tick, e.SurveyEvery)) {
		e.OnSurvey(e.Tick)
	}
	if e.OnPlan != nil && (first || due(e.Tick, e.PlanEvery)) {
		e.OnPlan(e.Tick)
	}
	if e.OnExecute != nil {
		e.OnExecute(e.Tick)
	}
}

func due(tick, every uint64) bool {
	return every > 0 && tick%every == 0
}
