package engine

import (
	"fmt"

	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/contract"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/world"
)

// SteadyExecutor is a stand-in execution layer. Each contract gets one
// worker; after TravelTime ticks it delivers at a constant rate that
// completes the contract by the end of its window.
type SteadyExecutor struct{}

func (SteadyExecutor) Execute(c *contract.Contract, tick uint64) float64 {
	if len(c.AssignedWorkers) == 0 {
		if !c.RequestWorker() {
			return 0
		}
		c.ClaimWorker(fmt.Sprintf("worker-%s", c.ID))
	}
	arrive := c.StartTick + c.TravelTime
	if tick < arrive || c.Duration <= c.TravelTime {
		return 0
	}
	return c.Quantity / float64(c.Duration-c.TravelTime)
}

// StaticSensor reports the same survey every time.
type StaticSensor struct {
	Survey world.Survey
}

func (s StaticSensor) Sense(uint64) world.Survey {
	return s.Survey
}
