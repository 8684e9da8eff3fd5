package corp

import (
	"fmt"
	"slices"

	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/contract"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/world"
)

// Corp is the capability set the planning core needs from a corp.
type Corp interface {
	ID() string
	State() State
	AddContract(c *contract.Contract)
	WorkerCount() int
}

// WorkerSpecifier is implemented by corps that request a specific worker
// body from spawners.
type WorkerSpecifier interface {
	WorkerSpec() *contract.WorkerSpec
}

// Params are the tunable economics of a new corp.
type Params struct {
	UnitCost float64
	Margin   float64
	Capacity float64
	Balance  float64
}

type base struct {
	state     State
	contracts []*contract.Contract
	workers   []string
}

func newBase(role Role, node *world.Node, pos world.Position, p Params, tick uint64) base {
	io := roleIO[role]
	return base{state: State{
		ID:         corpID(role, node),
		Role:       role,
		NodeID:     node.ID,
		Position:   pos,
		Input:      io[0],
		Output:     io[1],
		UnitCost:   p.UnitCost,
		Margin:     p.Margin,
		Capacity:   p.Capacity,
		Balance:    p.Balance,
		CreatedAt:  tick,
		LastActive: tick,
	}}
}

// corpID picks the first unused "<role>-<node>-<n>" id in node.
func corpID(role Role, node *world.Node) string {
	for i := len(node.Corps); ; i++ {
		id := fmt.Sprintf("%s-%s-%d", role, node.ID, i)
		if !slices.Contains(node.Corps, id) {
			return id
		}
	}
}

func (b *base) ID() string   { return b.state.ID }
func (b *base) State() State { return b.state }

// AddContract records a contract the corp takes part in.
func (b *base) AddContract(c *contract.Contract) {
	b.contracts = append(b.contracts, c)
}

// Contracts returns the contracts currently held.
func (b *base) Contracts() []*contract.Contract {
	return slices.Clone(b.contracts)
}

// ClearContracts drops all contracts; planning regenerates them each cycle.
func (b *base) ClearContracts() {
	b.contracts = nil
}

// AssignWorker attaches a worker to the corp.
func (b *base) AssignWorker(id string) {
	if !slices.Contains(b.workers, id) {
		b.workers = append(b.workers, id)
	}
}

// ReleaseWorker detaches a worker.
func (b *base) ReleaseWorker(id string) {
	b.workers = slices.DeleteFunc(b.workers, func(w string) bool { return w == id })
}

// WorkerCount returns the number of attached workers.
func (b *base) WorkerCount() int {
	return len(b.workers)
}

// Touch marks the corp active at tick.
func (b *base) Touch(tick uint64) {
	if tick > b.state.LastActive {
		b.state.LastActive = tick
	}
}

// Producer harvests energy from a source.
type Producer struct{ base }

// Hauler moves energy between nodes.
type Hauler struct{ base }

// Upgrader spends energy on a controller, producing mintable progress.
type Upgrader struct{ base }

// Spawner converts energy into worker lifetime.
type Spawner struct{ base }

// NewProducer creates a producer bound to a source in node and registers it there.
func NewProducer(node *world.Node, src world.Resource, p Params, tick uint64) *Producer {
	c := &Producer{newBase(RoleProducer, node, src.Position, p, tick)}
	node.AddCorp(c.ID())
	return c
}

// NewHauler creates a hauler stationed at node.
func NewHauler(node *world.Node, p Params, tick uint64) *Hauler {
	c := &Hauler{newBase(RoleHauler, node, node.Anchor, p, tick)}
	node.AddCorp(c.ID())
	return c
}

// NewUpgrader creates an upgrader working the controller in node.
func NewUpgrader(node *world.Node, ctrl world.Resource, p Params, tick uint64) *Upgrader {
	c := &Upgrader{newBase(RoleUpgrader, node, ctrl.Position, p, tick)}
	node.AddCorp(c.ID())
	return c
}

// NewSpawner creates a spawner at node.
func NewSpawner(node *world.Node, p Params, tick uint64) *Spawner {
	c := &Spawner{newBase(RoleSpawner, node, node.Anchor, p, tick)}
	node.AddCorp(c.ID())
	return c
}

// WorkerSpec returns the harvester body; five work parts saturate a source.
func (c *Producer) WorkerSpec() *contract.WorkerSpec {
	return &contract.WorkerSpec{Kind: "harvester", WorkParts: 5, CarryParts: 1, MoveParts: 3}
}

func (c *Hauler) WorkerSpec() *contract.WorkerSpec {
	return &contract.WorkerSpec{Kind: "hauler", CarryParts: 10, MoveParts: 5}
}

func (c *Upgrader) WorkerSpec() *contract.WorkerSpec {
	return &contract.WorkerSpec{Kind: "upgrader", WorkParts: 4, CarryParts: 2, MoveParts: 2}
}
