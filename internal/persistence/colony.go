package persistence

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/chain"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/colony"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/contract"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/economy"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/world"
)

// Key layout.
const (
	ColonyKey       = "colony"
	NodePrefix      = "nodes/"
	ChainPrefix     = "chains/"
	ContractPrefix  = "contracts/"
	colonySchemaURL = "https://github.com/ShadyMccoy/DarkPhoenix-sub006/schemas/colony.json"
)

//go:embed colony.schema.json
var colonySchemaJSON []byte

var colonySchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(colonySchemaURL, bytes.NewReader(colonySchemaJSON)); err != nil {
		return nil, err
	}
	return c.Compile(colonySchemaURL)
})

// ValidateColonyState checks a persisted colony blob against its schema.
// Absent fields are allowed; wrong types and negative counters are not.
func ValidateColonyState(raw []byte) error {
	schema, err := colonySchema()
	if err != nil {
		return fmt.Errorf("compile colony schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("decode colony state: %w", err)
	}
	return schema.Validate(v)
}

// DecodeColonyState validates raw and decodes it over the documented
// defaults.
func DecodeColonyState(raw []byte) (colony.State, error) {
	st := colony.State{
		Config:     colony.DefaultConfig(),
		MintValues: economy.DefaultMintValues(),
	}
	if err := ValidateColonyState(raw); err != nil {
		return st, err
	}
	if err := json.Unmarshal(raw, &st); err != nil {
		return st, fmt.Errorf("decode colony state: %w", err)
	}
	if st.MintValues == nil {
		st.MintValues = economy.DefaultMintValues()
	}
	return st, nil
}

// SaveColony writes the colony, its nodes, its active chains and the given
// contracts. Chains and contracts no longer present are deleted.
func SaveColony(s Store, c *colony.Colony, contracts []*contract.Contract) error {
	puts := make(map[string][]byte)

	raw, err := json.Marshal(c.State())
	if err != nil {
		return fmt.Errorf("encode colony: %w", err)
	}
	puts[ColonyKey] = raw

	for _, n := range c.Nodes() {
		raw, err := json.Marshal(n)
		if err != nil {
			return fmt.Errorf("encode node %s: %w", n.ID, err)
		}
		puts[NodePrefix+n.ID] = raw
	}
	for _, ch := range c.ActiveChains() {
		raw, err := chain.Serialize(ch)
		if err != nil {
			return fmt.Errorf("encode chain %s: %w", ch.ID, err)
		}
		puts[ChainPrefix+ch.ID] = raw
	}
	for _, k := range contracts {
		raw, err := json.Marshal(k)
		if err != nil {
			return fmt.Errorf("encode contract %s: %w", k.ID, err)
		}
		puts[ContractPrefix+k.ID] = raw
	}

	var deletes []string
	for _, prefix := range []string{ChainPrefix, ContractPrefix} {
		keys, err := s.Keys(prefix)
		if err != nil {
			return fmt.Errorf("list %s: %w", prefix, err)
		}
		for _, k := range keys {
			if _, ok := puts[k]; !ok {
				deletes = append(deletes, k)
			}
		}
	}

	if b, ok := s.(Batch); ok {
		return b.Apply(puts, deletes)
	}
	for _, k := range deletes {
		if err := s.Delete(k); err != nil {
			return fmt.Errorf("delete %s: %w", k, err)
		}
	}
	for k, v := range puts {
		if err := s.Put(k, v); err != nil {
			return err
		}
	}
	return nil
}

// LoadColony restores a colony and its contracts. It returns ErrNotFound
// when nothing was saved. Unreadable nodes, chains or contracts are logged
// and skipped.
func LoadColony(s Store) (*colony.Colony, []*contract.Contract, error) {
	raw, err := s.Get(ColonyKey)
	if err != nil {
		return nil, nil, err
	}
	st, err := DecodeColonyState(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("colony state: %w", err)
	}

	var nodes []*world.Node
	for _, id := range st.NodeIDs {
		raw, err := s.Get(NodePrefix + id)
		if err != nil {
			slog.Warn("node missing from store", "node", id, "error", err)
			continue
		}
		var n world.Node
		if err := json.Unmarshal(raw, &n); err != nil {
			slog.Warn("skipping unreadable node", "node", id, "error", err)
			continue
		}
		nodes = append(nodes, &n)
	}

	var chains []chain.Chain
	for _, id := range st.ActiveChainIDs {
		raw, err := s.Get(ChainPrefix + id)
		if err != nil {
			slog.Warn("chain missing from store", "chain", id, "error", err)
			continue
		}
		ch, err := chain.Deserialize(raw)
		if err != nil {
			slog.Warn("skipping unreadable chain", "chain", id, "error", err)
			continue
		}
		chains = append(chains, ch)
	}

	contracts, err := loadContracts(s)
	if err != nil {
		return nil, nil, err
	}

	slog.Info("colony loaded",
		"tick", st.CurrentTick, "nodes", len(nodes), "chains", len(chains), "contracts", len(contracts))
	return colony.Restore(st, nodes, chains), contracts, nil
}

func loadContracts(s Store) ([]*contract.Contract, error) {
	keys, err := s.Keys(ContractPrefix)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	var out []*contract.Contract
	for _, key := range keys {
		raw, err := s.Get(key)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		var k contract.Contract
		if err := json.Unmarshal(raw, &k); err != nil {
			slog.Warn("skipping unreadable contract", "contract", strings.TrimPrefix(key, ContractPrefix), "error", err)
			continue
		}
		out = append(out, &k)
	}
	return out, nil
}
