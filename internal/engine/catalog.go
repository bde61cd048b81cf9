package engine

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type XPRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

type Reward struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Icon string `yaml:"icon"`
	Cost int    `yaml:"cost"`
}

// Catalog is constant configuration: per-difficulty XP ranges and the reward store.
// It is never persisted and never mutated after parsing.
type Catalog struct {
	xpRanges map[Difficulty]XPRange
	rewards  []Reward
}

type catalogFile struct {
	XPRanges map[Difficulty]XPRange `yaml:"xp_ranges"`
	Rewards  []Reward               `yaml:"rewards"`
}

var defaultCatalog = sync.OnceValues(func() (Catalog, error) {
	return ParseCatalog(catalogYAML)
})

// DefaultCatalog returns the built-in catalog. It panics if the embedded file is invalid.
func DefaultCatalog() Catalog {
	c, err := defaultCatalog()
	if err != nil {
		panic("embedded catalog: " + err.Error())
	}
	return c
}

func ParseCatalog(data []byte) (Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	c := Catalog{xpRanges: f.XPRanges, rewards: f.Rewards}
	if err := c.validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

func (c Catalog) validate() error {
	for _, d := range Difficulties {
		r, ok := c.xpRanges[d]
		if !ok {
			return fmt.Errorf("catalog: missing xp range for %s", d)
		}
		if r.Min <= 0 || r.Max < r.Min {
			return fmt.Errorf("catalog: bad xp range for %s: [%d,%d]", d, r.Min, r.Max)
		}
	}
	if len(c.rewards) == 0 {
		return errors.New("catalog: no rewards")
	}
	seen := map[string]bool{}
	for _, r := range c.rewards {
		if strings.TrimSpace(r.ID) == "" || strings.TrimSpace(r.Name) == "" {
			return errors.New("catalog: reward id and name are required")
		}
		if seen[r.ID] {
			return fmt.Errorf("catalog: duplicate reward %s", r.ID)
		}
		seen[r.ID] = true
		if r.Cost <= 0 {
			return fmt.Errorf("catalog: reward %s must cost more than 0", r.ID)
		}
	}
	return nil
}

func (c Catalog) XPRange(d Difficulty) (XPRange, bool) {
	r, ok := c.xpRanges[d]
	return r, ok
}

// Rewards returns the reward store in catalog order.
func (c Catalog) Rewards() []Reward {
	return append([]Reward(nil), c.rewards...)
}

func (c Catalog) Reward(id string) (Reward, bool) {
	for _, r := range c.rewards {
		if r.ID == id {
			return r, true
		}
	}
	return Reward{}, false
}

// RollXP draws a task's XP value for the difficulty.
func (c Catalog) RollXP(r Roller, d Difficulty) (int, error) {
	rng, ok := c.xpRanges[d]
	if !ok {
		return 0, fmt.Errorf("invalid difficulty: %q", d)
	}
	return RollXP(r, rng), nil
}
