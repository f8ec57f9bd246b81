package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Card is an immutable catalog entry. Never mutated after load.
type Card struct {
	ID        int    `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Cost      int    `json:"cost" yaml:"cost"`
	Power     int    `json:"power" yaml:"power"`
	Toughness int    `json:"toughness" yaml:"toughness"`
}

// Placeholder is returned for any id the catalog does not know. Rendering and
// rules must never halt on missing data, so lookups cannot fail.
var Placeholder = Card{Name: "?"}

// Catalog maps card ids to definitions.
type Catalog struct {
	cards []Card
	byID  map[int]Card
}

// New builds a catalog from a card list. Later entries with a duplicate id
// are dropped.
func New(cards []Card) *Catalog {
	c := &Catalog{byID: make(map[int]Card, len(cards))}
	for _, card := range cards {
		if _, dup := c.byID[card.ID]; dup {
			continue
		}
		c.byID[card.ID] = card
		c.cards = append(c.cards, card)
	}
	return c
}

// Default returns the built-in five-card catalog.
func Default() *Catalog {
	return New([]Card{
		{ID: 0, Name: "Follower A", Cost: 2, Power: 3, Toughness: 2},
		{ID: 1, Name: "Follower B", Cost: 3, Power: 4, Toughness: 3},
		{ID: 2, Name: "Follower C", Cost: 1, Power: 1, Toughness: 1},
		{ID: 3, Name: "Follower D", Cost: 4, Power: 5, Toughness: 4},
		{ID: 4, Name: "Follower E", Cost: 2, Power: 2, Toughness: 3},
	})
}

// catalogFile is the top-level YAML structure.
type catalogFile struct {
	Cards []Card `yaml:"cards"`
}

// LoadFile parses a YAML catalog file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}
	if len(cf.Cards) == 0 {
		return nil, fmt.Errorf("catalog file %s defines no cards", path)
	}
	return New(cf.Cards), nil
}

// Lookup returns the definition for id, or Placeholder if unknown.
func (c *Catalog) Lookup(id int) Card {
	if card, ok := c.byID[id]; ok {
		return card
	}
	return Placeholder
}

// Has reports whether id is a real catalog entry.
func (c *Catalog) Has(id int) bool {
	_, ok := c.byID[id]
	return ok
}

// Cards returns the catalog entries in load order. Callers must not mutate
// the returned slice.
func (c *Catalog) Cards() []Card {
	return c.cards
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.cards)
}

// LookupIn searches a state-carried card snapshot the same way a full catalog
// would, falling back to Placeholder.
func LookupIn(cards []Card, id int) Card {
	for _, card := range cards {
		if card.ID == id {
			return card
		}
	}
	return Placeholder
}
