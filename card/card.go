package card

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"boomerang-server/gameerrors"
)

// MinNumber and MaxNumber bound the numeric value printed on every card.
const (
	MinNumber = 1
	MaxNumber = 7
)

//go:embed australia.json
var australiaJSON []byte

// Card is an immutable drafted item. Site is unique within a catalog and
// doubles as the card's identity.
type Card struct {
	Name       string
	Site       rune
	Region     string
	Number     int
	Collection string
	Animal     string
	Activity   string
}

// String renders every attribute on one line.
func (c Card) String() string {
	return fmt.Sprintf("Name: %s, Region: %s, Collection: %s, Animal: %s, Activity: %s, Number: %d, Site: %c",
		c.Name, c.Region, c.Collection, c.Animal, c.Activity, c.Number, c.Site)
}

// descriptor is the on-disk form of a card.
type descriptor struct {
	Name       string `json:"name"`
	Site       string `json:"site"`
	Region     string `json:"region"`
	Number     int    `json:"number"`
	Collection string `json:"collection"`
	Animal     string `json:"animal"`
	Activity   string `json:"activity"`
}

// Load decodes a JSON array of card descriptors and validates it.
func Load(r io.Reader) ([]Card, error) {
	var descs []descriptor
	if err := json.NewDecoder(r).Decode(&descs); err != nil {
		return nil, fmt.Errorf("%w: %v", gameerrors.ErrCatalog, err)
	}
	cards := make([]Card, 0, len(descs))
	seen := make(map[rune]bool, len(descs))
	for i, d := range descs {
		if utf8.RuneCountInString(d.Site) != 1 {
			return nil, fmt.Errorf("%w: card %d (%q) must have a single-character site, got %q", gameerrors.ErrCatalog, i, d.Name, d.Site)
		}
		site, _ := utf8.DecodeRuneInString(d.Site)
		if seen[site] {
			return nil, fmt.Errorf("%w: duplicate site %q", gameerrors.ErrCatalog, d.Site)
		}
		if d.Number < MinNumber || d.Number > MaxNumber {
			return nil, fmt.Errorf("%w: card %q has number %d outside %d-%d", gameerrors.ErrCatalog, d.Name, d.Number, MinNumber, MaxNumber)
		}
		seen[site] = true
		cards = append(cards, Card{
			Name:       d.Name,
			Site:       site,
			Region:     d.Region,
			Number:     d.Number,
			Collection: d.Collection,
			Animal:     d.Animal,
			Activity:   d.Activity,
		})
	}
	return cards, nil
}

// LoadFile reads a catalog from path.
func LoadFile(path string) ([]Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gameerrors.ErrCatalog, err)
	}
	defer f.Close()
	return Load(f)
}

// Australia returns the built-in Australia catalog.
func Australia() ([]Card, error) {
	return Load(bytes.NewReader(australiaJSON))
}

// Sites returns the site of each card, in order.
func Sites(cards []Card) []rune {
	sites := make([]rune, len(cards))
	for i, c := range cards {
		sites[i] = c.Site
	}
	return sites
}
