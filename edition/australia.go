package edition

import (
	"boomerang-server/card"
	"boomerang-server/game"
	"boomerang-server/rules"
)

// Australia is the Boomerang: Australia edition played with standard rules.
type Australia struct {
	CatalogPath string
}

func (a *Australia) ID() string         { return "australia" }
func (a *Australia) Name() string       { return "Boomerang: Australia" }
func (a *Australia) Rules() rules.Rules { return rules.Standard() }

func (a *Australia) Catalog() ([]card.Card, error) {
	if a.CatalogPath != "" {
		return card.LoadFile(a.CatalogPath)
	}
	return card.Australia()
}

func (a *Australia) NewScoresheet(ledger *game.RegionLedger) (game.Scoresheet, error) {
	return game.NewAustralia(ledger)
}
