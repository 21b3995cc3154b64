package game

import (
	"errors"
	"testing"

	"boomerang-server/card"
	"boomerang-server/gameerrors"
)

func newSheet(t *testing.T, ledger *RegionLedger) *Australia {
	t.Helper()
	s, err := NewAustralia(ledger)
	if err != nil {
		t.Fatalf("NewAustralia: %v", err)
	}
	return s.(*Australia)
}

func blank(site rune, number int) card.Card { return mk(site, number, "", "", "") }

func TestNewAustralia_NilLedger(t *testing.T) {
	if _, err := NewAustralia(nil); !errors.Is(err, gameerrors.ErrScoresheet) {
		t.Errorf("expected ErrScoresheet, got %v", err)
	}
}

func TestScoreRound_ThrowCatch(t *testing.T) {
	sheet := newSheet(t, NewRegionLedger())
	h := completedHand(t, blank('A', 1), blank('Z', 7))
	rs, err := sheet.ScoreRound(h, "")
	if err != nil {
		t.Fatalf("ScoreRound: %v", err)
	}
	if rs.ThrowCatch != 6 {
		t.Errorf("expected throw/catch 6, got %d", rs.ThrowCatch)
	}
	if sheet.ThrowCatchTotal() != 6 {
		t.Errorf("expected cumulative throw/catch 6, got %d", sheet.ThrowCatchTotal())
	}
}

func TestScoreRound_CollectionBand(t *testing.T) {
	tests := []struct {
		name    string
		drafted []card.Card
		want    int
	}{
		{"none", []card.Card{blank('B', 2)}, 0},
		{"one leaf doubled", []card.Card{mk('B', 2, "Leaves", "", "")}, 2},
		{"raw 7 doubled", []card.Card{mk('B', 2, "Souvenirs", "", ""), mk('C', 2, "Wildflowers", "", "")}, 14},
		{"raw 8 not doubled", []card.Card{mk('B', 2, "Souvenirs", "", ""), mk('C', 2, "Shells", "", "")}, 8},
		{"raw 10 not doubled", []card.Card{mk('B', 2, "Souvenirs", "", ""), mk('C', 2, "Souvenirs", "", "")}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := newSheet(t, NewRegionLedger())
			h := completedHand(t, blank('A', 1), blank('D', 1), tt.drafted...)
			rs, err := sheet.ScoreRound(h, "")
			if err != nil {
				t.Fatalf("ScoreRound: %v", err)
			}
			if rs.Collection != tt.want {
				t.Errorf("expected collection %d, got %d", tt.want, rs.Collection)
			}
		})
	}
}

func TestScoreRound_AnimalPairs(t *testing.T) {
	tests := []struct {
		name    string
		drafted []card.Card
		want    int
	}{
		{"single", []card.Card{mk('B', 2, "", "Koalas", "")}, 0},
		{"pair", []card.Card{mk('B', 2, "", "Koalas", ""), mk('C', 2, "", "Koalas", "")}, 7},
		{"odd card dropped", []card.Card{mk('B', 2, "", "Koalas", ""), mk('C', 2, "", "Koalas", ""), mk('E', 2, "", "Koalas", "")}, 7},
		{"two pairs", []card.Card{mk('B', 2, "", "Emus", ""), mk('C', 2, "", "Emus", ""), mk('E', 2, "", "Emus", ""), mk('F', 2, "", "Emus", "")}, 8},
		{"mixed kinds", []card.Card{mk('B', 2, "", "Kangaroos", ""), mk('C', 2, "", "Kangaroos", ""), mk('E', 2, "", "Platypuses", ""), mk('F', 2, "", "Platypuses", "")}, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := newSheet(t, NewRegionLedger())
			h := completedHand(t, blank('A', 1), blank('D', 1), tt.drafted...)
			rs, _ := sheet.ScoreRound(h, "")
			if rs.Animals != tt.want {
				t.Errorf("expected animals %d, got %d", tt.want, rs.Animals)
			}
		})
	}
}

func TestScoreRound_RegionFirstFinisher(t *testing.T) {
	ledger := NewRegionLedger()
	first := newSheet(t, ledger)
	second := newSheet(t, ledger)

	wa := func() *Hand {
		return completedHand(t, blank('A', 1), blank('D', 1), blank('B', 1), blank('C', 1))
	}

	rs, _ := first.ScoreRound(wa(), "")
	if rs.Sites != 4+RegionBonus {
		t.Errorf("first finisher: expected %d site points, got %d", 4+RegionBonus, rs.Sites)
	}
	rs, _ = second.ScoreRound(wa(), "")
	if rs.Sites != 4 {
		t.Errorf("second finisher: expected 4 site points, got %d", rs.Sites)
	}
	if got := ledger.Claimed(); len(got) != 1 || got[0] != "Western Australia" {
		t.Errorf("expected ledger [Western Australia], got %v", got)
	}
}

func TestScoreRound_SitesOnlyScoreOnce(t *testing.T) {
	sheet := newSheet(t, NewRegionLedger())
	sheet.ScoreRound(completedHand(t, blank('A', 1), blank('E', 4), blank('B', 1)), "")
	rs, _ := sheet.ScoreRound(completedHand(t, blank('A', 1), blank('F', 4), blank('B', 1)), "")
	if rs.Sites != 1 {
		t.Errorf("only F is new: expected 1 site point, got %d", rs.Sites)
	}
	if !sheet.Visited('F') {
		t.Error("F should be recorded as visited")
	}
}

func TestScoreRound_RegionCompletedAcrossRounds(t *testing.T) {
	sheet := newSheet(t, NewRegionLedger())
	sheet.ScoreRound(completedHand(t, blank('Y', 7), blank('Z', 7)), "")
	rs, _ := sheet.ScoreRound(completedHand(t, blank('*', 7), blank('-', 7)), "")
	if rs.Sites != 2+RegionBonus {
		t.Errorf("expected %d site points for completing Tasmania, got %d", 2+RegionBonus, rs.Sites)
	}
}

func TestScoreRound_ActivityTable(t *testing.T) {
	sites := []rune("BCEFGH")
	want := []int{0, 2, 4, 7, 10, 15}
	for n := 1; n <= 6; n++ {
		sheet := newSheet(t, NewRegionLedger())
		var drafted []card.Card
		for i := 0; i < n; i++ {
			drafted = append(drafted, mk(sites[i], 2, "", "", "Swimming"))
		}
		h := completedHand(t, blank('A', 1), blank('D', 1), drafted...)

		activity, count, ok := BonusCandidate(sheet, h)
		if !ok || activity != "Swimming" || count != n {
			t.Errorf("n=%d: expected candidate Swimming x%d, got %q x%d (ok=%v)", n, n, activity, count, ok)
		}
		rs, err := sheet.ScoreRound(h, "Swimming")
		if err != nil {
			t.Fatalf("n=%d: ScoreRound: %v", n, err)
		}
		if rs.Activity != want[n-1] {
			t.Errorf("n=%d: expected activity score %d, got %d", n, want[n-1], rs.Activity)
		}
	}
}

func TestBonusCandidate_NoActivity(t *testing.T) {
	sheet := newSheet(t, NewRegionLedger())
	h := completedHand(t, blank('A', 1), blank('D', 1), blank('B', 1))
	if _, _, ok := BonusCandidate(sheet, h); ok {
		t.Error("hand without activities must not produce a candidate")
	}
}

func TestBonusCandidate_TieAndBanked(t *testing.T) {
	sheet := newSheet(t, NewRegionLedger())
	h := completedHand(t, blank('A', 1), blank('D', 1),
		mk('B', 1, "", "", "Sightseeing"),
		mk('C', 1, "", "", "Swimming"),
		mk('E', 1, "", "", "Swimming"),
		mk('F', 1, "", "", "Sightseeing"),
	)
	activity, count, _ := BonusCandidate(sheet, h)
	if activity != "Sightseeing" || count != 2 {
		t.Errorf("tie should go to the first seen tag, got %q x%d", activity, count)
	}

	sheet.banked["Sightseeing"] = true
	activity, _, _ = BonusCandidate(sheet, h)
	if activity != "Swimming" {
		t.Errorf("banked tag must be skipped, got %q", activity)
	}
}

func TestScoreRound_BankingIsIdempotent(t *testing.T) {
	sheet := newSheet(t, NewRegionLedger())
	swim := func(throw, catch rune) *Hand {
		return completedHand(t, blank(throw, 3), blank(catch, 3),
			mk('B', 1, "", "", "Swimming"), mk('C', 1, "", "", "Swimming"))
	}
	if _, err := sheet.ScoreRound(swim('A', 'D'), "Swimming"); err != nil {
		t.Fatalf("first bank: %v", err)
	}
	before := sheet.Total()
	last := sheet.LastRound()

	_, err := sheet.ScoreRound(swim('A', 'D'), "Swimming")
	if !errors.Is(err, gameerrors.ErrAlreadyBanked) {
		t.Fatalf("expected ErrAlreadyBanked, got %v", err)
	}
	if sheet.Total() != before {
		t.Errorf("rejected bank changed total from %d to %d", before, sheet.Total())
	}
	if sheet.LastRound() != last {
		t.Errorf("rejected bank changed the last round breakdown")
	}
}

func TestScoreRound_TotalIsSumOfComponents(t *testing.T) {
	sheet := newSheet(t, NewRegionLedger())
	h := completedHand(t, blank('A', 1), mk('D', 6, "Shells", "", ""),
		mk('B', 1, "Leaves", "Emus", "Swimming"),
		mk('C', 1, "", "Emus", "Swimming"),
	)
	rs, err := sheet.ScoreRound(h, "Swimming")
	if err != nil {
		t.Fatalf("ScoreRound: %v", err)
	}
	// 5 throw/catch, 4 sites + 3 region, (1+3)*2 collection, 4 animals, 2 activity
	if rs.ThrowCatch != 5 || rs.Sites != 7 || rs.Collection != 8 || rs.Animals != 4 || rs.Activity != 2 {
		t.Errorf("unexpected breakdown: %+v", rs)
	}
	if rs.Total != 26 || sheet.Total() != 26 {
		t.Errorf("expected total 26, got round=%d cumulative=%d", rs.Total, sheet.Total())
	}
}
