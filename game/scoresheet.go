package game

// RoundScore is the breakdown of one round. Activity is the banked tag, or
// empty when nothing was banked.
type RoundScore struct {
	ThrowCatch  int
	Sites       int
	Collection  int
	Animals     int
	Activity    int
	ActivityTag string
	Total       int
}

// Scoresheet turns a completed hand into round and cumulative scores.
// Implementations are mutated only by ScoreRound.
type Scoresheet interface {
	// ScoreRound scores h and, if bank is not empty, banks that activity.
	// Banking an activity twice returns gameerrors.ErrAlreadyBanked and
	// leaves the sheet untouched.
	ScoreRound(h *Hand, bank string) (RoundScore, error)
	LastRound() RoundScore
	Total() int
	ThrowCatchTotal() int
	Banked(activity string) bool
}

// ScoresheetFactory builds one player's sheet. Every sheet in a session
// shares the session's ledger.
type ScoresheetFactory func(ledger *RegionLedger) (Scoresheet, error)

// RegionLedger records regions completed by any player in a session.
// It only grows.
type RegionLedger struct {
	claimed map[string]bool
	order   []string
}

// NewRegionLedger returns an empty ledger.
func NewRegionLedger() *RegionLedger {
	return &RegionLedger{claimed: make(map[string]bool)}
}

// Claim marks region as completed and reports whether this call was the first.
func (l *RegionLedger) Claim(region string) bool {
	if l.claimed[region] {
		return false
	}
	l.claimed[region] = true
	l.order = append(l.order, region)
	return true
}

// Claimed returns completed regions in claim order.
func (l *RegionLedger) Claimed() []string {
	return append([]string(nil), l.order...)
}

type activityCount struct {
	activity string
	count    int
}

// unbankedActivities counts the activity tags of the completed hand that
// sheet has not banked, in order of first appearance.
func unbankedActivities(sheet Scoresheet, h *Hand) []activityCount {
	var out []activityCount
	index := make(map[string]int)
	for _, c := range h.Completed() {
		if c.Activity == "" || sheet.Banked(c.Activity) {
			continue
		}
		i, ok := index[c.Activity]
		if !ok {
			i = len(out)
			index[c.Activity] = i
			out = append(out, activityCount{activity: c.Activity})
		}
		out[i].count++
	}
	return out
}

// BonusCandidate picks the activity to offer for banking: among tags in the
// completed hand that sheet has not banked, the one with the strictly
// greatest count, first seen winning ties. ok is false when no tag qualifies.
func BonusCandidate(sheet Scoresheet, h *Hand) (activity string, count int, ok bool) {
	for _, ac := range unbankedActivities(sheet, h) {
		if ac.count > count {
			activity, count = ac.activity, ac.count
		}
	}
	return activity, count, count > 0
}
