package rules

import "testing"

func TestStandard_Valid(t *testing.T) {
	r := Standard()
	if err := r.Validate(); err != nil {
		t.Fatalf("Standard rules should validate: %v", err)
	}
	if r.Rounds != 4 || r.TotalCards != 28 || r.CardsPerPlayer != 7 || r.MinPlayers != 2 || r.MaxPlayers != 4 {
		t.Errorf("unexpected standard rules: %+v", r)
	}
}

func TestValidate_Rejects(t *testing.T) {
	base := Standard()
	tests := []struct {
		name   string
		mutate func(*Rules)
	}{
		{"no rounds", func(r *Rules) { r.Rounds = 0 }},
		{"one card per player", func(r *Rules) { r.CardsPerPlayer = 1 }},
		{"min below two", func(r *Rules) { r.MinPlayers = 1 }},
		{"max below min", func(r *Rules) { r.MaxPlayers = 1 }},
		{"not enough cards", func(r *Rules) { r.TotalCards = 27 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base
			tt.mutate(&r)
			if err := r.Validate(); err == nil {
				t.Errorf("expected validation error for %+v", r)
			}
		})
	}
}

func TestPassDirection_ReversesOnlyOnLastPass(t *testing.T) {
	r := Standard()
	for remaining := r.CardsPerPlayer - 1; remaining >= 1; remaining-- {
		got := r.PassDirection(remaining)
		want := Forward
		if remaining == 1 {
			want = Backward
		}
		if got != want {
			t.Errorf("remaining=%d: expected %s, got %s", remaining, want, got)
		}
	}
}

func TestNeighbor_Wraps(t *testing.T) {
	tests := []struct {
		i, n int
		d    Direction
		want int
	}{
		{0, 4, Forward, 1},
		{3, 4, Forward, 0},
		{0, 4, Backward, 3},
		{2, 4, Backward, 1},
		{1, 2, Forward, 0},
		{0, 2, Backward, 1},
	}
	for _, tt := range tests {
		if got := Neighbor(tt.i, tt.n, tt.d); got != tt.want {
			t.Errorf("Neighbor(%d, %d, %s): expected %d, got %d", tt.i, tt.n, tt.d, tt.want, got)
		}
	}
}
