package plates_test

import (
	"errors"
	"math"
	"testing"

	"github.com/myrjola/ironplan/internal/plates"
)

func TestSuggestExactMatch(t *testing.T) {
	cfg := plates.Config{BarWeight: 45}
	inv := plates.Inventory{45: 4, 25: 2, 10: 2}

	result, err := plates.Suggest(225, cfg, inv)
	if err != nil {
		t.Fatalf("Suggest returned unexpected error: %v", err)
	}

	if !result.ExactMatch {
		t.Error("expected an exact match")
	}
	if result.AchievedWeight != 225 {
		t.Errorf("achieved weight %v, want 225", result.AchievedWeight)
	}
	// 90 per side is exactly two 45s.
	if len(result.Plates) != 1 || result.Plates[0].Weight != 45 || result.Plates[0].QuantityPerSide != 2 {
		t.Errorf("plates %v, want two 45s per side", result.Plates)
	}
}

func TestSuggestRoundDown(t *testing.T) {
	cfg := plates.Config{BarWeight: 45}
	inv := plates.Inventory{45: 4}

	result, err := plates.Suggest(500, cfg, inv)
	if err != nil {
		t.Fatalf("Suggest returned unexpected error: %v", err)
	}

	if result.ExactMatch {
		t.Error("expected a partial fill")
	}
	// Two 45s per side is all the inventory allows: 45 + 180 = 225.
	if result.AchievedWeight != 225 {
		t.Errorf("achieved weight %v, want 225", result.AchievedWeight)
	}
}

func TestSuggest(t *testing.T) {
	homeGym := plates.Inventory{45: 8, 35: 2, 25: 2, 10: 4, 5: 4, 2.5: 2}

	testCases := []struct {
		name       string
		target     float64
		cfg        plates.Config
		inv        plates.Inventory
		wantErr    error
		wantExact  bool
		wantWeight float64
	}{
		{
			name:       "bar only is trivially exact",
			target:     45,
			cfg:        plates.Config{BarWeight: 45},
			inv:        homeGym,
			wantExact:  true,
			wantWeight: 45,
		},
		{
			name:       "mixed denominations",
			target:     140,
			cfg:        plates.Config{BarWeight: 45},
			inv:        homeGym,
			wantExact:  true,
			wantWeight: 140,
		},
		{
			name:       "collar adds on top of the achieved weight",
			target:     135,
			cfg:        plates.Config{BarWeight: 45, CollarWeight: 5},
			inv:        homeGym,
			wantExact:  true,
			wantWeight: 140,
		},
		{
			name:    "target below bar",
			target:  40,
			cfg:     plates.Config{BarWeight: 45},
			inv:     homeGym,
			wantErr: plates.ErrInvalidInput,
		},
		{
			name:    "empty inventory",
			target:  135,
			cfg:     plates.Config{BarWeight: 45},
			inv:     plates.Inventory{},
			wantErr: plates.ErrNoFeasibleConfiguration,
		},
		{
			name:    "plates too heavy to place",
			target:  95,
			cfg:     plates.Config{BarWeight: 45},
			inv:     plates.Inventory{45: 8},
			wantErr: plates.ErrNoFeasibleConfiguration,
		},
		{
			name:       "heavy target escalates to large plates",
			target:     545,
			cfg:        plates.Config{BarWeight: 45},
			inv:        plates.Inventory{100: 4},
			wantExact:  false,
			wantWeight: 445,
		},
		{
			name:       "flag permits large plates",
			target:     245,
			cfg:        plates.Config{BarWeight: 45, UseLargePlates: true},
			inv:        plates.Inventory{100: 2},
			wantExact:  true,
			wantWeight: 245,
		},
		{
			name:       "large plates stay racked without the flag",
			target:     245,
			cfg:        plates.Config{BarWeight: 45},
			inv:        plates.Inventory{45: 4, 100: 2, 5: 4},
			wantExact:  true,
			wantWeight: 245,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := plates.Suggest(tc.target, tc.cfg, tc.inv)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Suggest returned unexpected error: %v", err)
			}
			if result.ExactMatch != tc.wantExact {
				t.Errorf("exact match %v, want %v", result.ExactMatch, tc.wantExact)
			}
			if result.AchievedWeight != tc.wantWeight {
				t.Errorf("achieved weight %v, want %v", result.AchievedWeight, tc.wantWeight)
			}
		})
	}
}

// TestSuggestConservation checks that the achieved weight always equals the
// bar plus both sides' plates plus the collar, and that no denomination
// exceeds half its inventory per side.
func TestSuggestConservation(t *testing.T) {
	cfg := plates.Config{BarWeight: 45, CollarWeight: 2.5, UseLargePlates: true}
	inv := plates.Inventory{45: 6, 35: 2, 25: 2, 10: 4, 5: 4, 2.5: 2, 100: 2}

	for target := 45.0; target <= 600; target += 2.5 {
		result, err := plates.Suggest(target, cfg, inv)
		if errors.Is(err, plates.ErrNoFeasibleConfiguration) {
			continue
		}
		if err != nil {
			t.Fatalf("target %v: unexpected error: %v", target, err)
		}

		perSide := 0.0
		for _, plate := range result.Plates {
			perSide += plate.Weight * float64(plate.QuantityPerSide)
			if plate.QuantityPerSide > inv[plate.Weight]/2 {
				t.Errorf("target %v: %v plates per side %d exceeds inventory %d",
					target, plate.Weight, plate.QuantityPerSide, inv[plate.Weight])
			}
		}
		want := cfg.BarWeight + 2*perSide + cfg.CollarWeight
		if math.Abs(result.AchievedWeight-want) > 0.001 {
			t.Errorf("target %v: achieved %v, want %v", target, result.AchievedWeight, want)
		}
	}
}

// TestSuggestPlateOrdering checks that the returned plates are sorted by
// descending weight.
func TestSuggestPlateOrdering(t *testing.T) {
	cfg := plates.Config{BarWeight: 45}
	inv := plates.Inventory{45: 4, 25: 2, 10: 4, 5: 4, 2.5: 2}

	result, err := plates.Suggest(230, cfg, inv)
	if err != nil {
		t.Fatalf("Suggest returned unexpected error: %v", err)
	}
	for i := 1; i < len(result.Plates); i++ {
		if result.Plates[i].Weight > result.Plates[i-1].Weight {
			t.Errorf("plates out of order: %v", result.Plates)
		}
	}
}
