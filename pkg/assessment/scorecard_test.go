package assessment

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/goliatone/greenbridge/pkg/forms"
)

func TestScoreGreenStrongProfile(t *testing.T) {
	card := ScoreGreen(forms.GreenIntake{
		AnnualElectricityKWh:   8000,
		AnnualFuelLitres:       500,
		WaterConsumptionLitres: 20000,
		WasteGeneratedKgMonth:  50,
		RenewableEnergyPct:     60,
		EfficiencyEquipment:    "BEE 5-star motors, LED lighting",
		IndustryCode:           "3510",
	})

	if card.Score != 100 {
		t.Fatalf("score = %d, want 100", card.Score)
	}
	if card.Rating != "A" {
		t.Fatalf("rating = %q, want A", card.Rating)
	}
	if len(card.Suggestions) != 0 {
		t.Fatalf("unexpected suggestions: %+v", card.Suggestions)
	}

	want := []Section{
		{Label: "Renewable Energy", Points: 25, Max: 25},
		{Label: "Energy Efficiency", Points: 15, Max: 15},
		{Label: "Fuel Efficiency", Points: 15, Max: 15},
		{Label: "Water Management", Points: 10, Max: 10},
		{Label: "Waste Reduction", Points: 15, Max: 15},
		{Label: "Green Technology", Points: 15, Max: 15},
		{Label: "Sector Bonus", Points: 5, Max: 5},
	}
	if diff := cmp.Diff(want, card.Breakdown); diff != "" {
		t.Fatalf("breakdown mismatch (-want +got):\n%s", diff)
	}
}

func TestScoreGreenWeakProfile(t *testing.T) {
	card := ScoreGreen(forms.GreenIntake{
		AnnualElectricityKWh:   250000,
		AnnualFuelLitres:       20000,
		WaterConsumptionLitres: 900000,
		WasteGeneratedKgMonth:  5000,
	})

	if card.Score != 0 {
		t.Fatalf("score = %d, want 0", card.Score)
	}
	if card.Rating != "D" {
		t.Fatalf("rating = %q, want D", card.Rating)
	}
	// one suggestion per missed section: renewables, energy, fuel,
	// water, waste, equipment
	if len(card.Suggestions) != 6 {
		t.Fatalf("suggestions = %d, want 6", len(card.Suggestions))
	}
}

func TestScoreGreenTiers(t *testing.T) {
	cases := []struct {
		name string
		in   forms.GreenIntake
		want map[string]int
	}{
		{
			name: "renewable mid tier",
			in:   forms.GreenIntake{RenewableEnergyPct: 30},
			want: map[string]int{"Renewable Energy": 18},
		},
		{
			name: "renewable low tier",
			in:   forms.GreenIntake{RenewableEnergyPct: 3},
			want: map[string]int{"Renewable Energy": 5},
		},
		{
			name: "electricity mid tier",
			in:   forms.GreenIntake{AnnualElectricityKWh: 42000},
			want: map[string]int{"Energy Efficiency": 10},
		},
		{
			name: "sector bonus requires a green prefix",
			in:   forms.GreenIntake{IndustryCode: "2100"},
			want: map[string]int{"Sector Bonus": 0},
		},
		{
			name: "waste sector bonus",
			in:   forms.GreenIntake{IndustryCode: "3811"},
			want: map[string]int{"Sector Bonus": 5},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			card := ScoreGreen(tc.in)
			got := make(map[string]int)
			for _, section := range card.Breakdown {
				if _, ok := tc.want[section.Label]; ok {
					got[section.Label] = section.Points
				}
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("sections mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScoreSLL(t *testing.T) {
	card := ScoreSLL(forms.SLLIntake{
		TurnoverLast3Years:      "FY22 4.1cr, FY23 4.8cr, FY24 5.5cr",
		TargetImprovementGoals:  "Reduce energy use by 15% within three years",
		NumEmployees:            60,
		SafetyIncidentCount:     0,
		WorkforceDiversityStats: "40% women across the floor",
		TrainingPrograms:        "Quarterly safety drills",
		GovernancePolicies:      "Anti-corruption and whistleblower policies in force, annual audit",
	})

	// 20 + 25 + 15 + 20 + 10 + 10
	if card.Score != 100 {
		t.Fatalf("score = %d, want 100", card.Score)
	}
	if card.Rating != "A" {
		t.Fatalf("rating = %q, want A", card.Rating)
	}
}

func TestScoreSLLGoalClarity(t *testing.T) {
	cases := []struct {
		name  string
		goals string
		want  int
	}{
		{"numeric target and detail", "Reduce energy use by 15% within three years", 20},
		{"prose without numbers", "We want to improve sustainability", 10},
		{"too short", "Improve", 0},
		{"percent spelled out", "Cut water use by 20 percent before 2028", 20},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			card := ScoreSLL(forms.SLLIntake{TargetImprovementGoals: tc.goals})
			if card.Breakdown[0].Points != tc.want {
				t.Fatalf("goal clarity = %d, want %d", card.Breakdown[0].Points, tc.want)
			}
		})
	}
}

func TestScoreSLLScaleFloor(t *testing.T) {
	card := ScoreSLL(forms.SLLIntake{NumEmployees: 5})
	last := card.Breakdown[len(card.Breakdown)-1]
	if last.Label != "Organization Scale" || last.Points != 5 {
		t.Fatalf("scale section = %+v, want 5 points", last)
	}
}

func TestScoreOther(t *testing.T) {
	card := ScoreOther(forms.OtherIntake{
		BusinessInfo:  "Small dye house near Surat with eighteen employees, supplying three textile exporters across Gujarat.",
		ExistingDocs:  "ISO 9001 and FSSAI registration",
		InterestAreas: "water recycling, solar, waste segregation",
	})

	// clarity 20 + documentation 40 + interest 40
	if card.Score != 100 {
		t.Fatalf("score = %d, want 100", card.Score)
	}
	// nothing targeted fired, so the two starter suggestions fill in
	if len(card.Suggestions) != 2 {
		t.Fatalf("suggestions = %d, want the 2 defaults: %+v", len(card.Suggestions), card.Suggestions)
	}
}

func TestScoreOtherDefaultSuggestions(t *testing.T) {
	card := ScoreOther(forms.OtherIntake{
		BusinessInfo:  "A kirana store in Pune, family run, two full time staff members on the payroll.",
		ExistingDocs:  "GST registration and the usual municipal trade licence paperwork",
		InterestAreas: "maybe solar some day",
	})

	// every section lands in a middle tier: 10 + 20 + 20
	if card.Score != 50 {
		t.Fatalf("score = %d, want 50", card.Score)
	}
	// no targeted suggestion fired, the defaults take over
	if len(card.Suggestions) != 2 {
		t.Fatalf("suggestions = %d, want 2: %+v", len(card.Suggestions), card.Suggestions)
	}

	empty := ScoreOther(forms.OtherIntake{})
	if len(empty.Suggestions) != 2 {
		t.Fatalf("empty intake suggestions = %d, want the 2 targeted ones", len(empty.Suggestions))
	}
	if empty.Rating != "D" {
		t.Fatalf("rating = %q, want D", empty.Rating)
	}
}
