package assessment

import (
	"regexp"
	"strings"

	"github.com/goliatone/greenbridge/pkg/forms"
)

var numericTarget = regexp.MustCompile(`\d+%|\d+ percent`)

var (
	governanceKeywords = []string{"anti-corruption", "whistleblower", "ethics", "compliance", "audit"}
	certKeywords       = []string{"iso", "bis", "fssai", "gmp", "haccp", "ohsas", "sa8000"}
	interestKeywords   = []string{"water", "energy", "waste", "solar", "recycle", "carbon", "green"}
	greenSectorCodes   = []string{"35", "38", "39"} // electricity, waste collection, remediation
)

// ScoreGreen scores a green loan intake. Consumption sections award
// more points the lower the figure; misses attach a suggestion.
func ScoreGreen(in forms.GreenIntake) Scorecard {
	var card Scorecard

	renewable := 0
	switch pct := in.RenewableEnergyPct; {
	case pct > 50:
		renewable = 25
	case pct >= 25:
		renewable = 18
	case pct >= 10:
		renewable = 10
	case pct > 0:
		renewable = 5
	default:
		card.suggest("Install rooftop solar to start your renewable energy journey.", "☀️")
	}
	card.section("Renewable Energy", renewable, 25)

	energy := 0
	switch elec := in.AnnualElectricityKWh; {
	case elec < 10000:
		energy = 15
	case elec < 50000:
		energy = 10
	case elec < 100000:
		energy = 5
	default:
		card.suggest("Consider an energy audit to identify reduction opportunities.", "⚡")
	}
	card.section("Energy Efficiency", energy, 15)

	fuel := 0
	switch litres := in.AnnualFuelLitres; {
	case litres < 1000:
		fuel = 15
	case litres < 5000:
		fuel = 10
	case litres < 10000:
		fuel = 5
	default:
		card.suggest("Explore EV fleet transition or fuel-efficient logistics.", "🚗")
	}
	card.section("Fuel Efficiency", fuel, 15)

	water := 0
	switch litres := in.WaterConsumptionLitres; {
	case litres < 50000:
		water = 10
	case litres < 100000:
		water = 7
	case litres < 500000:
		water = 3
	default:
		card.suggest("Implement rainwater harvesting and water recycling.", "💧")
	}
	card.section("Water Management", water, 10)

	waste := 0
	switch kg := in.WasteGeneratedKgMonth; {
	case kg < 100:
		waste = 15
	case kg < 500:
		waste = 10
	case kg < 1000:
		waste = 5
	default:
		card.suggest("Implement waste segregation and partner with recyclers.", "♻️")
	}
	card.section("Waste Reduction", waste, 15)

	tech := 0
	if len(in.EfficiencyEquipment) > 5 {
		tech = 15
	} else {
		card.suggest("Invest in BEE-rated equipment and LED lighting.", "💡")
	}
	card.section("Green Technology", tech, 15)

	sector := 0
	for _, code := range greenSectorCodes {
		if in.IndustryCode != "" && strings.HasPrefix(in.IndustryCode, code) {
			sector = 5
			break
		}
	}
	card.section("Sector Bonus", sector, 5)

	return finalize(card)
}

// ScoreSLL scores a sustainability-linked loan intake.
func ScoreSLL(in forms.SLLIntake) Scorecard {
	var card Scorecard

	goals := in.TargetImprovementGoals
	goal := 0
	switch {
	case numericTarget.MatchString(strings.ToLower(goals)) && len(goals) > 30:
		goal = 20
	case len(goals) > 20:
		goal = 10
	default:
		card.suggest("Define quantifiable targets (e.g., 'Reduce energy by 15% in 3 years').", "🎯")
	}
	card.section("Goal Clarity", goal, 20)

	safety := 0
	switch incidents := in.SafetyIncidentCount; {
	case incidents == 0:
		safety = 25
	case incidents <= 2:
		safety = 15
	case incidents <= 5:
		safety = 5
	default:
		card.suggest("Strengthen ISO 45001 safety protocols to reach zero incidents.", "⛑️")
	}
	card.section("Safety Record", safety, 25)

	diversity := 0
	if len(in.WorkforceDiversityStats) > 5 {
		diversity = 15
	} else {
		card.suggest("Track and report workforce diversity metrics.", "👥")
	}
	card.section("Diversity Tracking", diversity, 15)

	governance := strings.ToLower(in.GovernancePolicies)
	matches := 0
	for _, keyword := range governanceKeywords {
		if strings.Contains(governance, keyword) {
			matches++
		}
	}
	gov := 0
	switch {
	case matches >= 2:
		gov = 20
	case matches == 1 || len(governance) > 20:
		gov = 10
	default:
		card.suggest("Formalize Anti-Corruption and Whistleblower policies.", "📜")
	}
	card.section("Governance", gov, 20)

	training := 0
	if len(in.TrainingPrograms) > 5 {
		training = 10
	} else {
		card.suggest("Implement regular skill development and safety training.", "📚")
	}
	card.section("Employee Training", training, 10)

	scale := 5
	switch {
	case in.NumEmployees > 50:
		scale = 10
	case in.NumEmployees >= 20:
		scale = 7
	}
	card.section("Organization Scale", scale, 10)

	return finalize(card)
}

// ScoreOther scores the general ESG readiness intake. When nothing
// triggers a targeted suggestion it falls back to starter advice.
func ScoreOther(in forms.OtherIntake) Scorecard {
	var card Scorecard

	clarity := 5
	switch info := in.BusinessInfo; {
	case len(info) > 100:
		clarity = 20
	case len(info) > 30:
		clarity = 10
	}
	card.section("Business Clarity", clarity, 20)

	docs := strings.ToLower(in.ExistingDocs)
	docMatches := 0
	for _, keyword := range certKeywords {
		if strings.Contains(docs, keyword) {
			docMatches++
		}
	}
	doc := 0
	switch {
	case docMatches >= 2:
		doc = 40
	case docMatches == 1 || len(docs) > 30:
		doc = 20
	default:
		card.suggest("Start documenting your processes - it's the foundation of ESG.", "📋")
	}
	card.section("Documentation", doc, 40)

	interests := strings.ToLower(in.InterestAreas)
	interestMatches := 0
	for _, keyword := range interestKeywords {
		if strings.Contains(interests, keyword) {
			interestMatches++
		}
	}
	interest := 10
	switch {
	case interestMatches >= 3:
		interest = 40
	case interestMatches >= 1:
		interest = 20
	default:
		card.suggest("Explore quick wins: LED lighting, waste segregation, water metering.", "🌱")
	}
	card.section("Sustainability Interest", interest, 40)

	if len(card.Suggestions) == 0 {
		card.suggest("Start tracking monthly electricity and fuel bills.", "📊")
		card.suggest("Check if your industry is eligible for MSME green schemes.", "🏭")
	}

	return finalize(card)
}

func (c *Scorecard) section(label string, points, max int) {
	c.Breakdown = append(c.Breakdown, Section{Label: label, Points: points, Max: max})
	c.Score += points
}

func (c *Scorecard) suggest(text, icon string) {
	c.Suggestions = append(c.Suggestions, Suggestion{Text: text, Icon: icon})
}
