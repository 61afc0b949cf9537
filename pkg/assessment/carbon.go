package assessment

import (
	"math"

	"github.com/goliatone/greenbridge/pkg/forms"
)

// Emission factors, approximate for India.
const (
	factorElectricity = 0.82     // kgCO2 per kWh, grid average
	factorFuel        = 2.68     // kgCO2 per litre, diesel proxy
	factorWater       = 0.000376 // kgCO2 per litre, pumping and treatment
)

// CarbonUnit labels every estimate this package produces.
const CarbonUnit = "kgCO2e/year"

// CarbonEstimate is a proxy carbon footprint with its breakdown.
type CarbonEstimate struct {
	Total       float64 `json:"total"`
	Electricity float64 `json:"electricity"`
	Fuel        float64 `json:"fuel"`
	Water       float64 `json:"water"`
	Unit        string  `json:"unit"`
}

// EstimateCarbon converts annual consumption figures into an estimated
// footprint. Figures are rounded to two decimals for display.
func EstimateCarbon(in forms.GreenIntake) CarbonEstimate {
	electricity := in.AnnualElectricityKWh * factorElectricity
	fuel := in.AnnualFuelLitres * factorFuel
	water := in.WaterConsumptionLitres * factorWater

	return CarbonEstimate{
		Total:       round2(electricity + fuel + water),
		Electricity: round2(electricity),
		Fuel:        round2(fuel),
		Water:       round2(water),
		Unit:        CarbonUnit,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
