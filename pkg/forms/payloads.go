package forms

import "net/url"

// Contact is the initial get-started submission.
type Contact struct {
	Name  string `form:"name" json:"name" validate:"required,max=120"`
	Email string `form:"email" json:"email" validate:"required,email"`
}

// FilterAnswers holds the seven onboarding questions that route a
// business to its assessment category.
type FilterAnswers struct {
	IsManufacturing           bool `form:"is_manufacturing" json:"is_manufacturing"`
	ConsumesSignificantEnergy bool `form:"consumes_significant_energy" json:"consumes_significant_energy"`
	TracksEnvMetrics          bool `form:"tracks_env_metrics" json:"tracks_env_metrics"`
	MeasuresEmissions         bool `form:"measures_emissions" json:"measures_emissions"`
	HasSustainabilityGoals    bool `form:"has_sustainability_goals" json:"has_sustainability_goals"`
	AppliedForESGLoan         bool `form:"applied_for_esg_loan" json:"applied_for_esg_loan"`
	HasEmployeePolicies       bool `form:"has_employee_policies" json:"has_employee_policies"`
}

// GreenIntake carries the environmental figures behind the green loan
// scorecard and the carbon estimate.
type GreenIntake struct {
	AnnualElectricityKWh   float64 `form:"annual_electricity_kwh" json:"annual_electricity_kwh" validate:"gte=0"`
	AnnualFuelLitres       float64 `form:"annual_fuel_litres" json:"annual_fuel_litres" validate:"gte=0"`
	WaterConsumptionLitres float64 `form:"water_consumption_litres" json:"water_consumption_litres" validate:"gte=0"`
	WasteGeneratedKgMonth  float64 `form:"waste_generated_kg_month" json:"waste_generated_kg_month" validate:"gte=0"`
	RenewableEnergyPct     float64 `form:"renewable_energy_pct" json:"renewable_energy_pct" validate:"gte=0,lte=100"`
	EfficiencyEquipment    string  `form:"efficiency_equipment" json:"efficiency_equipment,omitempty"`
	IndustryCode           string  `form:"industry_code" json:"industry_code,omitempty" validate:"omitempty,max=10"`
}

// SLLIntake carries the social and governance data behind the
// sustainability-linked loan scorecard.
type SLLIntake struct {
	TurnoverLast3Years      string `form:"turnover_last_3_years" json:"turnover_last_3_years" validate:"required"`
	TargetImprovementGoals  string `form:"target_improvement_goals" json:"target_improvement_goals" validate:"required"`
	NumEmployees            int    `form:"num_employees" json:"num_employees" validate:"gte=1"`
	WorkforceDiversityStats string `form:"workforce_diversity_stats" json:"workforce_diversity_stats,omitempty"`
	SafetyIncidentCount     int    `form:"safety_incident_count" json:"safety_incident_count" validate:"gte=0"`
	TrainingPrograms        string `form:"training_programs" json:"training_programs,omitempty"`
	GovernancePolicies      string `form:"governance_policies" json:"governance_policies,omitempty"`
}

// OtherIntake is the general ESG readiness submission.
type OtherIntake struct {
	BusinessInfo  string `form:"business_info" json:"business_info" validate:"required"`
	ExistingDocs  string `form:"existing_docs" json:"existing_docs,omitempty"`
	InterestAreas string `form:"interest_areas" json:"interest_areas,omitempty"`
}

// ParseContact decodes and validates the contact form.
func ParseContact(values url.Values) (Contact, Errors) {
	payload := Contact{
		Name:  textValue(values, "name"),
		Email: textValue(values, "email"),
	}
	var errs Errors
	errs.Merge(Validate(payload))
	return payload, errs
}

// ParseFilterAnswers decodes the onboarding checkboxes. An unchecked
// box never reaches the server, so absence means false and decoding
// cannot fail.
func ParseFilterAnswers(values url.Values) FilterAnswers {
	return FilterAnswers{
		IsManufacturing:           boolValue(values, "is_manufacturing"),
		ConsumesSignificantEnergy: boolValue(values, "consumes_significant_energy"),
		TracksEnvMetrics:          boolValue(values, "tracks_env_metrics"),
		MeasuresEmissions:         boolValue(values, "measures_emissions"),
		HasSustainabilityGoals:    boolValue(values, "has_sustainability_goals"),
		AppliedForESGLoan:         boolValue(values, "applied_for_esg_loan"),
		HasEmployeePolicies:       boolValue(values, "has_employee_policies"),
	}
}

// ParseGreen decodes and validates the green loan intake.
func ParseGreen(values url.Values) (GreenIntake, Errors) {
	var errs Errors
	payload := GreenIntake{
		AnnualElectricityKWh:   floatValue(values, "annual_electricity_kwh", true, &errs),
		AnnualFuelLitres:       floatValue(values, "annual_fuel_litres", true, &errs),
		WaterConsumptionLitres: floatValue(values, "water_consumption_litres", true, &errs),
		WasteGeneratedKgMonth:  floatValue(values, "waste_generated_kg_month", true, &errs),
		RenewableEnergyPct:     floatValue(values, "renewable_energy_pct", true, &errs),
		EfficiencyEquipment:    textValue(values, "efficiency_equipment"),
		IndustryCode:           textValue(values, "industry_code"),
	}
	errs.Merge(Validate(payload))
	return payload, errs
}

// ParseSLL decodes and validates the sustainability-linked loan intake.
func ParseSLL(values url.Values) (SLLIntake, Errors) {
	var errs Errors
	payload := SLLIntake{
		TurnoverLast3Years:      textValue(values, "turnover_last_3_years"),
		TargetImprovementGoals:  textValue(values, "target_improvement_goals"),
		NumEmployees:            intValue(values, "num_employees", true, &errs),
		WorkforceDiversityStats: textValue(values, "workforce_diversity_stats"),
		SafetyIncidentCount:     intValue(values, "safety_incident_count", true, &errs),
		TrainingPrograms:        textValue(values, "training_programs"),
		GovernancePolicies:      textValue(values, "governance_policies"),
	}
	errs.Merge(Validate(payload))
	return payload, errs
}

// ParseOther decodes and validates the ESG readiness intake.
func ParseOther(values url.Values) (OtherIntake, Errors) {
	payload := OtherIntake{
		BusinessInfo:  textValue(values, "business_info"),
		ExistingDocs:  textValue(values, "existing_docs"),
		InterestAreas: textValue(values, "interest_areas"),
	}
	var errs Errors
	errs.Merge(Validate(payload))
	return payload, errs
}
