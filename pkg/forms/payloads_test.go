package forms

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseContact(t *testing.T) {
	payload, errs := ParseContact(url.Values{
		"name":  {"  Asha Textiles  "},
		"email": {"asha@example.in"},
	})
	require.True(t, errs.Empty())
	require.Equal(t, "Asha Textiles", payload.Name)
	require.Equal(t, "asha@example.in", payload.Email)
}

func TestParseContactInvalid(t *testing.T) {
	t.Run("missing everything", func(t *testing.T) {
		_, errs := ParseContact(url.Values{})
		require.False(t, errs.Empty())
		require.Equal(t, []string{"This field is required."}, errs.FieldMessages("name"))
		require.Equal(t, []string{"This field is required."}, errs.FieldMessages("email"))
	})

	t.Run("bad email", func(t *testing.T) {
		_, errs := ParseContact(url.Values{
			"name":  {"Asha"},
			"email": {"not-an-address"},
		})
		require.Equal(t, []string{"Enter a valid email address."}, errs.FieldMessages("email"))
		require.Nil(t, errs.FieldMessages("name"))
	})
}

func TestParseFilterAnswers(t *testing.T) {
	got := ParseFilterAnswers(url.Values{
		"is_manufacturing":         {"on"},
		"tracks_env_metrics":       {"true"},
		"measures_emissions":       {"1"},
		"has_sustainability_goals": {"yes"},
		"applied_for_esg_loan":     {"nope"},
	})
	want := FilterAnswers{
		IsManufacturing:        true,
		TracksEnvMetrics:       true,
		MeasuresEmissions:      true,
		HasSustainabilityGoals: true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("answers mismatch (-want +got):\n%s", diff)
	}
}

func TestParseGreen(t *testing.T) {
	payload, errs := ParseGreen(url.Values{
		"annual_electricity_kwh":   {"42000"},
		"annual_fuel_litres":       {"3500"},
		"water_consumption_litres": {"80000"},
		"waste_generated_kg_month": {"250"},
		"renewable_energy_pct":     {"15"},
		"efficiency_equipment":     {"LED retrofit across the shop floor"},
	})
	require.True(t, errs.Empty(), "errors: %+v", errs)
	require.Equal(t, 42000.0, payload.AnnualElectricityKWh)
	require.Equal(t, 15.0, payload.RenewableEnergyPct)
}

func TestParseGreenInvalid(t *testing.T) {
	t.Run("junk number", func(t *testing.T) {
		_, errs := ParseGreen(url.Values{
			"annual_electricity_kwh":   {"lots"},
			"annual_fuel_litres":       {"0"},
			"water_consumption_litres": {"0"},
			"waste_generated_kg_month": {"0"},
			"renewable_energy_pct":     {"10"},
		})
		require.Equal(t, []string{"Enter a number."}, errs.FieldMessages("annual_electricity_kwh"))
	})

	t.Run("missing keeps a single message per field", func(t *testing.T) {
		_, errs := ParseGreen(url.Values{})
		for _, name := range []string{
			"annual_electricity_kwh",
			"annual_fuel_litres",
			"water_consumption_litres",
			"waste_generated_kg_month",
			"renewable_energy_pct",
		} {
			require.Equal(t, []string{"This field is required."}, errs.FieldMessages(name), name)
		}
	})

	t.Run("percentage over 100", func(t *testing.T) {
		_, errs := ParseGreen(url.Values{
			"annual_electricity_kwh":   {"1"},
			"annual_fuel_litres":       {"1"},
			"water_consumption_litres": {"1"},
			"waste_generated_kg_month": {"1"},
			"renewable_energy_pct":     {"130"},
		})
		require.Equal(t, []string{"Must be 100 or less."}, errs.FieldMessages("renewable_energy_pct"))
	})
}

func TestParseSLLInvalid(t *testing.T) {
	_, errs := ParseSLL(url.Values{
		"turnover_last_3_years": {"FY24 5.5cr"},
		"num_employees":         {"0"},
		"safety_incident_count": {"-1"},
	})
	require.Equal(t, []string{"This field is required."}, errs.FieldMessages("target_improvement_goals"))
	require.Equal(t, []string{"Must be 1 or more."}, errs.FieldMessages("num_employees"))
	require.Equal(t, []string{"Must be 0 or more."}, errs.FieldMessages("safety_incident_count"))
}

func TestParseOther(t *testing.T) {
	payload, errs := ParseOther(url.Values{
		"business_info":  {"Small dye house near Surat, 18 people."},
		"interest_areas": {"water, solar"},
	})
	require.True(t, errs.Empty())
	require.Equal(t, "water, solar", payload.InterestAreas)

	_, errs = ParseOther(url.Values{})
	require.Equal(t, []string{"This field is required."}, errs.FieldMessages("business_info"))
}

func TestErrorsMerge(t *testing.T) {
	var errs Errors
	errs.AddField("num_employees", "This field is required.")

	var more Errors
	more.AddField("num_employees", "Must be 1 or more.")
	more.AddField("turnover_last_3_years", "This field is required.")
	more.AddForm("Check the highlighted fields.")

	errs.Merge(more)
	require.Equal(t, []string{"This field is required."}, errs.FieldMessages("num_employees"))
	require.Equal(t, []string{"This field is required."}, errs.FieldMessages("turnover_last_3_years"))
	require.Equal(t, []string{"Check the highlighted fields."}, errs.Form)
}
