package verdict

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/greenbridge/pkg/assessment"
)

func TestSystemPromptPerCategory(t *testing.T) {
	require.Contains(t, systemPrompt(assessment.CategoryGreen), "Green Loans")
	require.Contains(t, systemPrompt(assessment.CategorySLL), "Sustainability-Linked Loans")
	require.Contains(t, systemPrompt(assessment.CategoryOther), "ESG Readiness")
	// unknown categories fall back to the readiness prompt
	require.Equal(t, systemPrompt(assessment.CategoryOther), systemPrompt("mystery"))
}

func TestUserMessage(t *testing.T) {
	msg := userMessage(Input{
		Category: assessment.CategoryGreen,
		Score:    72,
		Rating:   "B",
		Carbon:   10917.6,
		Data: map[string]string{
			"annual_electricity_kwh": "10000",
			"efficiency_equipment":   "LED retrofit",
			"industry_code":          "",
		},
		Suggestions: []assessment.Suggestion{
			{Text: "Install rooftop solar to start your renewable energy journey.", Icon: "☀️"},
		},
	})

	require.Contains(t, msg, "Category: GREEN")
	require.Contains(t, msg, "Score: 72/100")
	require.Contains(t, msg, "Rating: B")
	require.Contains(t, msg, "Estimated Carbon Footprint: 10918 kgCO2e/year")
	require.Contains(t, msg, "- annual_electricity_kwh: 10000")
	require.Contains(t, msg, "- Install rooftop solar")
	// empty values never reach the prompt
	require.NotContains(t, msg, "industry_code")
	// data lines come out in sorted key order
	require.Less(t,
		strings.Index(msg, "annual_electricity_kwh"),
		strings.Index(msg, "efficiency_equipment"),
	)
}

func TestUserMessageNoSuggestions(t *testing.T) {
	msg := userMessage(Input{Category: assessment.CategorySLL, Score: 90, Rating: "A"})
	require.Contains(t, msg, "SYSTEM-GENERATED SUGGESTIONS:\nNone")
}

func TestNewGeneratorWithoutKey(t *testing.T) {
	_, err := NewGenerator(context.Background(), "   ")
	require.True(t, errors.Is(err, ErrNotConfigured))
}
