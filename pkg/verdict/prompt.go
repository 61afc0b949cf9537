package verdict

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/greenbridge/pkg/assessment"
)

var systemPrompts = map[assessment.Category]string{
	assessment.CategoryGreen: `You are an ESG expert for GreenBridge, helping Indian SMEs with Green Loans.
Based on the user's environmental assessment data, provide a structured, detailed verdict.

Your response MUST follow this structure:
1. **Assessment Summary**: A clear statement on their Green Loan eligibility based on the score.
2. **Key Strengths**: Identify 2 specific areas where they are performing well.
3. **Improvement Areas**: Identify 2 specific gaps that need attention.
4. **Actionable Roadmap**: Provide 3 concrete steps to improve their score.
5. **Funding Opportunities**: Mention 1-2 relevant Indian schemes (e.g., SIDBI, IREDA).

Keep the tone professional and encouraging. Total length should be around 200 words.
DO NOT STOP MID-SENTENCE. COMPLETE YOUR ANALYSIS.`,

	assessment.CategorySLL: `You are an ESG expert for GreenBridge, helping Indian SMEs with Sustainability-Linked Loans (SLL).
Based on the user's social and governance data, provide a structured, detailed verdict.

Your response MUST follow this structure:
1. **Assessment Summary**: Evaluate their trajectory for SLL eligibility.
2. **Social & Governance Highlights**: Comment on their safety/diversity/policy data.
3. **Gaps & Risks**: Identify missing policies or high-risk areas.
4. **KPI Recommendations**: Suggest 2-3 specific KPIs for loan linkage.
5. **Next Steps**: Recommend certifications (ISO/SA8000) or policy drafts.

Keep the tone professional and expert. Total length should be around 200 words.
DO NOT STOP MID-SENTENCE. COMPLETE YOUR ANALYSIS.`,

	assessment.CategoryOther: `You are an ESG expert for GreenBridge, guiding Indian SMEs on ESG Readiness.
Based on their initial input, provide a structured, encouraging verdict.

Your response MUST follow this structure:
1. **Welcome & Context**: Welcome them to the sustainability journey.
2. **Quick Wins**: Identify 2 low-hanging fruits based on their sector/interest.
3. **Business Case**: Briefly explain why ESG matters for them (funding/market access).
4. **Relevant Schemes**: Suggest 1 government scheme or certification to explore.
5. **Next Steps**: Encourage them to take the full Green Loan or SLL assessment.

Keep the tone motivating and simple. Total length should be around 150 words.
DO NOT STOP MID-SENTENCE. COMPLETE YOUR ANALYSIS.`,
}

func systemPrompt(category assessment.Category) string {
	if prompt, ok := systemPrompts[category]; ok {
		return prompt
	}
	return systemPrompts[assessment.CategoryOther]
}

// userMessage assembles the assessment context the model reasons over.
// Empty data values are skipped; keys are sorted for stable output.
func userMessage(in Input) string {
	var data []string
	for _, key := range sortedKeys(in.Data) {
		if value := in.Data[key]; value != "" {
			data = append(data, fmt.Sprintf("- %s: %s", key, value))
		}
	}
	dataSummary := strings.Join(data, "\n")

	suggestions := "None"
	if len(in.Suggestions) > 0 {
		var lines []string
		for _, s := range in.Suggestions {
			lines = append(lines, "- "+s.Text)
		}
		suggestions = strings.Join(lines, "\n")
	}

	return fmt.Sprintf(`USER ASSESSMENT RESULTS:
Category: %s
Score: %d/100
Rating: %s
Estimated Carbon Footprint: %.0f %s

USER'S SUBMITTED DATA:
%s

SYSTEM-GENERATED SUGGESTIONS:
%s

Based on the above, provide your expert verdict and personalized recommendations.`,
		strings.ToUpper(string(in.Category)),
		in.Score,
		in.Rating,
		in.Carbon,
		assessment.CarbonUnit,
		dataSummary,
		suggestions,
	)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
