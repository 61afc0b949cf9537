package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/greenbridge/internal/config"
	"github.com/goliatone/greenbridge/pkg/assessment"
	"github.com/goliatone/greenbridge/pkg/forms"
	"github.com/goliatone/greenbridge/pkg/prompt"
	"github.com/goliatone/greenbridge/pkg/render"
	"github.com/goliatone/greenbridge/pkg/verdict"
)

func newAssessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assess",
		Short: "Run the assessment in the terminal",
		Long: `assess walks through the same questionnaire as the web app:
contact details, the onboarding questions, then the intake form for
whichever track the answers put you on. The scorecard prints at the
end; with GEMINI_API_KEY set you also get the written verdict.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}

			catalog, err := forms.LoadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			var verdicts *verdict.Generator
			if cfg.GeminiAPIKey != "" {
				verdicts, err = verdict.NewGenerator(cmd.Context(), cfg.GeminiAPIKey, verdict.WithModel(cfg.GeminiModel))
				if err != nil {
					return err
				}
			}

			runner := &assessor{
				driver:   prompt.NewSurveyDriver(),
				out:      cmd.OutOrStdout(),
				catalog:  catalog,
				verdicts: verdicts,
			}
			if err := runner.run(cmd.Context()); errors.Is(err, prompt.ErrAborted) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			} else if err != nil {
				return err
			}
			return nil
		},
	}
}

// assessor drives one terminal assessment. The driver is swappable so
// tests can script the answers.
type assessor struct {
	driver   prompt.Driver
	out      io.Writer
	catalog  *forms.Catalog
	verdicts *verdict.Generator
}

func (a *assessor) run(ctx context.Context) error {
	if err := a.driver.Info(ctx, "GreenBridge ESG assessment"); err != nil {
		return err
	}

	contactForm, _ := a.catalog.Form("contact")
	contactValues, err := a.askForm(ctx, contactForm)
	if err != nil {
		return err
	}
	contact, errs := forms.ParseContact(contactValues)
	if !errs.Empty() {
		return errsToError(errs)
	}

	onboardingForm, _ := a.catalog.Form("onboarding")
	if err := a.driver.Info(ctx, "\nA few quick questions about "+render.PlainText(contact.Name)+"'s business:"); err != nil {
		return err
	}
	answerValues, err := a.askForm(ctx, onboardingForm)
	if err != nil {
		return err
	}
	answers := forms.ParseFilterAnswers(answerValues)
	category := assessment.Classify(answers)
	if err := a.driver.Info(ctx, "\nYou are on the "+trackName(category)+" track."); err != nil {
		return err
	}

	intakeForm, _ := a.catalog.Form("intake-" + string(category))
	intakeValues, err := a.askForm(ctx, intakeForm)
	if err != nil {
		return err
	}

	var (
		card   assessment.Scorecard
		carbon *assessment.CarbonEstimate
	)
	switch category {
	case assessment.CategoryGreen:
		payload, parseErrs := forms.ParseGreen(intakeValues)
		if !parseErrs.Empty() {
			return errsToError(parseErrs)
		}
		card = assessment.ScoreGreen(payload)
		estimate := assessment.EstimateCarbon(payload)
		carbon = &estimate
	case assessment.CategorySLL:
		payload, parseErrs := forms.ParseSLL(intakeValues)
		if !parseErrs.Empty() {
			return errsToError(parseErrs)
		}
		card = assessment.ScoreSLL(payload)
	default:
		payload, parseErrs := forms.ParseOther(intakeValues)
		if !parseErrs.Empty() {
			return errsToError(parseErrs)
		}
		card = assessment.ScoreOther(payload)
	}

	a.printScorecard(card, carbon)

	if a.verdicts != nil {
		var carbonTotal float64
		if carbon != nil {
			carbonTotal = carbon.Total
		}
		text, err := a.verdicts.Generate(ctx, verdict.Input{
			Category:    category,
			Score:       card.Score,
			Rating:      card.Rating,
			Carbon:      carbonTotal,
			Data:        promptData(intakeValues),
			Suggestions: card.Suggestions,
		})
		if err != nil {
			fmt.Fprintf(a.out, "\nVerdict unavailable: %v\n", err)
		} else {
			fmt.Fprintf(a.out, "\nExpert verdict\n--------------\n%s\n", text)
		}
	}
	return nil
}

// askForm collects one value per catalog field, prompting by field
// type the way the web form renders by field type.
func (a *assessor) askForm(ctx context.Context, form forms.FormModel) (url.Values, error) {
	values := url.Values{}
	for _, field := range form.Fields {
		switch field.Type {
		case forms.FieldBoolean:
			ok, err := a.driver.Confirm(ctx, prompt.ConfirmConfig{
				Message: field.Label,
				Help:    field.Help,
			})
			if err != nil {
				return nil, err
			}
			if ok {
				values.Set(field.Name, "on")
			}
		case forms.FieldSelect:
			labels := make([]string, 0, len(field.Options))
			byLabel := make(map[string]string, len(field.Options))
			cfg := prompt.SelectConfig{Message: field.Label, Help: field.Help}
			for _, option := range field.Options {
				labels = append(labels, option.Label)
				byLabel[option.Label] = option.Value
				if option.Value == field.Default {
					cfg.Default = option.Label
				}
			}
			cfg.Options = labels
			choice, err := a.driver.Select(ctx, cfg)
			if err != nil {
				return nil, err
			}
			values.Set(field.Name, byLabel[choice])
		case forms.FieldText:
			text, err := a.driver.TextArea(ctx, prompt.TextAreaConfig{
				Message: field.Label,
				Default: field.Default,
				Help:    field.Help,
			})
			if err != nil {
				return nil, err
			}
			if strings.TrimSpace(text) == "" && field.Required {
				return nil, fmt.Errorf("%s is required", field.Label)
			}
			values.Set(field.Name, text)
		default:
			text, err := a.driver.Input(ctx, prompt.InputConfig{
				Message:   field.Label,
				Default:   field.Default,
				Help:      field.Help,
				Validator: fieldValidator(field),
			})
			if err != nil {
				return nil, err
			}
			if strings.TrimSpace(text) != "" || field.Required {
				values.Set(field.Name, text)
			}
		}
	}
	return values, nil
}

// fieldValidator enforces the same constraints inline that the form
// payload enforces after submit, so nobody types through a whole
// questionnaire only to fail at the end.
func fieldValidator(field forms.Field) func(string) error {
	return func(value string) error {
		value = strings.TrimSpace(value)
		if value == "" {
			if field.Required {
				return errors.New("this field is required")
			}
			return nil
		}
		switch field.Type {
		case forms.FieldNumber, forms.FieldInteger:
			parsed, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return errors.New("enter a number")
			}
			if field.Type == forms.FieldInteger && parsed != float64(int64(parsed)) {
				return errors.New("enter a whole number")
			}
			if field.Min != nil && parsed < *field.Min {
				return fmt.Errorf("must be %s or more", render.FormatNumber(*field.Min))
			}
			if field.Max != nil && parsed > *field.Max {
				return fmt.Errorf("must be %s or less", render.FormatNumber(*field.Max))
			}
		case forms.FieldEmail:
			if !strings.Contains(value, "@") {
				return errors.New("enter a valid email address")
			}
		}
		return nil
	}
}

func (a *assessor) printScorecard(card assessment.Scorecard, carbon *assessment.CarbonEstimate) {
	fmt.Fprintf(a.out, "\nYour ESG scorecard\n------------------\nScore: %d / 100 (rating %s)\n", card.Score, card.Rating)
	for _, section := range card.Breakdown {
		fmt.Fprintf(a.out, "  %-28s %d / %d\n", section.Label, section.Points, section.Max)
	}
	if carbon != nil {
		fmt.Fprintf(a.out, "\nEstimated carbon footprint: %s %s\n", render.FormatNumber(carbon.Total), carbon.Unit)
		fmt.Fprintf(a.out, "  Electricity: %s\n  Fuel: %s\n  Water: %s\n",
			render.FormatNumber(carbon.Electricity),
			render.FormatNumber(carbon.Fuel),
			render.FormatNumber(carbon.Water),
		)
	}
	if len(card.Suggestions) > 0 {
		fmt.Fprintln(a.out, "\nSuggested next steps:")
		for _, suggestion := range card.Suggestions {
			fmt.Fprintf(a.out, "  %s %s\n", suggestion.Icon, suggestion.Text)
		}
	}
}

// promptData flattens the intake answers for the verdict prompt.
func promptData(values url.Values) map[string]string {
	out := make(map[string]string, len(values))
	for key := range values {
		if key == "category" {
			continue
		}
		out[key] = render.PlainText(values.Get(key))
	}
	return out
}

func errsToError(errs forms.Errors) error {
	lines := make([]string, 0, len(errs.Fields)+len(errs.Form))
	lines = append(lines, errs.Form...)
	names := make([]string, 0, len(errs.Fields))
	for name := range errs.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, msg := range errs.Fields[name] {
			lines = append(lines, name+": "+msg)
		}
	}
	return errors.New("invalid answers: " + strings.Join(lines, "; "))
}

func trackName(category assessment.Category) string {
	switch category {
	case assessment.CategoryGreen:
		return "Green Loan"
	case assessment.CategorySLL:
		return "Sustainability-Linked Loan"
	default:
		return "General ESG"
	}
}
