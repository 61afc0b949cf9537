package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/greenbridge/pkg/assessment"
	"github.com/goliatone/greenbridge/pkg/forms"
	"github.com/goliatone/greenbridge/pkg/render"
	"github.com/goliatone/greenbridge/pkg/session"
	"github.com/goliatone/greenbridge/pkg/verdict"
)

// Session keys.
const (
	keyContact    = "contact"
	keyCategory   = "category"
	keyAnswers    = "answers"
	keyAssessment = "assessment"
)

// storedAssessment is the dashboard payload kept in the session until
// the cookie expires.
type storedAssessment struct {
	Reference   string                     `json:"reference"`
	Category    assessment.Category        `json:"category"`
	Scorecard   assessment.Scorecard       `json:"scorecard"`
	Carbon      *assessment.CarbonEstimate `json:"carbon,omitempty"`
	Verdict     string                     `json:"verdict,omitempty"`
	SubmittedAt time.Time                  `json:"submitted_at"`
}

func (s *Server) handleContactPage(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Load(r)
	form, _ := s.catalog.Form("contact")
	s.renderPage(w, r, http.StatusOK, "index", render.Page{
		Title: form.Title,
		Form:  render.BindForm(form, nil, forms.Errors{}),
	}, sess)
}

func (s *Server) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Load(r)
	if err := r.ParseForm(); err != nil {
		s.renderContactInvalid(w, r, sess, nil, unreadableForm())
		return
	}
	payload, errs := forms.ParseContact(r.PostForm)
	if !errs.Empty() {
		s.renderContactInvalid(w, r, sess, r.PostForm, errs)
		return
	}

	payload.Name = render.PlainText(payload.Name)
	if err := sess.Set(keyContact, payload); err != nil {
		s.renderFailure(w, r, err)
		return
	}
	sess.AddFlash(session.FlashSuccess, "Thanks, you're in. Answer a few quick questions next.")
	s.saveAndRedirect(w, r, sess, "/onboarding")
}

func (s *Server) renderContactInvalid(w http.ResponseWriter, r *http.Request, sess *session.Session, values url.Values, errs forms.Errors) {
	form, _ := s.catalog.Form("contact")
	s.renderPage(w, r, http.StatusUnprocessableEntity, "index", render.Page{
		Title: form.Title,
		Form:  render.BindForm(form, render.FormValues(values), errs),
	}, sess)
}

func (s *Server) handleOnboardingPage(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Load(r)
	form, _ := s.catalog.Form("onboarding")

	// re-check answers from an earlier pass stay ticked
	values := make(map[string]string)
	var answers forms.FilterAnswers
	if ok, err := sess.Get(keyAnswers, &answers); ok && err == nil {
		for name, checked := range answerValues(answers) {
			values[name] = checked
		}
	}

	s.renderPage(w, r, http.StatusOK, "onboarding", render.Page{
		Title: form.Title,
		Form:  render.BindForm(form, values, forms.Errors{}),
	}, sess)
}

func (s *Server) handleOnboardingSubmit(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Load(r)
	if err := r.ParseForm(); err != nil {
		form, _ := s.catalog.Form("onboarding")
		s.renderPage(w, r, http.StatusUnprocessableEntity, "onboarding", render.Page{
			Title: form.Title,
			Form:  render.BindForm(form, nil, unreadableForm()),
		}, sess)
		return
	}

	answers := forms.ParseFilterAnswers(r.PostForm)
	category := assessment.Classify(answers)

	if err := sess.Set(keyAnswers, answers); err != nil {
		s.renderFailure(w, r, err)
		return
	}
	if err := sess.Set(keyCategory, category); err != nil {
		s.renderFailure(w, r, err)
		return
	}
	s.saveAndRedirect(w, r, sess, "/intake/"+string(category))
}

func (s *Server) handleIntakePage(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Load(r)

	category, ok := assessment.ParseCategory(chi.URLParam(r, "category"))
	if !ok {
		s.saveAndRedirect(w, r, sess, "/onboarding")
		return
	}
	if !sess.Has(keyCategory) {
		sess.AddFlash(session.FlashInfo, "Answer the onboarding questions first.")
		s.saveAndRedirect(w, r, sess, "/onboarding")
		return
	}

	form, _ := s.catalog.Form("intake-" + string(category))
	s.renderIntake(w, r, sess, http.StatusOK, category, form, nil, forms.Errors{})
}

func (s *Server) handleIntakeSubmit(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Load(r)
	if err := r.ParseForm(); err != nil {
		form, _ := s.catalog.Form("intake-" + string(assessment.CategoryOther))
		s.renderIntake(w, r, sess, http.StatusUnprocessableEntity, assessment.CategoryOther, form, nil, unreadableForm())
		return
	}

	category, ok := assessment.ParseCategory(r.PostForm.Get("category"))
	if !ok {
		category = assessment.CategoryOther
	}

	var (
		card   assessment.Scorecard
		carbon *assessment.CarbonEstimate
		data   map[string]string
		errs   forms.Errors
	)
	switch category {
	case assessment.CategoryGreen:
		payload, parseErrs := forms.ParseGreen(r.PostForm)
		errs = parseErrs
		if errs.Empty() {
			card = assessment.ScoreGreen(payload)
			estimate := assessment.EstimateCarbon(payload)
			carbon = &estimate
			data = summaryData(payload)
		}
	case assessment.CategorySLL:
		payload, parseErrs := forms.ParseSLL(r.PostForm)
		errs = parseErrs
		if errs.Empty() {
			card = assessment.ScoreSLL(payload)
			data = summaryData(payload)
		}
	default:
		payload, parseErrs := forms.ParseOther(r.PostForm)
		errs = parseErrs
		if errs.Empty() {
			card = assessment.ScoreOther(payload)
			data = summaryData(payload)
		}
	}

	if !errs.Empty() {
		form, _ := s.catalog.Form("intake-" + string(category))
		s.renderIntake(w, r, sess, http.StatusUnprocessableEntity, category, form, r.PostForm, errs)
		return
	}

	result := storedAssessment{
		Reference:   uuid.NewString(),
		Category:    category,
		Scorecard:   card,
		Carbon:      carbon,
		SubmittedAt: time.Now().UTC(),
	}
	if s.verdicts != nil {
		var carbonTotal float64
		if carbon != nil {
			carbonTotal = carbon.Total
		}
		text, err := s.verdicts.Generate(r.Context(), verdict.Input{
			Category:    category,
			Score:       card.Score,
			Rating:      card.Rating,
			Carbon:      carbonTotal,
			Data:        data,
			Suggestions: card.Suggestions,
		})
		if err != nil {
			s.log.Warn("verdict generation failed", zap.Error(err))
		} else {
			result.Verdict = text
		}
	}

	if err := sess.Set(keyAssessment, result); err != nil {
		s.renderFailure(w, r, err)
		return
	}
	if err := sess.Set(keyCategory, category); err != nil {
		s.renderFailure(w, r, err)
		return
	}
	sess.AddFlash(session.FlashSuccess, "Your scorecard is ready.")
	s.saveAndRedirect(w, r, sess, "/dashboard")
}

func (s *Server) renderIntake(w http.ResponseWriter, r *http.Request, sess *session.Session, status int, category assessment.Category, form forms.FormModel, values url.Values, errs forms.Errors) {
	s.renderPage(w, r, status, "intake", render.Page{
		Title: form.Title,
		Form:  render.BindForm(form, render.FormValues(values), errs),
		Data:  map[string]any{"hidden_category": string(category)},
	}, sess)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Load(r)

	data := map[string]any{"has_results": false}
	var stored storedAssessment
	if ok, err := sess.Get(keyAssessment, &stored); ok && err == nil {
		data["has_results"] = true
		data["reference"] = stored.Reference
		data["category"] = string(stored.Category)
		data["submitted_at"] = stored.SubmittedAt.Format("2 Jan 2006 15:04 MST")
		data["scorecard"] = scorecardView(stored.Scorecard)
		if stored.Carbon != nil {
			data["carbon"] = carbonView(*stored.Carbon)
		}
		if stored.Verdict != "" {
			data["verdict_html"] = render.VerdictHTML(stored.Verdict)
		}
	} else if err != nil {
		s.log.Warn("discarding unreadable assessment from session", zap.Error(err))
		sess.Delete(keyAssessment)
	}

	s.renderPage(w, r, http.StatusOK, "dashboard", render.Page{
		Title: "Dashboard",
		Data:  data,
	}, sess)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusNotFound, "error", render.Page{
		Title: "Not found",
		Data: map[string]any{
			"status":  "404",
			"message": "That page does not exist.",
		},
	}, nil)
}

// renderPage renders a template with the shared chrome: theme tokens
// and, when a session is given, its pending flashes (consumed here, so
// they show exactly once).
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, name string, page render.Page, sess *session.Session) {
	page.Theme = s.theme
	if sess != nil {
		page.Flashes = sess.Flashes()
		if sess.Dirty() {
			if err := s.sessions.Save(w, sess); err != nil {
				s.log.Error("save session", zap.Error(err))
			}
		}
	}

	ctx, err := pageContext(page)
	if err != nil {
		s.renderFailure(w, r, err)
		return
	}
	// hidden_category travels next to the page data for the form partial
	if page.Data != nil {
		if hidden, ok := page.Data["hidden_category"]; ok {
			ctx["hidden_category"] = hidden
		}
	}

	body, err := s.views.RenderString(name, ctx)
	if err != nil {
		s.renderFailure(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}

// renderFailure logs the error and shows the 500 page. Validation
// problems never land here; this is for template and session plumbing
// failures.
func (s *Server) renderFailure(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	page := render.Page{
		Title: "Something went wrong",
		Theme: s.theme,
		Data: map[string]any{
			"status":  "500",
			"message": "Something went wrong on our side. Please try again.",
		},
	}
	ctx, ctxErr := pageContext(page)
	if ctxErr != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	body, renderErr := s.views.RenderString("error", ctx)
	if renderErr != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	fmt.Fprint(w, body)
}

// pageContext converts the page through JSON so templates address
// fields by their json names and never see raw Go structs.
func pageContext(page render.Page) (map[string]any, error) {
	raw, err := json.Marshal(page)
	if err != nil {
		return nil, err
	}
	ctx := map[string]any{}
	if err := json.Unmarshal(raw, &ctx); err != nil {
		return nil, err
	}
	return ctx, nil
}

func (s *Server) saveAndRedirect(w http.ResponseWriter, r *http.Request, sess *session.Session, location string) {
	if sess.Dirty() {
		if err := s.sessions.Save(w, sess); err != nil {
			s.log.Error("save session", zap.Error(err))
		}
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

func unreadableForm() forms.Errors {
	var errs forms.Errors
	errs.AddForm("The submitted form could not be read. Please try again.")
	return errs
}

// summaryData flattens a payload into the string map the verdict
// prompt consumes, stripping any markup from free text.
func summaryData(payload any) map[string]string {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}
	out := make(map[string]string, len(fields))
	for key, value := range fields {
		switch v := value.(type) {
		case string:
			out[key] = render.PlainText(v)
		case float64:
			if v == float64(int64(v)) {
				out[key] = fmt.Sprintf("%d", int64(v))
			} else {
				out[key] = fmt.Sprintf("%g", v)
			}
		case bool:
			out[key] = fmt.Sprintf("%t", v)
		default:
			out[key] = fmt.Sprintf("%v", v)
		}
	}
	return out
}

// scorecardView preformats the scorecard numbers for the template, so
// the page shows "15 / 15" and never a float representation.
func scorecardView(card assessment.Scorecard) map[string]any {
	sections := make([]map[string]string, 0, len(card.Breakdown))
	for _, sec := range card.Breakdown {
		sections = append(sections, map[string]string{
			"label":  sec.Label,
			"points": strconv.Itoa(sec.Points),
			"max":    strconv.Itoa(sec.Max),
		})
	}
	return map[string]any{
		"score":       strconv.Itoa(card.Score),
		"rating":      card.Rating,
		"breakdown":   sections,
		"suggestions": card.Suggestions,
	}
}

func carbonView(estimate assessment.CarbonEstimate) map[string]string {
	return map[string]string{
		"total":       render.FormatNumber(estimate.Total),
		"electricity": render.FormatNumber(estimate.Electricity),
		"fuel":        render.FormatNumber(estimate.Fuel),
		"water":       render.FormatNumber(estimate.Water),
		"unit":        estimate.Unit,
	}
}

// answerValues maps ticked onboarding answers back to checkbox values
// for re-rendering.
func answerValues(answers forms.FilterAnswers) map[string]string {
	out := make(map[string]string)
	set := func(name string, checked bool) {
		if checked {
			out[name] = "on"
		}
	}
	set("is_manufacturing", answers.IsManufacturing)
	set("consumes_significant_energy", answers.ConsumesSignificantEnergy)
	set("tracks_env_metrics", answers.TracksEnvMetrics)
	set("measures_emissions", answers.MeasuresEmissions)
	set("has_sustainability_goals", answers.HasSustainabilityGoals)
	set("applied_for_esg_loan", answers.AppliedForESGLoan)
	set("has_employee_policies", answers.HasEmployeePolicies)
	return out
}
