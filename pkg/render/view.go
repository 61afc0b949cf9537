package render

import (
	"strconv"

	"github.com/goliatone/greenbridge/pkg/forms"
	"github.com/goliatone/greenbridge/pkg/session"
)

// Page is the view model handed to every page template.
type Page struct {
	Title   string          `json:"title"`
	Flashes []session.Flash `json:"flashes,omitempty"`
	Form    *FormView       `json:"form,omitempty"`
	Data    map[string]any  `json:"data,omitempty"`
	Theme   ThemeContext    `json:"theme"`
}

// FieldView is one form field plus the state of the current
// submission: the value to re-fill and the messages to show inline.
// Numeric constraints are preformatted so templates emit them as
// attribute text instead of relying on float formatting.
type FieldView struct {
	forms.Field
	Value         string   `json:"value,omitempty"`
	Errors        []string `json:"errors,omitempty"`
	MinAttr       string   `json:"minAttr,omitempty"`
	MaxAttr       string   `json:"maxAttr,omitempty"`
	MaxLengthAttr string   `json:"maxLengthAttr,omitempty"`
}

// FormView is a FormModel bound to submitted values and validation
// errors, ready for the field-loop partial.
type FormView struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Action      string      `json:"action"`
	Method      string      `json:"method"`
	Submit      string      `json:"submit"`
	Errors      []string    `json:"errors,omitempty"`
	Fields      []FieldView `json:"fields"`
}

// BindForm merges a form model with the visitor's entered values and
// the validation outcome. With no values and no errors it yields the
// pristine form, defaults applied.
func BindForm(model forms.FormModel, values map[string]string, errs forms.Errors) *FormView {
	view := &FormView{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		Action:      model.Action,
		Method:      model.Method,
		Submit:      model.Submit,
		Errors:      errs.Form,
		Fields:      make([]FieldView, 0, len(model.Fields)),
	}
	for _, field := range model.Fields {
		bound := FieldView{
			Field:  field,
			Value:  field.Default,
			Errors: errs.FieldMessages(field.Name),
		}
		if field.Min != nil {
			bound.MinAttr = FormatNumber(*field.Min)
		}
		if field.Max != nil {
			bound.MaxAttr = FormatNumber(*field.Max)
		}
		if field.MaxLength != nil {
			bound.MaxLengthAttr = strconv.FormatUint(*field.MaxLength, 10)
		}
		if value, ok := values[field.Name]; ok {
			bound.Value = value
		}
		view.Fields = append(view.Fields, bound)
	}
	return view
}

// FormatNumber renders a float the way a person would write it:
// shortest decimal form, no exponent for display-scale values.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormValues flattens url.Values-style input to the single value per
// field the re-render needs.
func FormValues(values map[string][]string) map[string]string {
	out := make(map[string]string, len(values))
	for key, list := range values {
		if len(list) > 0 {
			out[key] = list[0]
		}
	}
	return out
}
