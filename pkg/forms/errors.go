package forms

// Errors collects validation messages for one submission. Field
// messages render inline next to their input; form messages render at
// the top of the form.
type Errors struct {
	Fields map[string][]string `json:"fields,omitempty"`
	Form   []string            `json:"form,omitempty"`
}

// AddField records a message against a named field.
func (e *Errors) AddField(name, message string) {
	if name == "" || message == "" {
		return
	}
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[name] = append(e.Fields[name], message)
}

// AddForm records a form-level message.
func (e *Errors) AddForm(message string) {
	if message == "" {
		return
	}
	e.Form = append(e.Form, message)
}

// Merge folds other into e. A field that already carries a message
// keeps the earlier one so decode errors are not doubled by the
// validator complaining about the same zero value.
func (e *Errors) Merge(other Errors) {
	for _, name := range sortedKeys(other.Fields) {
		if len(e.Fields[name]) > 0 {
			continue
		}
		for _, message := range other.Fields[name] {
			e.AddField(name, message)
		}
	}
	for _, message := range other.Form {
		e.AddForm(message)
	}
}

// Empty reports whether the submission passed every check.
func (e Errors) Empty() bool {
	return len(e.Fields) == 0 && len(e.Form) == 0
}

// FieldMessages returns the messages recorded for one field.
func (e Errors) FieldMessages(name string) []string {
	return e.Fields[name]
}
