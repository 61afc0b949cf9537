package forms

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	msgRequired    = "This field is required."
	msgNotNumber   = "Enter a number."
	msgNotInteger  = "Enter a whole number."
	msgInvalid     = "This value is invalid."
	msgNotEmail    = "Enter a valid email address."
	msgUnparseable = "The submitted form could not be read."
)

func textValue(values url.Values, name string) string {
	return strings.TrimSpace(values.Get(name))
}

// boolValue follows checkbox semantics: an absent key is false, the
// usual truthy spellings are true, anything else is false.
func boolValue(values url.Values, name string) bool {
	switch strings.ToLower(textValue(values, name)) {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}

func floatValue(values url.Values, name string, required bool, errs *Errors) float64 {
	raw := textValue(values, name)
	if raw == "" {
		if required {
			errs.AddField(name, msgRequired)
		}
		return 0
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		errs.AddField(name, msgNotNumber)
		return 0
	}
	return parsed
}

func intValue(values url.Values, name string, required bool, errs *Errors) int {
	raw := textValue(values, name)
	if raw == "" {
		if required {
			errs.AddField(name, msgRequired)
		}
		return 0
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		errs.AddField(name, msgNotInteger)
		return 0
	}
	return parsed
}
