package forms

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed spec/forms.yaml
var specYAML []byte

// Catalog holds the form models parsed from the embedded spec, keyed
// by operation ID.
type Catalog struct {
	forms map[string]FormModel
}

// LoadCatalog parses the embedded form spec. Every POST operation in
// the document becomes one FormModel.
func LoadCatalog(ctx context.Context) (*Catalog, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(specYAML)
	if err != nil {
		return nil, fmt.Errorf("forms: load spec: %w", err)
	}
	catalog := &Catalog{forms: make(map[string]FormModel)}
	if doc.Paths == nil {
		return catalog, nil
	}
	for path, item := range doc.Paths.Map() {
		if item == nil || item.Post == nil {
			continue
		}
		form, err := buildForm(path, item.Post)
		if err != nil {
			return nil, fmt.Errorf("forms: build %s: %w", path, err)
		}
		if _, exists := catalog.forms[form.ID]; exists {
			return nil, fmt.Errorf("forms: duplicate operation id %q", form.ID)
		}
		catalog.forms[form.ID] = form
	}
	return catalog, nil
}

// Form looks up a form model by its operation ID.
func (c *Catalog) Form(id string) (FormModel, bool) {
	form, ok := c.forms[id]
	return form, ok
}

// IDs lists the catalog's form IDs in sorted order.
func (c *Catalog) IDs() []string {
	return sortedKeys(c.forms)
}

func buildForm(path string, op *openapi3.Operation) (FormModel, error) {
	if op.OperationID == "" {
		return FormModel{}, fmt.Errorf("operation has no id")
	}
	form := FormModel{
		ID:          op.OperationID,
		Title:       op.Summary,
		Description: op.Description,
		Action:      path,
		Method:      http.MethodPost,
		Submit:      "Submit",
	}
	if action, ok := op.Extensions["x-form-action"].(string); ok && action != "" {
		form.Action = action
	}
	if label, ok := op.Extensions["x-submit-label"].(string); ok && label != "" {
		form.Submit = label
	}
	schema := formSchema(op)
	if schema == nil {
		return form, nil
	}
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}
	for _, name := range fieldOrder(schema) {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		form.Fields = append(form.Fields, buildField(name, ref.Value, required[name]))
	}
	return form, nil
}

// formSchema digs out the urlencoded request body schema, the only
// media type these forms submit.
func formSchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	media := op.RequestBody.Value.Content["application/x-www-form-urlencoded"]
	if media == nil || media.Schema == nil {
		return nil
	}
	return media.Schema.Value
}

// fieldOrder honors the x-field-order extension and falls back to
// sorted property names for anything the extension does not mention.
func fieldOrder(schema *openapi3.Schema) []string {
	seen := make(map[string]bool, len(schema.Properties))
	var order []string
	if raw, ok := schema.Extensions["x-field-order"].([]any); ok {
		for _, entry := range raw {
			name, ok := entry.(string)
			if !ok || seen[name] {
				continue
			}
			if _, exists := schema.Properties[name]; !exists {
				continue
			}
			seen[name] = true
			order = append(order, name)
		}
	}
	for _, name := range sortedKeys(schema.Properties) {
		if !seen[name] {
			order = append(order, name)
		}
	}
	return order
}

func buildField(name string, src *openapi3.Schema, required bool) Field {
	field := Field{
		Name:     name,
		Label:    src.Title,
		Required: required,
		Help:     src.Description,
		Min:      src.Min,
		Max:      src.Max,
	}
	if field.Label == "" {
		field.Label = humanizeLabel(name)
	}
	switch firstSchemaType(src.Type) {
	case "boolean":
		field.Type = FieldBoolean
	case "integer":
		field.Type = FieldInteger
		field.Step = "1"
	case "number":
		field.Type = FieldNumber
		field.Step = "any"
	default:
		field.Type = FieldString
		if src.Format == "email" {
			field.Type = FieldEmail
		}
		if multiline, _ := src.Extensions["x-multiline"].(bool); multiline {
			field.Type = FieldText
		}
		field.MaxLength = src.MaxLength
	}
	if len(src.Enum) > 0 {
		field.Type = FieldSelect
		field.Options = make([]Option, 0, len(src.Enum))
		for _, value := range src.Enum {
			text := fmt.Sprintf("%v", value)
			field.Options = append(field.Options, Option{Value: text, Label: text})
		}
	}
	if placeholder, ok := src.Extensions["x-placeholder"].(string); ok {
		field.Placeholder = placeholder
	}
	if src.Default != nil {
		field.Default = fmt.Sprintf("%v", src.Default)
	}
	return field
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, t := range types.Slice() {
		if t != "" {
			return t
		}
	}
	return ""
}
