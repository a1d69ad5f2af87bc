package email

// Template names an embedded HTML template under templates/.
type Template string

const (
	TemplateFormReceived Template = "form_received"
)

// PreviewData holds sample data for every template, keyed by template name.
var PreviewData = map[Template]map[string]string{
	TemplateFormReceived: {
		"Name": "Jane",
	},
}
