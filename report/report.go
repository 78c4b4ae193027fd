package report

import (
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/pkg/errors"

	"github.com/mattermost/flight-analysis/analysis"
)

var (
	funcMap = template.FuncMap{
		"duration": formatDuration,
		"price": func(value float64) string {
			return fmt.Sprintf("%.2f", value)
		},
	}

	textTemplate = template.Must(template.New("text").Funcs(funcMap).Parse(
		`{{if .HasTickets -}}
Minimum flight time between {{.Route.Origin}} and {{.Route.Destination}} for each carrier:
{{range .Durations.Entries -}}
{{.Carrier}}: {{duration .Duration}}
{{end -}}
{{else -}}
No tickets found between {{.Route.Origin}} and {{.Route.Destination}}.
{{end -}}
{{if .Prices -}}
Difference between mean and median price: {{price .Prices.Difference}}
{{else -}}
No price data to analyze.
{{end -}}
`,
	))

	markdownTemplate = template.Must(template.New("markdown").Funcs(funcMap).Parse(
		`## Flight Analysis: {{.Route.Origin}} to {{.Route.Destination}}
{{.NumRoute}} of {{.NumTotal}} tickets match the route.

### Minimum Flight Time
{{if .HasTickets -}}
| Carrier | Minimum Flight Time |
| --- | --- |
{{range .Durations.Entries -}}
| {{.Carrier}} | {{duration .Duration}} |
{{end -}}
{{else -}}
No tickets found between {{.Route.Origin}} and {{.Route.Destination}}.
{{end}}
### Prices
{{if .Prices -}}
| Metric | Value |
| --- | --- |
| Tickets | {{.Prices.Count}} |
| Min Price | {{price .Prices.Min}} |
| Max Price | {{price .Prices.Max}} |
| Mean Price | {{price .Prices.Mean}} |
| Median Price | {{price .Prices.Median}} |
| Mean - Median | {{price .Prices.Difference}} |
{{else -}}
No price data to analyze.
{{end -}}
`,
	))
)

// formatDuration prints whole hours and the remaining minutes. Both parts
// are truncated toward zero, so negative durations carry their sign.
func formatDuration(d time.Duration) string {
	hours := int64(d / time.Hour)
	minutes := int64((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// Render writes the result using the "text" or "markdown" display.
func Render(result *analysis.Result, display string, output io.Writer) error {
	tmpl := textTemplate
	switch display {
	case "markdown":
		tmpl = markdownTemplate
	case "text", "":
	default:
		return fmt.Errorf("unexpected display: %s", display)
	}

	if err := tmpl.Execute(output, result); err != nil {
		return errors.Wrap(err, "error executing report template")
	}

	return nil
}
