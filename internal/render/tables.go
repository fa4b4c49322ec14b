package render

import (
	"bytes"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var countPrinter = message.NewPrinter(language.AmericanEnglish)

type summaryRow struct {
	Label string
	Count string
}

// SummaryTable renders the static majority-category table.
// An empty tally set yields a valid empty table, not an error.
func (r *Renderer) SummaryTable(in Inputs) error {
	rows := make([]summaryRow, 0, len(in.Tallies))
	for _, t := range in.Tallies {
		rows = append(rows, summaryRow{
			Label: t.Label,
			Count: countPrinter.Sprintf("%d", t.Tracts),
		})
	}

	var buf bytes.Buffer
	err := templates.ExecuteTemplate(&buf, "summary.tmpl", map[string]any{
		"Title":   r.title + " — Summary",
		"Heading": "Tracts by plurality race/ethnicity category",
		"Rows":    rows,
		"RunID":   r.runID,
	})
	if err != nil {
		return eris.Wrap(err, "render: execute summary table")
	}

	return r.writeFile("summary.html", buf.Bytes())
}

// SiteTable renders the sortable, searchable site inventory.
func (r *Renderer) SiteTable(in Inputs) error {
	var buf bytes.Buffer
	err := templates.ExecuteTemplate(&buf, "sites_table.tmpl", map[string]any{
		"Title":   r.title + " — Site Inventory",
		"Heading": "Environmental remediation sites",
		"Rows":    in.SiteRows,
		"Count":   countPrinter.Sprintf("%d", len(in.SiteRows)),
		"RunID":   r.runID,
	})
	if err != nil {
		return eris.Wrap(err, "render: execute site table")
	}

	return r.writeFile("sites_table.html", buf.Bytes())
}
