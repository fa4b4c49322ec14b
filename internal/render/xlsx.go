package render

import (
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// SiteXLSX exports the site inventory projection as a spreadsheet.
func (r *Renderer) SiteXLSX(in Inputs) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Remediation sites")
	if err != nil {
		return eris.Wrap(err, "render: add xlsx sheet")
	}

	header := sheet.AddRow()
	for _, col := range []string{
		"Site name", "Program number", "Program type", "Class",
		"Category", "Address", "Locality", "County", "ZIP",
	} {
		header.AddCell().SetString(col)
	}

	for _, s := range in.SiteRows {
		row := sheet.AddRow()
		row.AddCell().SetString(s.SiteName)
		row.AddCell().SetString(s.ProgramNumber)
		row.AddCell().SetString(s.ProgramType)
		row.AddCell().SetString(s.ClassCode)
		row.AddCell().SetString(string(s.Category))
		row.AddCell().SetString(s.Address)
		row.AddCell().SetString(s.Locality)
		row.AddCell().SetString(s.County)
		row.AddCell().SetString(s.ZipCode)
	}

	path := filepath.Join(r.outDir, "sites.xlsx")
	if err := file.Save(path); err != nil {
		return eris.Wrap(err, "render: save xlsx")
	}
	return nil
}
