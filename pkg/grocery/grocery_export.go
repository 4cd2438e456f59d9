package grocery

import (
	"Recipe-Grocery-Backend/domain"
	"bytes"
	"html/template"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const ExportSheetName = "Grocery List"

var exportHeader = []interface{}{"Category", "Item", "Quantity", "Unit", "Pantry", "Checked"}

// RenderWorkbook writes the projected list to a single-sheet xlsx file.
func RenderWorkbook(items []domain.GroceryListItem) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheetName); err != nil {
		return nil, err
	}

	sw, err := f.NewStreamWriter(ExportSheetName)
	if err != nil {
		return nil, err
	}
	if err := sw.SetRow("A1", exportHeader); err != nil {
		return nil, err
	}
	for i, item := range items {
		pantry := ""
		if item.PantryQuantity != nil {
			pantry = formatQuantity(*item.PantryQuantity) + " " + item.PantryUnit
		}
		checked := "no"
		if item.IsChecked {
			checked = "yes"
		}
		row := []interface{}{
			item.Category, item.Name, item.EffectiveQuantity, item.Unit, pantry, checked,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, row); err != nil {
			return nil, err
		}
	}
	if err := sw.Flush(); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var emailTemplate = template.Must(template.New("grocery").Funcs(template.FuncMap{
	"qty": formatQuantity,
}).Parse(`<h2>Your grocery list</h2>
{{range .}}<h3>{{.Category}}</h3>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Item</th><th>Quantity</th><th>Unit</th></tr>
{{range .Items}}<tr><td>{{.Name}}</td><td>{{qty .EffectiveQuantity}}</td><td>{{.Unit}}</td></tr>
{{end}}</table>
{{end}}`))

// RenderEmailBody groups the list by category into HTML tables.
func RenderEmailBody(items []domain.GroceryListItem) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, GroupByCategory(items)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
