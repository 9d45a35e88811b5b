package models

// Sheet names of the inspection workbook.
const (
	SheetInspection  = "Vistoria"
	SheetDevelopment = "Empreendimento"
	SheetPhotoIndex  = "indice_fotos"
	SheetItems       = "Itens_da_Vistoria"
	SheetSystems     = "Sistemas"
	SheetOccurrences = "Ocorrencias_Detalhes"
)

// ReportSheets lists the sheets a workbook must provide, in load order.
var ReportSheets = []string{
	SheetInspection,
	SheetDevelopment,
	SheetPhotoIndex,
	SheetItems,
	SheetSystems,
	SheetOccurrences,
}

// Workbook holds the six relations one report is generated from.
type Workbook struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Inspections is the Vistoria sheet.
	Inspections *Table `json:"inspections"`
	// Developments is the Empreendimento sheet.
	Developments *Table `json:"developments"`
	// Photos is the indice_fotos sheet.
	Photos *Table `json:"photos"`
	// Items is the Itens_da_Vistoria sheet (one row per inspected room).
	Items *Table `json:"items"`
	// Systems is the Sistemas sheet (one row per building element).
	Systems *Table `json:"systems"`
	// Occurrences is the Ocorrencias_Detalhes sheet.
	Occurrences *Table `json:"occurrences"`
}

// Sheet returns the table loaded for a sheet name, or nil.
func (w *Workbook) Sheet(name string) *Table {
	switch name {
	case SheetInspection:
		return w.Inspections
	case SheetDevelopment:
		return w.Developments
	case SheetPhotoIndex:
		return w.Photos
	case SheetItems:
		return w.Items
	case SheetSystems:
		return w.Systems
	case SheetOccurrences:
		return w.Occurrences
	}
	return nil
}

// SetSheet stores a table under its sheet name. Unknown names are ignored.
func (w *Workbook) SetSheet(name string, t *Table) {
	switch name {
	case SheetInspection:
		w.Inspections = t
	case SheetDevelopment:
		w.Developments = t
	case SheetPhotoIndex:
		w.Photos = t
	case SheetItems:
		w.Items = t
	case SheetSystems:
		w.Systems = t
	case SheetOccurrences:
		w.Occurrences = t
	}
}
