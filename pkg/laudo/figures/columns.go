// Package figures numbers the report photographs and builds the photo blocks
// and room tables that reference those numbers.
package figures

// Photo index columns.
const (
	ColPhotoID     = "ID_Foto_Indice"
	ColKind        = "Tipo"
	ColInclude     = "Incluir_no_Laudo"
	ColOrder       = "Ordem"
	ColInspection  = "ID_Vistoria"
	ColDevelopment = "ID_Empreendimento"
	ColItem        = "ID_Item"
	ColSystem      = "ID_Sistema"
	ColOccurrence  = "ID_Ocorrencia"
	ColPhoto       = "Foto"
	ColCaption     = "Legenda"
	// ColFigure is added to the augmented photo index.
	ColFigure = "Figura_calc"
)

// Room, element and occurrence columns.
const (
	ColAmbient        = "Ambiente"
	ColElement        = "Elemento"
	ColFinish         = "Acabamento"
	ColCondition      = "Conservacao"
	ColOccurrenceText = "Ocorrencia"
	ColLocal          = "Local"
)

// Photo categories ("Tipo" values).
const (
	KindLocation   = "Localização"
	KindAmbient    = "Ambiente"
	KindOccurrence = "Ocorrência"
	KindSite       = "Canteiro"
)
