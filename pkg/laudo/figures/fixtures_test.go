package figures

import (
	"github.com/LuanaSouza24/laudo-service/pkg/laudo/models"
)

var photoColumns = []string{
	"ID_Foto_Indice", "Tipo", "Incluir_no_Laudo", "Ordem", "ID_Vistoria",
	"ID_Empreendimento", "ID_Item", "ID_Sistema", "ID_Ocorrencia", "Foto", "Legenda",
}

type fixture struct {
	photos, items, systems, occurrences *models.Table
}

func newFixture() fixture {
	return fixture{
		photos: models.NewTable(models.SheetPhotoIndex, photoColumns, [][]string{
			{"1", "Localização", "TRUE", "2", "V1", "E1", "", "", "", "loc2.jpg", "Vista"},
			{"2", "Localização", "TRUE", "1", "V1", "E1", "", "", "", "loc1.jpg", "Fachada"},
			{"3", "Ambiente", "TRUE", "1", "V1", "E1", "I2", "", "", "coz.jpg", ""},
			{"4", "Ocorrência", "TRUE", "1", "V1", "E1", "I1", "S2", "O2", "oc4.jpg", ""},
			{"5", "Ambiente", "TRUE", "9", "V1", "E1", "I1", "", "", "sala1.jpg", ""},
			{"6", "Ocorrência", "TRUE", "2", "V1", "E1", "I1", "S2", "O1", "oc6.jpg", ""},
			{"7", "Ambiente", "TRUE", "5", "V1", "E1", "I1", "S2", "O1", "oc7.jpg", ""},
			{"8", "Ambiente", "FALSE", "1", "V1", "E1", "I1", "", "", "fora.jpg", ""},
			{"9", "Canteiro", "TRUE", "2", "", "E1", "", "", "", "cant2.jpg", ""},
			{"10", "Canteiro", "TRUE", "1", "", "E1", "", "", "", "cant1.jpg", ""},
			{"11", "Ambiente", "TRUE", "1", "V2", "E1", "I9", "", "", "outra.jpg", ""},
			{"12", "Ambiente", "TRUE", "3", "V1", "E1", "I1", "", "", "sala2.jpg", ""},
			{"13", "Ocorrência", "TRUE", "1", "V1", "E1", "IX", "", "", "orfa.jpg", ""},
			{"14", "Canteiro", "TRUE", "1", "", "E2", "", "", "", "outro.jpg", ""},
		}),
		items: models.NewTable(models.SheetItems, []string{"ID_Vistoria", "ID_Item", "Ambiente"}, [][]string{
			{"V1", "I1", "Sala"},
			{"V2", "I9", "Outro"},
			{"V1", "I2", "Cozinha"},
			{"V1", "I3", "Quarto"},
		}),
		systems: models.NewTable(models.SheetSystems, []string{"ID_Sistema", "ID_Item", "Elemento", "Acabamento", "Conservacao"}, [][]string{
			{"S1", "I1", "Piso", "Cerâmica", "Bom"},
			{"S2", "I1", "Parede", "Pintura", "Regular"},
			{"S3", "I1", "  ", "Reboco", "Ruim"},
			{"S4", "I2", "Piso", "Porcelanato", "nan"},
		}),
		occurrences: models.NewTable(models.SheetOccurrences, []string{"ID_Ocorrencia", "ID_Sistema", "Ocorrencia", "Local"}, [][]string{
			{"O1", "S2", "Fissura", "Canto"},
			{"O2", "S2", "Mancha", "nan"},
			{"O3", "S3", "Trinca", "Piso"},
		}),
	}
}

func (f fixture) input() Input {
	return Input{
		Photos:        f.photos,
		Items:         f.items,
		Systems:       f.systems,
		Occurrences:   f.occurrences,
		InspectionID:  "V1",
		DevelopmentID: "E1",
		Start:         DefaultStart,
	}
}

// mapResolver resolves references listed in the map.
type mapResolver map[string]string

func (m mapResolver) Resolve(ref string) (string, bool) {
	p, ok := m[ref]
	return p, ok
}

func figureOf(idx *Index, id string) *int {
	for _, p := range idx.Photos {
		if p.ID == id {
			return p.Figure
		}
	}
	return nil
}

func intPtr(n int) *int {
	return &n
}
