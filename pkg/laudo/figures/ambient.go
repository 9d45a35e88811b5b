package figures

import (
	"github.com/LuanaSouza24/laudo-service/pkg/laudo/models"
)

// BuildAmbients builds one entry per inspected room of the inspection, in
// Itens_da_Vistoria order.
//
// The room caption covers its general photos, or every numbered photo of the
// room when it has none. Element rows follow Sistemas order; elements with a
// blank "Elemento" are dropped, and an element with occurrences yields one row
// per occurrence carrying that occurrence's figure range.
func BuildAmbients(idx *Index, items, systems, occurrences *models.Table, inspectionID string, c Captions) ([]models.Ambient, error) {
	if err := items.Require(ColInspection, ColItem); err != nil {
		return nil, err
	}
	if err := systems.Require(ColSystem, ColItem); err != nil {
		return nil, err
	}
	if err := occurrences.Require(ColSystem); err != nil {
		return nil, err
	}

	rooms := items.Filter(func(r models.Row) bool {
		return models.SameKey(r.Raw(ColInspection), inspectionID)
	})

	ambients := make([]models.Ambient, 0, len(rooms))
	for _, room := range rooms {
		itemID := room.Key(ColItem)

		ambients = append(ambients, models.Ambient{
			Name:    room.Get(ColAmbient),
			Figures: c.Caption(roomFigures(idx, itemID)),
			Rows:    elementRows(idx, systems, occurrences, itemID, c),
		})
	}

	return ambients, nil
}

func roomFigures(idx *Index, itemID string) []int {
	general := figuresOf(idx.Filter(func(p *Photo) bool {
		return p.Include && p.Bucket == BucketGeneral && models.SameKey(p.ItemID, itemID)
	}))
	if len(general) > 0 {
		return general
	}

	return figuresOf(idx.Filter(func(p *Photo) bool {
		return p.Include && isKind(p.Kind, KindAmbient, KindOccurrence) && models.SameKey(p.ItemID, itemID)
	}))
}

func elementRows(idx *Index, systems, occurrences *models.Table, itemID string, c Captions) []models.ElementRow {
	var rows []models.ElementRow

	for _, sys := range systems.Filter(func(r models.Row) bool {
		return models.SameKey(r.Raw(ColItem), itemID)
	}) {
		element := sys.Get(ColElement)
		if element == "" {
			continue
		}
		base := models.ElementRow{
			Element:   element,
			Finish:    sys.Get(ColFinish),
			Condition: sys.Get(ColCondition),
		}

		systemID := sys.Key(ColSystem)
		occs := occurrences.Filter(func(r models.Row) bool {
			return models.SameKey(r.Raw(ColSystem), systemID)
		})
		if len(occs) == 0 {
			rows = append(rows, base)
			continue
		}

		for _, occ := range occs {
			occurrenceID := occ.Key(ColOccurrence)
			figs := figuresOf(idx.Filter(func(p *Photo) bool {
				return p.Include && models.SameKey(p.SystemID, systemID) && models.SameKey(p.OccurrenceID, occurrenceID)
			}))

			row := base
			row.Occurrence = occ.Get(ColOccurrenceText)
			row.Location = occ.Get(ColLocal)
			row.Figures = c.Range(figs)
			rows = append(rows, row)
		}
	}

	return rows
}
