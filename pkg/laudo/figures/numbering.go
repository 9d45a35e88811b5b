package figures

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/LuanaSouza24/laudo-service/internal/logger"
	"github.com/LuanaSouza24/laudo-service/pkg/laudo/models"
	"github.com/tiendc/go-deepcopy"
)

// DefaultStart is the first automatic figure number. Figures 1 to 3 belong to
// the fixed part of the report template.
const DefaultStart = 4

// missingPosition orders photos whose room, element or occurrence is not in
// the source tables after every photo whose key was found.
const missingPosition = math.MaxInt

// Bucket orders general room photos before occurrence photos of the same room.
type Bucket int

const (
	// BucketGeneral is an "Ambiente" photo with no occurrence link.
	BucketGeneral Bucket = iota
	// BucketAmbientOccurrence is an "Ambiente" photo linked to an occurrence.
	BucketAmbientOccurrence
	// BucketOther covers "Ocorrência" photos and every other category.
	BucketOther
)

// Section identifies which numbered block of the report a photo belongs to.
type Section int

const (
	// SectionNone is an excluded or unrelated photo; it gets no figure.
	SectionNone Section = iota
	// SectionLocation is a location photo of the inspection.
	SectionLocation
	// SectionInspection covers room and occurrence photos of the inspection.
	SectionInspection
	// SectionSite is a construction-site photo of the development.
	SectionSite
)

func (s Section) String() string {
	switch s {
	case SectionLocation:
		return "location"
	case SectionInspection:
		return "inspection"
	case SectionSite:
		return "site"
	}
	return "none"
}

// Photo is one photo index row with the fields numbering depends on.
type Photo struct {
	// Pos is the row position in the photo index.
	Pos           int
	ID            string
	Kind          string
	File          string
	Caption       string
	Include       bool
	Order         string
	InspectionID  string
	DevelopmentID string
	ItemID        string
	SystemID      string
	OccurrenceID  string
	Bucket        Bucket
	Section       Section
	// Figure is nil for photos outside every section.
	Figure *int

	itemPos int
	sysPos  int
	occPos  int
}

// Index is the photo index augmented with computed figure numbers.
type Index struct {
	// Table is a deep copy of the source photo index with ColFigure filled in.
	Table *models.Table
	// Photos follows the photo index row order.
	Photos []*Photo
}

// Filter returns the photos accepted by keep, in photo index order.
func (idx *Index) Filter(keep func(*Photo) bool) []*Photo {
	if idx == nil {
		return nil
	}
	var out []*Photo
	for _, p := range idx.Photos {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// Input gathers the relations and identifiers figure numbering works on.
type Input struct {
	Photos        *models.Table
	Items         *models.Table
	Systems       *models.Table
	Occurrences   *models.Table
	InspectionID  string
	DevelopmentID string
	// Start is the first figure number handed out.
	Start int
	Log   *logger.Logger
}

// AssignFigures numbers every eligible photo. Location photos come first in
// manual order, then inspection photos ordered by room, general-before-
// occurrence, element, occurrence, manual order and photo id, then site
// photos in manual order. One counter runs across the three sections. It
// returns the augmented index and the next unused number.
func AssignFigures(in Input) (*Index, int, error) {
	if err := in.Photos.Require(ColKind, ColInclude, ColInspection, ColDevelopment, ColItem); err != nil {
		return nil, in.Start, err
	}
	if err := in.Items.Require(ColInspection, ColItem); err != nil {
		return nil, in.Start, err
	}
	if err := in.Systems.Require(ColSystem); err != nil {
		return nil, in.Start, err
	}
	if in.Occurrences == nil {
		return nil, in.Start, &models.ColumnError{Table: models.SheetOccurrences, Column: ColOccurrence}
	}

	itemPos := positions(in.Items.Filter(func(r models.Row) bool {
		return models.SameKey(r.Raw(ColInspection), in.InspectionID)
	}), ColItem)
	sysPos := positions(in.Systems.All(), ColSystem)
	occPos := map[string]int{}
	if in.Occurrences.Has(ColOccurrence) {
		occPos = positions(in.Occurrences.All(), ColOccurrence)
	}

	table := new(models.Table)
	if err := deepcopy.Copy(table, in.Photos); err != nil {
		return nil, in.Start, fmt.Errorf("copying photo index: %w", err)
	}
	table.Reindex()

	idx := &Index{Table: table}
	for _, row := range table.All() {
		p := newPhoto(row)
		p.itemPos = lookupPosition(itemPos, p.ItemID)
		p.sysPos = lookupPosition(sysPos, p.SystemID)
		p.occPos = lookupPosition(occPos, p.OccurrenceID)
		p.Section = sectionOf(p, in.InspectionID, in.DevelopmentID)
		idx.Photos = append(idx.Photos, p)

		if p.Section == SectionInspection && p.itemPos == missingPosition {
			in.Log.Debug("Numbering", "photo %s: room %q not found, numbered last", p.ID, p.ItemID)
		}
	}

	var location, inspection, site []*Photo
	for _, p := range idx.Photos {
		switch p.Section {
		case SectionLocation:
			location = append(location, p)
		case SectionInspection:
			inspection = append(inspection, p)
		case SectionSite:
			site = append(site, p)
		}
	}

	byOrder := func(a, b *Photo) int {
		return models.CompareOrder(a.Order, b.Order)
	}
	slices.SortStableFunc(location, byOrder)
	slices.SortStableFunc(inspection, compareInspection)
	slices.SortStableFunc(site, byOrder)

	col := table.AddColumn(ColFigure)
	for i := range table.Rows {
		table.Set(i, col, "")
	}

	fig := in.Start
	for _, section := range [][]*Photo{location, inspection, site} {
		for _, p := range section {
			n := fig
			p.Figure = &n
			table.Set(p.Pos, col, strconv.Itoa(n))
			fig++
		}
	}

	in.Log.Debug("Numbering", "numbered %d location, %d inspection and %d site photos from %d",
		len(location), len(inspection), len(site), in.Start)

	return idx, fig, nil
}

func compareInspection(a, b *Photo) int {
	return cmp.Or(
		cmp.Compare(a.itemPos, b.itemPos),
		cmp.Compare(a.Bucket, b.Bucket),
		cmp.Compare(a.sysPos, b.sysPos),
		cmp.Compare(a.occPos, b.occPos),
		models.CompareOrder(a.Order, b.Order),
		models.CompareOrder(a.ID, b.ID),
	)
}

func newPhoto(row models.Row) *Photo {
	p := &Photo{
		Pos:           row.Pos(),
		ID:            row.Get(ColPhotoID),
		Kind:          row.Get(ColKind),
		File:          row.Get(ColPhoto),
		Caption:       row.Get(ColCaption),
		Include:       row.Bool(ColInclude),
		Order:         row.Get(ColOrder),
		InspectionID:  row.Key(ColInspection),
		DevelopmentID: row.Key(ColDevelopment),
		ItemID:        row.Key(ColItem),
		SystemID:      row.Key(ColSystem),
		OccurrenceID:  row.Key(ColOccurrence),
	}

	p.Bucket = BucketOther
	if isKind(p.Kind, KindAmbient) {
		if p.OccurrenceID == "" {
			p.Bucket = BucketGeneral
		} else {
			p.Bucket = BucketAmbientOccurrence
		}
	}
	return p
}

func sectionOf(p *Photo, inspectionID, developmentID string) Section {
	switch {
	case isLocationPhoto(p, inspectionID):
		return SectionLocation
	case isInspectionPhoto(p, inspectionID):
		return SectionInspection
	case isSitePhoto(p, developmentID):
		return SectionSite
	}
	return SectionNone
}

func isLocationPhoto(p *Photo, inspectionID string) bool {
	return p.Include && isKind(p.Kind, KindLocation) && models.SameKey(p.InspectionID, inspectionID)
}

func isInspectionPhoto(p *Photo, inspectionID string) bool {
	return p.Include && isKind(p.Kind, KindAmbient, KindOccurrence) && models.SameKey(p.InspectionID, inspectionID)
}

func isSitePhoto(p *Photo, developmentID string) bool {
	return p.Include && isKind(p.Kind, KindSite) && models.SameKey(p.DevelopmentID, developmentID)
}

func isKind(kind string, kinds ...string) bool {
	k := models.FoldName(kind)
	for _, want := range kinds {
		if k == models.FoldName(want) {
			return true
		}
	}
	return false
}

// positions maps each key to its row position in rows. A repeated key keeps
// its last position.
func positions(rows []models.Row, column string) map[string]int {
	out := make(map[string]int, len(rows))
	for pos, r := range rows {
		if k := r.Key(column); k != "" {
			out[k] = pos
		}
	}
	return out
}

func lookupPosition(m map[string]int, key string) int {
	if pos, ok := m[key]; ok && key != "" {
		return pos
	}
	return missingPosition
}
