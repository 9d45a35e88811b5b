package figures

import (
	"cmp"
	"slices"

	"github.com/LuanaSouza24/laudo-service/pkg/laudo/models"
)

// Display widths, in centimetres.
const (
	LocationWidth = 11.0
	PhotoWidth    = 8.0
)

// Resolver maps a "Foto" cell to an existing file.
type Resolver interface {
	Resolve(ref string) (string, bool)
}

// BuildLocationRows lays out the inspection's location photos two per row,
// each with a "Figura n - caption" line.
func BuildLocationRows(idx *Index, inspectionID string, r Resolver, c Captions) []models.LocationRow {
	photos := byFigure(idx.Filter(func(p *Photo) bool {
		return isLocationPhoto(p, inspectionID)
	}))

	return pair(photos, func(a *Photo, b *Photo) models.LocationRow {
		row := models.LocationRow{
			Col1Img:     image(r, a, LocationWidth),
			Col1Caption: c.Single(a.Figure, a.Caption),
		}
		if b != nil {
			row.Col2Img = image(r, b, LocationWidth)
			row.Col2Caption = c.Single(b.Figure, b.Caption)
		}
		return row
	})
}

// BuildInspectionRows lays out the room and occurrence photos of the
// photographic report two per row.
func BuildInspectionRows(idx *Index, inspectionID string, r Resolver) []models.PhotoRow {
	return photoRows(idx.Filter(func(p *Photo) bool {
		return isInspectionPhoto(p, inspectionID)
	}), r)
}

// BuildSiteRows lays out the development's site photos two per row.
func BuildSiteRows(idx *Index, developmentID string, r Resolver) []models.PhotoRow {
	return photoRows(idx.Filter(func(p *Photo) bool {
		return isSitePhoto(p, developmentID)
	}), r)
}

// SiteCaption renders the figure range of the site photos.
func SiteCaption(idx *Index, developmentID string, c Captions) string {
	return c.Caption(figuresOf(idx.Filter(func(p *Photo) bool {
		return isSitePhoto(p, developmentID)
	})))
}

func photoRows(photos []*Photo, r Resolver) []models.PhotoRow {
	return pair(byFigure(photos), func(a *Photo, b *Photo) models.PhotoRow {
		row := models.PhotoRow{
			Col1Img: image(r, a, PhotoWidth),
			Col1Fig: a.Figure,
		}
		if b != nil {
			row.Col2Img = image(r, b, PhotoWidth)
			row.Col2Fig = b.Figure
		}
		return row
	})
}

func image(r Resolver, p *Photo, width float64) models.Image {
	img := models.Image{Width: width}
	if r == nil {
		return img
	}
	if path, ok := r.Resolve(p.File); ok {
		img.Path = path
	}
	return img
}

// byFigure sorts photos by figure number; unnumbered photos go last.
func byFigure(photos []*Photo) []*Photo {
	slices.SortStableFunc(photos, func(a, b *Photo) int {
		switch {
		case a.Figure == nil && b.Figure == nil:
			return 0
		case a.Figure == nil:
			return 1
		case b.Figure == nil:
			return -1
		}
		return cmp.Compare(*a.Figure, *b.Figure)
	})
	return photos
}

func pair[R any](photos []*Photo, build func(a, b *Photo) R) []R {
	var out []R
	for i := 0; i < len(photos); i += 2 {
		var second *Photo
		if i+1 < len(photos) {
			second = photos[i+1]
		}
		out = append(out, build(photos[i], second))
	}
	return out
}

func figuresOf(photos []*Photo) []int {
	var figs []int
	for _, p := range photos {
		if p.Figure != nil {
			figs = append(figs, *p.Figure)
		}
	}
	slices.Sort(figs)
	return figs
}
