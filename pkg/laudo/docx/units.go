package docx

import "math"

// EMUPerCentimetre is the number of EMUs (English Metric Units) per centimetre.
// 1 inch = 914400 EMU = 2.54 cm, therefore 914400 / 2.54 = 360000.
const EMUPerCentimetre = 360000

// CentimetresToEMU converts a display length to EMU, the unit DrawingML
// extents are written in.
func CentimetresToEMU(cm float64) int64 {
	return int64(math.Round(cm * EMUPerCentimetre))
}

// ScaledHeight returns the height matching width while keeping the pixel
// aspect ratio of a w×h image.
func ScaledHeight(width int64, w, h int) int64 {
	if w <= 0 || h <= 0 {
		return width
	}
	return int64(math.Round(float64(width) * float64(h) / float64(w)))
}
