package models

import (
	"cmp"
	"math"
	"strconv"
	"strings"
)

// Coerce returns the trimmed cell text, or "" for empty cells and for the
// literal "nan" in any case.
func Coerce(v string) string {
	s := strings.TrimSpace(v)
	if strings.EqualFold(s, "nan") {
		return ""
	}
	return s
}

// Key normalizes an identifier cell so that 12, "12" and 12.0 compare equal.
func Key(v string) string {
	s := Coerce(v)
	if s == "" {
		return ""
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		if f == math.Trunc(f) && math.Abs(f) < 1e15 {
			return strconv.FormatInt(int64(f), 10)
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return s
}

// SameKey reports whether two identifiers match. Blank identifiers match
// nothing, not even each other.
func SameKey(a, b string) bool {
	ka, kb := Key(a), Key(b)
	return ka != "" && ka == kb
}

// Truthy reads a yes/no cell. Boolean cells arrive as "1"/"0" or
// "TRUE"/"FALSE" depending on how the sheet was read.
func Truthy(v string) bool {
	s := strings.ToLower(Coerce(v))
	switch s {
	case "true", "verdadeiro", "sim", "yes", "s", "y":
		return true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f == 1
	}
	return false
}

// CompareOrder orders cell values the way manual ordering columns are sorted:
// numbers ascending, then text, then blanks last.
func CompareOrder(a, b string) int {
	ca, cb := Coerce(a), Coerce(b)
	ra, rb := orderRank(ca), orderRank(cb)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch ra {
	case 0:
		fa, _ := strconv.ParseFloat(ca, 64)
		fb, _ := strconv.ParseFloat(cb, 64)
		return cmp.Compare(fa, fb)
	case 1:
		return strings.Compare(ca, cb)
	}
	return 0
}

func orderRank(s string) int {
	if s == "" {
		return 2
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) {
		return 0
	}
	return 1
}
