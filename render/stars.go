package render

import (
	"math"
	"strconv"
	"strings"
)

// MaxStars is the width of the star rating.
const MaxStars = 5

const (
	filledStar = "★"
	emptyStar  = "☆"
)

// FilledStars returns round(rating) clamped to [0, MaxStars]. Halves round
// up, so 4.5 shows five stars.
func FilledStars(rating float64) int {
	switch {
	case math.IsNaN(rating), rating < 0:
		return 0
	case rating >= MaxStars:
		return MaxStars
	}
	return int(math.Floor(rating + 0.5))
}

// Stars renders rating as filled stars followed by unfilled ones, always
// MaxStars glyphs in total.
func Stars(rating float64) string {
	filled := FilledStars(rating)
	return strings.Repeat(filledStar, filled) + strings.Repeat(emptyStar, MaxStars-filled)
}

// RatingTitle formats the exact rating for the tooltip: "4", "4.5", "3.25".
func RatingTitle(rating float64) string {
	return strconv.FormatFloat(rating, 'f', -1, 64)
}
