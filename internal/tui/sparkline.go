package tui

import (
	"strings"

	"github.com/tatianab/wealth-quest/internal/models"
)

var bars = []rune("▁▂▃▄▅▆▇█")

// sparkline draws the last width points of the series scaled between
// their minimum and maximum.
func sparkline(points []models.NetWorthPoint, width int) string {
	points = window(points, width)
	lo, hi, ok := valueRange(points)
	if !ok {
		return ""
	}
	var b strings.Builder
	for _, p := range points {
		i := 0
		if hi > lo {
			i = int((p.Value - lo) / (hi - lo) * float64(len(bars)-1))
		}
		b.WriteRune(bars[i])
	}
	return b.String()
}

// window returns the last width points, the ones sparkline draws.
func window(points []models.NetWorthPoint, width int) []models.NetWorthPoint {
	if len(points) > width {
		return points[len(points)-width:]
	}
	return points
}

func valueRange(points []models.NetWorthPoint) (lo, hi float64, ok bool) {
	if len(points) == 0 {
		return 0, 0, false
	}
	lo, hi = points[0].Value, points[0].Value
	for _, p := range points[1:] {
		lo = min(lo, p.Value)
		hi = max(hi, p.Value)
	}
	return lo, hi, true
}
