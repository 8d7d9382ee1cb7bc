package matching

import (
	"math"
	"time"
)

const (
	earthRadiusKm  = 6371.0
	maxMatchKm     = 50.0
	maxMatchDayGap = 30.0
	hoursPerDay    = 24.0
)

// haversineKm returns the great-circle distance between two coordinate
// pairs in kilometers.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// LocationProximity converts physical distance into a [0,1] score with a
// linear ramp that reaches zero at 50 km.
func LocationProximity(lat1, lon1, lat2, lon2 float64) float64 {
	distance := haversineKm(lat1, lon1, lat2, lon2)
	return math.Max(0, 1-distance/maxMatchKm)
}

// DateProximity converts the absolute day gap between two dates into a
// [0,1] score with a linear ramp that reaches zero at 30 days.
func DateProximity(a, b time.Time) float64 {
	days := math.Abs(a.Sub(b).Hours()) / hoursPerDay
	return math.Max(0, 1-days/maxMatchDayGap)
}
