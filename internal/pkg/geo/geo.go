package geo

import "math"

// Location is a latitude/longitude pair in degrees.
type Location struct {
	Latitude  float64
	Longitude float64
}

// DistanceKm computes the great-circle distance between two coordinates in
// kilometers using the Haversine formula.
func DistanceKm(from, to Location) float64 {
	const earthRadiusKm = 6371

	dLat := (to.Latitude - from.Latitude) * (math.Pi / 180.0)
	dLon := (to.Longitude - from.Longitude) * (math.Pi / 180.0)

	lat1Rad := from.Latitude * (math.Pi / 180.0)
	lat2Rad := to.Latitude * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
