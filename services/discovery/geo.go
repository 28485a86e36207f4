package discovery

import (
	"math"

	"github.com/freshroot/freshroot/db/catalogdb"
)

// earthRadiusKm is the mean radius of Earth used for haversine distance.
const earthRadiusKm = 6371.0

// Distance returns the great-circle distance in kilometers between two points
// given as latitude/longitude in degrees, via the haversine formula. Inputs
// are assumed to be in valid coordinate range; callers validate positions
// before asking for distances.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// filterByRadius drops candidates whose seller has no resolved position and,
// when radiusKm is positive, those farther than radiusKm from the requester.
// Surviving candidates get their distance attached.
func filterByRadius(candidates []Product, from catalogdb.Position, radiusKm float64, positions map[string]*catalogdb.Position) []Product {
	kept := make([]Product, 0, len(candidates))
	for _, candidate := range candidates {
		position := positions[candidate.SellerID]
		if position == nil {
			continue
		}

		distanceKm := Distance(from.Lat, from.Lng, position.Lat, position.Lng)
		if radiusKm > 0 && distanceKm > radiusKm {
			continue
		}

		candidate.DistanceKm = &distanceKm
		kept = append(kept, candidate)
	}

	return kept
}
