package geo

import "math"

const earthRadiusMeters = 6371000.0

// Distance returns the great-circle distance in meters between two WGS84
// points using the haversine formula.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dPhi := radians(lat2 - lat1)
	dLambda := radians(lon2 - lon1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// Bounds is a latitude/longitude rectangle used to prefilter candidates
// before the exact distance computation.
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// BoundingBox returns a rectangle guaranteed to contain the circle of the
// given radius around the center. Near the poles the longitude span
// degenerates, so it is clamped to the full range.
func BoundingBox(lat, lon, radiusMeters float64) Bounds {
	dLat := degrees(radiusMeters / earthRadiusMeters)

	b := Bounds{
		MinLat: math.Max(lat-dLat, -90),
		MaxLat: math.Min(lat+dLat, 90),
	}

	cosLat := math.Cos(radians(lat))
	if cosLat < 1e-9 {
		b.MinLon, b.MaxLon = -180, 180
		return b
	}
	dLon := degrees(radiusMeters / (earthRadiusMeters * cosLat))
	// A box crossing the antimeridian cannot be expressed as one BETWEEN
	// range; widen to the full span and let the exact filter cut it down.
	if dLon >= 180 || lon-dLon < -180 || lon+dLon > 180 {
		b.MinLon, b.MaxLon = -180, 180
		return b
	}
	b.MinLon = lon - dLon
	b.MaxLon = lon + dLon
	return b
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }
