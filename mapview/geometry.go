package mapview

import (
	"math"

	"listing-advisor/models"
)

// Circle approximates a circle of radius degrees around center with a
// closed polygon of segments sides; the last point repeats the first.
func Circle(center models.GeoPoint, radius float64, segments int) []models.GeoPoint {
	points := make([]models.GeoPoint, segments+1)
	for i := 0; i <= segments; i++ {
		angle := 2 * math.Pi / float64(segments) * float64(i)
		points[i] = models.GeoPoint{
			Lat: center.Lat + math.Cos(angle)*radius,
			Lon: center.Lon + math.Sin(angle)*radius,
		}
	}
	points[segments] = points[0]
	return points
}

// Centroid returns the mean coordinates of the listings that have them.
func Centroid(listings []*models.Listing) (models.GeoPoint, bool) {
	var lat, lon float64
	n := 0
	for _, l := range listings {
		if !l.HasCoordinates() {
			continue
		}
		lat += *l.Latitude
		lon += *l.Longitude
		n++
	}
	if n == 0 {
		return models.GeoPoint{}, false
	}
	return models.GeoPoint{Lat: lat / float64(n), Lon: lon / float64(n)}, true
}
