package service

import (
	_ "embed"
	"encoding/json"
	"strings"

	api "github.com/emma-community/emma-portal-proxy/api/v1alpha1"
)

// The vendor's data-centers listing carries no coordinates. The locations
// join is authoritative; this static table is the fallback for data centers
// whose location id is missing from the join.
//
//go:embed known_geo_locations.json
var knownGeoLocationsRaw []byte

type knownGeoLocation struct {
	RegionCode string          `json:"region_code"`
	Location   api.GeoLocation `json:"location"`
}

func loadKnownGeoLocations() []knownGeoLocation {
	var locations []knownGeoLocation
	if err := json.Unmarshal(knownGeoLocationsRaw, &locations); err != nil {
		panic(err)
	}
	return locations
}

// lookupKnownGeoLocation matches a data-center id against the static table by
// region-code substring, the way the vendor encodes regions into ids
// (e.g. "aws-us-east-1-dc2" contains "us-east-1").
func lookupKnownGeoLocation(table []knownGeoLocation, dataCenterID string) *api.GeoLocation {
	for _, known := range table {
		if strings.Contains(dataCenterID, known.RegionCode) {
			loc := known.Location
			return &loc
		}
	}
	return nil
}

// IsWithinBounds reports whether loc falls inside the fence, bounds inclusive
// on both ends.
func IsWithinBounds(loc api.GeoLocation, fence api.GeoFence) bool {
	return fence.BottomLeft.Latitude <= loc.Latitude &&
		loc.Latitude <= fence.TopRight.Latitude &&
		fence.BottomLeft.Longitude <= loc.Longitude &&
		loc.Longitude <= fence.TopRight.Longitude
}
