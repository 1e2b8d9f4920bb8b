package service

import (
	"testing"

	api "github.com/emma-community/emma-portal-proxy/api/v1alpha1"
)

func TestKnownGeoLocationsTable(t *testing.T) {
	table := loadKnownGeoLocations()
	if len(table) == 0 {
		t.Fatal("embedded geo table is empty")
	}
	for _, known := range table {
		if known.RegionCode == "" {
			t.Fatal("geo table entry without a region code")
		}
		if known.Location.Latitude == 0 && known.Location.Longitude == 0 {
			t.Fatalf("geo table entry %s carries null island coordinates", known.RegionCode)
		}
	}
}

func TestLookupKnownGeoLocation(t *testing.T) {
	table := loadKnownGeoLocations()

	tests := []struct {
		name         string
		dataCenterID string
		found        bool
	}{
		{name: "region embedded in vendor id", dataCenterID: "aws-us-east-1-dc2", found: true},
		{name: "region with provider prefix", dataCenterID: "gcp-europe-west4-a", found: true},
		{name: "bare region code", dataCenterID: "ap-southeast-2", found: true},
		{name: "unknown region", dataCenterID: "moonbase-alpha-dc1", found: false},
		{name: "empty id", dataCenterID: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := lookupKnownGeoLocation(table, tt.dataCenterID)
			if (loc != nil) != tt.found {
				t.Fatalf("lookup %q: got %v, want found=%v", tt.dataCenterID, loc, tt.found)
			}
		})
	}
}

func TestIsWithinBounds(t *testing.T) {
	fence := api.GeoFence{
		TopRight:   api.GeoLocation{Latitude: 40, Longitude: -70},
		BottomLeft: api.GeoLocation{Latitude: 38, Longitude: -78},
	}

	tests := []struct {
		name   string
		loc    api.GeoLocation
		inside bool
	}{
		{name: "interior point", loc: api.GeoLocation{Latitude: 39, Longitude: -75}, inside: true},
		{name: "top right corner is inclusive", loc: api.GeoLocation{Latitude: 40, Longitude: -70}, inside: true},
		{name: "bottom left corner is inclusive", loc: api.GeoLocation{Latitude: 38, Longitude: -78}, inside: true},
		{name: "edge latitude", loc: api.GeoLocation{Latitude: 40, Longitude: -75}, inside: true},
		{name: "above", loc: api.GeoLocation{Latitude: 40.0001, Longitude: -75}, inside: false},
		{name: "below", loc: api.GeoLocation{Latitude: 37.9999, Longitude: -75}, inside: false},
		{name: "west of fence", loc: api.GeoLocation{Latitude: 39, Longitude: -78.5}, inside: false},
		{name: "san francisco outside an east coast fence", loc: api.GeoLocation{Latitude: 37.7749, Longitude: -122.4194}, inside: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWithinBounds(tt.loc, fence); got != tt.inside {
				t.Fatalf("IsWithinBounds(%v) = %v, want %v", tt.loc, got, tt.inside)
			}
		})
	}
}
