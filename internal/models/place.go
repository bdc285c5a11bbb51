package models

import (
	"encoding/json"
	"slices"
)

// PlaceCandidate is a single result of a nearby search.
// It only lives for the duration of one location pass.
type PlaceCandidate struct {
	ID         string   `json:"id"`
	Categories []string `json:"types"`
	MapLink    string   `json:"googleMapsUri"`
	Name       string   `json:"displayName"`
}

// Key returns the deduplication key of the candidate: its exact serialized content.
// Two candidates collide only when every field, category order included, is identical.
func (c PlaceCandidate) Key() string {
	raw, err := json.Marshal(c)
	if err != nil {
		// A struct of strings cannot fail to marshal.
		return c.ID
	}

	return string(raw)
}

// PlaceDetails holds the extended attributes fetched once per new place.
type PlaceDetails struct {
	Phone   *string // Phone is the national phone number, nil when unknown.
	Website *string // Website is the public website URI, nil when unknown.
}

// HasWebsite reports whether the directory knows a website for the place.
func (d PlaceDetails) HasWebsite() bool {
	return d.Website != nil && *d.Website != ""
}

// PlaceRecord is the persisted, deduplicated representation of a place.
type PlaceRecord struct {
	PlaceID    string   // PlaceID is the external directory identifier (unique).
	MapLink    string   // MapLink is the directory map URI.
	Categories []string // Categories is the sorted set of every category ever observed.
	Phone      *string  // Phone captured at creation.
	Website    *string  // Website captured at creation.
	LocationID int64    // LocationID is the location that first surfaced the place.
}

// NewPlaceRecord builds the record created on the first sighting of a candidate.
func NewPlaceRecord(candidate PlaceCandidate, details PlaceDetails, locationID int64) PlaceRecord {
	return PlaceRecord{
		PlaceID:    candidate.ID,
		MapLink:    candidate.MapLink,
		Categories: UnionCategories(nil, candidate.Categories),
		Phone:      details.Phone,
		Website:    details.Website,
		LocationID: locationID,
	}
}

// UnionCategories returns the sorted, duplicate-free union of both category sets.
func UnionCategories(existing, observed []string) []string {
	union := make([]string, 0, len(existing)+len(observed))
	union = append(union, existing...)
	union = append(union, observed...)
	slices.Sort(union)

	return slices.Compact(union)
}

// CategoriesGrow reports whether observed contains a category missing from existing.
func CategoriesGrow(existing, observed []string) bool {
	for _, category := range observed {
		if !slices.Contains(existing, category) {
			return true
		}
	}

	return false
}
