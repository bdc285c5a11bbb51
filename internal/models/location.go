package models

// Location is a fixed geographic point scanned for nearby places.
// ID orders the scan and doubles as the resume cursor.
type Location struct {
	ID        int64   `yaml:"id"`        // ID is the ordered identifier of the location.
	Latitude  float64 `yaml:"latitude"`  // Latitude of the geographical point.
	Longitude float64 `yaml:"longitude"` // Longitude of the geographical point.
}
