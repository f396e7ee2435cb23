package models

import "time"

// GPSCoordinates is the optional device location attached to a report.
type GPSCoordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location is the reported problem site.
type Location struct {
	Address     string          `json:"address"`
	Coordinates *GPSCoordinates `json:"coordinates,omitempty"`
}

// ProblemNotice is the normalized complaint record handed in by the
// surrounding application. The notification core never mutates it.
type ProblemNotice struct {
	ComplaintID   string     `json:"complaint_id"`
	Category      string     `json:"category"`
	Subcategory   string     `json:"subcategory"`
	Description   string     `json:"description"`
	Location      Location   `json:"location"`
	PoleNumber    string     `json:"pole_number,omitempty"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
	ReporterName  string     `json:"reporter_name"`
	ReporterPhone string     `json:"reporter_phone"`
	ReporterEmail string     `json:"reporter_email,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// HasCoordinates reports whether the notice carries a GPS fix.
func (p ProblemNotice) HasCoordinates() bool {
	return p.Location.Coordinates != nil
}
