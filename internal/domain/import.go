package domain

import "time"

// DatasetImport records one replacement of the station reference data.
type DatasetImport struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	Stations   int       `json:"stations"`
	Readings   int       `json:"readings"`
	ImportedAt time.Time `json:"imported_at"`
}
