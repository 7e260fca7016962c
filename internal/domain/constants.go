package domain

// Time format constants
const (
	DateTimeFormat = "2006-01-02T15:04:05" // ISO-8601 without zone, as in the booking API
	DateFormat     = "2006-01-02"          // YYYY-MM-DD
)
