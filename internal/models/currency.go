package models

// Currency represents a supported currency. The 3-letter code is the sole
// identity; there is no synthetic numeric id.
type Currency struct {
	Code string `json:"code"` // Primary Key (e.g., "USD")
}
