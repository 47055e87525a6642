package domain

import "time"

// Card is what the presentation layer renders once a flow is verified.
// Everything but Email and VerifiedAt is display-only demo data.
type Card struct {
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	IDNumber   string    `json:"id_number"`
	Barcode    string    `json:"barcode"`
	VerifiedAt time.Time `json:"verified_at"`
}
