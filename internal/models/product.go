package models

// Product is a catalog record. Only the identifier is guaranteed to be
// set; every other field may be empty, matching what the storefront
// admin form submits.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}

// MessageResponse is the ack body for product update/delete.
type MessageResponse struct {
	Message string `json:"message"`
}
