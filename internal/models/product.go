package models

// Product is a catalog record with its image stored in the object store.
// ImageKey is the storage key we need back for cleanup on delete.
type Product struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	ImageKey    string `json:"-"`
}
