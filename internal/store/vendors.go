package store

// VendorRow is a vendor joined with its category name, as returned to API
// callers.
type VendorRow struct {
	VendorID     string `json:"vendor_id"`
	VendorName   string `json:"vendor_name"`
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}
