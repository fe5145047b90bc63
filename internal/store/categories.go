package store

// CategoryRow is a spending category as returned to API callers. Soft-deleted
// (inactive) categories never leave the repository.
type CategoryRow struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}
