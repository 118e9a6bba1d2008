package receipt

import "time"

// Receipt is a stored image backing an expense.
type Receipt struct {
	ID          string    `json:"id"`
	ShowID      string    `json:"show_id"`
	ExpenseID   *string   `json:"expense_id,omitempty"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	ImageData   string    `json:"image_data,omitempty"` // base64
	CreatedAt   time.Time `json:"created_at"`
}

// DataURL renders the image as a data: URL.
func (r Receipt) DataURL() string {
	return "data:" + r.ContentType + ";base64," + r.ImageData
}
