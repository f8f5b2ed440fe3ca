package model

// Document is an archived record as served by the backend API.
// The frontend only ever holds render copies; mutations are requested through the API.
type Document struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Content     *string `json:"content"`
	FilePath    *string `json:"file_path"`
	Author      string  `json:"author"`
	Grade       string  `json:"grade"`
	Date        string  `json:"date"`
	Views       int     `json:"views"`
	Downloads   int     `json:"downloads"`
}

// HasContent reports whether the backend supplied inline text for the document.
func (d Document) HasContent() bool {
	return d.Content != nil && *d.Content != ""
}

// File returns the stored file name, or "" when the document has none.
func (d Document) File() string {
	if d.FilePath == nil {
		return ""
	}
	return *d.FilePath
}

// DocumentPage is one page of the document listing.
type DocumentPage struct {
	Documents      []Document `json:"documents"`
	TotalPages     int        `json:"total_pages"`
	CurrentPage    int        `json:"current_page"`
	TotalDocuments int        `json:"total_documents"`
}
