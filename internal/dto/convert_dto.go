package dto

// ConvertResponse is the success shape of POST /api/convert/pdf.
type ConvertResponse struct {
	Text    string `json:"text"`
	Success bool   `json:"success"`
}

// ConvertErrorResponse mirrors the legacy error shape: text is always null.
type ConvertErrorResponse struct {
	Error   string  `json:"error"`
	Details string  `json:"details"`
	Text    *string `json:"text"`
}
