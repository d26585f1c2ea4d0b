package models

import "time"

// UploadedFile only lives for the duration of one request.
type UploadedFile struct {
	Data     []byte
	MimeType string
	Filename string
}

type FileInfo struct {
	Name string `json:"name"`
	Mime string `json:"mime"`
	Ext  string `json:"ext"`
}

// ParseInfo is the outcome of text extraction for one upload.
type ParseInfo struct {
	Text       string   `json:"-"`
	Parser     string   `json:"parser"`
	Pages      *int     `json:"pages"`
	TextLength int      `json:"textLength"`
	File       FileInfo `json:"file"`
	Error      *string  `json:"error"`
}

type Resume struct {
	ID         string         `json:"id"`
	UserID     string         `json:"userId"`
	FileName   string         `json:"fileName"`
	FileURL    string         `json:"fileUrl"`
	FileType   string         `json:"fileType,omitempty"`
	Email      string         `json:"email,omitempty"`
	Name       string         `json:"name,omitempty"`
	TargetRole string         `json:"targetRole,omitempty"`
	Extra      map[string]any `json:"extra,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}
