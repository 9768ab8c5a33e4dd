package models

import "time"

// ContentTypePDF is the MIME type for which text extraction is performed.
const ContentTypePDF = "application/pdf"

// File is an uploaded medical document (PDF or image) whose blob lives in
// object storage.
type File struct {
	FileID        int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	FileName      string    `json:"file_name"`
	ContentType   string    `json:"content_type"`
	SizeBytes     int64     `json:"size_bytes"`
	StorageKey    string    `json:"-"`
	URL           string    `json:"url"`
	ExtractedText string    `json:"-"`
	UploadedAt    time.Time `json:"uploaded_at"`
}

// IsPDF reports whether the file is a PDF document.
func (f File) IsPDF() bool {
	return f.ContentType == ContentTypePDF
}

// Insight is the AI-generated plain-language summary of a file.
// The summary text is stored verbatim.
type Insight struct {
	InsightID int64     `json:"id"`
	FileID    int64     `json:"file_id"`
	UserID    int64     `json:"user_id"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

// FileWithInsight pairs a file with its current insight, if any.
type FileWithInsight struct {
	File
	Insight *Insight `json:"insight,omitempty"`
}

// UploadedFile is the raw upload handed from the transport layer to the
// file service.
type UploadedFile struct {
	FileName    string
	ContentType string
	Body        []byte
}
