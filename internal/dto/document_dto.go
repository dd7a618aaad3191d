package dto

import "time"

type DocumentInfoResponse struct {
	DocID            string    `json:"doc_id"`
	OriginalFilename string    `json:"original_filename"`
	FileType         string    `json:"file_type"`
	UploadDate       time.Time `json:"upload_date"`
	Characters       int       `json:"characters"`
	Chunks           int       `json:"chunks"`
	Vectors          int       `json:"vectors"`
}

type UploadResponse struct {
	Source   string `json:"source"`
	FileType string `json:"file_type"`
	Chunks   int    `json:"chunks"`
	Vectors  int    `json:"vectors"`
}

type UploadDocumentResponse struct {
	DocumentInfoResponse
}

type DocumentListResponse struct {
	LegacyDocuments []string               `json:"legacy_documents"`
	Documents       []DocumentInfoResponse `json:"documents"`
	Total           int                    `json:"total"`
}

type DocumentStatsResponse struct {
	DocumentInfoResponse
	Dimension int `json:"dimension"`
}

// DocumentEventMessage is the watermill wire form of a document event.
type DocumentEventMessage struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}
