package dto

import "time"

type LegacyIndexStats struct {
	Vectors   int `json:"vectors"`
	Dimension int `json:"dimension"`
	Documents int `json:"documents"`
}

type StatsResponse struct {
	LegacyIndex  LegacyIndexStats `json:"legacy_index"`
	Documents    int              `json:"documents"`
	TotalVectors int              `json:"total_vectors"`
	Sessions     int              `json:"sessions"`
	GeneratedAt  time.Time        `json:"generated_at"`
}
