package entity

import "time"

// ContentUpload - partition registry. One row per uploaded content item;
// its partition key isolates that item's chunks in the content index.
type ContentUpload struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Category     string    `gorm:"size:100;not null;index" json:"category"`
	SourceLabel  string    `gorm:"size:200;not null" json:"source_label"`
	PartitionKey string    `gorm:"size:255;not null;uniqueIndex" json:"partition_key"`
	ChunkCount   int       `gorm:"not null;default:0" json:"chunk_count"`
	CreatedAt    time.Time `json:"created_at"`
}

func (ContentUpload) TableName() string {
	return "content_uploads"
}

// ContentChunk - one embedded piece of knowledge-base content. The embedding
// column is a pgvector literal; similarity queries go through raw SQL.
type ContentChunk struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	PartitionKey string `gorm:"size:255;not null;index" json:"partition_key"`
	ChunkIndex   int    `gorm:"not null" json:"chunk_index"`
	Category     string `gorm:"size:100;not null;index" json:"category"`
	SourceLabel  string `gorm:"size:200;not null" json:"source_label"`
	Text         string `gorm:"type:text;not null" json:"text"`
	Embedding    string `gorm:"type:vector(1536)" json:"-"`
}

func (ContentChunk) TableName() string {
	return "content_chunks"
}

// ChunkMatch - a similarity-query hit, decoupled from the stored row.
type ChunkMatch struct {
	Score       float64 `json:"score"`
	Text        string  `json:"text"`
	SourceLabel string  `json:"source_label"`
	Category    string  `json:"category"`
	ChunkIndex  int     `json:"chunk_index"`
}

// CategoryStats - upload/chunk counts per category for the dashboard listing.
type CategoryStats struct {
	UploadCount int `json:"upload_count"`
	ChunkCount  int `json:"chunk_count"`
}
