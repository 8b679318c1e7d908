package domain

import (
	"time"

	"github.com/google/uuid"
)

// ResumeRecord is the bookkeeping row written each time a resume PDF is generated.
type ResumeRecord struct {
	ID        uuid.UUID              `json:"id"`
	Username  string                 `json:"username"`
	Status    string                 `json:"status"`
	FileName  string                 `json:"file_name"`
	FileSize  int                    `json:"file_size"`
	Metadata  map[string]interface{} `json:"metadata"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}
