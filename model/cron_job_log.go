package model

import "time"

// CronJobLog records one run of a scheduled background job.
type CronJobLog struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	JobName     string     `gorm:"size:100;index" json:"job_name"`
	Status      string     `gorm:"size:20" json:"status"` // running, completed, failed
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Message     string     `gorm:"size:500" json:"message,omitempty"`
	ErrorMsg    string     `gorm:"size:500" json:"error_msg,omitempty"`
}
