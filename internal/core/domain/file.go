package domain

import (
	"fmt"
	"time"
)

type FileStatus string

const (
	FileUploaded  FileStatus = "uploaded"
	FileAnalysing FileStatus = "analysing"
	FileProcessed FileStatus = "processed"
	FileError     FileStatus = "error"
)

// CanTransition reports whether the status state machine allows moving to
// next. processed and error are terminal; re-analysis is not modeled.
func (s FileStatus) CanTransition(next FileStatus) bool {
	switch s {
	case FileUploaded:
		return next == FileAnalysing
	case FileAnalysing:
		return next == FileProcessed || next == FileError
	default:
		return false
	}
}

type UploadedFile struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Size           string          `json:"size"`
	Status         FileStatus      `json:"status"`
	Insights       int             `json:"insights"`
	Data           string          `json:"data"`
	StorageKey     string          `json:"storageKey,omitempty"`
	AnalysisResult *AnalysisResult `json:"analysisResult,omitempty"`
	UploadedAt     time.Time       `json:"uploadedAt"`
}

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatFileSize renders a byte count using base-1024 units, one decimal
// above bytes.
func FormatFileSize(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	size := float64(n)
	unit := 0
	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", size, sizeUnits[unit])
}
