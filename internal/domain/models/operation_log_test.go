package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOperationLogString(t *testing.T) {
	entry := OperationLog{
		UserEmail: "admin@example.com",
		Action:    "Added resident: Jane Smith",
		Timestamp: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
	assert.Equal(t, "[2026-03-14 09:30:00 UTC] (admin@example.com) Added resident: Jane Smith", entry.String())
}

func TestOperationLogStringNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	entry := OperationLog{
		UserEmail: "scheduler",
		Action:    "Triggered reminder for: Jane Smith",
		Timestamp: time.Date(2026, 3, 14, 11, 30, 0, 0, loc),
	}
	assert.Contains(t, entry.String(), "[2026-03-14 09:30:00 UTC]")
}
