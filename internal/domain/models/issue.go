package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IssueStatus 报修处理状态
type IssueStatus string

const (
	IssueReported   IssueStatus = "Reported"
	IssueInProgress IssueStatus = "In Progress"
	IssueResolved   IssueStatus = "Resolved"
)

// Issue represents a maintenance issue reported by a resident
type Issue struct {
	ID          string      `gorm:"type:varchar(36);primaryKey" json:"id"`
	ReportedBy  string      `gorm:"type:varchar(100);not null" json:"reported_by"`
	FlatNumber  string      `gorm:"type:varchar(20);not null" json:"flat_number"`
	Description string      `gorm:"type:text;not null" json:"description"`
	Status      IssueStatus `gorm:"type:varchar(20);not null;default:Reported" json:"status"`
	Timestamp   time.Time   `gorm:"not null;index" json:"timestamp"`
}

// BeforeCreate 是一个GORM钩子，在创建新记录前运行
func (i *Issue) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Timestamp.IsZero() {
		i.Timestamp = time.Now().UTC()
	}
	if i.Status == "" {
		i.Status = IssueReported
	}
	return nil
}

// PublicIssue 公开接口的报修投影，不包含报修人姓名
type PublicIssue struct {
	ID          string      `json:"id"`
	FlatNumber  string      `json:"flat_number"`
	Description string      `json:"description"`
	Status      IssueStatus `json:"status"`
	Timestamp   time.Time   `json:"timestamp"`
}

// ToPublic 转换为公开投影
func (i *Issue) ToPublic() PublicIssue {
	return PublicIssue{
		ID:          i.ID,
		FlatNumber:  i.FlatNumber,
		Description: i.Description,
		Status:      i.Status,
		Timestamp:   i.Timestamp,
	}
}
