package models

import (
	"fmt"
	"time"
)

// OperationLog represents admin operation logs
type OperationLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserEmail string    `gorm:"type:varchar(100);not null" json:"user_email"`
	Action    string    `gorm:"type:varchar(255);not null" json:"action"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
}

// String 按原有的日志行格式输出，供前端直接展示
func (l *OperationLog) String() string {
	return fmt.Sprintf("[%s] (%s) %s", l.Timestamp.UTC().Format("2006-01-02 15:04:05 UTC"), l.UserEmail, l.Action)
}
