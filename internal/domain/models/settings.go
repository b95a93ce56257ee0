package models

import "time"

// SystemSettingsID 系统设置单行记录的固定主键
const SystemSettingsID = 1

// SystemSettings 系统设置，单行记录
type SystemSettings struct {
	ID                   uint      `gorm:"primaryKey" json:"-"`
	OwnerName            string    `gorm:"type:varchar(100)" json:"owner_name"`
	OwnerContactWhatsApp string    `gorm:"type:varchar(30)" json:"owner_contact_whatsapp"`
	OwnerContactNumber   string    `gorm:"type:varchar(30)" json:"owner_contact_number"`
	OwnerContactEmail    string    `gorm:"type:varchar(100)" json:"owner_contact_email"`
	ReminderTemplate     string    `gorm:"type:text" json:"reminder_template"`
	ReportIssueLink      string    `gorm:"type:varchar(200)" json:"report_issue_link"`
	RemindersPaused      bool      `gorm:"not null;default:false" json:"reminders_paused"`
	LastReminderDate     string    `gorm:"type:varchar(10)" json:"last_reminder_date"` // ISO日期，如2026-09-01
	UpdatedAt            time.Time `json:"updated_at"`
}

// TableName 指定表名
func (SystemSettings) TableName() string {
	return "system_settings"
}

// DefaultReminderTemplate 未配置模板时的提醒内容
const DefaultReminderTemplate = "Hi {first_name}, it's your turn to take the bins out this week (Flat {flat_number})."
