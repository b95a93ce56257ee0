package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Channel 通知渠道
type Channel string

const (
	ChannelWhatsApp Channel = "WhatsApp"
	ChannelSMS      Channel = "SMS"
	ChannelEmail    Channel = "Email"
)

// EventType 通讯事件类型
type EventType string

const (
	EventTypeReminder     EventType = "reminder"
	EventTypeAnnouncement EventType = "announcement"
	EventTypeIssueNotice  EventType = "issue-notification"
)

// EventStatus 通讯事件的聚合状态
type EventStatus string

const (
	// EventCompleted 所有渠道发送成功
	EventCompleted EventStatus = "Completed"
	// EventPartial 部分渠道发送成功
	EventPartial EventStatus = "Partial"
	// EventFailed 所有渠道发送失败
	EventFailed EventStatus = "Failed"
)

// DetailStatus 单个(收件人,渠道)发送结果
type DetailStatus string

const (
	DetailSent   DetailStatus = "Sent"
	DetailFailed DetailStatus = "Failed"
)

// CommunicationEvent 一次派发操作的审计记录，创建后不可变，只能批量删除
type CommunicationEvent struct {
	ID        string      `gorm:"type:varchar(36);primaryKey" json:"id"`
	Type      EventType   `gorm:"type:varchar(30);not null" json:"type"`
	Subject   string      `gorm:"type:varchar(200);not null" json:"subject"`
	Timestamp time.Time   `gorm:"not null;index" json:"timestamp"`
	Status    EventStatus `gorm:"type:varchar(20);not null" json:"status"`

	// Relations
	Details []CommunicationDetail `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"details"`
}

// BeforeCreate 是一个GORM钩子，在创建新记录前运行
func (e *CommunicationEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	return nil
}

// CommunicationDetail 每个尝试发送的(收件人,渠道)对应一条明细
type CommunicationDetail struct {
	ID        uint         `gorm:"primaryKey" json:"-"`
	EventID   string       `gorm:"type:varchar(36);index" json:"-"`
	Recipient string       `gorm:"type:varchar(100);not null" json:"recipient"`
	Method    Channel      `gorm:"type:varchar(20);not null" json:"method"`
	Status    DetailStatus `gorm:"type:varchar(20);not null" json:"status"`
	Content   string       `gorm:"type:text" json:"content,omitempty"`
}

// DeriveEventStatus 根据明细推导事件聚合状态：
// 全部成功为Completed，全部失败为Failed，其余为Partial。
func DeriveEventStatus(details []CommunicationDetail) EventStatus {
	var sent, failed int
	for _, d := range details {
		if d.Status == DetailSent {
			sent++
		} else {
			failed++
		}
	}
	switch {
	case failed == 0:
		return EventCompleted
	case sent == 0:
		return EventFailed
	default:
		return EventPartial
	}
}
