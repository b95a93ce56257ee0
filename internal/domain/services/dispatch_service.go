package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"binreminder-http-service/internal/domain/models"
	"binreminder-http-service/internal/infrastructure/config"
	"binreminder-http-service/pkg/logger"
)

// 通知派发相关的领域错误
var (
	// ErrNoRecipients 派发时没有任何可尝试的(收件人,渠道)组合
	ErrNoRecipients = errors.New("no recipients with configured channels")
	// ErrRemindersPaused 定时提醒被暂停
	ErrRemindersPaused = errors.New("reminders are paused")
)

// ReminderResult 一次提醒流程的结果
type ReminderResult struct {
	Resident *models.Resident           `json:"resident"`
	Event    *models.CommunicationEvent `json:"event"`
	// Advanced 指针是否已前移。全部渠道失败时不前移，
	// 避免跳过一位实际上没有收到提醒的住户。
	Advanced   bool             `json:"advanced"`
	NewCurrent *models.Resident `json:"new_current,omitempty"`
}

// InterfaceDispatchService 定义通知派发接口
type InterfaceDispatchService interface {
	Dispatch(ctx context.Context, eventType models.EventType, subject, template string, recipients []models.Resident, settings *models.SystemSettings) (*models.CommunicationEvent, error)
	TriggerReminder(ctx context.Context, customMessage string, scheduled bool) (*ReminderResult, error)
	SendAnnouncement(ctx context.Context, subject, message string, residentIDs []string) (*models.CommunicationEvent, int, error)
}

// DispatchService 按(收件人,渠道)并发派发通知并聚合结果。
//
// 单个渠道的失败只记录在明细中，不会中断其余发送，也不会上抛；
// 每次发送使用独立的超时上下文，调用方取消请求时在途发送仍会
// 完成并被记录，避免产生无审计痕迹的发送。
type DispatchService struct {
	Config   *config.Config
	WhatsApp InterfaceWhatsAppService
	SMS      InterfaceSMSService
	Email    InterfaceEmailService
	Rotation InterfaceRotationService
	Resident InterfaceResidentService
	Settings InterfaceSettingsService
	History  InterfaceHistoryService
	MQTT     InterfaceMQTTService // 可为nil，广播是尽力而为的附加行为
}

// NewDispatchService 创建一个新的通知派发服务
func NewDispatchService(
	cfg *config.Config,
	whatsapp InterfaceWhatsAppService,
	sms InterfaceSMSService,
	email InterfaceEmailService,
	rotation InterfaceRotationService,
	resident InterfaceResidentService,
	settings InterfaceSettingsService,
	history InterfaceHistoryService,
	mqttService InterfaceMQTTService,
) InterfaceDispatchService {
	return &DispatchService{
		Config:   cfg,
		WhatsApp: whatsapp,
		SMS:      sms,
		Email:    email,
		Rotation: rotation,
		Resident: resident,
		Settings: settings,
		History:  history,
		MQTT:     mqttService,
	}
}

// sendAttempt 一次(收件人,渠道)发送任务
type sendAttempt struct {
	resident models.Resident
	channel  models.Channel
}

// 1 Dispatch 向所有收件人的已配置渠道派发消息并记录通讯事件。
// 未配置联系方式的渠道直接跳过，不会出现在明细里。
func (s *DispatchService) Dispatch(
	ctx context.Context,
	eventType models.EventType,
	subject, template string,
	recipients []models.Resident,
	settings *models.SystemSettings,
) (*models.CommunicationEvent, error) {
	var attempts []sendAttempt
	for i := range recipients {
		for _, ch := range recipients[i].ConfiguredChannels() {
			attempts = append(attempts, sendAttempt{resident: recipients[i], channel: ch})
		}
	}
	if len(attempts) == 0 {
		return nil, ErrNoRecipients
	}

	// 并发发送，聚合前等待所有发送落定
	details := make([]models.CommunicationDetail, len(attempts))
	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// 与调用方上下文分离：请求取消后在途发送仍需记录结果
			sendCtx, cancel := context.WithTimeout(context.Background(), s.Config.ProviderTimeout)
			defer cancel()
			details[i] = s.sendOne(sendCtx, attempts[i], eventType, subject, template, settings)
		}(i)
	}
	wg.Wait()

	event := &models.CommunicationEvent{
		Type:      eventType,
		Subject:   subject,
		Timestamp: time.Now().UTC(),
		Status:    models.DeriveEventStatus(details),
		Details:   details,
	}

	if err := s.History.Record(event); err != nil {
		logger.Error("记录通讯事件失败: %v", err)
		return event, err
	}
	return event, nil
}

// sendOne 执行单个(收件人,渠道)发送并返回明细
func (s *DispatchService) sendOne(
	ctx context.Context,
	attempt sendAttempt,
	eventType models.EventType,
	subject, template string,
	settings *models.SystemSettings,
) models.CommunicationDetail {
	resident := attempt.resident
	detail := models.CommunicationDetail{
		Recipient: resident.Name,
		Method:    attempt.channel,
		Status:    models.DetailSent,
	}

	var err error
	switch attempt.channel {
	case models.ChannelWhatsApp:
		campaign := s.Config.AiSensyAnnouncementCampaign
		params := []string{subject, resident.Name, RenderTemplate(template, &resident)}
		if eventType == models.EventTypeReminder {
			campaign = s.Config.AiSensyReminderCampaign
			params = []string{resident.Name, settings.OwnerName, settings.OwnerContactWhatsApp}
		}
		detail.Content = "Sent template: " + campaign
		err = s.WhatsApp.SendTemplate(ctx, resident.Contact.WhatsApp, resident.Name, campaign, params)

	case models.ChannelSMS:
		announcementSubject := subject
		if eventType == models.EventTypeReminder {
			announcementSubject = ""
		}
		body := BuildTextMessage(template, &resident, settings, announcementSubject)
		detail.Content = body
		err = s.SMS.SendText(ctx, resident.Contact.SMS, body)

	case models.ChannelEmail:
		emailSubject := subject
		if eventType == models.EventTypeReminder {
			emailSubject = "Bin Duty Reminder"
		}
		html := BuildHTMLMessage(template, &resident, settings, emailSubject)
		detail.Content = "Subject: " + emailSubject
		err = s.Email.SendHTML(ctx, resident.Contact.Email, emailSubject, html)
	}

	if err != nil {
		// 渠道失败只隔离记录，绝不让单渠道错误中断整次派发
		logger.Warning("渠道发送失败 recipient=%s method=%s: %v", resident.Name, attempt.channel, err)
		detail.Status = models.DetailFailed
	}
	return detail
}

// 2 TriggerReminder 标准提醒流程：向当前值日住户派发提醒，
// 只要有任一渠道成功就前移指针；全部失败则保持指针不动。
func (s *DispatchService) TriggerReminder(ctx context.Context, customMessage string, scheduled bool) (*ReminderResult, error) {
	settings, err := s.Settings.Get()
	if err != nil {
		return nil, err
	}

	// 暂停只对定时触发生效，管理员手动触发不受影响
	if scheduled && settings.RemindersPaused {
		return nil, ErrRemindersPaused
	}

	current, err := s.Rotation.Current()
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrEmptyRotation
	}

	template := customMessage
	if template == "" {
		template = settings.ReminderTemplate
	}
	if template == "" {
		template = models.DefaultReminderTemplate
	}

	event, err := s.Dispatch(ctx, models.EventTypeReminder, "Weekly Bin Reminder", template, []models.Resident{*current}, settings)
	if err != nil && event == nil {
		return nil, err
	}

	result := &ReminderResult{
		Resident: current,
		Event:    event,
	}

	// 全部渠道失败时不前移指针
	if event.Status == models.EventFailed {
		return result, nil
	}

	newCurrent, err := s.Rotation.Advance()
	if err != nil {
		logger.Error("提醒后前移轮值指针失败: %v", err)
		return result, nil
	}
	result.Advanced = true
	result.NewCurrent = newCurrent

	if err := s.Settings.SetLastReminderDate(time.Now().UTC().Format("2006-01-02")); err != nil {
		logger.Warning("更新最近提醒日期失败: %v", err)
	}

	s.broadcastRotation("reminded", newCurrent)
	return result, nil
}

// 3 SendAnnouncement 向指定住户派发公告，返回事件和实际收件人数
func (s *DispatchService) SendAnnouncement(ctx context.Context, subject, message string, residentIDs []string) (*models.CommunicationEvent, int, error) {
	recipients, err := s.Resident.FindByIDs(residentIDs)
	if err != nil {
		return nil, 0, err
	}
	if len(recipients) == 0 {
		return nil, 0, ErrNoRecipients
	}

	settings, err := s.Settings.Get()
	if err != nil {
		return nil, 0, err
	}

	event, err := s.Dispatch(ctx, models.EventTypeAnnouncement, subject, message, recipients, settings)
	if err != nil && event == nil {
		return nil, 0, err
	}
	return event, len(recipients), nil
}

// broadcastRotation 通过MQTT广播轮值变更，失败只记日志
func (s *DispatchService) broadcastRotation(action string, current *models.Resident) {
	if s.MQTT == nil || current == nil {
		return
	}

	msg := RotationUpdateMessage{
		Action:          action,
		CurrentResident: current.Name,
		CurrentFlat:     current.FlatNumber,
	}
	if next, err := s.Rotation.Next(); err == nil && next != nil {
		msg.NextResident = next.Name
	}

	if err := s.MQTT.PublishRotationUpdate(msg); err != nil {
		logger.Warning("广播轮值变更失败: %v", err)
	}
}
