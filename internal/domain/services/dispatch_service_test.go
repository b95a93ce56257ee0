package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"binreminder-http-service/internal/domain/models"
	"binreminder-http-service/internal/infrastructure/config"
)

// 渠道桩实现，记录调用并按需失败。派发是并发的，计数要加锁。

type stubWhatsApp struct {
	mu    sync.Mutex
	calls int
	fail  bool
}

func (s *stubWhatsApp) SendTemplate(ctx context.Context, destination, userName, campaign string, params []string) error {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.fail {
		return errors.New("whatsapp gateway unavailable")
	}
	return nil
}

type stubSMS struct {
	mu    sync.Mutex
	calls int
	fail  bool
}

func (s *stubSMS) SendText(ctx context.Context, destination, body string) error {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.fail {
		return errors.New("sms gateway unavailable")
	}
	return nil
}

type stubEmail struct {
	mu    sync.Mutex
	calls int
	fail  bool
}

func (s *stubEmail) SendHTML(ctx context.Context, to, subject, html string) error {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.fail {
		return errors.New("email provider unavailable")
	}
	return nil
}

type stubHistory struct {
	mu     sync.Mutex
	events []*models.CommunicationEvent
}

func (s *stubHistory) Record(event *models.CommunicationEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *stubHistory) Query() ([]models.CommunicationEvent, error) { return nil, nil }

func (s *stubHistory) DeleteMany(ids []string) (int64, error) { return 0, nil }

func (s *stubHistory) last() *models.CommunicationEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == 0 {
		return nil
	}
	return s.events[len(s.events)-1]
}

type stubRotation struct {
	residents []models.Resident
	idx       int
	advanced  int
}

func (s *stubRotation) Current() (*models.Resident, error) {
	if len(s.residents) == 0 {
		return nil, nil
	}
	return &s.residents[s.idx], nil
}

func (s *stubRotation) Next() (*models.Resident, error) {
	if len(s.residents) == 0 {
		return nil, nil
	}
	return &s.residents[(s.idx+1)%len(s.residents)], nil
}

func (s *stubRotation) Snapshot() (*models.Resident, *models.Resident, error) {
	current, _ := s.Current()
	next, _ := s.Next()
	return current, next, nil
}

func (s *stubRotation) Advance() (*models.Resident, error) {
	if len(s.residents) == 0 {
		return nil, ErrEmptyRotation
	}
	s.idx = (s.idx + 1) % len(s.residents)
	s.advanced++
	return &s.residents[s.idx], nil
}

func (s *stubRotation) Skip() (*models.Resident, *models.Resident, error) {
	skipped, _ := s.Current()
	current, err := s.Advance()
	return skipped, current, err
}

func (s *stubRotation) SetCurrent(residentID string) (*models.Resident, error) {
	for i := range s.residents {
		if s.residents[i].ID == residentID {
			s.idx = i
			return &s.residents[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (s *stubRotation) EnsureState() error { return nil }

type stubSettings struct {
	settings         models.SystemSettings
	lastReminderDate string
}

func (s *stubSettings) Get() (*models.SystemSettings, error) {
	copied := s.settings
	return &copied, nil
}

func (s *stubSettings) Update(updates map[string]interface{}) (*models.SystemSettings, error) {
	return s.Get()
}

func (s *stubSettings) SetLastReminderDate(date string) error {
	s.lastReminderDate = date
	return nil
}

func (s *stubSettings) EnsureSettings() error { return nil }

type stubResidents struct {
	residents []models.Resident
}

func (s *stubResidents) GetAllResidents() ([]models.Resident, error) { return s.residents, nil }
func (s *stubResidents) GetResidentByID(id string) (*models.Resident, error) {
	return nil, errors.New("not found")
}
func (s *stubResidents) CreateResident(r *models.Resident) error { return nil }
func (s *stubResidents) UpdateResident(id string, updates map[string]interface{}) (*models.Resident, error) {
	return nil, errors.New("not implemented")
}
func (s *stubResidents) DeleteResident(id string) error    { return nil }
func (s *stubResidents) Reorder(orderedIDs []string) error { return nil }
func (s *stubResidents) FindByIDs(ids []string) ([]models.Resident, error) {
	var found []models.Resident
	for _, r := range s.residents {
		for _, id := range ids {
			if r.ID == id {
				found = append(found, r)
			}
		}
	}
	return found, nil
}

func fullContactResident(id, name string) models.Resident {
	return models.Resident{
		ID:         id,
		Name:       name,
		FlatNumber: "1A",
		Contact: models.ContactInfo{
			WhatsApp: "+447700900001",
			SMS:      "+447700900001",
			Email:    name + "@example.com",
		},
	}
}

func newTestDispatch(wa *stubWhatsApp, sms *stubSMS, email *stubEmail, rotation *stubRotation, settings *stubSettings, history *stubHistory) *DispatchService {
	return &DispatchService{
		Config: &config.Config{
			ProviderTimeout:             2 * time.Second,
			AiSensyReminderCampaign:     "bin_duty_reminder",
			AiSensyAnnouncementCampaign: "announcement",
		},
		WhatsApp: wa,
		SMS:      sms,
		Email:    email,
		Rotation: rotation,
		Resident: &stubResidents{},
		Settings: settings,
		History:  history,
	}
}

func TestDispatchAllChannelsSucceed(t *testing.T) {
	wa, sms, email := &stubWhatsApp{}, &stubSMS{}, &stubEmail{}
	history := &stubHistory{}
	settings := &stubSettings{settings: models.SystemSettings{OwnerName: "Alex"}}
	svc := newTestDispatch(wa, sms, email, &stubRotation{}, settings, history)

	recipients := []models.Resident{fullContactResident("r1", "jane")}
	event, err := svc.Dispatch(context.Background(), models.EventTypeReminder, "Weekly Bin Reminder", "Bins out, {first_name}", recipients, &settings.settings)

	require.NoError(t, err)
	assert.Equal(t, models.EventCompleted, event.Status)
	assert.Len(t, event.Details, 3)
	assert.Equal(t, 1, wa.calls)
	assert.Equal(t, 1, sms.calls)
	assert.Equal(t, 1, email.calls)
	require.NotNil(t, history.last())
	assert.Equal(t, models.EventTypeReminder, history.last().Type)
}

func TestDispatchPartialFailure(t *testing.T) {
	wa, sms, email := &stubWhatsApp{fail: true}, &stubSMS{fail: true}, &stubEmail{}
	history := &stubHistory{}
	settings := &stubSettings{}
	svc := newTestDispatch(wa, sms, email, &stubRotation{}, settings, history)

	recipients := []models.Resident{fullContactResident("r1", "jane")}
	event, err := svc.Dispatch(context.Background(), models.EventTypeReminder, "Weekly Bin Reminder", "msg", recipients, &settings.settings)

	require.NoError(t, err)
	assert.Equal(t, models.EventPartial, event.Status)

	var failed int
	for _, d := range event.Details {
		if d.Status == models.DetailFailed {
			failed++
		}
	}
	assert.Equal(t, 2, failed)
}

func TestDispatchAllChannelsFail(t *testing.T) {
	wa, sms, email := &stubWhatsApp{fail: true}, &stubSMS{fail: true}, &stubEmail{fail: true}
	history := &stubHistory{}
	settings := &stubSettings{}
	svc := newTestDispatch(wa, sms, email, &stubRotation{}, settings, history)

	recipients := []models.Resident{fullContactResident("r1", "jane")}
	event, err := svc.Dispatch(context.Background(), models.EventTypeReminder, "Weekly Bin Reminder", "msg", recipients, &settings.settings)

	require.NoError(t, err)
	assert.Equal(t, models.EventFailed, event.Status)
	// 失败的事件同样要写入历史
	require.NotNil(t, history.last())
	assert.Equal(t, models.EventFailed, history.last().Status)
}

func TestDispatchSkipsUnconfiguredChannels(t *testing.T) {
	wa, sms, email := &stubWhatsApp{}, &stubSMS{}, &stubEmail{}
	history := &stubHistory{}
	settings := &stubSettings{}
	svc := newTestDispatch(wa, sms, email, &stubRotation{}, settings, history)

	emailOnly := models.Resident{
		ID:      "r1",
		Name:    "Jane Smith",
		Contact: models.ContactInfo{Email: "jane@example.com"},
	}
	event, err := svc.Dispatch(context.Background(), models.EventTypeAnnouncement, "Subject", "msg", []models.Resident{emailOnly}, &settings.settings)

	require.NoError(t, err)
	require.Len(t, event.Details, 1)
	assert.Equal(t, models.ChannelEmail, event.Details[0].Method)
	assert.Equal(t, 0, wa.calls)
	assert.Equal(t, 0, sms.calls)
	assert.Equal(t, 1, email.calls)
}

func TestDispatchNoRecipients(t *testing.T) {
	settings := &stubSettings{}
	svc := newTestDispatch(&stubWhatsApp{}, &stubSMS{}, &stubEmail{}, &stubRotation{}, settings, &stubHistory{})

	noContact := models.Resident{ID: "r1", Name: "Ghost"}
	_, err := svc.Dispatch(context.Background(), models.EventTypeReminder, "Subject", "msg", []models.Resident{noContact}, &settings.settings)
	assert.ErrorIs(t, err, ErrNoRecipients)

	_, err = svc.Dispatch(context.Background(), models.EventTypeReminder, "Subject", "msg", nil, &settings.settings)
	assert.ErrorIs(t, err, ErrNoRecipients)
}

func TestTriggerReminderAdvancesOnSuccess(t *testing.T) {
	rotation := &stubRotation{residents: []models.Resident{
		fullContactResident("r1", "jane"),
		fullContactResident("r2", "bob"),
	}}
	settings := &stubSettings{settings: models.SystemSettings{ReminderTemplate: "Bins out"}}
	svc := newTestDispatch(&stubWhatsApp{}, &stubSMS{}, &stubEmail{}, rotation, settings, &stubHistory{})

	result, err := svc.TriggerReminder(context.Background(), "", false)

	require.NoError(t, err)
	assert.Equal(t, "r1", result.Resident.ID)
	assert.True(t, result.Advanced)
	require.NotNil(t, result.NewCurrent)
	assert.Equal(t, "r2", result.NewCurrent.ID)
	assert.Equal(t, 1, rotation.advanced)
	assert.NotEmpty(t, settings.lastReminderDate)
}

func TestTriggerReminderDoesNotAdvanceOnTotalFailure(t *testing.T) {
	rotation := &stubRotation{residents: []models.Resident{
		fullContactResident("r1", "jane"),
		fullContactResident("r2", "bob"),
	}}
	settings := &stubSettings{settings: models.SystemSettings{ReminderTemplate: "Bins out"}}
	svc := newTestDispatch(&stubWhatsApp{fail: true}, &stubSMS{fail: true}, &stubEmail{fail: true}, rotation, settings, &stubHistory{})

	result, err := svc.TriggerReminder(context.Background(), "", false)

	require.NoError(t, err)
	assert.False(t, result.Advanced)
	assert.Equal(t, models.EventFailed, result.Event.Status)
	assert.Equal(t, 0, rotation.advanced)
	assert.Empty(t, settings.lastReminderDate)
}

func TestTriggerReminderAdvancesOnPartialSuccess(t *testing.T) {
	rotation := &stubRotation{residents: []models.Resident{
		fullContactResident("r1", "jane"),
		fullContactResident("r2", "bob"),
	}}
	settings := &stubSettings{settings: models.SystemSettings{ReminderTemplate: "Bins out"}}
	svc := newTestDispatch(&stubWhatsApp{fail: true}, &stubSMS{}, &stubEmail{}, rotation, settings, &stubHistory{})

	result, err := svc.TriggerReminder(context.Background(), "", false)

	require.NoError(t, err)
	assert.Equal(t, models.EventPartial, result.Event.Status)
	assert.True(t, result.Advanced)
}

func TestTriggerReminderPausedOnlyBlocksScheduled(t *testing.T) {
	rotation := &stubRotation{residents: []models.Resident{fullContactResident("r1", "jane")}}
	settings := &stubSettings{settings: models.SystemSettings{
		ReminderTemplate: "Bins out",
		RemindersPaused:  true,
	}}
	svc := newTestDispatch(&stubWhatsApp{}, &stubSMS{}, &stubEmail{}, rotation, settings, &stubHistory{})

	// 定时触发被暂停拦截
	_, err := svc.TriggerReminder(context.Background(), "", true)
	assert.ErrorIs(t, err, ErrRemindersPaused)

	// 管理员手动触发不受暂停影响
	result, err := svc.TriggerReminder(context.Background(), "", false)
	require.NoError(t, err)
	assert.Equal(t, "r1", result.Resident.ID)
}

func TestTriggerReminderEmptyRotation(t *testing.T) {
	settings := &stubSettings{}
	svc := newTestDispatch(&stubWhatsApp{}, &stubSMS{}, &stubEmail{}, &stubRotation{}, settings, &stubHistory{})

	_, err := svc.TriggerReminder(context.Background(), "", false)
	assert.ErrorIs(t, err, ErrEmptyRotation)
}

func TestTriggerReminderCustomMessageOverridesTemplate(t *testing.T) {
	rotation := &stubRotation{residents: []models.Resident{
		{ID: "r1", Name: "Jane Smith", Contact: models.ContactInfo{SMS: "+447700900001"}},
	}}
	settings := &stubSettings{settings: models.SystemSettings{ReminderTemplate: "default template"}}
	history := &stubHistory{}
	svc := newTestDispatch(&stubWhatsApp{}, &stubSMS{}, &stubEmail{}, rotation, settings, history)

	_, err := svc.TriggerReminder(context.Background(), "custom message for {first_name}", false)
	require.NoError(t, err)

	event := history.last()
	require.NotNil(t, event)
	require.Len(t, event.Details, 1)
	assert.Contains(t, event.Details[0].Content, "custom message for Jane")
	assert.NotContains(t, event.Details[0].Content, "default template")
}

func TestSendAnnouncementToSelectedResidents(t *testing.T) {
	residents := &stubResidents{residents: []models.Resident{
		fullContactResident("r1", "jane"),
		fullContactResident("r2", "bob"),
		fullContactResident("r3", "ann"),
	}}
	settings := &stubSettings{}
	history := &stubHistory{}
	svc := newTestDispatch(&stubWhatsApp{}, &stubSMS{}, &stubEmail{}, &stubRotation{}, settings, history)
	svc.Resident = residents

	event, count, err := svc.SendAnnouncement(context.Background(), "Water outage", "Water off 9-11am", []string{"r1", "r3"})

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, models.EventCompleted, event.Status)
	assert.Equal(t, models.EventTypeAnnouncement, event.Type)
	assert.Len(t, event.Details, 6)
}

func TestSendAnnouncementNoMatchingResidents(t *testing.T) {
	settings := &stubSettings{}
	svc := newTestDispatch(&stubWhatsApp{}, &stubSMS{}, &stubEmail{}, &stubRotation{}, settings, &stubHistory{})

	_, _, err := svc.SendAnnouncement(context.Background(), "s", "m", []string{"nobody"})
	assert.ErrorIs(t, err, ErrNoRecipients)
}
