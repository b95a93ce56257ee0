package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"binreminder-http-service/internal/domain/models"
	"binreminder-http-service/internal/infrastructure/config"
)

func newTestIssueService(wa *stubWhatsApp, sms *stubSMS, email *stubEmail, settings *stubSettings, history *stubHistory) *IssueService {
	return &IssueService{
		Config: &config.Config{
			ProviderTimeout:             2 * time.Second,
			AiSensyAnnouncementCampaign: "announcement",
		},
		WhatsApp: wa,
		SMS:      sms,
		Email:    email,
		Settings: settings,
		History:  history,
	}
}

func ownerSettings() models.SystemSettings {
	return models.SystemSettings{
		OwnerName:            "Alex",
		OwnerContactWhatsApp: "+447700900999",
		OwnerContactNumber:   "+447700900999",
		OwnerContactEmail:    "alex@example.com",
		ReportIssueLink:      "https://bins.example.com/report",
	}
}

func TestNotifyOwnerUsesAllConfiguredChannels(t *testing.T) {
	wa, sms, email := &stubWhatsApp{}, &stubSMS{}, &stubEmail{}
	history := &stubHistory{}
	svc := newTestIssueService(wa, sms, email, &stubSettings{settings: ownerSettings()}, history)

	svc.notifyOwner(&models.Issue{
		ID:          "i1",
		ReportedBy:  "Jane Smith",
		FlatNumber:  "2B",
		Description: "Bin store door broken",
	})

	assert.Equal(t, 1, wa.calls)
	assert.Equal(t, 1, sms.calls)
	assert.Equal(t, 1, email.calls)

	event := history.last()
	require.NotNil(t, event)
	assert.Equal(t, models.EventTypeIssueNotice, event.Type)
	assert.Equal(t, models.EventCompleted, event.Status)
	assert.Len(t, event.Details, 3)
	for _, d := range event.Details {
		assert.Equal(t, "Alex", d.Recipient)
	}
}

func TestNotifyOwnerSkipsUnconfiguredChannels(t *testing.T) {
	wa, sms, email := &stubWhatsApp{}, &stubSMS{}, &stubEmail{}
	history := &stubHistory{}
	settings := ownerSettings()
	settings.OwnerContactWhatsApp = ""
	settings.OwnerContactNumber = ""
	svc := newTestIssueService(wa, sms, email, &stubSettings{settings: settings}, history)

	svc.notifyOwner(&models.Issue{ID: "i1", ReportedBy: "Jane", FlatNumber: "2B", Description: "d"})

	assert.Equal(t, 0, wa.calls)
	assert.Equal(t, 0, sms.calls)
	assert.Equal(t, 1, email.calls)

	event := history.last()
	require.NotNil(t, event)
	require.Len(t, event.Details, 1)
	assert.Equal(t, models.ChannelEmail, event.Details[0].Method)
}

func TestNotifyOwnerWithoutContactsRecordsNothing(t *testing.T) {
	history := &stubHistory{}
	svc := newTestIssueService(&stubWhatsApp{}, &stubSMS{}, &stubEmail{}, &stubSettings{}, history)

	svc.notifyOwner(&models.Issue{ID: "i1", ReportedBy: "Jane", FlatNumber: "2B", Description: "d"})

	assert.Nil(t, history.last())
}

func TestNotifyOwnerPartialFailure(t *testing.T) {
	wa, sms, email := &stubWhatsApp{}, &stubSMS{}, &stubEmail{fail: true}
	history := &stubHistory{}
	svc := newTestIssueService(wa, sms, email, &stubSettings{settings: ownerSettings()}, history)

	svc.notifyOwner(&models.Issue{ID: "i1", ReportedBy: "Jane", FlatNumber: "2B", Description: "d"})

	event := history.last()
	require.NotNil(t, event)
	assert.Equal(t, models.EventPartial, event.Status)
}

func TestCreatePublicHonorsRequestContext(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	history := &stubHistory{}
	svc := newTestIssueService(&stubWhatsApp{}, &stubSMS{}, &stubEmail{}, &stubSettings{settings: ownerSettings()}, history)
	svc.DB = db

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	issue, err := svc.CreatePublic(ctx, "Jane Smith", "2B", "Bin store door broken")
	require.Error(t, err)
	assert.Nil(t, issue)
	assert.Nil(t, history.last())
}
