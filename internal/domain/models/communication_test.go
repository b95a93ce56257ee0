package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func detail(status DetailStatus) CommunicationDetail {
	return CommunicationDetail{Recipient: "Jane", Method: ChannelSMS, Status: status}
}

func TestDeriveEventStatus(t *testing.T) {
	tests := []struct {
		name    string
		details []CommunicationDetail
		want    EventStatus
	}{
		{"all sent", []CommunicationDetail{detail(DetailSent), detail(DetailSent)}, EventCompleted},
		{"all failed", []CommunicationDetail{detail(DetailFailed), detail(DetailFailed)}, EventFailed},
		{"mixed", []CommunicationDetail{detail(DetailSent), detail(DetailFailed), detail(DetailFailed)}, EventPartial},
		{"single sent", []CommunicationDetail{detail(DetailSent)}, EventCompleted},
		// 零明细视为全部成功，上层在派发前已拦截空收件人
		{"empty", nil, EventCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveEventStatus(tt.details))
		})
	}
}

func TestConfiguredChannels(t *testing.T) {
	r := &Resident{
		Name: "Jane Smith",
		Contact: ContactInfo{
			Email: "jane@example.com",
		},
	}
	assert.Equal(t, []Channel{ChannelEmail}, r.ConfiguredChannels())

	r.Contact.WhatsApp = "+447700900123"
	r.Contact.SMS = "+447700900123"
	assert.Equal(t, []Channel{ChannelWhatsApp, ChannelSMS, ChannelEmail}, r.ConfiguredChannels())

	none := &Resident{Name: "Ghost"}
	assert.Empty(t, none.ConfiguredChannels())
}

func TestContactFor(t *testing.T) {
	r := &Resident{Contact: ContactInfo{WhatsApp: "+44wa", SMS: "+44sms", Email: "e@x.com"}}
	assert.Equal(t, "+44wa", r.ContactFor(ChannelWhatsApp))
	assert.Equal(t, "+44sms", r.ContactFor(ChannelSMS))
	assert.Equal(t, "e@x.com", r.ContactFor(ChannelEmail))
	assert.Equal(t, "", r.ContactFor(Channel("carrier-pigeon")))
}
