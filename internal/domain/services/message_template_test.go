package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"binreminder-http-service/internal/domain/models"
)

func testResident() *models.Resident {
	return &models.Resident{
		ID:         "r1",
		Name:       "Jane Smith",
		FlatNumber: "2B",
	}
}

func testSettings() *models.SystemSettings {
	return &models.SystemSettings{
		OwnerName:            "Alex",
		OwnerContactWhatsApp: "+447700900999",
		ReportIssueLink:      "https://bins.example.com/report",
	}
}

func TestRenderTemplateSubstitution(t *testing.T) {
	out := RenderTemplate("Hi {first_name}, flat {flat_number} is on duty.", testResident())
	assert.Equal(t, "Hi Jane, flat 2B is on duty.", out)
}

func TestRenderTemplateStripsUnknownPlaceholders(t *testing.T) {
	out := RenderTemplate("Hi {first_name}, see {unknown_tag} tonight", testResident())
	assert.Equal(t, "Hi Jane, see  tonight", out)
	assert.NotContains(t, out, "{")
}

func TestRenderTemplateFirstNameFallsBackToFullName(t *testing.T) {
	r := &models.Resident{Name: "Cher", FlatNumber: "1A"}
	out := RenderTemplate("{first_name}", r)
	assert.Equal(t, "Cher", out)
}

func TestBuildTextMessageReminderFooter(t *testing.T) {
	out := BuildTextMessage("Bins out please, {first_name}", testResident(), testSettings(), "")

	require.True(t, strings.HasPrefix(out, "Bins out please, Jane"))
	assert.Contains(t, out, "Report an issue: https://bins.example.com/report")
	assert.Contains(t, out, "Contact Alex at +447700900999.")
	assert.NotContains(t, out, "Announcement:")
}

func TestBuildTextMessageAnnouncementPrefix(t *testing.T) {
	out := BuildTextMessage("Water off on Friday", testResident(), testSettings(), "Water outage")
	assert.True(t, strings.HasPrefix(out, "Announcement: Water outage\n"))
	assert.Contains(t, out, "Water off on Friday")
}

func TestBuildTextMessageOwnerNameFallback(t *testing.T) {
	settings := testSettings()
	settings.OwnerName = ""
	out := BuildTextMessage("hello", testResident(), settings, "")
	assert.Contains(t, out, "Contact Admin at")
}

func TestBuildHTMLMessageEscapedNewlines(t *testing.T) {
	out := BuildHTMLMessage("line one\nline two", testResident(), testSettings(), "Bin Duty Reminder")
	assert.Contains(t, out, "line one<br>line two")
	assert.Contains(t, out, "Hi Jane,")
	assert.Contains(t, out, "https://bins.example.com/report")
}

func TestIssuesLinkDerivation(t *testing.T) {
	assert.Equal(t, "https://bins.example.com/issues", IssuesLink(testSettings()))

	settings := &models.SystemSettings{ReportIssueLink: ""}
	assert.Equal(t, "/issues", IssuesLink(settings))

	settings.ReportIssueLink = "https://bins.example.com"
	assert.Equal(t, "https://bins.example.com/issues", IssuesLink(settings))
}

func TestBuildOwnerIssueEmailContainsDetails(t *testing.T) {
	issue := &models.Issue{
		ReportedBy:  "Jane Smith",
		FlatNumber:  "2B",
		Description: "Bin store door broken",
	}
	out := BuildOwnerIssueEmail(issue, testSettings())
	assert.Contains(t, out, "Jane Smith")
	assert.Contains(t, out, "2B")
	assert.Contains(t, out, "Bin store door broken")
	assert.Contains(t, out, "https://bins.example.com/issues")
}
