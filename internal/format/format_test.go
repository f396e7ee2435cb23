package format

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ward26-notification-service/internal/models"
)

func sampleProblem() models.ProblemNotice {
	return models.ProblemNotice{
		ComplaintID: "CMP1001",
		Category:    "electricity_power",
		Subcategory: "Street light broken",
		Description: "Pole light dead for three days",
		Location: models.Location{
			Address: "House 12, Road 5, Dhanmondi",
		},
		ReporterName:  "Rahim Uddin",
		ReporterPhone: "+8801712345678",
		CreatedAt:     time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
	}
}

func withCoordinates(p models.ProblemNotice) models.ProblemNotice {
	p.Location.Coordinates = &models.GPSCoordinates{Latitude: 23.7281, Longitude: 90.3947}
	return p
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "বিদ্যুৎ ও পাওয়ার", CategoryLabel("electricity_power"))
	assert.Equal(t, "নর্দমা সমস্যা", CategoryLabel("drainage"))
	// unknown tags pass through unchanged
	assert.Equal(t, "pothole", CategoryLabel("pothole"))
}

func TestMapsURL(t *testing.T) {
	assert.Equal(t, "https://www.google.com/maps?q=23.7281,90.3947", MapsURL(23.7281, 90.3947))
	assert.Equal(t, "https://www.google.com/maps?q=-1.5,30", MapsURL(-1.5, 30))
}

func TestBodiesWithoutCoordinates(t *testing.T) {
	p := sampleProblem()
	for _, ch := range []models.Channel{models.ChannelWhatsApp, models.ChannelSMS, models.ChannelEmail} {
		body := Body(ch, p)
		require.NotEmpty(t, body)
		assert.NotContains(t, body, "GPS", "channel %s", ch)
		assert.NotContains(t, body, "google.com/maps", "channel %s", ch)
	}
}

func TestWhatsAppBodyWithCoordinates(t *testing.T) {
	body := WhatsAppBody(withCoordinates(sampleProblem()))

	assert.Contains(t, body, "23.728100, 90.394700")
	assert.Contains(t, body, "https://www.google.com/maps?q=23.7281,90.3947")
	assert.Contains(t, body, "CMP1001")
	assert.Contains(t, body, "বিদ্যুৎ ও পাওয়ার")
	assert.Contains(t, body, "Rahim Uddin")
}

func TestSMSBodyWithCoordinates(t *testing.T) {
	body := SMSBody(withCoordinates(sampleProblem()))

	assert.Contains(t, body, "23.7281, 90.3947")
	assert.NotContains(t, body, "23.728100")
	assert.Contains(t, body, "https://www.google.com/maps?q=23.7281,90.3947")
	assert.Contains(t, body, "New Complaint - Ward 26")
	assert.Contains(t, body, "Rahim Uddin (+8801712345678)")
}

func TestEmailHTMLWithCoordinates(t *testing.T) {
	body := EmailHTML(withCoordinates(sampleProblem()))

	assert.Contains(t, body, "23.728100, 90.394700")
	assert.Contains(t, body, `href="https://www.google.com/maps?q=23.7281,90.3947"`)
	assert.True(t, strings.HasPrefix(body, "<div"))
}

func TestOptionalFields(t *testing.T) {
	p := sampleProblem()
	assert.NotContains(t, WhatsAppBody(p), "খুঁটির নাম্বার")
	assert.NotContains(t, WhatsAppBody(p), "📅")
	assert.NotContains(t, WhatsAppBody(p), "ইমেইল")

	date := time.Date(2024, 4, 14, 0, 0, 0, 0, time.UTC)
	p.PoleNumber = "P-4471"
	p.ScheduledDate = &date
	p.ReporterEmail = "rahim@example.com"

	whatsapp := WhatsAppBody(p)
	assert.Contains(t, whatsapp, "খুঁটির নাম্বার:* P-4471")
	assert.Contains(t, whatsapp, "14/04/2024")
	assert.Contains(t, whatsapp, "rahim@example.com")

	email := EmailHTML(p)
	assert.Contains(t, email, "P-4471")
	assert.Contains(t, email, "14/04/2024")
	assert.Contains(t, email, "rahim@example.com")
}

func TestEmailSubject(t *testing.T) {
	assert.Equal(t, "নতুন সমস্যা রিপোর্ট - বিদ্যুৎ ও পাওয়ার", EmailSubject(sampleProblem()))
}

func TestSolvedBody(t *testing.T) {
	body := SolvedBody(sampleProblem())
	assert.Contains(t, body, "(ID: CMP1001)")
	assert.Contains(t, body, "বিদ্যুৎ ও পাওয়ার")
	assert.Contains(t, body, "marked as solved")
}

func TestBodyUnknownChannel(t *testing.T) {
	assert.Empty(t, Body(models.Channel("pager"), sampleProblem()))
}
