// Package format builds channel-specific message bodies from a problem
// notice. All functions are pure; absent optional fields are omitted, never
// an error.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"ward26-notification-service/internal/models"
)

// categoryNames maps category tags to their Bengali labels shown to admins.
var categoryNames = map[string]string{
	"electricity":       "বিদ্যুৎ সমস্যা",
	"drainage":          "নর্দমা সমস্যা",
	"road":              "রাস্তাঘাট সমস্যা",
	"festival":          "উৎসব",
	"medical_emergency": "চিকিৎসা জরুরি অবস্থা",
	"other":             "অন্যান্য",

	"infrastructure_public_works":  "অবকাঠামো ও গণপূর্ত",
	"waste_management_sanitation":  "বর্জ্য ব্যবস্থাপনা ও স্যানিটেশন",
	"parks_public_spaces":          "পার্ক ও পাবলিক স্পেস",
	"water_sanitation_services":    "পানি ও স্যানিটেশন সেবা",
	"electricity_power":            "বিদ্যুৎ ও পাওয়ার",
	"public_transport_traffic":     "পাবলিক ট্রান্সপোর্ট ও ট্রাফিক",
	"housing_community_facilities": "হাউজিং ও কমিউনিটি সুবিধা",
	"safety_law_enforcement":       "নিরাপত্তা ও আইন প্রয়োগ",
	"education_social_services":    "শিক্ষা ও সামাজিক সেবা",
}

const (
	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006 15:04:05"
)

// CategoryLabel returns the human-readable label for a category tag.
// Unknown tags pass through unchanged.
func CategoryLabel(tag string) string {
	if label, ok := categoryNames[tag]; ok {
		return label
	}
	return tag
}

// MapsURL builds the Google Maps link for a coordinate pair. Coordinates are
// rendered with minimal precision so fixtures like
// https://www.google.com/maps?q=23.7281,90.3947 reproduce exactly.
func MapsURL(lat, lng float64) string {
	return fmt.Sprintf("https://www.google.com/maps?q=%s,%s", coord(lat), coord(lng))
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Body returns the message body for the given channel.
func Body(channel models.Channel, p models.ProblemNotice) string {
	switch channel {
	case models.ChannelWhatsApp:
		return WhatsAppBody(p)
	case models.ChannelSMS:
		return SMSBody(p)
	case models.ChannelEmail:
		return EmailHTML(p)
	}
	return ""
}

// WhatsAppBody builds the rich-text admin notification.
func WhatsAppBody(p models.ProblemNotice) string {
	var b strings.Builder
	b.WriteString("🔔 *২৬ নম্বর ওয়ার্ড - নতুন সমস্যা রিপোর্ট*\n\n")
	fmt.Fprintf(&b, "📋 *অভিযোগ নম্বর:* %s\n", p.ComplaintID)
	fmt.Fprintf(&b, "📋 *ক্যাটাগরি:* %s\n", CategoryLabel(p.Category))
	fmt.Fprintf(&b, "📌 *সাব-ক্যাটাগরি:* %s\n", p.Subcategory)
	fmt.Fprintf(&b, "📝 *বিবরণ:* %s\n", p.Description)
	fmt.Fprintf(&b, "📍 *অবস্থান:* %s", p.Location.Address)
	if c := p.Location.Coordinates; c != nil {
		fmt.Fprintf(&b, "\n🌍 *GPS স্থানাঙ্ক:* %.6f, %.6f", c.Latitude, c.Longitude)
		fmt.Fprintf(&b, "\n📱 *Google Maps:* %s", MapsURL(c.Latitude, c.Longitude))
	}
	if p.PoleNumber != "" {
		fmt.Fprintf(&b, "\n⚡ *খুঁটির নাম্বার:* %s", p.PoleNumber)
	}
	if p.ScheduledDate != nil {
		fmt.Fprintf(&b, "\n📅 *তারিখ:* %s", p.ScheduledDate.Format(dateLayout))
	}
	b.WriteString("\n\n👤 *রিপোর্টকারীর তথ্য:*\n")
	fmt.Fprintf(&b, "নাম: %s\nমোবাইল: %s", p.ReporterName, p.ReporterPhone)
	if p.ReporterEmail != "" {
		fmt.Fprintf(&b, "\nইমেইল: %s", p.ReporterEmail)
	}
	fmt.Fprintf(&b, "\n\n🕐 *সময়:* %s", p.CreatedAt.Format(dateTimeLayout))
	return b.String()
}

// SMSBody builds the compact plain-text notification used for SMS fallback
// and the bulk SMS pass.
func SMSBody(p models.ProblemNotice) string {
	var b strings.Builder
	b.WriteString("🔔 New Complaint - Ward 26\n")
	fmt.Fprintf(&b, "ID: %s\n", p.ComplaintID)
	fmt.Fprintf(&b, "Category: %s\n", CategoryLabel(p.Category))
	fmt.Fprintf(&b, "Location: %s", p.Location.Address)
	if c := p.Location.Coordinates; c != nil {
		fmt.Fprintf(&b, "\nGPS: %.4f, %.4f", c.Latitude, c.Longitude)
		fmt.Fprintf(&b, "\nMaps: %s", MapsURL(c.Latitude, c.Longitude))
	}
	fmt.Fprintf(&b, "\nReporter: %s (%s)\n", p.ReporterName, p.ReporterPhone)
	fmt.Fprintf(&b, "Time: %s", p.CreatedAt.Format(dateTimeLayout))
	return b.String()
}

// EmailSubject builds the admin email subject line.
func EmailSubject(p models.ProblemNotice) string {
	return fmt.Sprintf("নতুন সমস্যা রিপোর্ট - %s", CategoryLabel(p.Category))
}

// EmailHTML builds the admin email body.
func EmailHTML(p models.ProblemNotice) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; padding: 20px; background-color: #f5f5f5;">` + "\n")
	b.WriteString(`<div style="background-color: white; padding: 20px; border-radius: 8px; max-width: 600px; margin: 0 auto;">` + "\n")
	b.WriteString(`<h2 style="color: #1e40af; border-bottom: 2px solid #1e40af; padding-bottom: 10px;">২৬ নম্বর ওয়ার্ড - নতুন সমস্যা রিপোর্ট</h2>` + "\n")
	b.WriteString(`<div style="margin: 20px 0;">` + "\n")
	fmt.Fprintf(&b, "<p><strong>অভিযোগ নম্বর:</strong> %s</p>\n", p.ComplaintID)
	fmt.Fprintf(&b, "<p><strong>ক্যাটাগরি:</strong> %s</p>\n", CategoryLabel(p.Category))
	fmt.Fprintf(&b, "<p><strong>সাব-ক্যাটাগরি:</strong> %s</p>\n", p.Subcategory)
	fmt.Fprintf(&b, "<p><strong>বিবরণ:</strong> %s</p>\n", p.Description)
	fmt.Fprintf(&b, "<p><strong>অবস্থান:</strong> %s</p>\n", p.Location.Address)
	if c := p.Location.Coordinates; c != nil {
		fmt.Fprintf(&b, "<p><strong>GPS স্থানাঙ্ক:</strong> %.6f, %.6f</p>\n", c.Latitude, c.Longitude)
		fmt.Fprintf(&b, `<p><strong>Google Maps:</strong> <a href="%s" target="_blank" style="color: #1e40af;">মানচিত্রে দেখুন</a></p>`+"\n", MapsURL(c.Latitude, c.Longitude))
	}
	if p.PoleNumber != "" {
		fmt.Fprintf(&b, "<p><strong>খুঁটির নাম্বার:</strong> %s</p>\n", p.PoleNumber)
	}
	if p.ScheduledDate != nil {
		fmt.Fprintf(&b, "<p><strong>তারিখ:</strong> %s</p>\n", p.ScheduledDate.Format(dateLayout))
	}
	b.WriteString("</div>\n")
	b.WriteString(`<div style="background-color: #eff6ff; padding: 15px; border-radius: 5px; margin: 20px 0;">` + "\n")
	b.WriteString(`<h3 style="color: #1e40af; margin-top: 0;">রিপোর্টকারীর তথ্য</h3>` + "\n")
	fmt.Fprintf(&b, "<p><strong>নাম:</strong> %s</p>\n", p.ReporterName)
	fmt.Fprintf(&b, "<p><strong>মোবাইল:</strong> %s</p>\n", p.ReporterPhone)
	if p.ReporterEmail != "" {
		fmt.Fprintf(&b, "<p><strong>ইমেইল:</strong> %s</p>\n", p.ReporterEmail)
	}
	b.WriteString("</div>\n")
	fmt.Fprintf(&b, `<p style="color: #666; font-size: 12px; margin-top: 20px;"><strong>সময়:</strong> %s</p>`+"\n", p.CreatedAt.Format(dateTimeLayout))
	b.WriteString("</div>\n</div>")
	return b.String()
}

// SolvedBody builds the SMS sent to the reporter when their complaint is
// resolved.
func SolvedBody(p models.ProblemNotice) string {
	return fmt.Sprintf("✅ Your complaint (ID: %s) about %s has been marked as solved. Thank you for reporting to Ward 26 - Amar Elaka Amar Daitto.",
		p.ComplaintID, CategoryLabel(p.Category))
}
