package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/mamadbah2/livestock/internal/domain/models"
)

var defaultSubjects = map[models.NotificationCategory]string{
	models.NotifyVaccination:  "Aşı Hatırlatması",
	models.NotifyBirth:        "Doğum Bildirimi",
	models.NotifyPregnancy:    "Gebelik Bildirimi",
	models.NotifyHealth:       "Sağlık Bildirimi",
	models.NotifyDailySummary: "Günlük Çiftlik Özeti",
}

var emailTemplate = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html lang="tr">
<head><meta charset="utf-8"><title>{{.Subject}}</title></head>
<body style="margin:0;padding:24px;background:#f4f6f3;font-family:Arial,Helvetica,sans-serif;color:#1f2a1c;">
  <div style="max-width:560px;margin:0 auto;background:#ffffff;border-radius:8px;padding:24px;">
    <h2 style="margin-top:0;color:#2f6b2a;">{{.Subject}}</h2>
    {{- if .Greeting}}
    <p>{{.Greeting}}</p>
    {{- end}}
    {{- range .Lines}}
    <p style="line-height:1.5;">{{.}}</p>
    {{- end}}
    <hr style="border:none;border-top:1px solid #e2e6df;margin:24px 0;">
    <p style="font-size:12px;color:#7a8476;">{{.Footer}}</p>
  </div>
</body>
</html>
`))

type emailView struct {
	Subject  string
	Greeting string
	Lines    []string
	Footer   string
}

// SubjectFor returns subject when set, otherwise the category default.
func SubjectFor(category models.NotificationCategory, subject string) string {
	if s := strings.TrimSpace(subject); s != "" {
		return s
	}
	if s, ok := defaultSubjects[category]; ok {
		return s
	}
	return "Çiftlik Bildirimi"
}

// RenderEmail wraps a plain text message in the notification HTML layout.
func RenderEmail(p models.Profile, subject, message string) (string, error) {
	view := emailView{Subject: subject, Footer: "Çiftlik Yönetim Sistemi"}
	if p.FullName != "" {
		view.Greeting = fmt.Sprintf("Merhaba %s,", p.FullName)
	}
	if p.FarmName != "" {
		view.Footer = p.FarmName + " · " + view.Footer
	}
	for _, line := range strings.Split(message, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			view.Lines = append(view.Lines, line)
		}
	}

	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render email: %w", err)
	}
	return buf.String(), nil
}

// DailySummaryText renders the digest body of counts.
func DailySummaryText(c models.DailySummaryCounts) string {
	lines := make([]string, 0, 3)
	if c.ImminentBirths > 0 {
		lines = append(lines, fmt.Sprintf("Önümüzdeki 7 gün içinde %d doğum bekleniyor.", c.ImminentBirths))
	}
	if c.OverdueVaccinations > 0 {
		lines = append(lines, fmt.Sprintf("%d aşının tarihi geçti.", c.OverdueVaccinations))
	}
	if c.UpcomingVaccinations > 0 {
		lines = append(lines, fmt.Sprintf("%d aşı önümüzdeki 7 gün içinde yapılmalı.", c.UpcomingVaccinations))
	}
	return strings.Join(lines, "\n")
}
