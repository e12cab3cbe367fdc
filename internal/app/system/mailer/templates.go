package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// StatusEmailData holds data for the application-status notification email.
type StatusEmailData struct {
	SiteName      string
	ApplicantName string
	ApplicationID string
	Institution   string
	Status        string // approved | rejected | pending
	Notes         string
	StatusURL     string
}

// BuildStatusEmail creates the status-change notification with both HTML
// and text bodies. To is set by the caller.
func BuildStatusEmail(data StatusEmailData) Email {
	return Email{
		Subject:  fmt.Sprintf("Your application %s is now %s", data.ApplicationID, data.Status),
		TextBody: buildStatusText(data),
		HTMLBody: buildStatusHTML(data),
	}
}

func buildStatusText(data StatusEmailData) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Hello %s,\n\n", data.ApplicantName)
	fmt.Fprintf(&buf, "The status of your application %s to %s has changed to: %s.\n\n",
		data.ApplicationID, data.Institution, data.Status)
	if data.Notes != "" {
		fmt.Fprintf(&buf, "Reviewer notes:\n%s\n\n", data.Notes)
	}
	if data.StatusURL != "" {
		fmt.Fprintf(&buf, "You can check your application at any time:\n%s\n\n", data.StatusURL)
	}
	fmt.Fprintf(&buf, "— %s\n", data.SiteName)
	return buf.String()
}

func buildStatusHTML(data StatusEmailData) string {
	tmpl := template.Must(template.New("status").Parse(statusHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const statusHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Application Status</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px;">
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #4f46e5;">{{.SiteName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 24px 32px;">
              <p style="margin: 0 0 16px; font-size: 15px; color: #111827;">Hello {{.ApplicantName}},</p>
              <p style="margin: 0 0 16px; font-size: 15px; color: #111827;">
                The status of your application <strong>{{.ApplicationID}}</strong>
                to <strong>{{.Institution}}</strong> has changed to:
              </p>
              <p style="margin: 0 0 16px; font-size: 20px; font-weight: 600; color: #4f46e5; text-transform: capitalize;">{{.Status}}</p>
              {{if .Notes}}<p style="margin: 0 0 16px; font-size: 14px; color: #374151;">Reviewer notes: {{.Notes}}</p>{{end}}
              {{if .StatusURL}}<p style="margin: 0; font-size: 14px;"><a href="{{.StatusURL}}" style="color: #4f46e5;">Check your application status</a></p>{{end}}
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
