// Package resend delivers nudges as email through the Resend API.
package resend

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"
)

// ResendNotifier sends one email per nudge to Email.
type ResendNotifier struct {
	ApiKey string
	Email  string
	From   string
}

var emailTemplate = template.Must(template.New("email").Parse(`
<p>These streaks end in {{.Hours}} hours unless you check them off today:</p>
<ul>
{{range .Habits}}
  <li>{{.}}</li>
{{end}}
</ul>
`))

func render(habits []string, hoursTillExpiry int) (string, error) {
	data := struct {
		Habits []string
		Hours  int
	}{
		Habits: habits,
		Hours:  hoursTillExpiry,
	}
	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func subject(habits []string) string {
	if len(habits) == 1 {
		return fmt.Sprintf("Your %s streak ends at midnight", habits[0])
	}
	return fmt.Sprintf("%d habit streaks end at midnight", len(habits))
}

func (r *ResendNotifier) SendNudge(habits []string, hoursTillExpiry int) error {
	html, err := render(habits, hoursTillExpiry)
	if err != nil {
		return fmt.Errorf("render nudge email: %w", err)
	}

	client := resend.NewClient(r.ApiKey)
	params := &resend.SendEmailRequest{
		From:    r.From,
		To:      []string{r.Email},
		Subject: subject(habits),
		Html:    html,
	}

	if _, err := client.Emails.Send(params); err != nil {
		return fmt.Errorf("send nudge email to %s: %w", r.Email, err)
	}
	return nil
}
