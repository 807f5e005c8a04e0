package service

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

const (
	resetEmailSubject = "Password reset request"

	resetEmailTemplate = `<h2>Hello {{.Name}}</h2>
<p>You have requested for a password reset</p>
<p>Please click the url below to reset your password</p>
<p>The link will expire in {{.ExpiresIn}}</p>
<a href="{{.ResetURL}}" clicktracking=off>{{.ResetURL}}</a>
<p>Best wishes...</p>
<p>Warehouse Wizard Team</p>
`

	contactEmailTemplate = `<p>{{.Message}}</p>
<p>From: {{.Name}} &lt;{{.Email}}&gt;</p>
`
)

var (
	resetEmail   = template.Must(template.New("reset").Parse(resetEmailTemplate))
	contactEmail = template.Must(template.New("contact").Parse(contactEmailTemplate))
)

type resetEmailData struct {
	Name      string
	ResetURL  string
	ExpiresIn string
}

type contactEmailData struct {
	Name    string
	Email   string
	Message string
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("error rendering %s email: %w", t.Name(), err)
	}
	return buf.String(), nil
}

// humanizeTTL spells out the lifetime of a reset link: 30m -> "thirty minutes".
func humanizeTTL(ttl time.Duration) string {
	switch {
	case ttl == 30*time.Minute:
		return "thirty minutes"
	case ttl == time.Hour:
		return "one hour"
	case ttl%time.Hour == 0:
		return fmt.Sprintf("%d hours", int64(ttl/time.Hour))
	case ttl%time.Minute == 0:
		return fmt.Sprintf("%d minutes", int64(ttl/time.Minute))
	default:
		return ttl.String()
	}
}
