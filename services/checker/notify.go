package checker

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"net/url"
	"os/exec"
	"strings"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel/codes"
)

// Notifier formats and dispatches the new-show digest. It is a pure
// consumer of the dedup tracker's output.
type Notifier struct {
	smtp            SmtpConfig
	to              string
	showsPageUrl    string
	denylistEditUrl string
}

func NewNotifier(cfg Config) Notifier {
	return Notifier{
		smtp:            cfg.Smtp,
		to:              cfg.NotificationEmail,
		showsPageUrl:    cfg.ShowsPageUrl,
		denylistEditUrl: cfg.Denylist.GistEditUrl,
	}
}

// Enabled reports whether email can be sent at all. A missing SMTP
// password degrades to no email rather than a failed run.
func (n Notifier) Enabled() bool {
	return n.smtp.Password != "" && n.to != ""
}

// a prefilled chat prompt asking whether the show is worth seeing
func chatPromptLink(show Show) string {
	prompt := fmt.Sprintf("I'm considering going to see '%s' in Las Vegas", show.Name)
	if show.Date != "" {
		prompt += fmt.Sprintf(" on %s", show.Date)
	}
	prompt += ". Is this show good? What can you tell me about it? Should I go see it? What should I expect?"
	return "https://chat.openai.com/?q=" + url.QueryEscape(prompt)
}

func sourceColor(source Source) string {
	if source == SourceHouseSeats {
		return "#3498db"
	}
	return "#27ae60"
}

func (n Notifier) textBody(newShows []Show) string {
	var b strings.Builder
	b.WriteString("New Shows Available!\n\n")
	for _, show := range newShows {
		marker := ""
		if show.Rare {
			marker = " (rare)"
		}
		fmt.Fprintf(&b, "- [%s] %s - %s%s\n", show.Source, show.Name, show.Date, marker)
		fmt.Fprintf(&b, "  Tickets: %s\n", show.Link)
		fmt.Fprintf(&b, "  Ask ChatGPT: %s\n\n", chatPromptLink(show))
	}
	fmt.Fprintf(&b, "\nView All Shows: %s\n", n.showsPageUrl)
	fmt.Fprintf(&b, "Edit Denylist: %s\n", n.denylistEditUrl)
	return b.String()
}

func (n Notifier) htmlBody(newShows []Show) string {
	var b strings.Builder
	b.WriteString(`<html>
<body style="font-family: Arial, sans-serif;">
<h2 style="color: #e74c3c;">🎭 New Shows Available!</h2>
<p>The following new shows are now available:</p>
<table style="border-collapse: collapse; width: 100%;">
<tr style="background-color: #f8f9fa;">
<th style="padding: 10px; text-align: left; border-bottom: 2px solid #dee2e6;">Source</th>
<th style="padding: 10px; text-align: left; border-bottom: 2px solid #dee2e6;">Show</th>
<th style="padding: 10px; text-align: left; border-bottom: 2px solid #dee2e6;">Date</th>
<th style="padding: 10px; text-align: left; border-bottom: 2px solid #dee2e6;">Tickets</th>
<th style="padding: 10px; text-align: left; border-bottom: 2px solid #dee2e6;">Ask ChatGPT</th>
</tr>
`)

	const cell = `<td style="padding: 10px; border-bottom: 1px solid #dee2e6;">%s</td>`
	for _, show := range newShows {
		name := show.Name
		if show.Rare {
			name += " ⭐"
		}
		b.WriteString("<tr>")
		fmt.Fprintf(&b, cell, fmt.Sprintf(
			`<span style="color: %s; font-weight: bold;">%s</span>`,
			sourceColor(show.Source), show.Source,
		))
		fmt.Fprintf(&b, cell, "<strong>"+name+"</strong>")
		fmt.Fprintf(&b, cell, show.Date)
		fmt.Fprintf(&b, cell, fmt.Sprintf(`<a href="%s">View Tickets</a>`, show.Link))
		fmt.Fprintf(&b, cell, fmt.Sprintf(`<a href="%s">🤖 Should I go?</a>`, chatPromptLink(show)))
		b.WriteString("</tr>\n")
	}

	fmt.Fprintf(&b, `</table>
<p style="margin-top: 20px;">
<a href="%s" style="background-color: #3498db; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; margin-right: 10px;">📋 View All Shows</a>
<a href="%s" style="background-color: #6c757d; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">✏️ Edit Denylist</a>
</p>
<p style="margin-top: 20px; color: #6c757d; font-size: 12px;">
This is an automated message from ShowScout (HouseSeats + 1stTix).
</p>
</body>
</html>`, n.showsPageUrl, n.denylistEditUrl)
	return b.String()
}

// SendEmail dispatches the digest for newShows. The caller marks the
// shows notified regardless of the outcome.
func (n Notifier) SendEmail(ctx context.Context, newShows []Show) error {
	ctx, span := tracer.Start(ctx, "notifier:SendEmail")
	defer span.End()

	if len(newShows) == 0 {
		return nil
	}

	mail := email.NewEmail()
	mail.From = fmt.Sprintf("ShowScout <%s>", n.smtp.EmailAddress)
	mail.To = []string{n.to}
	mail.Subject = fmt.Sprintf("🎭 Shows Alert: %d New Show(s) Available!", len(newShows))
	mail.Text = []byte(n.textBody(newShows))
	mail.HTML = []byte(n.htmlBody(newShows))

	addr := fmt.Sprintf("%s:%d", n.smtp.Server, n.smtp.Port)
	err := mail.Send(addr, smtp.PlainAuth("", n.smtp.EmailAddress, n.smtp.Password, n.smtp.Server))
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = mail.Send(addr, nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send email")
		return err
	}

	return nil
}

// DesktopAlert posts a macOS notification-center alert. Best effort:
// on hosts without osascript it silently does nothing.
func (n Notifier) DesktopAlert(ctx context.Context, shows []Show) {
	osascript, err := exec.LookPath("osascript")
	if err != nil {
		return
	}

	var message string
	if len(shows) > 0 {
		var names []string
		for _, show := range shows[:min(3, len(shows))] {
			name := show.Name
			if len(name) > 30 {
				name = name[:30]
			}
			names = append(names, name)
		}
		message = fmt.Sprintf("%d shows available: %s...", len(shows), strings.Join(names, ", "))
	} else {
		message = "No shows available (or all filtered)"
	}

	script := fmt.Sprintf(`display notification %q with title "ShowScout"`, message)
	cmd := exec.CommandContext(ctx, osascript, "-e", script)
	if err := cmd.Run(); err != nil {
		slog.WarnContext(ctx, "failed to post desktop notification", "err", err)
	}
}
