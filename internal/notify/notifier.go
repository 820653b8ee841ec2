package notify

import (
	"context"
	"log"
	"regexp"

	"github.com/bgaal/passhub/internal/mailer"
	"github.com/bgaal/passhub/internal/models"
	"github.com/bgaal/passhub/internal/repository"
)

// Notifier resolves whether a configurable notification fires and with what
// body, then hands the result to the mail transport. Delivery is best-effort:
// Notify never returns an error, only whether a mail went out.
type Notifier struct {
	settings repository.SettingsRepository
	mailer   mailer.Mailer
	// Fallbacks used when the settings row carries no credentials.
	envFrom     string
	envPassword string
}

func NewNotifier(settings repository.SettingsRepository, m mailer.Mailer, envFrom, envPassword string) *Notifier {
	return &Notifier{
		settings:    settings,
		mailer:      m,
		envFrom:     envFrom,
		envPassword: envPassword,
	}
}

var firstParagraph = regexp.MustCompile(`(?s)<p[^>]*>(.*?)</p>`)

// extractContent pulls the inner text of the first paragraph out of a
// BaseTemplate-rendered body.
func extractContent(html string) string {
	if m := firstParagraph.FindStringSubmatch(html); m != nil {
		return m[1]
	}
	return ""
}

// Notify sends the mail for the given kind. With no settings row the default
// body goes out unmodified. A disabled (or unknown) kind is suppressed
// silently. Custom text is prepended to the default body's paragraph content
// and re-rendered in the shared template.
func (n *Notifier) Notify(ctx context.Context, kind models.NotificationKind, subject, defaultBody, recipient string) bool {
	settings, err := n.settings.Get(ctx)
	if err != nil {
		log.Printf("[Notifier] load settings: %v", err)
		return false
	}

	html := defaultBody
	if settings != nil {
		rule := settings.Rule(kind)
		if !rule.Enabled {
			return false
		}
		if rule.Text != "" {
			combined := rule.Text + "<br><br>" + extractContent(defaultBody)
			html = BaseTemplate(subject, combined)
		}
	}

	return n.send(settings, subject, html, recipient)
}

// SendDirect delivers a mail without consulting the per-kind table. The pass
// extension mail uses this path unconditionally.
func (n *Notifier) SendDirect(ctx context.Context, subject, html, recipient string) bool {
	settings, err := n.settings.Get(ctx)
	if err != nil {
		log.Printf("[Notifier] load settings: %v", err)
		return false
	}
	return n.send(settings, subject, html, recipient)
}

func (n *Notifier) send(settings *models.EmailSettings, subject, html, recipient string) bool {
	from, password := n.envFrom, n.envPassword
	if settings != nil {
		if settings.EmailFrom != "" {
			from = settings.EmailFrom
		}
		if settings.EmailPassword != "" {
			password = settings.EmailPassword
		}
	}

	if from == "" || password == "" {
		log.Println("[Notifier] email credentials are not configured")
		return false
	}

	if err := n.mailer.Send(subject, html, recipient, from, password); err != nil {
		log.Printf("[Notifier] send to %s: %v", recipient, err)
		return false
	}
	return true
}
