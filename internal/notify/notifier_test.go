package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/bgaal/passhub/internal/models"
	"github.com/stretchr/testify/assert"
)

type mockSettingsRepo struct {
	getFn func(ctx context.Context) (*models.EmailSettings, error)
}

func (m *mockSettingsRepo) Get(ctx context.Context) (*models.EmailSettings, error) {
	return m.getFn(ctx)
}
func (m *mockSettingsRepo) GetOrCreate(ctx context.Context) (*models.EmailSettings, error) {
	return m.getFn(ctx)
}
func (m *mockSettingsRepo) Save(ctx context.Context, settings *models.EmailSettings) error {
	return nil
}

type sentMail struct {
	subject, body, to, from string
}

type mockMailer struct {
	sent []sentMail
	err  error
}

func (m *mockMailer) Send(subject, htmlBody, to, from, password string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{subject, htmlBody, to, from})
	return nil
}

func TestNotify_NoSettingsRow(t *testing.T) {
	repo := &mockSettingsRepo{getFn: func(ctx context.Context) (*models.EmailSettings, error) {
		return nil, nil
	}}
	m := &mockMailer{}
	n := NewNotifier(repo, m, "env@example.com", "envpass")

	body := BaseTemplate("Teszt", "eredeti tartalom")
	ok := n.Notify(context.Background(), models.KindPassUsed, "Teszt", body, "user@example.com")

	assert.True(t, ok)
	assert.Len(t, m.sent, 1)
	assert.Equal(t, body, m.sent[0].body)
	assert.Equal(t, "env@example.com", m.sent[0].from)
}

func TestNotify_DisabledKindSuppressed(t *testing.T) {
	repo := &mockSettingsRepo{getFn: func(ctx context.Context) (*models.EmailSettings, error) {
		return &models.EmailSettings{
			EmailFrom:       "cfg@example.com",
			EmailPassword:   "cfgpass",
			PassUsedEnabled: false,
		}, nil
	}}
	m := &mockMailer{}
	n := NewNotifier(repo, m, "", "")

	ok := n.Notify(context.Background(), models.KindPassUsed, "Teszt",
		BaseTemplate("Teszt", "x"), "user@example.com")

	assert.False(t, ok)
	assert.Empty(t, m.sent)
}

func TestNotify_CustomTextPrepended(t *testing.T) {
	repo := &mockSettingsRepo{getFn: func(ctx context.Context) (*models.EmailSettings, error) {
		return &models.EmailSettings{
			EmailFrom:       "cfg@example.com",
			EmailPassword:   "cfgpass",
			PassUsedEnabled: true,
			PassUsedText:    "Kedves vendégünk!",
		}, nil
	}}
	m := &mockMailer{}
	n := NewNotifier(repo, m, "", "")

	body := BaseTemplate("Bérlet használat", "eredeti tartalom")
	ok := n.Notify(context.Background(), models.KindPassUsed, "Bérlet használat", body, "user@example.com")

	assert.True(t, ok)
	assert.Len(t, m.sent, 1)
	assert.Contains(t, m.sent[0].body, "Kedves vendégünk!<br><br>eredeti tartalom")
	// Settings credentials win over the env fallback.
	assert.Equal(t, "cfg@example.com", m.sent[0].from)
}

func TestNotify_EnabledWithoutText(t *testing.T) {
	repo := &mockSettingsRepo{getFn: func(ctx context.Context) (*models.EmailSettings, error) {
		return &models.EmailSettings{
			EmailFrom:       "cfg@example.com",
			EmailPassword:   "cfgpass",
			PassUsedEnabled: true,
		}, nil
	}}
	m := &mockMailer{}
	n := NewNotifier(repo, m, "", "")

	body := BaseTemplate("Teszt", "eredeti tartalom")
	ok := n.Notify(context.Background(), models.KindPassUsed, "Teszt", body, "user@example.com")

	assert.True(t, ok)
	assert.Equal(t, body, m.sent[0].body)
}

func TestNotify_MissingCredentials(t *testing.T) {
	repo := &mockSettingsRepo{getFn: func(ctx context.Context) (*models.EmailSettings, error) {
		return nil, nil
	}}
	m := &mockMailer{}
	n := NewNotifier(repo, m, "", "")

	ok := n.Notify(context.Background(), models.KindPassUsed, "Teszt",
		BaseTemplate("Teszt", "x"), "user@example.com")

	assert.False(t, ok)
	assert.Empty(t, m.sent)
}

func TestSendDirect_IgnoresKindTable(t *testing.T) {
	// Every kind disabled, yet the direct path still delivers.
	repo := &mockSettingsRepo{getFn: func(ctx context.Context) (*models.EmailSettings, error) {
		return &models.EmailSettings{
			EmailFrom:     "cfg@example.com",
			EmailPassword: "cfgpass",
		}, nil
	}}
	m := &mockMailer{}
	n := NewNotifier(repo, m, "", "")

	ok := n.SendDirect(context.Background(), "Bérlet hosszabbítva",
		BaseTemplate("Bérlet hosszabbítva", "x"), "user@example.com")

	assert.True(t, ok)
	assert.Len(t, m.sent, 1)
}

func TestNotify_MailerFailureSwallowed(t *testing.T) {
	repo := &mockSettingsRepo{getFn: func(ctx context.Context) (*models.EmailSettings, error) {
		return nil, nil
	}}
	m := &mockMailer{err: errors.New("smtp down")}
	n := NewNotifier(repo, m, "env@example.com", "envpass")

	ok := n.Notify(context.Background(), models.KindPassUsed, "Teszt",
		BaseTemplate("Teszt", "x"), "user@example.com")

	assert.False(t, ok)
}

func TestExtractContent(t *testing.T) {
	body := BaseTemplate("Cím", "belső szöveg")
	assert.Equal(t, "belső szöveg", extractContent(body))

	assert.Empty(t, extractContent("no paragraphs here"))
}
