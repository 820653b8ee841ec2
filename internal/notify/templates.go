package notify

import (
	"fmt"
	"time"

	"github.com/bgaal/passhub/internal/models"
)

// BaseTemplate wraps the given content in the shared mail layout. Every
// outbound mail, default or customized, goes through it.
func BaseTemplate(title, content string) string {
	return fmt.Sprintf(`
    <html>
      <body style='font-family: Arial, sans-serif; background-color: #f5f5f5; padding: 20px;'>
        <div style='max-width: 600px; margin: auto; background: white; padding: 30px; border-radius: 8px;'>
          <h2 style='color: #2c3e50;'>%s</h2>
          <p style='color: #333;'>%s</p>
          <hr>
          <small style='color: #999;'>Ez egy automatikus üzenet a Bérletkezelő Rendszertől.</small>
        </div>
      </body>
    </html>
    `, title, content)
}

func RegistrationEmail(username, password string) string {
	content := fmt.Sprintf("Kedves %s,<br><br>Felhasználónév: %s<br>Jelszó: %s<br>", username, username, password)
	return BaseTemplate("Fiók létrehozva", content)
}

func UserDeletedEmail(username string) string {
	return BaseTemplate("Felhasználó törölve", fmt.Sprintf("%s törölve.", username))
}

func ForgotPasswordEmail(username, password string) string {
	content := fmt.Sprintf("Kedves %s,<br><br>A kért jelszó: %s<br>", username, password)
	return BaseTemplate("Elfelejtett jelszó", content)
}

func passDetails(p *models.Pass) string {
	comment := ""
	if p.Comment != "" {
		comment = "<br>Megjegyzés: " + p.Comment
	}
	return fmt.Sprintf(
		"Bérlet típusa: %s<br>Érvényesség: %s - %s<br>Felhasználás: %d/%d%s",
		p.Type,
		p.StartDate.Format("2006-01-02"),
		p.EndDate.Format("2006-01-02"),
		p.Used, p.TotalUses, comment,
	)
}

func PassCreatedEmail(p *models.Pass) string {
	return BaseTemplate("Új bérlet létrehozva", passDetails(p))
}

// PassDeletedEmail works from a snapshot: the pass row is gone by the time
// the mail is composed.
func PassDeletedEmail(passType string, start, end time.Time, used int) string {
	content := fmt.Sprintf(
		"Törölt bérlet: %s<br>%s - %s<br>Felhasználva: %d alkalom",
		passType, start.Format("2006-01-02"), end.Format("2006-01-02"), used,
	)
	return BaseTemplate("Bérlet törölve", content)
}

func PassUsedEmail(username string, p *models.Pass) string {
	content := fmt.Sprintf(
		"Kedves %s,<br>Felhasználtál egy alkalmat a(z) %s bérletedből.<br>Hátralévő alkalmak: %d.<br><br>%s",
		username, p.Type, p.Remaining(), passDetails(p),
	)
	return BaseTemplate("Bérlet használat", content)
}

func PassUsageRevertedEmail(username string, p *models.Pass) string {
	content := fmt.Sprintf(
		"Kedves %s,<br>Visszakaptál egy alkalmat a(z) %s bérletedbe.<br>Hátralévő alkalmak: %d.<br><br>%s",
		username, p.Type, p.Remaining(), passDetails(p),
	)
	return BaseTemplate("Bérlethasználat visszavonva", content)
}

func eventDetails(e *models.Event) string {
	return fmt.Sprintf("Esemény: %s<br>Időpont: %s", e.Name, e.FormattedTime())
}

func EventSignupUserEmail(username string, e *models.Event) string {
	content := fmt.Sprintf(
		"Kedves %s,<br><br>Sikeresen jelentkeztél a következő eseményre:<br>%s",
		username, eventDetails(e),
	)
	return BaseTemplate("Esemény jelentkezés", content)
}

func EventSignupAdminEmail(username string, e *models.Event) string {
	content := fmt.Sprintf(
		"Kedves %s,<br><br>Az admin regisztrált a következő eseményre:<br>%s",
		username, eventDetails(e),
	)
	return BaseTemplate("Esemény jelentkezés", content)
}

func EventUnregisterUserEmail(username string, e *models.Event) string {
	content := fmt.Sprintf(
		"Kedves %s,<br><br>Sikeresen leiratkoztál a következő eseményről:<br>%s",
		username, eventDetails(e),
	)
	return BaseTemplate("Esemény leiratkozás", content)
}

func EventUnregisterAdminEmail(username string, e *models.Event) string {
	content := fmt.Sprintf(
		"Kedves %s,<br><br>Az admin törölte a jelentkezésed a következő eseményről:<br>%s",
		username, eventDetails(e),
	)
	return BaseTemplate("Esemény leiratkozás", content)
}
