package utils

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

// Mailer sends clinic notification emails. All sends are best effort: failures
// are logged and must never fail the operation that triggered them.
type Mailer struct {
	host              string
	port              int
	user              string
	pass              string
	clinicEmail       string
	appointmentsEmail string
}

// NewMailer creates a Mailer from SMTP configuration.
func NewMailer(host string, port int, user, pass, clinicEmail, appointmentsEmail string) *Mailer {
	return &Mailer{
		host:              host,
		port:              port,
		user:              user,
		pass:              pass,
		clinicEmail:       clinicEmail,
		appointmentsEmail: appointmentsEmail,
	}
}

// SendAppointmentNotice emails the patient about an appointment event
// (confirmation, cancellation, reschedule) in the background.
func (m *Mailer) SendAppointmentNotice(to, patientName, subject, body string) {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.appointmentsEmail)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", fmt.Sprintf("Dear %s,\n\n%s\n\nDr. Ishita's Ayurveda Clinic", patientName, body))
	m.sendAsync(msg)
}

// SendClinicNotice emails the clinic inbox (contact form, consultation intake).
func (m *Mailer) SendClinicNotice(subject, body string) {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.appointmentsEmail)
	msg.SetHeader("To", m.clinicEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	m.sendAsync(msg)
}

func (m *Mailer) sendAsync(msg *gomail.Message) {
	// Unconfigured SMTP turns sends into no-ops.
	if m.host == "" {
		return
	}
	go func() {
		d := gomail.NewDialer(m.host, m.port, m.user, m.pass)
		if err := d.DialAndSend(msg); err != nil {
			log.Printf("Failed to send notification email: %v", err)
		}
	}()
}
