// Package mailer sends guest-facing e-mail over SMTP.
package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

// Mailer wraps an SMTP dialer.  A nil *Mailer is valid and drops every
// message, which keeps local setups without an SMTP server working.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// New builds a Mailer, or nil when no SMTP host is configured.
func New(host string, port int, user, pass, from string) *Mailer {
	if host == "" {
		return nil
	}
	return &Mailer{dialer: gomail.NewDialer(host, port, user, pass), from: from}
}

// Send delivers a plain-text message.  On a nil Mailer it reports the
// message as skipped without error.
func (m *Mailer) Send(to, subject, body string) error {
	if m == nil {
		return nil
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}

// ConfirmationBody renders the confirmation e-mail for an accepted stay.
// Kept here so the queue consumer and tests share one template.
type ConfirmationData struct {
	FirstName      string
	LastName       string
	DateFrom       string
	DateTo         string
	Nights         int
	Persons        int
	Pet            bool
	RoomNames      []string
	Total          float64
	VariableSymbol string
}

// ConfirmationSubject is the subject line of stay confirmations.
const ConfirmationSubject = "Potvrzení rezervace – Pension Kladská"

// ConfirmationBody renders the plain-text confirmation message.
func ConfirmationBody(d ConfirmationData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dobrý den, %s %s,\n\n", d.FirstName, d.LastName)
	fmt.Fprintf(&b, "potvrzujeme Vaši rezervaci ubytování od %s do %s (%d nocí).\n", d.DateFrom, d.DateTo, d.Nights)
	fmt.Fprintf(&b, "Pokoje: %s\n", strings.Join(d.RoomNames, ", "))
	fmt.Fprintf(&b, "Počet osob: %d\n", d.Persons)
	if d.Pet {
		b.WriteString("Domácí mazlíček: ano\n")
	}
	fmt.Fprintf(&b, "\nCelková cena: %.0f Kč\n", d.Total)
	fmt.Fprintf(&b, "Variabilní symbol pro platbu: %s\n", d.VariableSymbol)
	b.WriteString("\nTěšíme se na Vaši návštěvu.\nPension Kladská")
	return b.String()
}
