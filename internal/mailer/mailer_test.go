package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilMailerDropsMessages(t *testing.T) {
	var m *Mailer
	assert.NoError(t, m.Send("guest@example.com", "subject", "body"))
}

func TestNewWithoutHostReturnsNil(t *testing.T) {
	assert.Nil(t, New("", 587, "", "", "from@example.com"))
	assert.NotNil(t, New("smtp.example.com", 587, "u", "p", "from@example.com"))
}

func TestConfirmationBody(t *testing.T) {
	body := ConfirmationBody(ConfirmationData{
		FirstName:      "Jana",
		LastName:       "Novotná",
		DateFrom:       "2025-09-01",
		DateTo:         "2025-09-03",
		Nights:         2,
		Persons:        2,
		Pet:            true,
		RoomNames:      []string{"Pokoj 1", "Pokoj 2"},
		Total:          2200,
		VariableSymbol: "010925030925",
	})
	assert.Contains(t, body, "Jana Novotná")
	assert.Contains(t, body, "od 2025-09-01 do 2025-09-03 (2 nocí)")
	assert.Contains(t, body, "Pokoj 1, Pokoj 2")
	assert.Contains(t, body, "2200 Kč")
	assert.Contains(t, body, "010925030925")
	assert.Contains(t, body, "mazlíček")
}
