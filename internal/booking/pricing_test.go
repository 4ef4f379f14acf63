package booking

import (
	"testing"

	"github.com/pensionkladska/reservation-api/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestStayTotal(t *testing.T) {
	tests := []struct {
		name    string
		prices  []float64
		nights  int
		persons int
		pet     bool
		want    float64
	}{
		{"two persons two nights no pet", []float64{1000}, 2, 2, false, 2200},
		{"pet stay", []float64{500}, 3, 1, true, 2100},
		{"two rooms", []float64{800, 600}, 2, 3, false, 3100},
		{"zero nights charges nothing", []float64{1000}, 0, 2, true, 0},
		{"zero persons", []float64{1000}, 2, 0, false, 2000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StayTotal(tt.prices, tt.nights, tt.persons, tt.pet)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStayTotalErrors(t *testing.T) {
	_, err := StayTotal([]float64{1000}, -1, 2, false)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = StayTotal(nil, 2, 2, false)
	assert.ErrorIs(t, err, ErrEmptyRoomSelection)
}

func floatPtr(f float64) *float64 { return &f }

func TestComputeQuote(t *testing.T) {
	roomA := model.Room{ID: 1, Name: "Pokoj 1", Price: 1000}

	t.Run("override and discount", func(t *testing.T) {
		q, err := ComputeQuote(QuoteInput{
			Rooms:            []QuoteRoom{{Room: roomA, CustomPrice: floatPtr(800)}},
			Nights:           2,
			Persons:          2,
			Pet:              false,
			IncludePersonFee: false,
			IncludePetFee:    false,
			Extras:           []ExtraItem{{Amount: -200, Label: "sleva"}},
		})
		assert.NoError(t, err)
		// 800*2 + 0 + (-200*2)
		assert.Equal(t, 1200.0, q.Total)
		assert.Equal(t, 800.0, q.Lines[0].UsedPrice)
		assert.Equal(t, 1000.0, q.Lines[0].BasePrice)
	})

	t.Run("catalog price and fees", func(t *testing.T) {
		q, err := ComputeQuote(QuoteInput{
			Rooms:            []QuoteRoom{{Room: roomA}},
			Nights:           2,
			Persons:          2,
			Pet:              true,
			IncludePersonFee: true,
			IncludePetFee:    true,
		})
		assert.NoError(t, err)
		// 1000*2 + 2*2*50 + 2*150
		assert.Equal(t, 2500.0, q.Total)
		assert.Equal(t, 500.0, q.Fees)
	})

	t.Run("pet fee needs both the toggle and a pet", func(t *testing.T) {
		q, err := ComputeQuote(QuoteInput{
			Rooms:         []QuoteRoom{{Room: roomA}},
			Nights:        2,
			Persons:       1,
			Pet:           false,
			IncludePetFee: true,
		})
		assert.NoError(t, err)
		assert.Equal(t, 2000.0, q.Total)
	})

	t.Run("empty selection", func(t *testing.T) {
		_, err := ComputeQuote(QuoteInput{Nights: 2, Persons: 1})
		assert.ErrorIs(t, err, ErrEmptyRoomSelection)
	})

	t.Run("negative nights", func(t *testing.T) {
		_, err := ComputeQuote(QuoteInput{Rooms: []QuoteRoom{{Room: roomA}}, Nights: -1})
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})
}

// The quote keeps fractional values intact; rounding happens once, at
// persistence time.
func TestRoundTotalOnlyAtPersistence(t *testing.T) {
	q, err := ComputeQuote(QuoteInput{
		Rooms:  []QuoteRoom{{Room: model.Room{ID: 1, Name: "A", Price: 333.33}}},
		Nights: 3,
	})
	assert.NoError(t, err)
	assert.InDelta(t, 999.99, q.Total, 1e-9)
	assert.Equal(t, 1000.0, RoundTotal(q.Total))
}
