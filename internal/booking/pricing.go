package booking

import "github.com/pensionkladska/reservation-api/internal/model"

// Fee constants in CZK.  The person fee is charged per person per night,
// the pet fee per night whenever a pet stays.
const (
	PersonFeePerNight = 50.0
	PetFeePerNight    = 150.0
)

// StayTotal computes the standard stay price: the nightly sum of the given
// room prices times the night count, plus the person fee and, with a pet,
// the pet fee.  No rounding is applied here; totals are rounded to whole
// CZK only when persisted.
func StayTotal(roomPrices []float64, nights, persons int, pet bool) (float64, error) {
	if nights < 0 {
		return 0, ErrInvalidInterval
	}
	if len(roomPrices) == 0 {
		return 0, ErrEmptyRoomSelection
	}
	perNight := 0.0
	for _, p := range roomPrices {
		perNight += p
	}
	total := perNight*float64(nights) + float64(nights*persons)*PersonFeePerNight
	if pet {
		total += float64(nights) * PetFeePerNight
	}
	return total, nil
}

// ExtraItem is one ad-hoc line on a calculation review: an amount per night
// (negative for a discount) and a human label.
type ExtraItem struct {
	Amount float64 `json:"amount"`
	Label  string  `json:"label"`
}

// QuoteRoom is one room entering a calculation review.  CustomPrice, when
// set, replaces the catalog nightly price for this computation only.
type QuoteRoom struct {
	Room        model.Room
	CustomPrice *float64
}

// QuoteInput collects everything the calculation-review variant needs.
// Fee toggles let staff waive the person or pet fee entirely.
type QuoteInput struct {
	Rooms            []QuoteRoom
	Nights           int
	Persons          int
	Pet              bool
	IncludePersonFee bool
	IncludePetFee    bool
	Extras           []ExtraItem
}

// QuoteLine is one priced room in the resulting quote.
type QuoteLine struct {
	RoomID      uint64   `json:"room_id"`
	Name        string   `json:"name"`
	BasePrice   float64  `json:"base_price"`
	CustomPrice *float64 `json:"custom_price,omitempty"`
	UsedPrice   float64  `json:"used_price"`
}

// Quote is the full breakdown of a calculation review.
type Quote struct {
	Lines            []QuoteLine `json:"rooms"`
	Extras           []ExtraItem `json:"extra_items"`
	PerNightRooms    float64     `json:"per_night_rooms"`
	Fees             float64     `json:"fees"`
	ExtrasPerNight   float64     `json:"extras_per_night"`
	Nights           int         `json:"nights"`
	Total            float64     `json:"total"`
	IncludePersonFee bool        `json:"person_fee_included"`
	IncludePetFee    bool        `json:"pet_fee_included"`
}

// ComputeQuote runs the extended pricing variant used during the admin
// calculation review:
//
//	total = sum(usedPrice_i)*nights + fees + sum(extraAmount_j)*nights
//
// where usedPrice is the custom override when present and the catalog
// price otherwise, and fees contains the person fee (if enabled) and the
// pet fee (if enabled and a pet stays).
func ComputeQuote(in QuoteInput) (*Quote, error) {
	if in.Nights < 0 {
		return nil, ErrInvalidInterval
	}
	if len(in.Rooms) == 0 {
		return nil, ErrEmptyRoomSelection
	}

	q := &Quote{
		Extras:           in.Extras,
		Nights:           in.Nights,
		IncludePersonFee: in.IncludePersonFee,
		IncludePetFee:    in.IncludePetFee,
	}
	for _, qr := range in.Rooms {
		used := qr.Room.Price
		if qr.CustomPrice != nil {
			used = *qr.CustomPrice
		}
		q.PerNightRooms += used
		q.Lines = append(q.Lines, QuoteLine{
			RoomID:      qr.Room.ID,
			Name:        qr.Room.Name,
			BasePrice:   qr.Room.Price,
			CustomPrice: qr.CustomPrice,
			UsedPrice:   used,
		})
	}

	if in.IncludePersonFee {
		q.Fees += float64(in.Nights*in.Persons) * PersonFeePerNight
	}
	if in.Pet && in.IncludePetFee {
		q.Fees += float64(in.Nights) * PetFeePerNight
	}

	for _, ex := range in.Extras {
		q.ExtrasPerNight += ex.Amount
	}

	q.Total = q.PerNightRooms*float64(in.Nights) + q.Fees + q.ExtrasPerNight*float64(in.Nights)
	return q, nil
}
