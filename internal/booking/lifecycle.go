package booking

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/pensionkladska/reservation-api/internal/model"
)

// Store is the persistence surface the lifecycle transitions run against.
// The SQL implementation lives in the repository package and wraps a single
// transaction: every transition validates and writes inside one Store, and
// the caller commits only when the transition returns nil.  LockRooms must
// serialize concurrent transitions touching the same rooms (row locks), so
// the availability re-check and the assignment write cannot interleave with
// a conflicting request.  An availability check alone is never a
// correctness guarantee.
type Store interface {
	// RoomsByIDs returns the rooms for the given ids, in id order.  Missing
	// ids simply shorten the result.
	RoomsByIDs(ctx context.Context, ids []uint64) ([]model.Room, error)
	// LockRooms takes row locks on the given rooms for the duration of the
	// surrounding transaction.
	LockRooms(ctx context.Context, ids []uint64) error
	// RoomAvailable reports whether the room is free of conflicting
	// assignments over the inclusive interval, ignoring the reservation
	// with excludeReservationID (0 = exclude none).
	RoomAvailable(ctx context.Context, roomID uint64, from, to time.Time, excludeReservationID uint64) (bool, error)

	ReservationByID(ctx context.Context, id uint64) (*model.Reservation, error)
	InsertReservation(ctx context.Context, r *model.Reservation) error
	UpdateDatesAndTotal(ctx context.Context, id uint64, from, to time.Time, total float64) error
	MarkSolved(ctx context.Context, id uint64, total float64) error
	UpdateTotal(ctx context.Context, id uint64, total float64) error
	SetDeposit(ctx context.Context, id uint64, amount float64) error
	DeleteReservation(ctx context.Context, id uint64) error

	AssignedRoomIDs(ctx context.Context, reservationID uint64) ([]uint64, error)
	InsertAssignments(ctx context.Context, reservationID uint64, roomIDs []uint64) error
	DeleteAssignments(ctx context.Context, reservationID uint64) error
}

// RoundTotal rounds a computed total to whole currency units.  This is the
// only place rounding happens, immediately before persistence.
func RoundTotal(total float64) float64 {
	return math.Round(total)
}

// CreateInput carries a candidate reservation.  Accepted distinguishes a
// direct staff entry (solved immediately) from a public request.
type CreateInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Persons   int
	Pet       bool
	From      time.Time
	To        time.Time
	Note      string
	RoomIDs   []uint64
	Accepted  bool
	GdprAt    time.Time
}

// Result describes a completed transition for the caller: the persisted
// reservation, the rooms it now occupies and the charged totals.  It holds
// everything the confirmation notification needs.
type Result struct {
	Reservation *model.Reservation
	Rooms       []model.Room
	Nights      int
	Total       float64
}

// Create validates a candidate reservation and persists it together with
// one assignment per selected room.  All rooms are validated before
// anything is written; on failure nothing is persisted.  The stored total
// comes from StayTotal and is rounded at this point only.
func Create(ctx context.Context, s Store, in CreateInput) (*Result, error) {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" ||
		strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.Phone) == "" || in.Persons < 1 {
		return nil, ErrInvalidGuest
	}
	if Nights(in.From, in.To) < 0 {
		return nil, ErrInvalidInterval
	}
	rooms, err := validRooms(ctx, s, in.RoomIDs)
	if err != nil {
		return nil, err
	}
	if err := recheckAvailability(ctx, s, rooms, in.From, in.To, 0); err != nil {
		return nil, err
	}

	nights := Nights(in.From, in.To)
	total, err := StayTotal(prices(rooms), nights, in.Persons, in.Pet)
	if err != nil {
		return nil, err
	}

	res := &model.Reservation{
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		Phone:      in.Phone,
		Persons:    in.Persons,
		Pet:        in.Pet,
		DateFrom:   dayOf(in.From),
		DateTo:     dayOf(in.To),
		Note:       in.Note,
		Solved:     in.Accepted,
		TotalPrice: RoundTotal(total),
		GdprAt:     in.GdprAt,
	}
	if err := s.InsertReservation(ctx, res); err != nil {
		return nil, err
	}
	if err := s.InsertAssignments(ctx, res.ID, roomIDs(rooms)); err != nil {
		return nil, err
	}
	return &Result{Reservation: res, Rooms: rooms, Nights: nights, Total: res.TotalPrice}, nil
}

// Accept moves a pending reservation to accepted with the final room set.
// Availability is re-checked for every chosen room right before the
// assignment write; a conflict reports all conflicting rooms, not just the
// first.  Existing assignments (a public request may have recorded
// preferences) are replaced wholesale.
func Accept(ctx context.Context, s Store, reservationID uint64, selectedRoomIDs []uint64) (*Result, error) {
	res, err := s.ReservationByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, ErrReservationNotFound
	}
	rooms, err := validRooms(ctx, s, selectedRoomIDs)
	if err != nil {
		return nil, err
	}
	if err := recheckAvailability(ctx, s, rooms, res.DateFrom, res.DateTo, res.ID); err != nil {
		return nil, err
	}

	nights := Nights(res.DateFrom, res.DateTo)
	total, err := StayTotal(prices(rooms), nights, res.Persons, res.Pet)
	if err != nil {
		return nil, err
	}
	rounded := RoundTotal(total)

	if err := s.DeleteAssignments(ctx, res.ID); err != nil {
		return nil, err
	}
	if err := s.InsertAssignments(ctx, res.ID, roomIDs(rooms)); err != nil {
		return nil, err
	}
	if err := s.MarkSolved(ctx, res.ID, rounded); err != nil {
		return nil, err
	}
	res.Solved = true
	res.TotalPrice = rounded
	return &Result{Reservation: res, Rooms: rooms, Nights: nights, Total: rounded}, nil
}

// ChangeDates moves a reservation to a new interval.  Every currently
// assigned room is re-checked against the new dates with the reservation's
// own assignments excluded.  Dates and the recomputed total are written in
// one step so the reservation can never hold new dates with a stale price.
// The total always comes from current catalog prices; a custom price from
// an earlier calculation review does not survive a date change.
func ChangeDates(ctx context.Context, s Store, reservationID uint64, from, to time.Time) (*Result, error) {
	if Nights(from, to) < 0 {
		return nil, ErrInvalidInterval
	}
	res, err := s.ReservationByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, ErrReservationNotFound
	}
	assigned, err := s.AssignedRoomIDs(ctx, res.ID)
	if err != nil {
		return nil, err
	}
	rooms, err := validRooms(ctx, s, assigned)
	if err != nil {
		return nil, err
	}
	if err := recheckAvailability(ctx, s, rooms, from, to, res.ID); err != nil {
		return nil, err
	}

	nights := Nights(from, to)
	total, err := StayTotal(prices(rooms), nights, res.Persons, res.Pet)
	if err != nil {
		return nil, err
	}
	rounded := RoundTotal(total)
	if err := s.UpdateDatesAndTotal(ctx, res.ID, dayOf(from), dayOf(to), rounded); err != nil {
		return nil, err
	}
	res.DateFrom = dayOf(from)
	res.DateTo = dayOf(to)
	res.TotalPrice = rounded
	return &Result{Reservation: res, Rooms: rooms, Nights: nights, Total: rounded}, nil
}

// ChangeRooms replaces the reservation's room set for its existing dates.
// The new set is validated and re-checked (self-excluded) before the old
// assignments are dropped, then the total is recomputed from the new set.
func ChangeRooms(ctx context.Context, s Store, reservationID uint64, newRoomIDs []uint64) (*Result, error) {
	res, err := s.ReservationByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, ErrReservationNotFound
	}
	rooms, err := validRooms(ctx, s, newRoomIDs)
	if err != nil {
		return nil, err
	}
	if err := recheckAvailability(ctx, s, rooms, res.DateFrom, res.DateTo, res.ID); err != nil {
		return nil, err
	}

	nights := Nights(res.DateFrom, res.DateTo)
	total, err := StayTotal(prices(rooms), nights, res.Persons, res.Pet)
	if err != nil {
		return nil, err
	}
	rounded := RoundTotal(total)

	if err := s.DeleteAssignments(ctx, res.ID); err != nil {
		return nil, err
	}
	if err := s.InsertAssignments(ctx, res.ID, roomIDs(rooms)); err != nil {
		return nil, err
	}
	if err := s.UpdateTotal(ctx, res.ID, rounded); err != nil {
		return nil, err
	}
	res.TotalPrice = rounded
	return &Result{Reservation: res, Rooms: rooms, Nights: nights, Total: rounded}, nil
}

// Cancel removes a reservation and all its room assignments.  The freed
// rooms become available immediately.  Irreversible.
func Cancel(ctx context.Context, s Store, reservationID uint64) error {
	res, err := s.ReservationByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if res == nil {
		return ErrReservationNotFound
	}
	if err := s.DeleteAssignments(ctx, res.ID); err != nil {
		return err
	}
	return s.DeleteReservation(ctx, res.ID)
}

// RecordDeposit sets the amount paid so far.  It never touches availability
// or assignments.
func RecordDeposit(ctx context.Context, s Store, reservationID uint64, amount float64) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	res, err := s.ReservationByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if res == nil {
		return ErrReservationNotFound
	}
	return s.SetDeposit(ctx, res.ID, amount)
}

// MarkPaid sets the deposit equal to the persisted total.
func MarkPaid(ctx context.Context, s Store, reservationID uint64) error {
	res, err := s.ReservationByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if res == nil {
		return ErrReservationNotFound
	}
	return s.SetDeposit(ctx, res.ID, res.TotalPrice)
}

// CalculationInput selects the rooms and pricing knobs for a calculation
// review confirmation.  CustomPrices overrides nightly prices per room id;
// zero or negative overrides are ignored, matching the review form.
type CalculationInput struct {
	RoomIDs          []uint64
	CustomPrices     map[uint64]float64
	IncludePersonFee bool
	IncludePetFee    bool
	Extras           []ExtraItem
}

// BuildQuote computes the calculation-review quote for a reservation
// without persisting anything.  It powers the recalculation endpoint and
// the confirmation below.
func BuildQuote(res *model.Reservation, rooms []model.Room, in CalculationInput) (*Quote, error) {
	qin := QuoteInput{
		Nights:           Nights(res.DateFrom, res.DateTo),
		Persons:          res.Persons,
		Pet:              res.Pet,
		IncludePersonFee: in.IncludePersonFee,
		IncludePetFee:    in.IncludePetFee,
		Extras:           in.Extras,
	}
	for _, r := range rooms {
		qr := QuoteRoom{Room: r}
		if p, ok := in.CustomPrices[r.ID]; ok && p > 0 {
			override := p
			qr.CustomPrice = &override
		}
		qin.Rooms = append(qin.Rooms, qr)
	}
	return ComputeQuote(qin)
}

// ConfirmCalculation persists the outcome of a calculation review: the
// chosen rooms are re-checked (self-excluded) and assigned, the reservation
// is marked solved and the reviewed total is stored.  The returned quote
// carries the full breakdown for the confirmation notification.
func ConfirmCalculation(ctx context.Context, s Store, reservationID uint64, in CalculationInput) (*Result, *Quote, error) {
	res, err := s.ReservationByID(ctx, reservationID)
	if err != nil {
		return nil, nil, err
	}
	if res == nil {
		return nil, nil, ErrReservationNotFound
	}
	rooms, err := validRooms(ctx, s, in.RoomIDs)
	if err != nil {
		return nil, nil, err
	}
	quote, err := BuildQuote(res, rooms, in)
	if err != nil {
		return nil, nil, err
	}
	if err := recheckAvailability(ctx, s, rooms, res.DateFrom, res.DateTo, res.ID); err != nil {
		return nil, nil, err
	}

	rounded := RoundTotal(quote.Total)
	if err := s.DeleteAssignments(ctx, res.ID); err != nil {
		return nil, nil, err
	}
	if err := s.InsertAssignments(ctx, res.ID, roomIDs(rooms)); err != nil {
		return nil, nil, err
	}
	if err := s.MarkSolved(ctx, res.ID, rounded); err != nil {
		return nil, nil, err
	}
	res.Solved = true
	res.TotalPrice = rounded
	return &Result{Reservation: res, Rooms: rooms, Nights: quote.Nights, Total: rounded}, quote, nil
}

// validRooms deduplicates the requested ids, loads the rooms and fails when
// the selection is empty or references an unknown room.
func validRooms(ctx context.Context, s Store, ids []uint64) ([]model.Room, error) {
	unique := make([]uint64, 0, len(ids))
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
	}
	if len(unique) == 0 {
		return nil, ErrEmptyRoomSelection
	}
	rooms, err := s.RoomsByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(rooms) != len(unique) {
		return nil, ErrInvalidRoom
	}
	return rooms, nil
}

// recheckAvailability locks the rooms and re-runs the availability check
// inside the current transaction, immediately before any assignment write.
// This is the server-side re-check that closes the window between an
// earlier UI check and the commit.
func recheckAvailability(ctx context.Context, s Store, rooms []model.Room, from, to time.Time, excludeReservationID uint64) error {
	if err := s.LockRooms(ctx, roomIDs(rooms)); err != nil {
		return err
	}
	var conflicting []string
	for _, r := range rooms {
		ok, err := s.RoomAvailable(ctx, r.ID, from, to, excludeReservationID)
		if err != nil {
			return err
		}
		if !ok {
			conflicting = append(conflicting, r.Name)
		}
	}
	if len(conflicting) > 0 {
		return &RoomUnavailableError{Rooms: conflicting}
	}
	return nil
}

func prices(rooms []model.Room) []float64 {
	out := make([]float64, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.Price)
	}
	return out
}

func roomIDs(rooms []model.Room) []uint64 {
	out := make([]uint64, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.ID)
	}
	return out
}
