package booking

import (
	"context"
	"testing"
	"time"

	"github.com/pensionkladska/reservation-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) RoomsByIDs(ctx context.Context, ids []uint64) ([]model.Room, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]model.Room), args.Error(1)
}
func (m *mockStore) LockRooms(ctx context.Context, ids []uint64) error {
	return m.Called(ctx, ids).Error(0)
}
func (m *mockStore) RoomAvailable(ctx context.Context, roomID uint64, from, to time.Time, excludeReservationID uint64) (bool, error) {
	args := m.Called(ctx, roomID, from, to, excludeReservationID)
	return args.Bool(0), args.Error(1)
}
func (m *mockStore) ReservationByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}
func (m *mockStore) InsertReservation(ctx context.Context, r *model.Reservation) error {
	return m.Called(ctx, r).Error(0)
}
func (m *mockStore) UpdateDatesAndTotal(ctx context.Context, id uint64, from, to time.Time, total float64) error {
	return m.Called(ctx, id, from, to, total).Error(0)
}
func (m *mockStore) MarkSolved(ctx context.Context, id uint64, total float64) error {
	return m.Called(ctx, id, total).Error(0)
}
func (m *mockStore) UpdateTotal(ctx context.Context, id uint64, total float64) error {
	return m.Called(ctx, id, total).Error(0)
}
func (m *mockStore) SetDeposit(ctx context.Context, id uint64, amount float64) error {
	return m.Called(ctx, id, amount).Error(0)
}
func (m *mockStore) DeleteReservation(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockStore) AssignedRoomIDs(ctx context.Context, reservationID uint64) ([]uint64, error) {
	args := m.Called(ctx, reservationID)
	return args.Get(0).([]uint64), args.Error(1)
}
func (m *mockStore) InsertAssignments(ctx context.Context, reservationID uint64, roomIDs []uint64) error {
	return m.Called(ctx, reservationID, roomIDs).Error(0)
}
func (m *mockStore) DeleteAssignments(ctx context.Context, reservationID uint64) error {
	return m.Called(ctx, reservationID).Error(0)
}

var (
	roomA = model.Room{ID: 1, Name: "Pokoj 1", Price: 1000}
	roomB = model.Room{ID: 2, Name: "Pokoj 2", Price: 500}
)

func acceptedReservation() *model.Reservation {
	return &model.Reservation{
		ID:        7,
		FirstName: "Jana",
		LastName:  "Novotná",
		Email:     "jana@example.com",
		Phone:     "+420777111222",
		Persons:   2,
		DateFrom:  day(2025, time.September, 1),
		DateTo:    day(2025, time.September, 3),
		Solved:    true,
	}
}

func createInput() CreateInput {
	return CreateInput{
		FirstName: "Jana",
		LastName:  "Novotná",
		Email:     "jana@example.com",
		Phone:     "+420777111222",
		Persons:   2,
		From:      day(2025, time.September, 1),
		To:        day(2025, time.September, 3),
		RoomIDs:   []uint64{1},
		Accepted:  true,
		GdprAt:    time.Now().UTC(),
	}
}

func TestCreateComputesTotal(t *testing.T) {
	s := new(mockStore)
	s.On("RoomsByIDs", mock.Anything, []uint64{1}).Return([]model.Room{roomA}, nil)
	s.On("LockRooms", mock.Anything, []uint64{1}).Return(nil)
	s.On("RoomAvailable", mock.Anything, uint64(1), mock.Anything, mock.Anything, uint64(0)).Return(true, nil)
	s.On("InsertReservation", mock.Anything, mock.MatchedBy(func(r *model.Reservation) bool {
		// 1000*2 + 2*2*50
		return r.TotalPrice == 2200 && r.Solved
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Reservation).ID = 7
	}).Return(nil)
	s.On("InsertAssignments", mock.Anything, uint64(7), []uint64{1}).Return(nil)

	res, err := Create(context.Background(), s, createInput())
	assert.NoError(t, err)
	assert.Equal(t, 2200.0, res.Total)
	assert.Equal(t, 2, res.Nights)
	assert.Equal(t, uint64(7), res.Reservation.ID)
	s.AssertExpectations(t)
}

func TestCreateRejectsUnavailableRoomWithoutWrites(t *testing.T) {
	s := new(mockStore)
	s.On("RoomsByIDs", mock.Anything, []uint64{1}).Return([]model.Room{roomA}, nil)
	s.On("LockRooms", mock.Anything, []uint64{1}).Return(nil)
	// overlap on 09-02/09-03 under the inclusive rule
	s.On("RoomAvailable", mock.Anything, uint64(1), mock.Anything, mock.Anything, uint64(0)).Return(false, nil)

	in := createInput()
	in.From = day(2025, time.September, 2)
	in.To = day(2025, time.September, 4)
	_, err := Create(context.Background(), s, in)

	var unavailable *RoomUnavailableError
	assert.ErrorAs(t, err, &unavailable)
	assert.Equal(t, []string{"Pokoj 1"}, unavailable.Rooms)
	s.AssertNotCalled(t, "InsertReservation", mock.Anything, mock.Anything)
	s.AssertNotCalled(t, "InsertAssignments", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateValidation(t *testing.T) {
	s := new(mockStore)

	in := createInput()
	in.Email = ""
	_, err := Create(context.Background(), s, in)
	assert.ErrorIs(t, err, ErrInvalidGuest)

	in = createInput()
	in.From, in.To = in.To.AddDate(0, 0, 5), in.From
	_, err = Create(context.Background(), s, in)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	in = createInput()
	in.RoomIDs = nil
	_, err = Create(context.Background(), s, in)
	assert.ErrorIs(t, err, ErrEmptyRoomSelection)

	s.On("RoomsByIDs", mock.Anything, []uint64{1, 99}).Return([]model.Room{roomA}, nil)
	in = createInput()
	in.RoomIDs = []uint64{1, 99, 1}
	_, err = Create(context.Background(), s, in)
	assert.ErrorIs(t, err, ErrInvalidRoom)
}

func TestAcceptListsEveryConflictingRoom(t *testing.T) {
	s := new(mockStore)
	s.On("ReservationByID", mock.Anything, uint64(7)).Return(acceptedReservation(), nil)
	s.On("RoomsByIDs", mock.Anything, []uint64{1, 2}).Return([]model.Room{roomA, roomB}, nil)
	s.On("LockRooms", mock.Anything, []uint64{1, 2}).Return(nil)
	s.On("RoomAvailable", mock.Anything, uint64(1), mock.Anything, mock.Anything, uint64(7)).Return(false, nil)
	s.On("RoomAvailable", mock.Anything, uint64(2), mock.Anything, mock.Anything, uint64(7)).Return(false, nil)

	_, err := Accept(context.Background(), s, 7, []uint64{1, 2})

	var unavailable *RoomUnavailableError
	assert.ErrorAs(t, err, &unavailable)
	assert.Equal(t, []string{"Pokoj 1", "Pokoj 2"}, unavailable.Rooms)
	s.AssertNotCalled(t, "MarkSolved", mock.Anything, mock.Anything, mock.Anything)
	s.AssertNotCalled(t, "InsertAssignments", mock.Anything, mock.Anything, mock.Anything)
}

func TestAcceptAssignsRoomsAndPersistsTotal(t *testing.T) {
	res := acceptedReservation()
	res.Solved = false
	res.Pet = true
	res.Persons = 1
	res.DateTo = day(2025, time.September, 4) // 3 nights

	s := new(mockStore)
	s.On("ReservationByID", mock.Anything, uint64(7)).Return(res, nil)
	s.On("RoomsByIDs", mock.Anything, []uint64{2}).Return([]model.Room{roomB}, nil)
	s.On("LockRooms", mock.Anything, []uint64{2}).Return(nil)
	s.On("RoomAvailable", mock.Anything, uint64(2), mock.Anything, mock.Anything, uint64(7)).Return(true, nil)
	s.On("DeleteAssignments", mock.Anything, uint64(7)).Return(nil)
	s.On("InsertAssignments", mock.Anything, uint64(7), []uint64{2}).Return(nil)
	// 500*3 + 3*1*50 + 3*150
	s.On("MarkSolved", mock.Anything, uint64(7), 2100.0).Return(nil)

	out, err := Accept(context.Background(), s, 7, []uint64{2})
	assert.NoError(t, err)
	assert.True(t, out.Reservation.Solved)
	assert.Equal(t, 2100.0, out.Total)
	s.AssertExpectations(t)
}

func TestAcceptUnknownReservation(t *testing.T) {
	s := new(mockStore)
	s.On("ReservationByID", mock.Anything, uint64(404)).Return(nil, nil)
	_, err := Accept(context.Background(), s, 404, []uint64{1})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestChangeDatesConflictLeavesReservationUnmodified(t *testing.T) {
	s := new(mockStore)
	s.On("ReservationByID", mock.Anything, uint64(7)).Return(acceptedReservation(), nil)
	s.On("AssignedRoomIDs", mock.Anything, uint64(7)).Return([]uint64{1}, nil)
	s.On("RoomsByIDs", mock.Anything, []uint64{1}).Return([]model.Room{roomA}, nil)
	s.On("LockRooms", mock.Anything, []uint64{1}).Return(nil)
	s.On("RoomAvailable", mock.Anything, uint64(1), mock.Anything, mock.Anything, uint64(7)).Return(false, nil)

	_, err := ChangeDates(context.Background(), s, 7, day(2025, time.September, 10), day(2025, time.September, 12))

	var unavailable *RoomUnavailableError
	assert.ErrorAs(t, err, &unavailable)
	// neither dates nor price may be touched on a rejected transition
	s.AssertNotCalled(t, "UpdateDatesAndTotal", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.AssertNotCalled(t, "UpdateTotal", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeDatesUpdatesDatesAndPriceTogether(t *testing.T) {
	s := new(mockStore)
	s.On("ReservationByID", mock.Anything, uint64(7)).Return(acceptedReservation(), nil)
	s.On("AssignedRoomIDs", mock.Anything, uint64(7)).Return([]uint64{1}, nil)
	s.On("RoomsByIDs", mock.Anything, []uint64{1}).Return([]model.Room{roomA}, nil)
	s.On("LockRooms", mock.Anything, []uint64{1}).Return(nil)
	s.On("RoomAvailable", mock.Anything, uint64(1), mock.Anything, mock.Anything, uint64(7)).Return(true, nil)
	newFrom, newTo := day(2025, time.September, 10), day(2025, time.September, 13)
	// 1000*3 + 3*2*50
	s.On("UpdateDatesAndTotal", mock.Anything, uint64(7), newFrom, newTo, 3300.0).Return(nil)

	out, err := ChangeDates(context.Background(), s, 7, newFrom, newTo)
	assert.NoError(t, err)
	assert.Equal(t, newFrom, out.Reservation.DateFrom)
	assert.Equal(t, 3300.0, out.Reservation.TotalPrice)
	s.AssertExpectations(t)
}

func TestChangeDatesRejectsInvertedInterval(t *testing.T) {
	s := new(mockStore)
	_, err := ChangeDates(context.Background(), s, 7, day(2025, time.September, 12), day(2025, time.September, 10))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestChangeRoomsReplacesAssignments(t *testing.T) {
	s := new(mockStore)
	s.On("ReservationByID", mock.Anything, uint64(7)).Return(acceptedReservation(), nil)
	s.On("RoomsByIDs", mock.Anything, []uint64{2}).Return([]model.Room{roomB}, nil)
	s.On("LockRooms", mock.Anything, []uint64{2}).Return(nil)
	s.On("RoomAvailable", mock.Anything, uint64(2), mock.Anything, mock.Anything, uint64(7)).Return(true, nil)
	s.On("DeleteAssignments", mock.Anything, uint64(7)).Return(nil)
	s.On("InsertAssignments", mock.Anything, uint64(7), []uint64{2}).Return(nil)
	// 500*2 + 2*2*50
	s.On("UpdateTotal", mock.Anything, uint64(7), 1200.0).Return(nil)

	out, err := ChangeRooms(context.Background(), s, 7, []uint64{2})
	assert.NoError(t, err)
	assert.Equal(t, 1200.0, out.Total)
	s.AssertExpectations(t)
}

func TestChangeRoomsConflictMutatesNothing(t *testing.T) {
	s := new(mockStore)
	s.On("ReservationByID", mock.Anything, uint64(7)).Return(acceptedReservation(), nil)
	s.On("RoomsByIDs", mock.Anything, []uint64{2}).Return([]model.Room{roomB}, nil)
	s.On("LockRooms", mock.Anything, []uint64{2}).Return(nil)
	s.On("RoomAvailable", mock.Anything, uint64(2), mock.Anything, mock.Anything, uint64(7)).Return(false, nil)

	_, err := ChangeRooms(context.Background(), s, 7, []uint64{2})

	var unavailable *RoomUnavailableError
	assert.ErrorAs(t, err, &unavailable)
	s.AssertNotCalled(t, "DeleteAssignments", mock.Anything, mock.Anything)
	s.AssertNotCalled(t, "InsertAssignments", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelRemovesAssignmentsThenReservation(t *testing.T) {
	s := new(mockStore)
	s.On("ReservationByID", mock.Anything, uint64(7)).Return(acceptedReservation(), nil)
	s.On("DeleteAssignments", mock.Anything, uint64(7)).Return(nil)
	s.On("DeleteReservation", mock.Anything, uint64(7)).Return(nil)

	assert.NoError(t, Cancel(context.Background(), s, 7))
	s.AssertExpectations(t)
}

func TestDepositAndMarkPaid(t *testing.T) {
	res := acceptedReservation()
	res.TotalPrice = 2200

	s := new(mockStore)
	s.On("ReservationByID", mock.Anything, uint64(7)).Return(res, nil)
	s.On("SetDeposit", mock.Anything, uint64(7), 500.0).Return(nil)
	assert.NoError(t, RecordDeposit(context.Background(), s, 7, 500))

	s.On("SetDeposit", mock.Anything, uint64(7), 2200.0).Return(nil)
	assert.NoError(t, MarkPaid(context.Background(), s, 7))

	assert.ErrorIs(t, RecordDeposit(context.Background(), s, 7, -1), ErrInvalidAmount)
	s.AssertExpectations(t)
}

func TestConfirmCalculationPersistsReviewedTotal(t *testing.T) {
	res := acceptedReservation()
	res.Solved = false

	s := new(mockStore)
	s.On("ReservationByID", mock.Anything, uint64(7)).Return(res, nil)
	s.On("RoomsByIDs", mock.Anything, []uint64{1}).Return([]model.Room{roomA}, nil)
	s.On("LockRooms", mock.Anything, []uint64{1}).Return(nil)
	s.On("RoomAvailable", mock.Anything, uint64(1), mock.Anything, mock.Anything, uint64(7)).Return(true, nil)
	s.On("DeleteAssignments", mock.Anything, uint64(7)).Return(nil)
	s.On("InsertAssignments", mock.Anything, uint64(7), []uint64{1}).Return(nil)
	// 800*2 + 0 + (-200*2)
	s.On("MarkSolved", mock.Anything, uint64(7), 1200.0).Return(nil)

	out, quote, err := ConfirmCalculation(context.Background(), s, 7, CalculationInput{
		RoomIDs:      []uint64{1},
		CustomPrices: map[uint64]float64{1: 800},
		Extras:       []ExtraItem{{Amount: -200, Label: "sleva"}},
	})
	assert.NoError(t, err)
	assert.Equal(t, 1200.0, out.Total)
	assert.Equal(t, 800.0, quote.Lines[0].UsedPrice)
	assert.True(t, out.Reservation.Solved)
	s.AssertExpectations(t)
}

func TestConfirmCalculationIgnoresNonPositiveOverride(t *testing.T) {
	res := acceptedReservation()

	s := new(mockStore)
	s.On("ReservationByID", mock.Anything, uint64(7)).Return(res, nil)
	s.On("RoomsByIDs", mock.Anything, []uint64{1}).Return([]model.Room{roomA}, nil)
	s.On("LockRooms", mock.Anything, []uint64{1}).Return(nil)
	s.On("RoomAvailable", mock.Anything, uint64(1), mock.Anything, mock.Anything, uint64(7)).Return(true, nil)
	s.On("DeleteAssignments", mock.Anything, uint64(7)).Return(nil)
	s.On("InsertAssignments", mock.Anything, uint64(7), []uint64{1}).Return(nil)
	// catalog price wins: 1000*2 + 2*2*50
	s.On("MarkSolved", mock.Anything, uint64(7), 2200.0).Return(nil)

	_, quote, err := ConfirmCalculation(context.Background(), s, 7, CalculationInput{
		RoomIDs:          []uint64{1},
		CustomPrices:     map[uint64]float64{1: 0},
		IncludePersonFee: true,
	})
	assert.NoError(t, err)
	assert.Nil(t, quote.Lines[0].CustomPrice)
	s.AssertExpectations(t)
}
