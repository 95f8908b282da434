package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	availabilityModel "hotel/internal/domains/availability/model"
	availability "hotel/internal/domains/availability/service"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/report/model/dto"
	"hotel/internal/domains/report/service"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/locker"
)

func newReport(rooms *roomMocks.MockRoom, bookings *bookingMocks.MockBooking) service.Report {
	otl := mocks.NewOtel()

	return service.New(rooms, bookings, availability.New(rooms, bookings, locker.New(), &config.Config{}, otl), otl)
}

func TestReportService_Occupancy(t *testing.T) {
	ctrl := gomock.NewController(t)
	rooms := roomMocks.NewMockRoom(ctrl)
	bookings := bookingMocks.NewMockBooking(ctrl)

	period, err := availabilityModel.ParseStay("2025-09-01", "2025-10-01")
	require.NoError(t, err)

	today := time.Now().UTC()

	// stored statuses are stale on purpose
	rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), roomModel.FieldID, roomModel.FieldMaintenance).Return([]roomModel.Room{
		{ID: "r1", Status: roomModel.StatusAvailable},
		{ID: "r2", Status: roomModel.StatusOccupied},
		{ID: "r3", Status: roomModel.StatusAvailable, Maintenance: true},
		{ID: "r4", Status: roomModel.StatusAvailable},
	}, nil)
	bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]bookingModel.Booking{
		{ID: "b1", RoomID: "r1", Status: bookingModel.StatusCheckedIn, CheckIn: today.AddDate(0, 0, -2), CheckOut: today.AddDate(0, 0, 1)},
	}, nil)
	bookings.EXPECT().GroupCount(gomock.Any(), bookingModel.FieldStatus, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, filter gDto.FilterGroup) (map[string]int, error) {
			assert.Len(t, filter.Filters, 2)

			return map[string]int{bookingModel.StatusCheckedOut: 4, bookingModel.StatusConfirmed: 2}, nil
		})
	bookings.EXPECT().Sum(gomock.Any(), bookingModel.FieldTotalAmount, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, filter gDto.FilterGroup) (float64, error) {
			require.Len(t, filter.Filters, 3)

			status, ok := filter.Filters[0].(gDto.Filter)
			require.True(t, ok)
			assert.Equal(t, bookingModel.StatusCheckedOut, status.Value)

			return 1234.567, nil
		})

	res, err := newReport(rooms, bookings).Occupancy(context.Background(), period)

	require.NoError(t, err)
	assert.Equal(t, "2025-09-01", res.From)
	assert.Equal(t, 4, res.TotalRooms)
	assert.Equal(t, map[string]int{
		roomModel.StatusOccupied:    1,
		roomModel.StatusAvailable:   2,
		roomModel.StatusMaintenance: 1,
	}, res.RoomsByStatus)
	assert.Equal(t, 6, res.TotalBookings)
	assert.InDelta(t, 25.0, res.OccupancyRate, 0.001)
	assert.InDelta(t, 1234.57, res.Revenue, 0.001)
}

func TestReportService_OccupancyNoRooms(t *testing.T) {
	ctrl := gomock.NewController(t)
	rooms := roomMocks.NewMockRoom(ctrl)
	bookings := bookingMocks.NewMockBooking(ctrl)

	period, err := availabilityModel.ParseStay("2025-09-01", "2025-09-02")
	require.NoError(t, err)

	rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	bookings.EXPECT().GroupCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(map[string]int{}, nil)
	bookings.EXPECT().Sum(gomock.Any(), gomock.Any(), gomock.Any()).Return(0.0, nil)

	res, err := newReport(rooms, bookings).Occupancy(context.Background(), period)

	require.NoError(t, err)
	assert.Zero(t, res.OccupancyRate)
}

func TestReportService_OccupancyError(t *testing.T) {
	ctrl := gomock.NewController(t)
	rooms := roomMocks.NewMockRoom(ctrl)

	rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

	_, err := newReport(rooms, bookingMocks.NewMockBooking(ctrl)).Occupancy(context.Background(), availabilityModel.Stay{})

	assert.Equal(t, failure.KindInternal, failure.GetKind(err))
}

func TestPeriodQuery(t *testing.T) {
	period, err := dto.PeriodQuery{From: "2025-02-01", To: "2025-03-01"}.Period()
	require.NoError(t, err)
	assert.Equal(t, 28, period.Nights())

	defaulted, err := dto.PeriodQuery{}.Period()
	require.NoError(t, err)
	assert.Equal(t, 1, defaulted.CheckIn.Day())
	assert.GreaterOrEqual(t, defaulted.Nights(), 28)

	_, err = dto.PeriodQuery{From: "2025-03-01", To: "2025-02-01"}.Period()
	assert.True(t, failure.Is(err, failure.KindInvalidInput))
}
