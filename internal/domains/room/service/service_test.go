package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	"hotel/infras/s3"
	s3Mocks "hotel/infras/s3/mocks"
	availabilityModel "hotel/internal/domains/availability/model"
	availability "hotel/internal/domains/availability/service"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	roomMocks "hotel/internal/domains/room/mocks"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/locker"
)

type fixture struct {
	svc      service.Room
	rooms    *roomMocks.MockRoom
	bookings *bookingMocks.MockBooking
	s3       *s3Mocks.MockS3
	locker   *locker.Keyed
}

func setup(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	rooms := roomMocks.NewMockRoom(ctrl)
	bookings := bookingMocks.NewMockBooking(ctrl)
	storage := s3Mocks.NewMockS3(ctrl)
	keyed := locker.New()

	cfg := &config.Config{}
	cfg.App.Booking.LockTimeout = 5

	otl := mocks.NewOtel()
	avail := availability.New(rooms, bookings, keyed, cfg, otl)

	return fixture{
		svc:      service.New(rooms, avail, otl, storage),
		rooms:    rooms,
		bookings: bookings,
		s3:       storage,
		locker:   keyed,
	}
}

func userCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
}

func boolPtr(v bool) *bool {
	return &v
}

func TestRoomService_Create(t *testing.T) {
	f := setup(t)

	req := dto.CreateRoomRequest{Number: "101", TypeID: "8a0c5d2e-7f4b-4c1d-9b63-2c0f1e6a9d11", Floor: 1}

	tests := []struct {
		name      string
		setupMock func()
		wantKind  failure.Kind
		wantErr   bool
	}{
		{
			name: "created available",
			setupMock: func() {
				f.rooms.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m model.Room) error {
					assert.Equal(t, model.StatusAvailable, m.Status)
					assert.False(t, m.Maintenance)
					assert.Equal(t, "staff-1", m.CreatedBy)

					return nil
				})
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: "r1", Number: "101", TypeName: "Deluxe", BasePrice: 200, Status: model.StatusAvailable}, nil)
				f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
			},
		},
		{
			name: "duplicate number",
			setupMock: func() {
				f.rooms.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantErr:  true,
			wantKind: failure.KindConflict,
		},
		{
			name: "unknown type",
			setupMock: func() {
				f.rooms.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})
			},
			wantErr:  true,
			wantKind: failure.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.Create(userCtx(), req)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Deluxe", res.TypeName)
			assert.Equal(t, model.StatusAvailable, res.Status)
		})
	}
}

func TestRoomService_GetAll(t *testing.T) {
	f := setup(t)

	today := time.Now().UTC()

	f.rooms.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	f.rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Room{{ID: "r1", Status: model.StatusOccupied}, {ID: "r2", Status: model.StatusAvailable}}, nil)
	f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]bookingModel.Booking{
		{ID: "b1", RoomID: "r2", Status: bookingModel.StatusCheckedIn, CheckIn: today.AddDate(0, 0, -1), CheckOut: today.AddDate(0, 0, 1)},
	}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 2}, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	require.Len(t, res.Rooms, 2)

	// the stored column lags behind, statuses come from today's bookings
	assert.Equal(t, model.StatusAvailable, res.Rooms[0].Status)
	assert.Equal(t, model.StatusOccupied, res.Rooms[1].Status)
}

func TestRoomService_GetDerivesStatus(t *testing.T) {
	today := time.Now().UTC()

	tests := []struct {
		name     string
		stored   model.Room
		bookings []bookingModel.Booking
		want     string
	}{
		{
			name:   "reservation whose stay ended",
			stored: model.Room{ID: "r1", Status: model.StatusReserved},
			bookings: []bookingModel.Booking{
				{ID: "b1", RoomID: "r1", Status: bookingModel.StatusConfirmed, CheckIn: today.AddDate(0, 0, -3), CheckOut: today.AddDate(0, 0, -1)},
			},
			want: model.StatusAvailable,
		},
		{
			name:   "upcoming stay",
			stored: model.Room{ID: "r1", Status: model.StatusAvailable},
			bookings: []bookingModel.Booking{
				{ID: "b1", RoomID: "r1", Status: bookingModel.StatusPending, CheckIn: today.AddDate(0, 0, 3), CheckOut: today.AddDate(0, 0, 4)},
			},
			want: model.StatusReserved,
		},
		{
			name:   "maintenance",
			stored: model.Room{ID: "r1", Status: model.StatusAvailable, Maintenance: true},
			want:   model.StatusMaintenance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)

			f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.stored, nil)
			f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.bookings, nil)

			res, err := f.svc.Get(context.Background(), "r1")

			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Status)
		})
	}
}

func TestRoomService_GetNotFound(t *testing.T) {
	f := setup(t)

	f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

	_, err := f.svc.Get(context.Background(), "missing")

	assert.True(t, failure.Is(err, failure.KindNotFound))
}

func TestRoomService_SetMaintenance(t *testing.T) {
	today := availabilityModel.Day(time.Now())

	upcoming := bookingModel.Booking{
		ID:       "b1",
		RoomID:   "r1",
		Status:   bookingModel.StatusConfirmed,
		CheckIn:  today.AddDate(0, 0, 10),
		CheckOut: today.AddDate(0, 0, 12),
	}
	inHouse := bookingModel.Booking{
		ID:       "b2",
		RoomID:   "r1",
		Status:   bookingModel.StatusCheckedIn,
		CheckIn:  today.AddDate(0, 0, -1),
		CheckOut: today.AddDate(0, 0, 1),
	}

	tests := []struct {
		name        string
		maintenance bool
		current     model.Room
		bookings    []bookingModel.Booking
		wantStatus  string
	}{
		{
			name:        "enable overrides occupancy",
			maintenance: true,
			current:     model.Room{ID: "r1", Number: "101", Status: model.StatusOccupied},
			bookings:    []bookingModel.Booking{inHouse},
			wantStatus:  model.StatusMaintenance,
		},
		{
			name:        "disable restores reserved",
			maintenance: false,
			current:     model.Room{ID: "r1", Number: "101", Status: model.StatusMaintenance, Maintenance: true},
			bookings:    []bookingModel.Booking{upcoming},
			wantStatus:  model.StatusReserved,
		},
		{
			name:        "disable restores occupied",
			maintenance: false,
			current:     model.Room{ID: "r1", Number: "101", Status: model.StatusMaintenance, Maintenance: true},
			bookings:    []bookingModel.Booking{upcoming, inHouse},
			wantStatus:  model.StatusOccupied,
		},
		{
			name:        "disable on empty room",
			maintenance: false,
			current:     model.Room{ID: "r1", Number: "101", Status: model.StatusMaintenance, Maintenance: true},
			wantStatus:  model.StatusAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)

			f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.current, nil)
			f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.bookings, nil)
			f.rooms.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, update map[string]any, _ gDto.FilterGroup) error {
					assert.Equal(t, tt.maintenance, update[model.FieldMaintenance])
					assert.Equal(t, tt.wantStatus, update[model.FieldStatus])
					assert.Equal(t, "staff-1", update[constant.FieldModifiedBy])

					return nil
				})

			res, err := f.svc.SetMaintenance(userCtx(), "r1", dto.SetMaintenanceRequest{Maintenance: boolPtr(tt.maintenance)})

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.maintenance, res.Maintenance)
			assert.Equal(t, 0, f.locker.Len())
		})
	}
}

func TestRoomService_SetMaintenanceUnknownRoom(t *testing.T) {
	f := setup(t)

	f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

	_, err := f.svc.SetMaintenance(userCtx(), "missing", dto.SetMaintenanceRequest{Maintenance: boolPtr(true)})

	assert.True(t, failure.Is(err, failure.KindNotFound))
	assert.Equal(t, 0, f.locker.Len())
}

func TestRoomService_SetMaintenanceWhileLocked(t *testing.T) {
	f := setup(t)

	unlock, err := f.locker.Lock(context.Background(), "r1")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(userCtx(), 20*time.Millisecond)
	defer cancel()

	_, err = f.svc.SetMaintenance(ctx, "r1", dto.SetMaintenanceRequest{Maintenance: boolPtr(true)})

	assert.True(t, failure.Is(err, failure.KindConflict))
}

func TestRoomService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantKind  failure.Kind
		wantErr   bool
	}{
		{
			name: "deleted with image",
			setupMock: func(f fixture) {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: "r1", Image: "https://cdn.hotel.test/room/a.png"}, nil)
				f.rooms.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
				f.s3.EXPECT().KeyFromURL("https://cdn.hotel.test/room/a.png").Return("room/a.png")
				f.s3.EXPECT().Delete(gomock.Any(), "room/a.png").Return(errors.New("gone"))
			},
		},
		{
			name: "still referenced by bookings",
			setupMock: func(f fixture) {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: "r1"}, nil)
				f.rooms.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})
			},
			wantErr:  true,
			wantKind: failure.KindConflict,
		},
		{
			name: "not found",
			setupMock: func(f fixture) {
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			tt.setupMock(f)

			err := f.svc.Delete(userCtx(), "r1")
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestRoomService_UploadImage(t *testing.T) {
	f := setup(t)

	header := &multipart.FileHeader{
		Filename: "front.png",
		Header:   textproto.MIMEHeader{"Content-Type": {"image/png"}},
	}

	f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: "r1", Image: "https://cdn.hotel.test/room/old.png"}, nil)
	f.s3.EXPECT().Upload(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, obj s3.Object) (string, error) {
		assert.Equal(t, model.EntityName, obj.Directory)
		assert.Equal(t, "image/png", obj.ContentType)
		assert.Regexp(t, `\.png$`, obj.Name)

		return "https://cdn.hotel.test/" + obj.Key(), nil
	})
	f.rooms.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.s3.EXPECT().KeyFromURL("https://cdn.hotel.test/room/old.png").Return("room/old.png")
	f.s3.EXPECT().Delete(gomock.Any(), "room/old.png").Return(nil)
	f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	res, err := f.svc.UploadImage(userCtx(), "r1", dto.UploadImageRequest{Image: header})

	require.NoError(t, err)
	assert.Regexp(t, `^https://cdn\.hotel\.test/room/.+\.png$`, res.Image)
}
