package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/infras/otel/mocks"
	guestMocks "hotel/internal/domains/guest/mocks"
	"hotel/internal/domains/guest/model"
	"hotel/internal/domains/guest/model/dto"
	"hotel/internal/domains/guest/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
)

func setup(t *testing.T) (service.Guest, *guestMocks.MockGuest) {
	t.Helper()

	repo := guestMocks.NewMockGuest(gomock.NewController(t))

	return service.New(repo, mocks.NewOtel()), repo
}

func userCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
}

func TestGuestService_Upsert(t *testing.T) {
	stored := model.Guest{
		ID:        "g1",
		FullName:  "Ayu Lestari",
		IDNumber:  "3174-0001",
		Email:     "ayu@old.test",
		Phone:     "0811",
		GuestType: model.TypeVIP,
	}

	req := dto.UpsertGuestRequest{
		FullName:  "Someone Else",
		IDNumber:  "3174-0001",
		Email:     "ayu@new.test",
		Address:   "Jl. Sudirman 1",
		GuestType: model.TypeCorporate,
	}

	tests := []struct {
		name        string
		setupMock   func(repo *guestMocks.MockGuest)
		wantCreated bool
		wantEmail   string
		wantName    string
		wantType    string
		wantErr     bool
	}{
		{
			name: "new guest",
			setupMock: func(repo *guestMocks.MockGuest) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{}, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, g model.Guest) error {
					assert.Equal(t, "3174-0001", g.IDNumber)
					assert.Equal(t, "staff-1", g.CreatedBy)

					return nil
				})
			},
			wantCreated: true,
			wantEmail:   "ayu@new.test",
			wantName:    "Someone Else",
			wantType:    model.TypeCorporate,
		},
		{
			name: "known guest keeps identity",
			setupMock: func(repo *guestMocks.MockGuest) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, update map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "ayu@new.test", update[model.FieldEmail])
						assert.Equal(t, "Jl. Sudirman 1", update[model.FieldAddress])
						assert.NotContains(t, update, model.FieldPhone)
						assert.NotContains(t, update, model.FieldFullName)
						assert.NotContains(t, update, model.FieldGuestType)
						assert.NotContains(t, update, model.FieldIDNumber)

						return nil
					})
			},
			wantEmail: "ayu@new.test",
			wantName:  "Ayu Lestari",
			wantType:  model.TypeVIP,
		},
		{
			name: "registered concurrently",
			setupMock: func(repo *guestMocks.MockGuest) {
				gomock.InOrder(
					repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{}, nil),
					repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation}),
					repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil),
					repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
				)
			},
			wantEmail: "ayu@new.test",
			wantName:  "Ayu Lestari",
			wantType:  model.TypeVIP,
		},
		{
			name: "lookup failure",
			setupMock: func(repo *guestMocks.MockGuest) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{}, errors.New("timeout"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := setup(t)
			tt.setupMock(repo)

			res, err := svc.Upsert(userCtx(), req)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantCreated, res.Created)
			assert.Equal(t, tt.wantEmail, res.Email)
			assert.Equal(t, tt.wantName, res.FullName)
			assert.Equal(t, tt.wantType, res.GuestType)
		})
	}
}

func TestGuestService_UpsertDefaultsType(t *testing.T) {
	svc, repo := setup(t)

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{}, nil)
	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	res, err := svc.Upsert(userCtx(), dto.UpsertGuestRequest{FullName: "Budi", IDNumber: "X-1"})

	require.NoError(t, err)
	assert.Equal(t, model.TypeRegular, res.GuestType)
}

func TestGuestService_Get(t *testing.T) {
	svc, repo := setup(t)

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{}, nil)

	_, err := svc.Get(context.Background(), "missing")
	assert.True(t, failure.Is(err, failure.KindNotFound))

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{ID: "g1", FullName: "Ayu"}, nil)

	res, err := svc.Get(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, "Ayu", res.FullName)
}

func TestGuestService_UpdateContact(t *testing.T) {
	svc, repo := setup(t)

	repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	err := svc.UpdateContact(userCtx(), dto.UpdateContactRequest{Phone: "0812"}, "missing")
	assert.True(t, failure.Is(err, failure.KindNotFound))

	repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, update map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, "0812", update[model.FieldPhone])
			assert.NotContains(t, update, model.FieldEmail)

			return nil
		})

	assert.NoError(t, svc.UpdateContact(userCtx(), dto.UpdateContactRequest{Phone: "0812"}, "g1"))
}

func TestGuestService_Delete(t *testing.T) {
	svc, repo := setup(t)

	repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})

	err := svc.Delete(userCtx(), "g1")
	assert.True(t, failure.Is(err, failure.KindConflict))
}
