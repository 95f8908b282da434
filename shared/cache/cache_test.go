package cache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/shared/cache"
	"hotel/shared/cache/mocks"
)

type roomType struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func TestFetch(t *testing.T) {
	const key = "room_types:detail:rt-1"

	suite := roomType{Name: "Suite", Price: 240}

	tests := []struct {
		name      string
		setup     func(redisCache *mocks.MockRedisCache)
		loadErr   error
		wantLoads int
		wantErr   bool
	}{
		{
			name: "hit skips the loader",
			setup: func(redisCache *mocks.MockRedisCache) {
				redisCache.EXPECT().Get(gomock.Any(), key, gomock.Any()).DoAndReturn(func(_ context.Context, _ string, value any) error {
					*value.(*roomType) = suite

					return nil
				})
			},
		},
		{
			name: "miss loads and saves",
			setup: func(redisCache *mocks.MockRedisCache) {
				redisCache.EXPECT().Get(gomock.Any(), key, gomock.Any()).Return(cache.Nil)
				redisCache.EXPECT().Save(gomock.Any(), key, suite, 60).Return(nil)
			},
			wantLoads: 1,
		},
		{
			name: "failed save still returns the value",
			setup: func(redisCache *mocks.MockRedisCache) {
				redisCache.EXPECT().Get(gomock.Any(), key, gomock.Any()).Return(errors.New("redis down"))
				redisCache.EXPECT().Save(gomock.Any(), key, suite, 60).Return(errors.New("redis down"))
			},
			wantLoads: 1,
		},
		{
			name: "loader error is returned and nothing is saved",
			setup: func(redisCache *mocks.MockRedisCache) {
				redisCache.EXPECT().Get(gomock.Any(), key, gomock.Any()).Return(cache.Nil)
			},
			loadErr:   errors.New("no rows"),
			wantLoads: 1,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			redisCache := mocks.NewMockRedisCache(ctrl)
			tt.setup(redisCache)

			loads := 0

			got, err := cache.Fetch(context.Background(), redisCache, key, 60, func(context.Context) (roomType, error) {
				loads++

				if tt.loadErr != nil {
					return roomType{}, tt.loadErr
				}

				return suite, nil
			})

			assert.Equal(t, tt.wantLoads, loads)

			if tt.wantErr {
				assert.ErrorIs(t, err, tt.loadErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, suite, got)
		})
	}
}
