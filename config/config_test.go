package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "access")
	t.Setenv("JWT_REFRESH_SECRET", "refresh")
	t.Setenv("DB_POSTGRES_READ_HOST", "replica.internal")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 90, cfg.App.Booking.MaxNights)
	assert.Equal(t, 5, cfg.App.Booking.LockTimeout)
	assert.Equal(t, "hotel.booking.events", cfg.Kafka.Topic.BookingEvents)
	assert.Equal(t, "replica.internal", cfg.DB.Postgres.Read.Host)
	assert.Equal(t, "5432", cfg.DB.Postgres.Write.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing secrets",
			env:  map[string]string{"JWT_ACCESS_SECRET": "", "JWT_REFRESH_SECRET": ""},
		},
		{
			name: "shared secret",
			env:  map[string]string{"JWT_ACCESS_SECRET": "same", "JWT_REFRESH_SECRET": "same"},
		},
		{
			name: "kafka without brokers",
			env:  map[string]string{"JWT_ACCESS_SECRET": "a", "JWT_REFRESH_SECRET": "b", "KAFKA_ENABLE": "true", "KAFKA_BROKERS": ""},
		},
		{
			name: "malformed number",
			env:  map[string]string{"JWT_ACCESS_SECRET": "a", "JWT_REFRESH_SECRET": "b", "APP_BOOKING_MAX_NIGHTS": "many"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestGet_DoesNotRequireSecrets(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")
	t.Setenv("APP_TIMEZONE", "UTC")

	cfg := config.Get()
	require.NotNil(t, cfg)

	assert.ErrorContains(t, cfg.Validate(), "JWT_ACCESS_SECRET")
}
