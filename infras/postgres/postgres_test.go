package postgres_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"hotel/config"
	"hotel/infras/postgres"
)

func TestEndpoint_DSN(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "test_"
	cfg.DB.Postgres.Write.Host = "db.internal"
	cfg.DB.Postgres.Write.Port = "5432"
	cfg.DB.Postgres.Write.Username = "hotel"
	cfg.DB.Postgres.Write.Password = "p@ss:word"
	cfg.DB.Postgres.Write.Name = "hotel"
	cfg.DB.Postgres.Write.SSLMode = "disable"

	dsn := postgres.WriteEndpoint(cfg).DSN(url.Values{"x-migrations-table": {"schema_migrations"}})

	parsed, err := url.Parse(dsn)
	assert.NoError(t, err)
	assert.Equal(t, "db.internal:5432", parsed.Host)
	assert.Equal(t, "/test_hotel", parsed.Path)

	pass, _ := parsed.User.Password()
	assert.Equal(t, "p@ss:word", pass)
	assert.Equal(t, "disable", parsed.Query().Get("sslmode"))
	assert.Equal(t, "schema_migrations", parsed.Query().Get("x-migrations-table"))
}

func TestConnection_PingWithoutPools(t *testing.T) {
	conn := &postgres.Connection{}

	assert.Error(t, conn.Ping(context.Background()))
	assert.NoError(t, conn.Close())
}
