package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hotel/infras/jwt"
	"hotel/internal/domains/auth/model/dto"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/timezone"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(900), response.ExpiresIn)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
}

func TestUpdateLastLoginRequest_Fields(t *testing.T) {
	now := timezone.Now()

	fields := shared.TransformFields(dto.UpdateLastLoginRequest{LastLogin: now}, "u-1")

	assert.Equal(t, now, fields["last_login"])
	assert.Equal(t, "u-1", fields[constant.FieldModifiedBy])
}

func TestUpdatePasswordRequest_Fields(t *testing.T) {
	fields := shared.TransformFields(dto.UpdatePasswordRequest{Password: "hashed-new-password"}, "u-1")

	assert.Equal(t, "hashed-new-password", fields["password"])
}
