package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/jwt"
	jwtMocks "hotel/infras/jwt/mocks"
	otelMocks "hotel/infras/otel/mocks"
	"hotel/permissions"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/transport/http/middleware"
	"hotel/transport/http/response"
)

const testPermissions = `{
	"skip": false,
	"endpoints": [
		{"path": "/v1/auth/login", "method": "POST", "skip": true},
		{"path": "/v1/users/", "method": "POST", "permissions": ["admin"]},
		{"path": "/v1/users/{id}", "method": "DELETE", "permissions": ["admin"]}
	]
}`

func newRouter(t *testing.T, jwtService jwt.JWT, data *permissions.PermissionData) (*chi.Mux, *string) {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	auth := middleware.NewAuthRoleMiddleware(jwtService, otelMocks.NewOtel(), data, cfg)

	var seenUser string

	ok := func(w http.ResponseWriter, r *http.Request) {
		seenUser, _ = r.Context().Value(constant.ContextKeyUserID).(string)
		w.WriteHeader(http.StatusOK)
	}

	r := chi.NewRouter()
	r.Use(auth.APIKey, auth.Auth, auth.RBAC)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/login", ok)
		r.Route("/users", func(r chi.Router) {
			r.Post("/", ok)
			r.Get("/{id}", ok)
			r.Delete("/{id}", ok)
		})
	})

	return r, &seenUser
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.Error {
	t.Helper()

	var body response.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestAuthRole(t *testing.T) {
	data, err := permissions.Parse([]byte(testPermissions))
	require.NoError(t, err)

	staff := &jwt.Claims{UserID: "u-staff", Username: "desk", Role: constant.RoleStaff}
	admin := &jwt.Claims{UserID: "u-admin", Username: "boss", Role: constant.RoleAdmin}

	tests := []struct {
		name     string
		method   string
		path     string
		header   map[string]string
		claims   *jwt.Claims
		tokenErr error
		wantCode int
		wantKind failure.Kind
		wantUser string
	}{
		{
			name:     "public route needs no token",
			method:   http.MethodPost,
			path:     "/v1/auth/login",
			wantCode: http.StatusOK,
		},
		{
			name:     "missing header",
			method:   http.MethodGet,
			path:     "/v1/users/42",
			wantCode: http.StatusUnauthorized,
			wantKind: failure.KindUnauthorized,
		},
		{
			name:     "not a bearer token",
			method:   http.MethodGet,
			path:     "/v1/users/42",
			header:   map[string]string{constant.RequestHeaderAuthorization: "Token abc"},
			wantCode: http.StatusUnauthorized,
			wantKind: failure.KindUnauthorized,
		},
		{
			name:     "expired token",
			method:   http.MethodGet,
			path:     "/v1/users/42",
			header:   map[string]string{constant.RequestHeaderAuthorization: "Bearer tok"},
			tokenErr: jwt.ErrExpiredToken,
			wantCode: http.StatusUnauthorized,
			wantKind: failure.KindUnauthorized,
		},
		{
			name:     "claims without role",
			method:   http.MethodGet,
			path:     "/v1/users/42",
			header:   map[string]string{constant.RequestHeaderAuthorization: "Bearer tok"},
			claims:   &jwt.Claims{UserID: "u1"},
			wantCode: http.StatusUnauthorized,
			wantKind: failure.KindUnauthorized,
		},
		{
			name:     "staff on unlisted route",
			method:   http.MethodGet,
			path:     "/v1/users/42",
			header:   map[string]string{constant.RequestHeaderAuthorization: "Bearer tok"},
			claims:   staff,
			wantCode: http.StatusOK,
			wantUser: "u-staff",
		},
		{
			name:     "staff on admin route",
			method:   http.MethodDelete,
			path:     "/v1/users/42",
			header:   map[string]string{constant.RequestHeaderAuthorization: "Bearer tok"},
			claims:   staff,
			wantCode: http.StatusForbidden,
			wantKind: failure.KindForbidden,
		},
		{
			name:     "admin on admin route",
			method:   http.MethodPost,
			path:     "/v1/users/",
			header:   map[string]string{constant.RequestHeaderAuthorization: "Bearer tok"},
			claims:   admin,
			wantCode: http.StatusOK,
			wantUser: "u-admin",
		},
		{
			name:     "internal api key bypasses token",
			method:   http.MethodDelete,
			path:     "/v1/users/42",
			header:   map[string]string{constant.RequestHeaderAPIKey: "internal-key"},
			wantCode: http.StatusOK,
		},
		{
			name:     "wrong api key",
			method:   http.MethodDelete,
			path:     "/v1/users/42",
			header:   map[string]string{constant.RequestHeaderAPIKey: "guess"},
			wantCode: http.StatusForbidden,
			wantKind: failure.KindForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			jwtService := jwtMocks.NewMockJWT(ctrl)

			if tt.claims != nil || tt.tokenErr != nil {
				jwtService.EXPECT().ValidateToken(gomock.Any(), "tok", jwt.AccessToken).Return(tt.claims, tt.tokenErr)
			}

			router, seenUser := newRouter(t, jwtService, data)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantKind != "" {
				assert.Equal(t, tt.wantKind, decodeError(t, rec).Kind)
			}

			assert.Equal(t, tt.wantUser, *seenUser)
		})
	}
}

func TestRBAC_NilPermissionsDeniesAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	jwtService := jwtMocks.NewMockJWT(ctrl)
	jwtService.EXPECT().ValidateToken(gomock.Any(), "tok", jwt.AccessToken).
		Return(&jwt.Claims{UserID: "u-admin", Role: constant.RoleAdmin}, nil)

	router, _ := newRouter(t, jwtService, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/users/42", nil)
	req.Header.Set(constant.RequestHeaderAuthorization, "Bearer tok")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
