package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstanton/taskminder/internal/api/shared"
	"github.com/dstanton/taskminder/internal/domain"
	"github.com/dstanton/taskminder/internal/mocks"
	"github.com/dstanton/taskminder/internal/service/auth"
)

func postJSON(t *testing.T, handler http.HandlerFunc, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestRegister(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		payload    map[string]interface{}
		wantStatus int
		wantToken  bool
		wantError  string
	}{
		{
			name: "valid registration",
			payload: map[string]interface{}{
				"username": "newuser",
				"email":    "new@example.com",
				"password": "password123",
			},
			wantStatus: http.StatusCreated,
			wantToken:  true,
		},
		{
			name: "missing username",
			payload: map[string]interface{}{
				"email":    "new@example.com",
				"password": "password123",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "whitespace-only username",
			payload: map[string]interface{}{
				"username": "   ",
				"email":    "new@example.com",
				"password": "password123",
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "Username is required",
		},
		{
			name: "invalid email",
			payload: map[string]interface{}{
				"username": "newuser",
				"email":    "not-an-email",
				"password": "password123",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "password too short",
			payload: map[string]interface{}{
				"username": "newuser",
				"email":    "new@example.com",
				"password": "short",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			userStore := mocks.NewMockUserStore()
			jwtService := &mocks.MockJWTService{Token: "test-token"}
			hasher := &mocks.MockPasswordVerifier{ShouldSucceed: true}
			handler := NewAuthHandler(userStore, jwtService, hasher, hasher)

			w := postJSON(t, handler.Register, "/api/auth/register", tc.payload)
			assert.Equal(t, tc.wantStatus, w.Code)

			if tc.wantError != "" {
				var resp shared.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tc.wantError, resp.Error)
			}

			if tc.wantToken {
				var resp AuthResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "test-token", resp.Token)
				assert.Equal(t, "newuser", resp.User.Username)
				assert.Equal(t, "User registered successfully", resp.Message)

				// The stored user must carry a hash, never the plaintext
				require.Len(t, userStore.Users, 1)
				for _, stored := range userStore.Users {
					assert.Equal(t, "hashed:password123", stored.HashedPassword)
					assert.Empty(t, stored.Password)
				}
			}
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	jwtService := &mocks.MockJWTService{Token: "test-token"}
	hasher := &mocks.MockPasswordVerifier{ShouldSucceed: true}
	handler := NewAuthHandler(userStore, jwtService, hasher, hasher)

	payload := map[string]interface{}{
		"username": "taken",
		"email":    "taken@example.com",
		"password": "password123",
	}

	w := postJSON(t, handler.Register, "/api/auth/register", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	// Same username again maps to 400, not 409
	w = postJSON(t, handler.Register, "/api/auth/register", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Username already exists", resp.Error)

	// Same email with a different username
	payload["username"] = "someoneelse"
	w = postJSON(t, handler.Register, "/api/auth/register", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Email already registered", resp.Error)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T) *mocks.MockUserStore {
		userStore := mocks.NewMockUserStore()
		user, err := domain.NewUser("existing", "existing@example.com", "password123")
		require.NoError(t, err)
		user.HashedPassword = "hashed:password123"
		user.Password = ""
		userStore.Users[user.ID] = user
		return userStore
	}

	tests := []struct {
		name        string
		payload     map[string]interface{}
		verifierOK  bool
		wantStatus  int
		wantMessage string
	}{
		{
			name: "login with username",
			payload: map[string]interface{}{
				"username": "existing",
				"password": "password123",
			},
			verifierOK: true,
			wantStatus: http.StatusOK,
		},
		{
			name: "login with email",
			payload: map[string]interface{}{
				"username": "existing@example.com",
				"password": "password123",
			},
			verifierOK: true,
			wantStatus: http.StatusOK,
		},
		{
			name: "wrong password",
			payload: map[string]interface{}{
				"username": "existing",
				"password": "wrongpassword",
			},
			verifierOK:  false,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid username or password",
		},
		{
			name: "unknown user",
			payload: map[string]interface{}{
				"username": "nobody",
				"password": "password123",
			},
			verifierOK:  true,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid username or password",
		},
		{
			name: "missing password",
			payload: map[string]interface{}{
				"username": "existing",
			},
			verifierOK: true,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			userStore := seed(t)
			jwtService := &mocks.MockJWTService{Token: "test-token"}
			verifier := &mocks.MockPasswordVerifier{ShouldSucceed: tc.verifierOK}
			handler := NewAuthHandler(userStore, jwtService, verifier, verifier)

			w := postJSON(t, handler.Login, "/api/auth/login", tc.payload)
			assert.Equal(t, tc.wantStatus, w.Code)

			if tc.wantStatus == http.StatusOK {
				var resp AuthResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "test-token", resp.Token)
				assert.Equal(t, "existing", resp.User.Username)
			}

			if tc.wantMessage != "" {
				var resp shared.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tc.wantMessage, resp.Error)
			}
		})
	}
}

func TestMe(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	jwtService := &mocks.MockJWTService{Token: "test-token"}
	verifier := &mocks.MockPasswordVerifier{ShouldSucceed: true}
	handler := NewAuthHandler(userStore, jwtService, verifier, verifier)

	t.Run("returns identity from context", func(t *testing.T) {
		t.Parallel()
		user, err := domain.NewUser("me", "me@example.com", "password123")
		require.NoError(t, err)

		identity := &auth.Identity{
			UserID:   user.ID,
			Username: user.Username,
			Email:    user.Email,
		}
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req = req.WithContext(context.WithValue(req.Context(), shared.IdentityContextKey, identity))
		w := httptest.NewRecorder()
		handler.Me(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, user.ID, resp["user"].ID)
		assert.Equal(t, "me", resp["user"].Username)
		assert.Equal(t, "me@example.com", resp["user"].Email)
	})

	t.Run("rejects request without identity", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		w := httptest.NewRecorder()
		handler.Me(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
