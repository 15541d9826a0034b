package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/prakharagrawal10/movie-api-backend/internal/domain"
	"github.com/prakharagrawal10/movie-api-backend/internal/mocks"
	appvalidator "github.com/prakharagrawal10/movie-api-backend/internal/validator"
	"github.com/stretchr/testify/mock"
)

func TestRegisterUser(t *testing.T) {
	validInput := RegisterRequest{
		Name:     "Freddie Mercury",
		Email:    "freddie@example.com",
		Password: "SecurePass1!",
	}

	tests := []struct {
		name           string
		input          RegisterRequest
		repoErr        error
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:       "successful registration",
			input:      validInput,
			wantStatus: http.StatusAccepted,
		},
		{
			name: "weak password",
			input: RegisterRequest{
				Name:     "Freddie Mercury",
				Email:    "freddie@example.com",
				Password: "weak",
			},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: appvalidator.ErrPassword,
		},
		{
			name: "missing email",
			input: RegisterRequest{
				Name:     "Freddie Mercury",
				Password: "SecurePass1!",
			},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: appvalidator.ErrRequired,
		},
		{
			name:           "duplicate email",
			input:          validInput,
			repoErr:        domain.ErrUserAlreadyExists,
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "invalid input data",
		},
		{
			name:           "repository error",
			input:          validInput,
			repoErr:        errors.New("database error"),
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := &mocks.MockUserRepo{}

			if tt.repoErr != nil {
				userRepo.On("CreateWithToken", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, tt.repoErr)
			} else {
				token, _ := domain.GenerateToken(1, 10*time.Minute, domain.UserActivationScope)
				userRepo.On("CreateWithToken", mock.Anything, mock.Anything, mock.Anything).
					Return(token, nil)
			}

			app := newTestApplication(func(a *application) {
				a.userRepo = userRepo
			})

			w, r := executeRequest(t, http.MethodPost, "/users", tt.input)

			app.RegisterUser(w, r)

			if tt.wantStatus == http.StatusAccepted {
				var resp UserResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}

				if resp.Email != tt.input.Email {
					t.Errorf("Email = %v, want %v", resp.Email, tt.input.Email)
				}
				if resp.Activated {
					t.Error("new user must not be activated")
				}
			}

			checkErrorResponse(t, w, tt.wantStatus, tt.wantErrMessage)
		})
	}
}

func TestActivateUser(t *testing.T) {
	validToken := "abcdefghijklmnopqrstuvwxyz0123456789ABCDEFG"

	tests := []struct {
		name           string
		token          string
		user           *domain.User
		getByTokenErr  error
		activateErr    error
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:       "successful activation",
			token:      validToken,
			user:       &domain.User{ID: 1, Email: "freddie@example.com"},
			wantStatus: http.StatusOK,
		},
		{
			name:           "malformed token",
			token:          "too-short",
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: appvalidator.ErrInvalid,
		},
		{
			name:           "token not found",
			token:          validToken,
			getByTokenErr:  domain.ErrRecordNotFound,
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
		{
			name:           "already activated user",
			token:          validToken,
			user:           &domain.User{ID: 1, Email: "freddie@example.com", Activated: true},
			wantStatus:     http.StatusConflict,
			wantErrMessage: ErrEditConflictMsg,
		},
		{
			name:           "concurrent activation conflict",
			token:          validToken,
			user:           &domain.User{ID: 1, Email: "freddie@example.com"},
			activateErr:    domain.ErrEditConflict,
			wantStatus:     http.StatusConflict,
			wantErrMessage: ErrEditConflictMsg,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := &mocks.MockUserRepo{}

			if tt.getByTokenErr != nil {
				userRepo.On("GetByToken", mock.Anything, mock.Anything, domain.UserActivationScope).
					Return(nil, tt.getByTokenErr)
			} else if tt.user != nil {
				userRepo.On("GetByToken", mock.Anything, mock.Anything, domain.UserActivationScope).
					Return(tt.user, nil)
				userRepo.On("ActivateUser", mock.Anything, tt.user).
					Return(tt.activateErr)
			}

			app := newTestApplication(func(a *application) {
				a.userRepo = userRepo
			})

			w, r := executeRequest(t, http.MethodPut, "/users/activation", UserActivationRequest{Token: tt.token})

			app.ActivateUser(w, r)

			if tt.wantStatus == http.StatusOK {
				var resp UserActivationResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}
				if !resp.Activated {
					t.Error("Activated = false, want true")
				}
			}

			checkErrorResponse(t, w, tt.wantStatus, tt.wantErrMessage)
		})
	}
}

func TestLogin(t *testing.T) {
	user := &domain.User{ID: 1, Email: "freddie@example.com", Activated: true}
	if err := user.Password.Set("SecurePass1!"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name           string
		input          LoginRequest
		user           *domain.User
		repoErr        error
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:       "successful login",
			input:      LoginRequest{Email: "freddie@example.com", Password: "SecurePass1!"},
			user:       user,
			wantStatus: http.StatusNoContent,
		},
		{
			name:           "wrong password",
			input:          LoginRequest{Email: "freddie@example.com", Password: "WrongPass1!"},
			user:           user,
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: ErrInvalidCredentials,
		},
		{
			name:           "unknown user",
			input:          LoginRequest{Email: "nobody@example.com", Password: "SecurePass1!"},
			repoErr:        domain.ErrRecordNotFound,
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: ErrInvalidCredentials,
		},
		{
			name:           "invalid email",
			input:          LoginRequest{Email: "not-an-email", Password: "SecurePass1!"},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := &mocks.MockUserRepo{}

			if tt.repoErr != nil {
				userRepo.On("GetByEmail", mock.Anything, tt.input.Email).Return(nil, tt.repoErr)
			} else if tt.user != nil {
				userRepo.On("GetByEmail", mock.Anything, tt.input.Email).Return(tt.user, nil)
			}

			app := newTestApplication(func(a *application) {
				a.userRepo = userRepo
				a.sessionManager = scs.New()
			})

			w, r := executeRequest(t, http.MethodPost, "/auth/login", tt.input)

			handler := app.sessionManager.LoadAndSave(http.HandlerFunc(app.Login))
			handler.ServeHTTP(w, r)

			checkErrorResponse(t, w, tt.wantStatus, tt.wantErrMessage)
		})
	}
}

func TestLogout(t *testing.T) {
	t.Run("logged in user", func(t *testing.T) {
		app := newTestApplication(func(a *application) {
			a.sessionManager = scs.New()
		})

		w, r := executeRequest(t, http.MethodPost, "/auth/logout", nil)
		r = setupTestSession(t, app, r, 1)

		handler := app.sessionManager.LoadAndSave(http.HandlerFunc(app.Logout))
		handler.ServeHTTP(w, r)

		if w.Code != http.StatusNoContent {
			t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
		}
	})

	t.Run("no session", func(t *testing.T) {
		app := newTestApplication(func(a *application) {
			a.sessionManager = scs.New()
		})

		w, r := executeRequest(t, http.MethodPost, "/auth/logout", nil)

		handler := app.sessionManager.LoadAndSave(http.HandlerFunc(app.Logout))
		handler.ServeHTTP(w, r)

		checkErrorResponse(t, w, http.StatusNotFound, ErrNotFound)
	})
}
