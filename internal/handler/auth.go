package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/stridehq/stride/internal/ctxkeys"
	"github.com/stridehq/stride/internal/model"
	"github.com/stridehq/stride/internal/service"
	"github.com/stridehq/stride/internal/validation"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := h.authService.Register(req.Email, req.Password)
	if err != nil {
		var vErr *validation.Error
		switch {
		case errors.Is(err, service.ErrEmailAlreadyExists):
			RespondError(w, http.StatusConflict, err.Error())
		case errors.As(err, &vErr):
			RespondError(w, http.StatusBadRequest, vErr.Message)
		default:
			slog.Error("failed to register user", "error", err)
			RespondError(w, http.StatusInternalServerError, "Registration failed")
		}
		return
	}

	RespondJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			RespondError(w, http.StatusUnauthorized, err.Error())
			return
		}
		slog.Error("failed to log in user", "error", err)
		RespondError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	RespondJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	RespondJSON(w, http.StatusOK, map[string]any{"user": user})
}
