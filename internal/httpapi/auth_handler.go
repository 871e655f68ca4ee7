package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/fitquality/storefront/internal/users"
)

type AuthHandler struct {
	users    *users.Service
	registry *CartRegistry
}

func NewAuthHandler(userService *users.Service, registry *CartRegistry) *AuthHandler {
	return &AuthHandler{users: userService, registry: registry}
}

type RegisterRequestDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponseDTO struct {
	Token  string `json:"token"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type UserResponseDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	user, err := h.users.Register(r.Context(), req.Name, req.Email, req.Phone, req.Password)
	if errors.Is(err, users.ErrEmailTaken) {
		respondError(w, http.StatusConflict, "email_taken", err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, UserResponseDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
		Role:  string(user.Role),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	token, identity, err := h.users.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, users.ErrInvalidCredentials) {
		respondError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
		return
	}
	if err != nil {
		log.Printf("login failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "could not log in")
		return
	}

	respondJSON(w, http.StatusOK, LoginResponseDTO{
		Token:  token,
		UserID: identity.UserID,
		Name:   identity.Name,
		Email:  identity.Email,
		Role:   string(identity.Role),
	})
}

// Logout ends the session and throws away its cart.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := tokenFrom(r.Context())
	if err := h.users.Logout(r.Context(), token); err != nil {
		log.Printf("logout failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "could not log out")
		return
	}
	h.registry.Drop(token)
	respondJSON(w, http.StatusNoContent, nil)
}

type UpdateProfileRequestDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type UpdatePasswordRequestDTO struct {
	NewPassword string `json:"new_password"`
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "no active session")
		return
	}

	user, err := h.users.Profile(r.Context(), identity.UserID)
	if errors.Is(err, users.ErrUserNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	if err != nil {
		log.Printf("failed to load profile %d: %v", identity.UserID, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load profile")
		return
	}

	respondJSON(w, http.StatusOK, UserResponseDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
		Role:  string(user.Role),
	})
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "no active session")
		return
	}

	var req UpdateProfileRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	err := h.users.UpdateProfile(r.Context(), tokenFrom(r.Context()), identity.UserID, req.Name, req.Email, req.Phone)
	if errors.Is(err, users.ErrEmailTaken) {
		respondError(w, http.StatusConflict, "email_taken", err.Error())
		return
	}
	if errors.Is(err, users.ErrUserNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "no active session")
		return
	}

	var req UpdatePasswordRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	err := h.users.UpdatePassword(r.Context(), identity.Email, req.NewPassword)
	if errors.Is(err, users.ErrUserNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
