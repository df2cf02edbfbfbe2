package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/PDPSchoolTeam/Metsenat-API/configs"
	"github.com/PDPSchoolTeam/Metsenat-API/internal/apperr"
	appmw "github.com/PDPSchoolTeam/Metsenat-API/internal/middleware"
	"github.com/PDPSchoolTeam/Metsenat-API/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Username        string `json:"username" validate:"required,max=150"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	FirstName       string `json:"first_name" validate:"max=30"`
	LastName        string `json:"last_name" validate:"max=30"`
	Role            string `json:"role" validate:"omitempty,oneof=student admin sponsor"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type UserResponse struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Role      string `json:"role,omitempty"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
	}
}

func issueTokens(user *models.User) (TokenResponse, error) {
	now := time.Now()
	secret := []byte(configs.AppConfig.JWT.SECRET)

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(time.Duration(configs.AppConfig.JWT.AccessTTLHours) * time.Hour).Unix(),
	})
	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID,
		"typ": "refresh",
		"iat": now.Unix(),
		"exp": now.Add(time.Duration(configs.AppConfig.JWT.RefreshTTLHours) * time.Hour).Unix(),
	})

	accessStr, err := access.SignedString(secret)
	if err != nil {
		return TokenResponse{}, err
	}
	refreshStr, err := refresh.SignedString(secret)
	if err != nil {
		return TokenResponse{}, err
	}
	return TokenResponse{Access: accessStr, Refresh: refreshStr}, nil
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/auth/register"
	defer observe(r, endpoint).ObserveDuration()

	var req RegisterRequest
	if !h.decode(w, r, endpoint, &req) {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.respondError(w, r, endpoint, err)
		return
	}

	user := models.User{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      models.Role(req.Role),
		Password:  string(hash),
	}
	if err := h.catalog.CreateUser(r.Context(), &user); err != nil {
		h.respondError(w, r, endpoint, err)
		return
	}

	tokens, err := issueTokens(&user)
	if err != nil {
		h.respondError(w, r, endpoint, err)
		return
	}
	h.respond(w, r, endpoint, http.StatusCreated, tokens)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/auth/login"
	defer observe(r, endpoint).ObserveDuration()

	var req LoginRequest
	if !h.decode(w, r, endpoint, &req) {
		return
	}

	user, err := h.catalog.UserByEmail(r.Context(), req.Email)
	if err != nil {
		// Only a missing user means bad credentials; storage failures are
		// server errors, not 401s.
		var notFound *apperr.NotFoundError
		if errors.As(err, &notFound) {
			h.respond(w, r, endpoint, http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
			return
		}
		h.respondError(w, r, endpoint, err)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		h.respond(w, r, endpoint, http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
		return
	}

	tokens, err := issueTokens(user)
	if err != nil {
		h.respondError(w, r, endpoint, err)
		return
	}
	h.respond(w, r, endpoint, http.StatusOK, tokens)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/auth/me"
	defer observe(r, endpoint).ObserveDuration()

	userID, ok := r.Context().Value(appmw.UserIDContextKey).(uint)
	if !ok {
		h.respond(w, r, endpoint, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	user, err := h.catalog.UserByID(r.Context(), userID)
	if err != nil {
		h.respondError(w, r, endpoint, err)
		return
	}
	h.respond(w, r, endpoint, http.StatusOK, toUserResponse(user))
}
