package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"alfaaz/internal/domain"
	"alfaaz/internal/usecase"

	"github.com/rs/zerolog/log"
)

const maxBodySize = 64 * 1024

type handlers struct {
	reg  usecase.Registration
	gen  usecase.Generation
	feed *usecase.Feed
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResp struct {
	Message     string `json:"message"`
	Email       string `json:"email"`
	EmailQueued bool   `json:"email_queued,omitempty"`
}

type verifyReq struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type userResp struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type verifyResp struct {
	Message string   `json:"message"`
	User    userResp `json:"user"`
}

type generateResp struct {
	Shayari  string `json:"shayari"`
	Fallback bool   `json:"fallback"`
}

type errorResp struct {
	Message string `json:"message"`
}

func (h handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h handlers) register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if !decode(w, r, &req) {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	res, err := h.reg.Register(r.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	switch {
	case errors.Is(err, usecase.ErrUserExists):
		writeError(w, http.StatusBadRequest, "User already exists")
	case errors.Is(err, usecase.ErrEmailFailed):
		writeError(w, http.StatusInternalServerError, "Email could not be sent")
	case err != nil:
		log.Ctx(r.Context()).Error().Err(err).Msg("registration failed")
		writeError(w, http.StatusInternalServerError, "Server error")
	case res.EmailQueued:
		writeJSON(w, http.StatusAccepted, registerResp{
			Message:     "Registered. The OTP email is delayed and will be retried",
			Email:       res.Email,
			EmailQueued: true,
		})
	default:
		writeJSON(w, http.StatusCreated, registerResp{Message: "OTP sent to email", Email: res.Email})
	}
}

func (h handlers) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyReq
	if !decode(w, r, &req) {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.OTP == "" {
		writeError(w, http.StatusBadRequest, "Email and OTP are required")
		return
	}

	u, err := h.reg.Verify(r.Context(), req.Email, req.OTP)
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		writeError(w, http.StatusBadRequest, "User not found")
	case errors.Is(err, usecase.ErrInvalidOTP):
		writeError(w, http.StatusBadRequest, "Invalid OTP")
	case errors.Is(err, usecase.ErrOTPExpired):
		writeError(w, http.StatusBadRequest, "OTP has expired")
	case err != nil:
		log.Ctx(r.Context()).Error().Err(err).Msg("otp verification failed")
		writeError(w, http.StatusInternalServerError, "Server error")
	default:
		writeJSON(w, http.StatusOK, verifyResp{
			Message: "Email verified!",
			User:    userResp{ID: u.ID, Name: u.Name, Email: u.Email},
		})
	}
}

func (h handlers) generate(w http.ResponseWriter, r *http.Request) {
	var in usecase.GenerateInput
	if !decode(w, r, &in) {
		return
	}

	out := h.gen.Generate(r.Context(), in)
	writeJSON(w, http.StatusOK, generateResp{Shayari: out.Text, Fallback: out.Fallback})
}

func (h handlers) listFeed(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	posts, err := h.feed.Latest(r.Context(), limit)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("listing feed failed")
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if posts == nil {
		posts = []domain.CommunityPost{}
	}
	writeJSON(w, http.StatusOK, posts)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResp{Message: msg})
}
