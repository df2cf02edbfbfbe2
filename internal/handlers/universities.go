package handlers

import (
	"net/http"

	"github.com/PDPSchoolTeam/Metsenat-API/internal/models"
)

type UniversityRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type UniversityResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func toUniversityResponse(u *models.University) UniversityResponse {
	return UniversityResponse{ID: u.ID, Name: u.Name}
}

func (h *Handler) CreateUniversity(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/universities"
	defer observe(r, endpoint).ObserveDuration()

	var req UniversityRequest
	if !h.decode(w, r, endpoint, &req) {
		return
	}

	university, err := h.catalog.CreateUniversity(r.Context(), req.Name)
	if err != nil {
		h.respondError(w, r, endpoint, err)
		return
	}
	h.respond(w, r, endpoint, http.StatusCreated, toUniversityResponse(university))
}

func (h *Handler) GetUniversities(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/universities"
	defer observe(r, endpoint).ObserveDuration()

	universities, err := h.catalog.Universities(r.Context())
	if err != nil {
		h.respondError(w, r, endpoint, err)
		return
	}
	resp := make([]UniversityResponse, 0, len(universities))
	for i := range universities {
		resp = append(resp, toUniversityResponse(&universities[i]))
	}
	h.respond(w, r, endpoint, http.StatusOK, resp)
}

func (h *Handler) GetUniversity(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/universities/{id}"
	defer observe(r, endpoint).ObserveDuration()

	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, endpoint, err)
		return
	}
	university, err := h.catalog.University(r.Context(), id)
	if err != nil {
		h.respondError(w, r, endpoint, err)
		return
	}
	h.respond(w, r, endpoint, http.StatusOK, toUniversityResponse(university))
}
