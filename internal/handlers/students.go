package handlers

import (
	"net/http"
	"time"

	"github.com/PDPSchoolTeam/Metsenat-API/internal/ledger"
	"github.com/PDPSchoolTeam/Metsenat-API/internal/models"
	"github.com/shopspring/decimal"
)

type StudentRequest struct {
	FullName      string          `json:"full_name" validate:"required,max=100"`
	Degree        string          `json:"degree" validate:"required,oneof=bachelor master"`
	ContractPrice decimal.Decimal `json:"contract_price"`
	UniversityID  uint            `json:"university_id" validate:"required"`
}

type StudentResponse struct {
	ID             uint            `json:"id"`
	FullName       string          `json:"full_name"`
	Degree         string          `json:"degree"`
	ContractPrice  decimal.Decimal `json:"contract_price"`
	AllocatedMoney decimal.Decimal `json:"allocated_money"`
	UniversityID   uint            `json:"university_id"`
	CreatedAt      time.Time       `json:"created_at"`
}

func toStudentResponse(s *models.Student) StudentResponse {
	return StudentResponse{
		ID:             s.ID,
		FullName:       s.FullName,
		Degree:         string(s.Degree),
		ContractPrice:  s.ContractPrice,
		AllocatedMoney: s.AllocatedMoney,
		UniversityID:   s.UniversityID,
		CreatedAt:      s.CreatedAt,
	}
}

func (r *StudentRequest) toInput() ledger.StudentInput {
	return ledger.StudentInput{
		FullName:      r.FullName,
		Degree:        models.Degree(r.Degree),
		ContractPrice: r.ContractPrice,
		UniversityID:  r.UniversityID,
	}
}

func (h *Handler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/students"
	defer observe(r, endpoint).ObserveDuration()

	var req StudentRequest
	if !h.decode(w, r, endpoint, &req) {
		return
	}

	student, err := h.ledger.UpsertStudent(r.Context(), 0, req.toInput())
	if err != nil {
		h.respondError(w, r, endpoint, err)
		return
	}
	h.respond(w, r, endpoint, http.StatusCreated, toStudentResponse(student))
}

func (h *Handler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/students/{id}"
	defer observe(r, endpoint).ObserveDuration()

	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, endpoint, err)
		return
	}

	var req StudentRequest
	if !h.decode(w, r, endpoint, &req) {
		return
	}

	student, err := h.ledger.UpsertStudent(r.Context(), id, req.toInput())
	if err != nil {
		h.respondError(w, r, endpoint, err)
		return
	}
	h.respond(w, r, endpoint, http.StatusOK, toStudentResponse(student))
}

func (h *Handler) GetStudents(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/students"
	defer observe(r, endpoint).ObserveDuration()

	students, err := h.ledger.Students(r.Context())
	if err != nil {
		h.respondError(w, r, endpoint, err)
		return
	}
	resp := make([]StudentResponse, 0, len(students))
	for i := range students {
		resp = append(resp, toStudentResponse(&students[i]))
	}
	h.respond(w, r, endpoint, http.StatusOK, resp)
}

func (h *Handler) GetStudent(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/students/{id}"
	defer observe(r, endpoint).ObserveDuration()

	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, endpoint, err)
		return
	}
	student, err := h.ledger.Student(r.Context(), id)
	if err != nil {
		h.respondError(w, r, endpoint, err)
		return
	}
	h.respond(w, r, endpoint, http.StatusOK, toStudentResponse(student))
}

func (h *Handler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/students/{id}"
	defer observe(r, endpoint).ObserveDuration()

	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, endpoint, err)
		return
	}
	if err := h.ledger.DeleteStudent(r.Context(), id); err != nil {
		h.respondError(w, r, endpoint, err)
		return
	}
	h.respond(w, r, endpoint, http.StatusOK, map[string]string{"message": "student has been deleted successfully"})
}
