package handlers

import (
	"net/http"
	"time"

	"github.com/PDPSchoolTeam/Metsenat-API/internal/models"
	"github.com/shopspring/decimal"
)

type AllocationRequest struct {
	StudentID uint            `json:"student_id" validate:"required"`
	SponsorID uint            `json:"sponsor_id" validate:"required"`
	Amount    decimal.Decimal `json:"amount"`
}

type AllocationResponse struct {
	ID        uint            `json:"id"`
	StudentID uint            `json:"student_id"`
	SponsorID uint            `json:"sponsor_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

func toAllocationResponse(a *models.Allocation) AllocationResponse {
	return AllocationResponse{
		ID:        a.ID,
		StudentID: a.StudentID,
		SponsorID: a.SponsorID,
		Amount:    a.Amount,
		CreatedAt: a.CreatedAt,
	}
}

type TotalsResponse struct {
	TotalPaid      decimal.Decimal `json:"total_paid"`
	TotalRequested decimal.Decimal `json:"total_requested"`
	TotalNeeded    decimal.Decimal `json:"total_needed"`
}

func (h *Handler) CreateAllocation(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/allocations"
	defer observe(r, endpoint).ObserveDuration()

	var req AllocationRequest
	if !h.decode(w, r, endpoint, &req) {
		return
	}

	allocation, err := h.ledger.RecordAllocation(r.Context(), req.StudentID, req.SponsorID, req.Amount)
	if err != nil {
		h.respondError(w, r, endpoint, err)
		return
	}
	h.respond(w, r, endpoint, http.StatusCreated, toAllocationResponse(allocation))
}

func (h *Handler) GetAllocations(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/allocations"
	defer observe(r, endpoint).ObserveDuration()

	allocations, err := h.ledger.Allocations(r.Context())
	if err != nil {
		h.respondError(w, r, endpoint, err)
		return
	}
	resp := make([]AllocationResponse, 0, len(allocations))
	for i := range allocations {
		resp = append(resp, toAllocationResponse(&allocations[i]))
	}
	h.respond(w, r, endpoint, http.StatusOK, resp)
}

func (h *Handler) GetTotalPayments(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/payments/total"
	defer observe(r, endpoint).ObserveDuration()

	totals, err := h.ledger.TotalPayments(r.Context())
	if err != nil {
		h.respondError(w, r, endpoint, err)
		return
	}
	h.respond(w, r, endpoint, http.StatusOK, TotalsResponse{
		TotalPaid:      totals.TotalPaid,
		TotalRequested: totals.TotalRequested,
		TotalNeeded:    totals.TotalNeeded,
	})
}
