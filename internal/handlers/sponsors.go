package handlers

import (
	"net/http"
	"time"

	"github.com/PDPSchoolTeam/Metsenat-API/internal/ledger"
	"github.com/PDPSchoolTeam/Metsenat-API/internal/models"
	"github.com/shopspring/decimal"
)

type SponsorRequest struct {
	FullName         string           `json:"full_name" validate:"required,max=250"`
	PhoneNumber      string           `json:"phone_number" validate:"required,max=30"`
	IsOrganization   bool             `json:"is_organization"`
	OrganizationName *string          `json:"organization_name" validate:"omitempty,max=250"`
	AmountSelection  string           `json:"amount_selection" validate:"required"`
	CustomAmount     *decimal.Decimal `json:"custom_amount"`
	Progress         string           `json:"progress" validate:"omitempty,oneof=new in_review confirmed cancelled"`
}

type SponsorResponse struct {
	ID               uint             `json:"id"`
	FullName         string           `json:"full_name"`
	PhoneNumber      string           `json:"phone_number"`
	IsOrganization   bool             `json:"is_organization"`
	OrganizationName *string          `json:"organization_name"`
	AmountSelection  string           `json:"amount_selection"`
	CustomAmount     *decimal.Decimal `json:"custom_amount"`
	DepositMoney     decimal.Decimal  `json:"deposit_money"`
	SpentAmount      decimal.Decimal  `json:"spent_amount"`
	Progress         string           `json:"progress"`
	SponsorKind      string           `json:"sponsor_kind"`
	CreatedAt        time.Time        `json:"created_at"`
}

func toSponsorResponse(s *models.Sponsor) SponsorResponse {
	return SponsorResponse{
		ID:               s.ID,
		FullName:         s.FullName,
		PhoneNumber:      s.PhoneNumber,
		IsOrganization:   s.IsOrganization,
		OrganizationName: s.OrganizationName,
		AmountSelection:  string(s.AmountSelection),
		CustomAmount:     s.CustomAmount,
		DepositMoney:     s.DepositMoney,
		SpentAmount:      s.SpentAmount,
		Progress:         string(s.Progress),
		SponsorKind:      string(s.Kind),
		CreatedAt:        s.CreatedAt,
	}
}

func (r *SponsorRequest) toInput() ledger.SponsorInput {
	return ledger.SponsorInput{
		FullName:         r.FullName,
		PhoneNumber:      r.PhoneNumber,
		IsOrganization:   r.IsOrganization,
		OrganizationName: r.OrganizationName,
		AmountSelection:  models.AmountSelection(r.AmountSelection),
		CustomAmount:     r.CustomAmount,
		Progress:         models.Progress(r.Progress),
	}
}

func (h *Handler) CreateSponsor(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/sponsors"
	defer observe(r, endpoint).ObserveDuration()

	var req SponsorRequest
	if !h.decode(w, r, endpoint, &req) {
		return
	}

	sponsor, err := h.ledger.UpsertSponsor(r.Context(), 0, req.toInput())
	if err != nil {
		h.respondError(w, r, endpoint, err)
		return
	}
	h.respond(w, r, endpoint, http.StatusCreated, toSponsorResponse(sponsor))
}

func (h *Handler) UpdateSponsor(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/sponsors/{id}"
	defer observe(r, endpoint).ObserveDuration()

	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, endpoint, err)
		return
	}

	var req SponsorRequest
	if !h.decode(w, r, endpoint, &req) {
		return
	}

	sponsor, err := h.ledger.UpsertSponsor(r.Context(), id, req.toInput())
	if err != nil {
		h.respondError(w, r, endpoint, err)
		return
	}
	h.respond(w, r, endpoint, http.StatusOK, toSponsorResponse(sponsor))
}

func (h *Handler) GetSponsors(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/sponsors"
	defer observe(r, endpoint).ObserveDuration()

	sponsors, err := h.ledger.Sponsors(r.Context())
	if err != nil {
		h.respondError(w, r, endpoint, err)
		return
	}
	resp := make([]SponsorResponse, 0, len(sponsors))
	for i := range sponsors {
		resp = append(resp, toSponsorResponse(&sponsors[i]))
	}
	h.respond(w, r, endpoint, http.StatusOK, resp)
}

func (h *Handler) GetSponsor(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/sponsors/{id}"
	defer observe(r, endpoint).ObserveDuration()

	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, endpoint, err)
		return
	}
	sponsor, err := h.ledger.Sponsor(r.Context(), id)
	if err != nil {
		h.respondError(w, r, endpoint, err)
		return
	}
	h.respond(w, r, endpoint, http.StatusOK, toSponsorResponse(sponsor))
}

func (h *Handler) DeleteSponsor(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/sponsors/{id}"
	defer observe(r, endpoint).ObserveDuration()

	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, endpoint, err)
		return
	}
	if err := h.ledger.DeleteSponsor(r.Context(), id); err != nil {
		h.respondError(w, r, endpoint, err)
		return
	}
	h.respond(w, r, endpoint, http.StatusOK, map[string]string{"message": "sponsor has been deleted successfully"})
}
