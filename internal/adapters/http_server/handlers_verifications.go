package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"stayhub/internal/app"
	"stayhub/internal/domain"
)

type submitVerificationReq struct {
	DocumentType     string  `json:"document_type"`
	DocumentNumber   *string `json:"document_number"`
	DocumentFrontURL *string `json:"document_front_url"`
	DocumentBackURL  *string `json:"document_back_url"`
	SelfieURL        *string `json:"selfie_url"`
}

func (h *Handlers) submitVerification(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	var req submitVerificationReq
	if !decode(w, r, &req) {
		return
	}
	if req.DocumentType == "" {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "document_type is required")
		return
	}
	v, err := h.Verifications.Submit(r.Context(), app.SubmitVerificationInput{
		DocumentType:     req.DocumentType,
		DocumentNumber:   req.DocumentNumber,
		DocumentFrontURL: req.DocumentFrontURL,
		DocumentBackURL:  req.DocumentBackURL,
		SelfieURL:        req.SelfieURL,
	}, p.UserID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toVerificationDTO(v))
}

func (h *Handlers) myVerification(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	v, err := h.Verifications.ForUser(r.Context(), p.UserID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toVerificationDTO(v))
}

type decideVerificationReq struct {
	Status string `json:"status"`
}

func (h *Handlers) decideVerification(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r)
	var req decideVerificationReq
	if !decode(w, r, &req) {
		return
	}
	reviewer, err := h.Auth.Profile(r.Context(), p.UserID)
	if err != nil {
		writeErr(w, err)
		return
	}
	v, err := h.Verifications.Decide(r.Context(), chi.URLParam(r, "id"), domain.VerificationStatus(req.Status), reviewer)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toVerificationDTO(v))
}
