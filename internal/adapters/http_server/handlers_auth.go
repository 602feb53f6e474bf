package httpserver

import (
	"net/http"

	"stayhub/internal/app"
	"stayhub/internal/domain"
)

type registerReq struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Role      string  `json:"role"`
	Phone     *string `json:"phone"`
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if !decode(w, r, &req) {
		return
	}
	if req.Email == "" || len(req.Password) < 8 || req.FirstName == "" || req.LastName == "" {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "email, first_name, last_name and a password of at least 8 characters are required")
		return
	}
	role := domain.RoleGuest
	if req.Role != "" {
		parsed, err := domain.ParseRole(req.Role)
		if err != nil || parsed == domain.RoleAdmin {
			writeProblem(w, http.StatusBadRequest, "Bad Request", "role must be guest or host")
			return
		}
		role = parsed
	}
	u, err := h.Auth.Register(r.Context(), app.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
		Phone:     req.Phone,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserDTO(u))
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResp struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if !decode(w, r, &req) {
		return
	}
	u, token, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResp{Token: token, User: toUserDTO(u)})
}

func (h *Handlers) me(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r)
	if !ok {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}
	u, err := h.Auth.Profile(r.Context(), p.UserID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(u))
}
