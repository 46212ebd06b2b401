package httpapi

import (
	"net/http"
	"strings"
)

type tokenResponse struct {
	Token string `json:"token"`
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6"`
}

func (registerRequest) fieldMessages() map[string]string {
	return map[string]string{
		"name":     "Name is required",
		"email":    "Please include a valid email",
		"password": "Please enter a password with 6 or more characters",
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (loginRequest) fieldMessages() map[string]string {
	return map[string]string{
		"email":    "Please include a valid email",
		"password": "Password is required",
	}
}

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if !s.check(w, r, req) {
		return
	}

	token, err := s.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err, defaultNotFound)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if !s.check(w, r, req) {
		return
	}

	token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err, defaultNotFound)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (s *HTTPServer) me(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(r)
	if !ok {
		writeMsg(w, http.StatusUnauthorized, msgNoToken)
		return
	}

	user, err := s.users.Me(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, defaultNotFound)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
