package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/devconnector/internal/server/models"
	"github.com/go-chi/chi/v5"
)

// skillList accepts either a JSON array or a comma separated string.
type skillList []string

func (s *skillList) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*s = cleanSkills(list)
		return nil
	}

	var csv string
	if err := json.Unmarshal(b, &csv); err != nil {
		return err
	}
	*s = cleanSkills(strings.Split(csv, ","))
	return nil
}

func cleanSkills(in []string) skillList {
	out := skillList{}
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

type profileRequest struct {
	Company        string    `json:"company"`
	Website        string    `json:"website"`
	Location       string    `json:"location"`
	Status         string    `json:"status" validate:"required"`
	Skills         skillList `json:"skills" validate:"required,min=1"`
	Bio            string    `json:"bio"`
	GitHubUsername string    `json:"githubusername"`
	YouTube        string    `json:"youtube"`
	Twitter        string    `json:"twitter"`
	Facebook       string    `json:"facebook"`
	LinkedIn       string    `json:"linkedin"`
	Instagram      string    `json:"instagram"`
}

func (profileRequest) fieldMessages() map[string]string {
	return map[string]string{
		"status": "Status is required",
		"skills": "Skills is required",
	}
}

func (p profileRequest) toModel() *models.Profile {
	return &models.Profile{
		Company:        p.Company,
		Website:        p.Website,
		Location:       p.Location,
		Status:         strings.TrimSpace(p.Status),
		Skills:         []string(p.Skills),
		Bio:            p.Bio,
		GitHubUsername: p.GitHubUsername,
		Social: models.Social{
			YouTube:   p.YouTube,
			Twitter:   p.Twitter,
			Facebook:  p.Facebook,
			LinkedIn:  p.LinkedIn,
			Instagram: p.Instagram,
		},
	}
}

type experienceRequest struct {
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Location    string `json:"location"`
	From        string `json:"from" validate:"required"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

func (experienceRequest) fieldMessages() map[string]string {
	return map[string]string{
		"title":   "Title is required",
		"company": "Company is required",
		"from":    "From date is required",
	}
}

type educationRequest struct {
	School       string `json:"school" validate:"required"`
	Degree       string `json:"degree" validate:"required"`
	FieldOfStudy string `json:"fieldofstudy" validate:"required"`
	From         string `json:"from" validate:"required"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func (educationRequest) fieldMessages() map[string]string {
	return map[string]string{
		"school":       "School is required",
		"degree":       "Degree is required",
		"fieldofstudy": "Field of study is required",
		"from":         "From date is required",
	}
}

// parsePeriod converts the from/to pair, writing a 400 on bad dates. A
// current position has no end date.
func parsePeriod(w http.ResponseWriter, from, to string, current bool) (time.Time, *time.Time, bool) {
	f, ok := parseDate(from)
	if !ok {
		writeErrors(w, http.StatusBadRequest, fieldError{Msg: "From date is invalid", Param: "from"})
		return time.Time{}, nil, false
	}

	if strings.TrimSpace(to) == "" || current {
		return f, nil, true
	}

	t, ok := parseDate(to)
	if !ok {
		writeErrors(w, http.StatusBadRequest, fieldError{Msg: "To date is invalid", Param: "to"})
		return time.Time{}, nil, false
	}
	return f, &t, true
}

func (s *HTTPServer) getMyProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(r)
	if !ok {
		writeMsg(w, http.StatusUnauthorized, msgNoToken)
		return
	}

	p, err := s.profiles.GetMine(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, ownProfileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *HTTPServer) listProfiles(w http.ResponseWriter, r *http.Request) {
	list, err := s.profiles.List(r.Context())
	if err != nil {
		s.writeError(w, r, err, defaultNotFound)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *HTTPServer) getProfileByUser(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiles.GetByUserID(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		s.writeError(w, r, err, defaultNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *HTTPServer) upsertProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(r)
	if !ok {
		writeMsg(w, http.StatusUnauthorized, msgNoToken)
		return
	}

	var req profileRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	req.Status = strings.TrimSpace(req.Status)
	if !s.check(w, r, req) {
		return
	}

	p, err := s.profiles.Upsert(r.Context(), id, req.toModel())
	if err != nil {
		s.writeError(w, r, err, ownProfileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *HTTPServer) deleteAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(r)
	if !ok {
		writeMsg(w, http.StatusUnauthorized, msgNoToken)
		return
	}

	if err := s.profiles.DeleteAccount(r.Context(), id); err != nil {
		s.writeError(w, r, err, defaultNotFound)
		return
	}
	writeMsg(w, http.StatusOK, "User deleted")
}

func (s *HTTPServer) addExperience(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(r)
	if !ok {
		writeMsg(w, http.StatusUnauthorized, msgNoToken)
		return
	}

	var req experienceRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	if !s.check(w, r, req) {
		return
	}
	from, to, ok := parsePeriod(w, req.From, req.To, req.Current)
	if !ok {
		return
	}

	p, err := s.profiles.AddExperience(r.Context(), id, &models.Experience{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		s.writeError(w, r, err, ownProfileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *HTTPServer) deleteExperience(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(r)
	if !ok {
		writeMsg(w, http.StatusUnauthorized, msgNoToken)
		return
	}

	p, err := s.profiles.DeleteExperience(r.Context(), id, chi.URLParam(r, "exp_id"))
	if err != nil {
		s.writeError(w, r, err, ownProfileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *HTTPServer) addEducation(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(r)
	if !ok {
		writeMsg(w, http.StatusUnauthorized, msgNoToken)
		return
	}

	var req educationRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	if !s.check(w, r, req) {
		return
	}
	from, to, ok := parsePeriod(w, req.From, req.To, req.Current)
	if !ok {
		return
	}

	p, err := s.profiles.AddEducation(r.Context(), id, &models.Education{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		s.writeError(w, r, err, ownProfileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *HTTPServer) deleteEducation(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(r)
	if !ok {
		writeMsg(w, http.StatusUnauthorized, msgNoToken)
		return
	}

	p, err := s.profiles.DeleteEducation(r.Context(), id, chi.URLParam(r, "edu_id"))
	if err != nil {
		s.writeError(w, r, err, ownProfileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
