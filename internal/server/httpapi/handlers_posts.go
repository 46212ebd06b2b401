package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type textRequest struct {
	Text string `json:"text" validate:"required"`
}

func (textRequest) fieldMessages() map[string]string {
	return map[string]string{"text": "Text is required"}
}

func (s *HTTPServer) readText(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req textRequest
	if !decodeJSON(w, r, &req, false) {
		return "", false
	}
	req.Text = strings.TrimSpace(req.Text)
	if !s.check(w, r, req) {
		return "", false
	}
	return req.Text, true
}

func (s *HTTPServer) createPost(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(r)
	if !ok {
		writeMsg(w, http.StatusUnauthorized, msgNoToken)
		return
	}
	text, ok := s.readText(w, r)
	if !ok {
		return
	}

	p, err := s.posts.Create(r.Context(), id, text)
	if err != nil {
		s.writeError(w, r, err, defaultNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *HTTPServer) listPosts(w http.ResponseWriter, r *http.Request) {
	list, err := s.posts.List(r.Context())
	if err != nil {
		s.writeError(w, r, err, defaultNotFound)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *HTTPServer) getPost(w http.ResponseWriter, r *http.Request) {
	p, err := s.posts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err, defaultNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *HTTPServer) deletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(r)
	if !ok {
		writeMsg(w, http.StatusUnauthorized, msgNoToken)
		return
	}

	if err := s.posts.Delete(r.Context(), id, chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err, defaultNotFound)
		return
	}
	writeMsg(w, http.StatusOK, "Post removed")
}

func (s *HTTPServer) likePost(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(r)
	if !ok {
		writeMsg(w, http.StatusUnauthorized, msgNoToken)
		return
	}

	likes, err := s.posts.Like(r.Context(), id, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err, defaultNotFound)
		return
	}
	writeJSON(w, http.StatusOK, likes)
}

func (s *HTTPServer) unlikePost(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(r)
	if !ok {
		writeMsg(w, http.StatusUnauthorized, msgNoToken)
		return
	}

	likes, err := s.posts.Unlike(r.Context(), id, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err, defaultNotFound)
		return
	}
	writeJSON(w, http.StatusOK, likes)
}

func (s *HTTPServer) addComment(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(r)
	if !ok {
		writeMsg(w, http.StatusUnauthorized, msgNoToken)
		return
	}
	text, ok := s.readText(w, r)
	if !ok {
		return
	}

	comments, err := s.posts.Comment(r.Context(), id, chi.URLParam(r, "id"), text)
	if err != nil {
		s.writeError(w, r, err, defaultNotFound)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (s *HTTPServer) deleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(r)
	if !ok {
		writeMsg(w, http.StatusUnauthorized, msgNoToken)
		return
	}

	comments, err := s.posts.DeleteComment(r.Context(), id, chi.URLParam(r, "id"), chi.URLParam(r, "comment_id"))
	if err != nil {
		s.writeError(w, r, err, defaultNotFound)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}
