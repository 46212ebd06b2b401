package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/devconnector/internal/common"
)

const maxBodyBytes = 1 << 20

type msgBody struct {
	Msg string `json:"msg"`
}

type fieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

type errorsBody struct {
	Errors []fieldError `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, msgBody{Msg: msg})
}

func writeErrors(w http.ResponseWriter, status int, errs ...fieldError) {
	writeJSON(w, status, errorsBody{Errors: errs})
}

func writeServerError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = io.WriteString(w, "Server Error")
}

// notFoundMessages maps a missing resource to the client-facing message.
type notFoundMessages map[string]string

var defaultNotFound = notFoundMessages{
	common.ResourceUser:       "User not found",
	common.ResourceProfile:    "Profile not found",
	common.ResourcePost:       "Post not found",
	common.ResourceComment:    "Comment does not exist",
	common.ResourceExperience: "Experience not found",
	common.ResourceEducation:  "Education not found",
}

// ownProfileNotFound is used on /profile/me and the sub-list routes.
var ownProfileNotFound = func() notFoundMessages {
	m := notFoundMessages{}
	for k, v := range defaultNotFound {
		m[k] = v
	}
	m[common.ResourceProfile] = "There is no profile for this user"
	return m
}()

// writeError is the single mapping from service errors to responses.
// Unexpected errors are logged and reported as a bare 500.
func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error, nf notFoundMessages) {
	var notFound *common.NotFoundError

	switch {
	case errors.Is(err, common.ErrTokenMissing):
		writeMsg(w, http.StatusUnauthorized, msgNoToken)
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		writeMsg(w, http.StatusUnauthorized, msgInvalidToken)
	case errors.Is(err, common.ErrNotAuthorized):
		writeMsg(w, http.StatusUnauthorized, "User not authorized")
	case errors.Is(err, common.ErrInvalidCredentials):
		writeErrors(w, http.StatusBadRequest, fieldError{Msg: "Invalid Credentials"})
	case errors.Is(err, common.ErrUserExists):
		writeErrors(w, http.StatusBadRequest, fieldError{Msg: "User already exists"})
	case errors.Is(err, common.ErrAlreadyLiked):
		writeMsg(w, http.StatusBadRequest, "Post already liked")
	case errors.Is(err, common.ErrNotLiked):
		writeMsg(w, http.StatusBadRequest, "Post has not yet been liked")
	case errors.Is(err, common.ErrUploadsDisabled):
		writeMsg(w, http.StatusServiceUnavailable, "Avatar uploads are not configured")
	case errors.As(err, &notFound):
		msg, ok := nf[notFound.Resource]
		if !ok {
			msg = "Not found"
		}
		writeMsg(w, http.StatusNotFound, msg)
	case errors.Is(err, common.ErrorNotFound):
		writeMsg(w, http.StatusNotFound, "Not found")
	default:
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeServerError(w)
	}
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst untouched
// when allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return true
		}
		writeMsg(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
