package httpapi

import "net/http"

type avatarRequest struct {
	ContentType string `json:"contentType" validate:"omitempty,oneof=image/png image/jpeg image/gif image/webp"`
}

func (avatarRequest) fieldMessages() map[string]string {
	return map[string]string{"contentType": "Avatar must be a png, jpeg, gif or webp image"}
}

func (s *HTTPServer) presignAvatar(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(r)
	if !ok {
		writeMsg(w, http.StatusUnauthorized, msgNoToken)
		return
	}

	var req avatarRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}
	if !s.check(w, r, req) {
		return
	}

	up, err := s.avatars.PresignUpload(r.Context(), id, req.ContentType)
	if err != nil {
		s.writeError(w, r, err, defaultNotFound)
		return
	}
	writeJSON(w, http.StatusOK, up)
}
