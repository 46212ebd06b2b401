package services

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/devconnector/internal/common"
	"github.com/google/uuid"
)

// validID rejects ids that cannot exist in the store, so lookups with a
// malformed id report not found instead of a database error.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// GravatarURL returns the default avatar for email: 200px, pg rated,
// mystery-man fallback.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(common.NormalizeEmail(email)))
	return "//www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?s=200&r=pg&d=mm"
}

// notFoundAs turns a bare repository not-found into one naming resource.
func notFoundAs(err error, resource, action string) error {
	if errors.Is(err, common.ErrorNotFound) {
		var nf *common.NotFoundError
		if errors.As(err, &nf) {
			return err
		}
		return common.NotFound(resource)
	}
	return fmt.Errorf("error %s: %w", action, err)
}
