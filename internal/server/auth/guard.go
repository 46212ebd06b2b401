package auth

import "github.com/dmitrijs2005/devconnector/internal/common"

// Owned is implemented by every resource that only its owner may mutate:
// users, profiles, posts and comments.
type Owned interface {
	OwnerID() string
}

// Authorize allows the mutation iff the caller owns the resource.
// It says nothing about duplicate actions such as a second like; those are
// business rules checked by the services.
func Authorize(resource Owned, id Identity) error {
	if resource == nil || id.UserID == "" || resource.OwnerID() != id.UserID {
		return common.ErrNotAuthorized
	}
	return nil
}
