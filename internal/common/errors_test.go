package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFound_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("loading: %w", NotFound(ResourcePost))

	assert.ErrorIs(t, err, ErrorNotFound)

	var nf *NotFoundError
	if assert.True(t, errors.As(err, &nf)) {
		assert.Equal(t, ResourcePost, nf.Resource)
	}
	assert.Equal(t, "loading: post not found", err.Error())
}
