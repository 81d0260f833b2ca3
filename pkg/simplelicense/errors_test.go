package simplelicense_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tendant/simple-license/pkg/simplelicense"
)

func TestEmbedErrorUnwrap(t *testing.T) {
	err := simplelicense.NewEmbedError(simplelicense.AudioEmbed, "audio/mpeg", "parse", simplelicense.ErrInvalidContainer)

	assert.ErrorIs(t, err, simplelicense.ErrInvalidContainer)
	assert.Contains(t, err.Error(), "audio/mpeg")
	assert.Contains(t, err.Error(), "parse")
}

func TestPackagingErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := &simplelicense.PackagingError{FileName: "a.mp3", Op: "archive", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "a.mp3")
}
