package services

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-analyzer/internal/config"
)

func TestValidateUploadSize(t *testing.T) {
	max := config.DefaultMaxFileSize

	assert.NoError(t, ValidateUploadSize(0, max))
	assert.NoError(t, ValidateUploadSize(max, max))

	err := ValidateUploadSize(41<<20, max)
	require.Error(t, err)

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, http.StatusRequestEntityTooLarge, validation.Status)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestUpstreamErrorUnwraps(t *testing.T) {
	cause := errors.New("deadline exceeded")
	err := error(&UpstreamError{Op: "generate content", Err: cause})

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "generate content: deadline exceeded", err.Error())
}
