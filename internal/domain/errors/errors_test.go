package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidationErrorCollectsItems(t *testing.T) {
	var ve ValidationError
	require.False(t, ve.HasAny())

	ve.Add("site.site_url", "must not be empty")
	ve.Add("", "bare message")

	require.True(t, ve.HasAny())
	require.True(t, errors.Is(ve, ErrInvalid))
	require.Equal(t, []string{"site.site_url: must not be empty", "bare message"}, ve.Messages())
	require.Equal(t, []string{"must not be empty", "bare message"}, ve.Reasons())
	require.Contains(t, ve.Error(), " - site.site_url: must not be empty\n")
}

func TestContentErrorCodes(t *testing.T) {
	cases := []struct {
		err  error
		code Code
	}{
		{NewAccessDenied("content/secret.md"), CodeAccessDenied},
		{NewNotFound("content/01_pages/homepage.md", fs.ErrNotExist), CodeNotFound},
		{NewIOError("content/01_pages/homepage.md", errors.New("disk")), CodeIO},
		{NewInvalidContent("content/01_pages/homepage.md", errors.New("bad yaml")), CodeInvalidContent},
	}
	for _, tc := range cases {
		wrapped := fmt.Errorf("read: %w", tc.err)
		require.True(t, Is(wrapped, tc.code), "code %s", tc.code)
		require.Equal(t, tc.code, GetCode(wrapped))
	}

	require.False(t, Is(errors.New("plain"), CodeNotFound))
	require.Equal(t, Code(""), GetCode(nil))
}

func TestContentErrorUnwrap(t *testing.T) {
	err := NewNotFound("content/01_pages/homepage.md", fs.ErrNotExist)
	require.ErrorIs(t, err, fs.ErrNotExist)
	require.Contains(t, err.Error(), "does not exist")

	denied := NewAccessDenied("../etc/passwd")
	require.Equal(t, "ACCESS_DENIED: ../etc/passwd is not in the content allowlist", denied.Error())
}
