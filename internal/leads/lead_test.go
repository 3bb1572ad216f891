package leads

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseSubmission(t *testing.T) {
	sub, err := ParseSubmission([]byte(`{"email":" Ana@Example.COM ","name":"Ana","role":"ops","comment":42}`))
	require.NoError(t, err)
	require.False(t, sub.Honeypot)

	want := Input{Email: " Ana@Example.COM ", Name: "Ana", Role: "ops"}
	if diff := cmp.Diff(want, sub.Input); diff != "" {
		t.Fatalf("input mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSubmissionHoneypot(t *testing.T) {
	sub, err := ParseSubmission([]byte(`{"email":"a@b.co","website":""}`))
	require.NoError(t, err)
	require.True(t, sub.Honeypot)
}

func TestParseSubmissionRejectsBadBodies(t *testing.T) {
	_, err := ParseSubmission([]byte(`{"email":`))
	require.ErrorIs(t, err, ErrMalformedBody)

	for _, raw := range []string{`null`, `[]`, `"x"`, `3`} {
		_, err := ParseSubmission([]byte(raw))
		require.ErrorIs(t, err, ErrNotAnObject, raw)
	}
}

func TestSanitize(t *testing.T) {
	got := Input{
		Email:   "  Ana@Example.COM\n",
		Name:    " Ana ",
		Company: "\tAcme ",
		Role:    "ops",
		Comment: " hi ",
	}.Sanitize()

	require.Equal(t, Input{
		Email:   "ana@example.com",
		Name:    "Ana",
		Company: "Acme",
		Role:    "ops",
		Comment: "hi",
	}, got)
}
