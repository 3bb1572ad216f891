package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsAllowedExactMatch(t *testing.T) {
	require.True(t, IsAllowed("content/01_pages/homepage.md"))
	require.True(t, IsAllowed("content/03_domain_narratives/protect_margins_without_cfo.md"))

	for _, p := range []string{
		"",
		"content/01_pages/secret.md",
		"./content/01_pages/homepage.md",
		"content/01_pages/../01_pages/homepage.md",
		"CONTENT/01_pages/homepage.md",
		"/content/01_pages/homepage.md",
		"content/01_pages/homepage.md ",
	} {
		require.False(t, IsAllowed(p), "path %q", p)
	}
}

func TestAllowedPathsSortedCopy(t *testing.T) {
	paths := AllowedPaths()
	require.Len(t, paths, 13)
	require.IsNonDecreasing(t, paths)
	for _, p := range paths {
		require.True(t, strings.HasPrefix(p, PagesDir+"/") || strings.HasPrefix(p, NarrativesDir+"/"), p)
	}

	paths[0] = "mutated"
	require.NotEqual(t, "mutated", AllowedPaths()[0])
}

func TestEntryStem(t *testing.T) {
	e := Entry{FilePath: NarrativesDir + "/narrative_people.md"}
	require.Equal(t, "narrative_people.md", e.FileName())
	require.Equal(t, "narrative_people", e.Stem())
}
