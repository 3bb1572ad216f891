package logging

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pdsite/internal/domain/config"
)

func TestNewProviderFormats(t *testing.T) {
	for _, format := range []string{"", "console", "json", "pretty"} {
		p, err := NewProvider(config.LogConfig{Level: "debug", Format: format})
		require.NoError(t, err, format)

		l := p.Get(ModuleIndex)
		require.NotNil(t, l)
		l.Debug("provider.initialised", "format", format)
	}

	_, err := NewProvider(config.LogConfig{Format: "xml"})
	require.Error(t, err)
}

func TestNilProviderIsNoOp(t *testing.T) {
	var p *Provider
	l := p.Get(ModuleServe)
	require.Equal(t, NoOp(), l)
	l.Error("ignored")
}

func TestRecorderFiltersByLevel(t *testing.T) {
	var r Recorder
	r.Info("indexed", "count", 3)
	r.Warn("skipped", "path", "a.md")
	r.Warn("skipped", "path", "b.md")

	require.Len(t, r.Entries(""), 3)
	warns := r.Entries("warn")
	require.Len(t, warns, 2)
	require.Equal(t, []any{"path", "b.md"}, warns[1].Args)
}

func TestOrNoOp(t *testing.T) {
	require.Equal(t, NoOp(), OrNoOp(nil))
	r := &Recorder{}
	require.Same(t, r, OrNoOp(r))
}
