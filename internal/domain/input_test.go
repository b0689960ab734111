package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionInput(t *testing.T) {
	t.Run("Should be unset for empty input", func(t *testing.T) {
		assert.False(t, VersionFromString("").IsSet())
		assert.False(t, VersionFromParsed(nil).IsSet())
		assert.False(t, VersionInput{}.IsSet())
	})
	t.Run("Should resolve raw strings", func(t *testing.T) {
		v, err := VersionFromString("v1.0.0").Resolve()
		require.NoError(t, err)
		assert.Equal(t, "1.0.0", v.String())
	})
	t.Run("Should return parsed versions as is", func(t *testing.T) {
		parsed, err := NewVersion("2.0.0")
		require.NoError(t, err)
		in := VersionFromParsed(parsed)
		v, err := in.Resolve()
		require.NoError(t, err)
		assert.Same(t, parsed, v)
		assert.Equal(t, "2.0.0", in.String())
	})
	t.Run("Should fail with InvalidVersionError on malformed text", func(t *testing.T) {
		_, err := VersionFromString("1.0").Resolve()
		var invalid *InvalidVersionError
		assert.ErrorAs(t, err, &invalid)
	})
}

func TestReleaseRequestDefaults(t *testing.T) {
	v, err := NewVersion("1.1.0")
	require.NoError(t, err)
	t.Run("Should default messages and remote", func(t *testing.T) {
		req := ReleaseRequest{}
		assert.Equal(t, "1.1.0", req.CommitMessageFor(v))
		assert.Equal(t, "v1.1.0", req.TagMessageFor("v1.1.0"))
		assert.Equal(t, "origin", req.Remote())
	})
	t.Run("Should prefer explicit overrides", func(t *testing.T) {
		req := ReleaseRequest{CommitMessage: "release", TagMessage: "tagged", PushRemote: "upstream"}
		assert.Equal(t, "release", req.CommitMessageFor(v))
		assert.Equal(t, "tagged", req.TagMessageFor("v1.1.0"))
		assert.Equal(t, "upstream", req.Remote())
	})
}

func TestToolErrors(t *testing.T) {
	t.Run("Should match operation and sentinel", func(t *testing.T) {
		err := NewToolError(ToolOpTag, ErrTagExists)
		assert.True(t, IsToolError(err, ToolOpTag))
		assert.False(t, IsToolError(err, ToolOpPush))
		assert.ErrorIs(t, err, ErrTagExists)
		assert.Nil(t, NewToolError(ToolOpPush, nil))
	})
	t.Run("Should unwrap file rewrite errors", func(t *testing.T) {
		err := &FileRewriteError{Path: "main.go", Err: ErrPatternNotFound}
		assert.ErrorIs(t, err, ErrPatternNotFound)
		assert.Contains(t, err.Error(), "main.go")
	})
}
