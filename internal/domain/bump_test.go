package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bump(t *testing.T, from string, spec BumpSpec) string {
	t.Helper()
	v, err := NewVersion(from)
	require.NoError(t, err)
	next, err := v.Bump(spec)
	require.NoError(t, err)
	return next.String()
}

func TestVersion_Bump(t *testing.T) {
	t.Run("Should return base version unchanged without flags", func(t *testing.T) {
		assert.Equal(t, "1.2.3-rc.1+b.2", bump(t, "1.2.3-rc.1+b.2", BumpSpec{}))
	})
	t.Run("Should bump major and reset lower fields", func(t *testing.T) {
		assert.Equal(t, "2.0.0", bump(t, "1.5.8-rc.1+b.1", BumpSpec{Major: true}))
	})
	t.Run("Should bump minor and reset patch", func(t *testing.T) {
		assert.Equal(t, "1.3.0", bump(t, "1.2.5+b.1", BumpSpec{Minor: true}))
	})
	t.Run("Should bump patch", func(t *testing.T) {
		assert.Equal(t, "1.2.4", bump(t, "1.2.3+b.1", BumpSpec{Patch: true}))
	})
	t.Run("Should release a prerelease on patch bump without incrementing", func(t *testing.T) {
		assert.Equal(t, "1.2.3", bump(t, "1.2.3-rc.1", BumpSpec{Patch: true}))
	})
	t.Run("Should absorb lower numeric bumps after a higher one", func(t *testing.T) {
		assert.Equal(t, "2.0.0", bump(t, "1.2.3", BumpSpec{Major: true, Minor: true, Patch: true}))
		assert.Equal(t, "2.0.0", bump(t, "1.2.3", BumpSpec{Major: true, Patch: true}))
		assert.Equal(t, "1.3.0", bump(t, "1.2.3", BumpSpec{Minor: true, Patch: true}))
	})
	t.Run("Should start a prerelease series", func(t *testing.T) {
		assert.Equal(t, "1.2.3-rc.1", bump(t, "1.2.3", BumpSpec{Prerelease: true}))
		assert.Equal(t, "1.2.3-beta.1", bump(t, "1.2.3", BumpSpec{Prerelease: true, PrereleaseToken: "beta"}))
	})
	t.Run("Should increment an existing prerelease", func(t *testing.T) {
		assert.Equal(t, "1.2.3-rc.2", bump(t, "1.2.3-rc.1", BumpSpec{Prerelease: true}))
		assert.Equal(t, "1.2.3-rc.10", bump(t, "1.2.3-rc.9", BumpSpec{Prerelease: true}))
		assert.Equal(t, "1.2.3-rc2", bump(t, "1.2.3-rc1", BumpSpec{Prerelease: true}))
		assert.Equal(t, "1.2.3-alpha.1", bump(t, "1.2.3-alpha", BumpSpec{Prerelease: true}))
	})
	t.Run("Should clear build metadata on prerelease bump", func(t *testing.T) {
		assert.Equal(t, "1.2.3-rc.2", bump(t, "1.2.3-rc.1+build.4", BumpSpec{Prerelease: true}))
	})
	t.Run("Should compose prerelease on top of numeric bumps", func(t *testing.T) {
		assert.Equal(t, "2.0.0-rc.1", bump(t, "1.2.3", BumpSpec{Major: true, Prerelease: true}))
		assert.Equal(t, "1.2.4-rc.1", bump(t, "1.2.3", BumpSpec{Patch: true, Prerelease: true}))
	})
	t.Run("Should start and increment build metadata keeping the prerelease", func(t *testing.T) {
		assert.Equal(t, "1.2.3+build.1", bump(t, "1.2.3", BumpSpec{Build: true}))
		assert.Equal(t, "1.2.3-rc.1+build.2", bump(t, "1.2.3-rc.1+build.1", BumpSpec{Build: true}))
		assert.Equal(t, "1.2.3-rc.1+ci.1", bump(t, "1.2.3", BumpSpec{Prerelease: true, Build: true, BuildToken: "ci"}))
	})
	t.Run("Should be monotonic for numeric bumps on releases", func(t *testing.T) {
		for _, from := range []string{"0.0.0", "1.2.3", "9.9.9+meta"} {
			base, err := NewVersion(from)
			require.NoError(t, err)
			for _, spec := range []BumpSpec{{Major: true}, {Minor: true}, {Patch: true}} {
				next, err := base.Bump(spec)
				require.NoError(t, err)
				assert.Equal(t, 1, next.Compare(base), "%s %v", from, spec.Names())
			}
		}
	})
	t.Run("Should not mutate the base version", func(t *testing.T) {
		base, err := NewVersion("1.2.3")
		require.NoError(t, err)
		_, err = base.Bump(BumpSpec{Major: true, Prerelease: true, Build: true})
		require.NoError(t, err)
		assert.Equal(t, "1.2.3", base.String())
	})
	t.Run("Should reject invalid tokens", func(t *testing.T) {
		base, err := NewVersion("1.2.3")
		require.NoError(t, err)
		_, err = base.Bump(BumpSpec{Prerelease: true, PrereleaseToken: "rc 1"})
		assert.ErrorContains(t, err, "invalid prerelease token")
		_, err = base.Bump(BumpSpec{Build: true, BuildToken: "b+1"})
		assert.ErrorContains(t, err, "invalid build token")
	})
}

func TestBumpSpec_Names(t *testing.T) {
	t.Run("Should list enabled bumps in application order", func(t *testing.T) {
		spec := BumpSpec{Build: true, Major: true, Prerelease: true}
		assert.Equal(t, []string{"major", "prerelease", "build"}, spec.Names())
		assert.True(t, spec.Any())
		assert.False(t, BumpSpec{}.Any())
	})
}

func TestNextIdentifier(t *testing.T) {
	cases := []struct {
		current string
		want    string
	}{
		{"", "rc.1"},
		{"rc.1", "rc.2"},
		{"rc.0", "rc.1"},
		{"1", "2"},
		{"rc1", "rc2"},
		{"alpha", "alpha.1"},
		{"alpha.beta", "alpha.beta.1"},
		{"x.7.z", "x.7.z.1"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, nextIdentifier(tc.current, "rc"), tc.current)
	}
}
