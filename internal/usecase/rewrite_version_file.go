package usecase

import (
	"context"
	"fmt"
	"regexp"

	"github.com/compozy/versionbump/internal/domain"
	"github.com/compozy/versionbump/internal/repository"
	"github.com/spf13/afero"
)

var versionDeclaration = regexp.MustCompile(`VERSION = "[^"\n]*"`)

// RewriteVersionFileUseCase replaces the embedded VERSION declaration of a source file.
type RewriteVersionFileUseCase struct {
	FS afero.Fs
}

// Render returns contents with the first VERSION declaration set to v.
func Render(contents []byte, v *domain.Version) ([]byte, error) {
	loc := versionDeclaration.FindIndex(contents)
	if loc == nil {
		return nil, domain.ErrPatternNotFound
	}
	replacement := fmt.Sprintf("VERSION = %q", v.String())
	out := make([]byte, 0, len(contents)+len(replacement))
	out = append(out, contents[:loc[0]]...)
	out = append(out, replacement...)
	out = append(out, contents[loc[1]:]...)
	return out, nil
}

// Check verifies path can be rewritten without writing anything.
func (uc *RewriteVersionFileUseCase) Check(_ context.Context, path string) error {
	contents, err := afero.ReadFile(uc.FS, path)
	if err != nil {
		return &domain.FileRewriteError{Path: path, Err: err}
	}
	if !versionDeclaration.Match(contents) {
		return &domain.FileRewriteError{Path: path, Err: domain.ErrPatternNotFound}
	}
	return nil
}

// Execute rewrites path in place. The file is left untouched on any error.
// It reports whether the contents changed.
func (uc *RewriteVersionFileUseCase) Execute(ctx context.Context, path string, v *domain.Version) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	contents, err := afero.ReadFile(uc.FS, path)
	if err != nil {
		return false, &domain.FileRewriteError{Path: path, Err: err}
	}
	updated, err := Render(contents, v)
	if err != nil {
		return false, &domain.FileRewriteError{Path: path, Err: err}
	}
	if string(updated) == string(contents) {
		return false, nil
	}
	if err := repository.WriteFileAtomic(uc.FS, path, updated); err != nil {
		return false, &domain.FileRewriteError{Path: path, Err: err}
	}
	return true, nil
}
