package usecase

import (
	"context"

	"github.com/compozy/versionbump/internal/domain"
)

// CalculateVersionUseCase produces the version being released.
type CalculateVersionUseCase struct{}

// Execute returns the explicit new version when given, bypassing the bump entirely.
// The boolean result reports whether the explicit version was used.
func (uc *CalculateVersionUseCase) Execute(
	ctx context.Context,
	base *domain.Version,
	explicit domain.VersionInput,
	spec domain.BumpSpec,
) (*domain.Version, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if explicit.IsSet() {
		v, err := explicit.Resolve()
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	}
	next, err := base.Bump(spec)
	if err != nil {
		return nil, false, err
	}
	return next, false, nil
}
