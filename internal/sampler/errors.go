package sampler

import "github.com/pkg/errors"

var (
	// ErrInvalidConfig indicates a configuration the generator cannot draw from.
	ErrInvalidConfig = errors.New("sampler: invalid configuration")

	// ErrUnknownModel indicates an unrecognised noise model name.
	ErrUnknownModel = errors.New("sampler: unknown model")

	// ErrUnknownDesign indicates an unrecognised true-value design name.
	ErrUnknownDesign = errors.New("sampler: unknown design")

	// ErrUnknownOutcome indicates an unrecognised outcome form.
	ErrUnknownOutcome = errors.New("sampler: unknown outcome")
)
