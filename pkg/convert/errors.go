package convert

import "errors"

var (
	// ErrEngineLaunch indicates no engine session could be obtained.
	ErrEngineLaunch = errors.New("conversion engine unavailable")
	// ErrConversion indicates the engine failed to produce output.
	ErrConversion = errors.New("conversion failed")
	// ErrInvalidArtifact indicates the engine output is not a readable PDF.
	ErrInvalidArtifact = errors.New("invalid pdf artifact")
)
