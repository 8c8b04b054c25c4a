package core

import (
	"errors"
)

var (
	// Required import extensions are missing on every reachable context.
	// Permanent for the session, external textures stay unavailable.
	ErrCapabilityUnavailable = errors.New("external memory extensions unavailable")
	// The shared higher-version context could not be created or made
	// current.
	ErrContextBootstrap = errors.New("shared context bootstrap failed")
	// Handle carries a negative descriptor or zero byte size.
	ErrInvalidHandle = errors.New("invalid external memory handle")
	// The driver reported no usable tiling layout for RGBA8.
	ErrTilingQuery = errors.New("no supported texture tiling layout")
	// A driver call in the import sequence failed.
	ErrImportFailed = errors.New("external texture import failed")
)
