package exttex

import (
	"fmt"
	"sync"

	"github.com/glowpaper/glowpaper/engine/core"
	"github.com/glowpaper/glowpaper/engine/renderer/opengl"
	"github.com/google/uuid"
)

type textureRecord struct {
	memory  uint32
	name    string
	frameID int32
}

// Importer turns external memory handles into bound GL textures using
// the negotiated capability state. ImportTexture must stay on a single
// thread: with a shared context in play it switches the thread's
// current context for the duration of the call, which is not reentrant.
// ReleaseTexture may be called from the rendering thread.
type Importer struct {
	caps *Capabilities

	mu      sync.Mutex
	records map[uint32]textureRecord
}

// NewImporter wires an importer to negotiated capabilities. caps may
// be nil (failed negotiation); every import then fails.
func NewImporter(caps *Capabilities) *Importer {
	return &Importer{
		caps:    caps,
		records: make(map[uint32]textureRecord),
	}
}

// ImportTexture imports the handle's memory and allocates an RGBA8
// texture from it.
//
// On success the handle's descriptor belongs to the driver and FD is
// set to -1. The descriptor is also consumed when a step after the
// memory import fails; only rejections before that point leave it with
// the caller.
func (imp *Importer) ImportTexture(h *Handle) (uint32, error) {
	if !imp.caps.Initialized() {
		return 0, core.ErrCapabilityUnavailable
	}
	if !h.Valid() {
		return 0, fmt.Errorf("%w (fd=%d, size=%d)", core.ErrInvalidHandle, h.FD, h.Size)
	}

	api := imp.caps.api

	// Switch to the shared 4.2 context if one is in use.
	if imp.caps.usesShared {
		restore, err := imp.caps.shared.Bind()
		if err != nil {
			return 0, fmt.Errorf("%w: %s", core.ErrContextBootstrap, err)
		}
		defer restore()
	}

	memory := api.CreateMemoryObjects(1)[0]
	api.ImportMemoryFd(memory, h.Size, opengl.HandleTypeOpaqueFdEXT, int32(h.FD))
	if imp.caps.lowGL {
		// Pre-4.2 contexts may raise a spurious GL_INVALID_ENUM on
		// import. Clear it instead of treating it as a failure.
		api.GetError()
	} else if err := api.GetError(); err != opengl.NoError {
		api.DeleteMemoryObjects([]uint32{memory})
		return 0, fmt.Errorf("%w: %s(%d) importing memory fd %d",
			core.ErrImportFailed, opengl.ErrorString(err), err, h.FD)
	}
	// The driver owns the descriptor from here on, even if a later
	// step fails. Deleting the memory object releases it.
	h.FD = -1

	texture := api.GenTextures(1)[0]
	api.BindTexture(opengl.Texture2D, texture)

	// GL_TEXTURE_TILING_EXT needs GL 4.2+, skip on low GL to avoid
	// GL_INVALID_ENUM.
	if !imp.caps.lowGL {
		tiling := opengl.OptimalTilingEXT
		if imp.caps.tiling == TilingLinear {
			tiling = opengl.LinearTilingEXT
		}
		api.TexParameteri(opengl.Texture2D, opengl.TextureTilingEXT, int32(tiling))
		checkGLError(api)
	}

	api.TexStorageMem2D(opengl.Texture2D, 1, opengl.RGBA8, h.Width, h.Height, memory, 0)
	if err := api.GetError(); err != opengl.NoError {
		api.BindTexture(opengl.Texture2D, 0)
		api.DeleteTextures([]uint32{texture})
		api.DeleteMemoryObjects([]uint32{memory})
		return 0, fmt.Errorf("%w: %s(%d) allocating %dx%d texture storage",
			core.ErrImportFailed, opengl.ErrorString(err), err, h.Width, h.Height)
	}

	api.BindTexture(opengl.Texture2D, 0)

	rec := textureRecord{
		memory:  memory,
		name:    uuid.New().String(),
		frameID: h.ID,
	}
	imp.mu.Lock()
	imp.records[texture] = rec
	imp.mu.Unlock()

	core.LogDebug("gl: imported frame %d as texture %d (%s)", h.ID, texture, rec.name)
	return texture, nil
}

// ReleaseTexture deletes an imported texture together with its memory
// object. Must run on a thread whose current context can see the
// texture (in practice the rendering thread).
func (imp *Importer) ReleaseTexture(texture uint32) {
	if texture == 0 || !imp.caps.Initialized() {
		return
	}

	imp.mu.Lock()
	rec, tracked := imp.records[texture]
	delete(imp.records, texture)
	imp.mu.Unlock()

	api := imp.caps.api
	api.DeleteTextures([]uint32{texture})
	if tracked && rec.memory != 0 {
		api.DeleteMemoryObjects([]uint32{rec.memory})
	}
	if err := api.GetError(); err != opengl.NoError {
		core.LogError("gl: %s(%d) deleting texture %d", opengl.ErrorString(err), err, texture)
	}
}

// TrackedTextures reports how many imported textures have not been
// released yet.
func (imp *Importer) TrackedTextures() int {
	imp.mu.Lock()
	defer imp.mu.Unlock()
	return len(imp.records)
}
