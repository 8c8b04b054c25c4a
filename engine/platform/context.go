package platform

import (
	"fmt"

	"github.com/glowpaper/glowpaper/engine/core"
	"github.com/glowpaper/glowpaper/engine/renderer/exttex"
	"github.com/glowpaper/glowpaper/engine/renderer/opengl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Host is the glfw-backed windowing surface the external texture
// subsystem negotiates against. It implements exttex.ContextHost.
type Host struct{}

func NewHost() *Host {
	return &Host{}
}

// LoadFunctions resolves the GL entry-point table against the context
// current on the calling thread.
func (h *Host) LoadFunctions() (opengl.API, error) {
	if glfw.GetCurrentContext() == nil {
		return nil, fmt.Errorf("func LoadFunctions - no current context on this thread")
	}
	return opengl.LoadFunctions(glfw.GetProcAddress)
}

// CreateSharedContext builds an invisible window whose context shares
// objects with the context current on the calling thread, requesting
// at least the given version. The current context is left untouched.
func (h *Host) CreateSharedContext(major, minor int) (exttex.SharedContext, error) {
	share := glfw.GetCurrentContext()
	if share == nil {
		return nil, fmt.Errorf("func CreateSharedContext - no current context to share with")
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, major)
	glfw.WindowHint(glfw.ContextVersionMinor, minor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	defer glfw.DefaultWindowHints()

	window, err := glfw.CreateWindow(1, 1, "glowpaper-offscreen", nil, share)
	if err != nil {
		return nil, fmt.Errorf("func CreateSharedContext - shared %d.%d context not available: %w", major, minor, err)
	}
	return &sharedContext{window: window}, nil
}

// sharedContext is an offscreen context that is made current for the
// duration of a call and then dropped back to whatever context the
// thread held before.
type sharedContext struct {
	window *glfw.Window
}

// Bind makes the shared context current. The returned restore function
// reinstates the previously current context and must be called on the
// same thread, on every exit path.
func (s *sharedContext) Bind() (func(), error) {
	prev := glfw.GetCurrentContext()
	s.window.MakeContextCurrent()
	if glfw.GetCurrentContext() != s.window {
		if prev != nil {
			prev.MakeContextCurrent()
		}
		return nil, fmt.Errorf("func Bind - failed to make shared context current")
	}
	return func() {
		if prev != nil {
			prev.MakeContextCurrent()
		} else {
			glfw.DetachCurrentContext()
		}
	}, nil
}

func (s *sharedContext) Destroy() {
	if s.window != nil {
		s.window.Destroy()
		s.window = nil
		core.LogDebug("destroyed shared offscreen context")
	}
}
