package exttex

import (
	"fmt"
	"strings"
	"sync"

	"github.com/glowpaper/glowpaper/engine/core"
	"github.com/glowpaper/glowpaper/engine/renderer/opengl"
)

type TexTiling uint8

const (
	TilingOptimal TexTiling = iota
	TilingLinear
)

func (t TexTiling) String() string {
	if t == TilingLinear {
		return "LINEAR"
	}
	return "OPTIMAL"
}

// Minimum desktop GL for the tiling-aware import path; older contexts
// get a shared context at this version or fall back to low-GL calls.
const (
	sharedContextMajor = 4
	sharedContextMinor = 2
)

// ContextHost abstracts the windowing layer the negotiator works
// against. platform.Host is the glfw implementation; tests provide
// their own.
type ContextHost interface {
	// LoadFunctions resolves the GL entry points against the context
	// current on the calling thread. Entry points differ between
	// contexts, so this is called again after a context switch.
	LoadFunctions() (opengl.API, error)
	// CreateSharedContext builds an offscreen context that shares
	// objects with the current one, at the given minimum version.
	CreateSharedContext(major, minor int) (SharedContext, error)
}

// SharedContext is an offscreen higher-version context used only for
// external memory calls the primary context cannot make.
type SharedContext interface {
	// Bind makes the context current and returns a restore function
	// reinstating the previous one. Not reentrant, single thread only.
	Bind() (restore func(), err error)
	Destroy()
}

// Options tune negotiation. The zero value matches the driver-probed
// defaults.
type Options struct {
	// ForceLinear overrides the negotiated tiling to LINEAR.
	ForceLinear bool
	// DisableSharedContext skips the shared-context bootstrap on old
	// contexts, leaving them on the low-capability path.
	DisableSharedContext bool
}

// Capabilities is the write-once outcome of negotiation. After
// Negotiator.Initialize returns it successfully, every field is fixed
// for the process lifetime and safe to read from any thread.
type Capabilities struct {
	initialized bool
	tiling      TexTiling
	uuid        [opengl.UUIDSize]byte
	lowGL       bool
	usesShared  bool
	version     opengl.VersionInfo

	api    opengl.API
	shared SharedContext
}

func (c *Capabilities) Initialized() bool { return c != nil && c.initialized }

func (c *Capabilities) Tiling() TexTiling {
	if c == nil {
		return TilingOptimal
	}
	return c.tiling
}

func (c *Capabilities) DeviceUUID() [opengl.UUIDSize]byte {
	if c == nil {
		return [opengl.UUIDSize]byte{}
	}
	return c.uuid
}

func (c *Capabilities) LowGL() bool             { return c.lowGL }
func (c *Capabilities) UsesSharedContext() bool { return c.usesShared }
func (c *Capabilities) Version() opengl.VersionInfo { return c.version }

// Destroy releases the shared offscreen context if one was created.
// Must run on the thread that owns the contexts.
func (c *Capabilities) Destroy() {
	if c == nil || c.shared == nil {
		return
	}
	c.shared.Destroy()
	c.shared = nil
}

// Negotiator probes the active context once and keeps the outcome.
type Negotiator struct {
	mu        sync.Mutex
	attempted bool
	caps      *Capabilities
	err       error
}

func NewNegotiator() *Negotiator {
	return &Negotiator{}
}

// Initialize negotiates capabilities against the context current on
// the calling thread. It runs at most once: repeat calls return the
// stored outcome without touching the host again, including after a
// failure (extension absence is permanent for the session).
func (n *Negotiator) Initialize(host ContextHost, opts Options) (*Capabilities, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.attempted {
		return n.caps, n.err
	}
	n.attempted = true
	n.caps, n.err = negotiate(host, opts)
	return n.caps, n.err
}

// Capabilities returns the negotiated state, nil before Initialize or
// after a failed negotiation.
func (n *Negotiator) Capabilities() *Capabilities {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.caps
}

func negotiate(host ContextHost, opts Options) (*Capabilities, error) {
	api, err := host.LoadFunctions()
	if err != nil {
		core.LogError("gl: failed to load entry points: %s", err)
		return nil, fmt.Errorf("%w: %s", core.ErrCapabilityUnavailable, err)
	}

	ver, err := opengl.ParseVersion(api.GetString(opengl.Version))
	if err != nil {
		core.LogError("gl: %s", err)
		return nil, fmt.Errorf("%w: %s", core.ErrCapabilityUnavailable, err)
	}
	core.LogInfo("gl: OpenGL version %d.%d loaded", ver.Major, ver.Minor)

	exts := opengl.ExtensionSet(api)
	if !exts["GL_EXT_memory_object"] || !exts["GL_EXT_semaphore"] {
		core.LogError("gl: EXT_memory_object not available")
		return nil, core.ErrCapabilityUnavailable
	}
	// The extension string can be advertised with the entry points
	// still unresolved (broken loaders, stripped drivers).
	if !api.SupportsMemoryObject() {
		core.LogError("gl: EXT_memory_object entry points did not resolve")
		return nil, core.ErrCapabilityUnavailable
	}

	caps := &Capabilities{
		api:     api,
		version: ver,
		tiling:  TilingOptimal,
	}

	lowGL := !(ver.ES && ver.AtLeast(3, 0)) && !(!ver.ES && ver.AtLeast(sharedContextMajor, sharedContextMinor))
	if lowGL && !opts.DisableSharedContext {
		core.LogInfo("gl: context is GL %d.%d, attempting shared GL %d.%d context",
			ver.Major, ver.Minor, sharedContextMajor, sharedContextMinor)
		lowGL = !bootstrapSharedContext(host, caps)
	}
	caps.lowGL = lowGL

	// Device identity, queried once. Writes past this point never
	// happen again, readers need no synchronization.
	api = caps.api
	if api.GetIntegerv(opengl.NumDeviceUUIDsEXT) > 0 {
		api.GetUnsignedBytei(opengl.DeviceUUIDEXT, 0, caps.uuid[:])
	}

	vendor := api.GetString(opengl.Vendor)
	core.LogInfo("gl: OpenGL vendor string: %s", vendor)

	if !caps.lowGL {
		tiling, err := negotiateTiling(api, vendor)
		if err != nil {
			caps.Destroy()
			return nil, err
		}
		caps.tiling = tiling
	}
	if opts.ForceLinear {
		caps.tiling = TilingLinear
	}
	core.LogInfo("gl: external tex using %s tiling", strings.ToLower(caps.tiling.String()))

	caps.initialized = true
	return caps, nil
}

// bootstrapSharedContext tries to escape a low-GL primary context by
// creating a shared 4.2 context on an offscreen surface and
// re-resolving the entry points against it. Failure is silent
// degradation, never a negotiation error. The previously current
// context is restored on every path.
func bootstrapSharedContext(host ContextHost, caps *Capabilities) bool {
	shared, err := host.CreateSharedContext(sharedContextMajor, sharedContextMinor)
	if err != nil {
		core.LogInfo("gl: shared GL %d.%d context not available, using fallback",
			sharedContextMajor, sharedContextMinor)
		return false
	}

	restore, err := shared.Bind()
	if err != nil {
		core.LogError("gl: failed to make shared context current: %s", err)
		shared.Destroy()
		return false
	}
	defer restore()

	api, err := host.LoadFunctions()
	if err != nil {
		core.LogError("gl: failed to reload entry points on shared context: %s", err)
		shared.Destroy()
		return false
	}
	if !api.SupportsMemoryObject() {
		core.LogError("gl: shared context has no EXT_memory_object entry points")
		shared.Destroy()
		return false
	}

	ver, err := opengl.ParseVersion(api.GetString(opengl.Version))
	if err == nil {
		core.LogInfo("gl: shared context created: GL %d.%d", ver.Major, ver.Minor)
		caps.version = ver
	}
	caps.api = api
	caps.shared = shared
	caps.usesShared = true
	return true
}

func negotiateTiling(api opengl.API, vendor string) (TexTiling, error) {
	count := []int32{0}
	api.GetInternalformativ(opengl.Texture2D, opengl.RGBA8, opengl.NumTilingTypesEXT, count)
	if count[0] <= 0 {
		core.LogError("gl: can't get texture tiling support info")
		return TilingOptimal, core.ErrTilingQuery
	}

	num := count[0]
	if num > 2 {
		num = 2
	}
	tilings := make([]int32, num)
	api.GetInternalformativ(opengl.Texture2D, opengl.RGBA8, opengl.TilingTypesEXT, tilings)
	checkGLError(api)

	supportOptimal, supportLinear := false, false
	for _, t := range tilings {
		switch uint32(t) {
		case opengl.OptimalTilingEXT:
			supportOptimal = true
		case opengl.LinearTilingEXT:
			supportLinear = true
		}
	}
	if !supportOptimal && !supportLinear {
		core.LogError("gl: no supported tiling mode")
		return TilingOptimal, core.ErrTilingQuery
	}

	tiling := TilingLinear
	if supportOptimal {
		tiling = TilingOptimal
	}
	// linear, fix for amd
	// https://gitlab.freedesktop.org/mesa/mesa/-/issues/2456
	if supportLinear && strings.Contains(vendor, "AMD") {
		tiling = TilingLinear
	}
	return tiling, nil
}

func checkGLError(api opengl.API) {
	if err := api.GetError(); err != opengl.NoError {
		core.LogError("gl: %s(%d)", opengl.ErrorString(err), err)
	}
}
