package engine

import (
	"fmt"

	"github.com/glowpaper/glowpaper/engine/config"
	"github.com/glowpaper/glowpaper/engine/core"
	"github.com/glowpaper/glowpaper/engine/platform"
	"github.com/glowpaper/glowpaper/engine/renderer/exttex"
	"github.com/glowpaper/glowpaper/engine/renderer/opengl"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine completed capability negotiation and accepts handles
	EngineStageInitialized
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// Engine wires the platform context, capability negotiation, the
// import pipeline and the frame swapchain together for the wallpaper
// host. Submit runs on the producer (decoder) thread, LatestFrame and
// DrainReleases on the rendering thread.
type Engine struct {
	currentStage Stage
	cfg          *config.Config
	platform     *platform.Platform
	host         *platform.Host
	negotiator   *exttex.Negotiator
	caps         *exttex.Capabilities
	importer     *exttex.Importer
	swapchain    *exttex.FrameSwapchain
	clock        *core.Clock
}

func New(cfg *config.Config) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Engine{
		currentStage: EngineStageUninitialized,
		cfg:          cfg,
		platform:     platform.New(),
		host:         platform.NewHost(),
		negotiator:   exttex.NewNegotiator(),
		swapchain:    exttex.NewFrameSwapchain(),
		clock:        core.NewClock(),
	}
}

// Initialize brings up the hidden primary context and negotiates
// import capabilities. Must be called once, from the thread that will
// own the graphics context. A capability failure is returned to let
// the host fall back to a non-zero-copy path; the engine itself stays
// alive and refuses imports.
func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageUninitialized {
		return fmt.Errorf("func Initialize - engine already initialized")
	}

	core.SetLogLevel(e.cfg.LogLevel)
	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	if err := e.platform.Startup(e.cfg.AppName, 1, 1); err != nil {
		return err
	}

	caps, err := e.negotiator.Initialize(e.host, exttex.Options{
		ForceLinear:          e.cfg.External.ForceLinear,
		DisableSharedContext: e.cfg.External.DisableSharedContext,
	})
	e.caps = caps
	e.importer = exttex.NewImporter(caps)
	e.currentStage = EngineStageInitialized
	if err != nil {
		core.LogError("external texture import unavailable: %s", err)
		return err
	}
	return nil
}

// Submit imports the handle and publishes the resulting frame as the
// newest complete one. Producer thread only. The handle's descriptor
// is owned by the driver afterwards; on failure (false) it stays with
// the caller.
func (e *Engine) Submit(h exttex.Handle) bool {
	if h.ID == 0 {
		h.ID = core.IdentifierAquireNewID()
	}

	e.clock.Start()
	texture, err := e.importer.ImportTexture(&h)
	e.clock.Stop()
	core.MetricsImportTime(e.clock.ElapsedSeconds())
	if err != nil {
		core.LogError("import of frame %d failed: %s", h.ID, err)
		core.MetricsImportFailed()
		return false
	}

	slot := e.swapchain.BeginWrite()
	*slot = exttex.Frame{Handle: h, Texture: texture}
	e.swapchain.Commit()
	core.MetricsFrameCommitted()
	return true
}

// LatestFrame returns the newest complete frame when it is newer than
// the one already held. Rendering thread only; the pointer stays valid
// until the next successful call.
func (e *Engine) LatestFrame() (*exttex.Frame, bool) {
	f, ok := e.swapchain.AcquireLatest()
	if ok {
		core.MetricsFrameAcquired()
	}
	return f, ok
}

// DrainReleases deletes the textures of superseded frames. Rendering
// thread only, with its context current.
func (e *Engine) DrainReleases() int {
	return e.swapchain.DrainRetired(e.importer)
}

// DeviceUUID reports the negotiated GPU identity, all zeros when
// negotiation failed.
func (e *Engine) DeviceUUID() [opengl.UUIDSize]byte {
	return e.caps.DeviceUUID()
}

// Tiling reports the negotiated import tiling.
func (e *Engine) Tiling() exttex.TexTiling {
	return e.caps.Tiling()
}

func (e *Engine) PumpMessages() {
	e.platform.PumpMessages()
}

// Shutdown releases retired textures, the shared context and the
// platform. Must run on the context-owning thread.
func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown

	e.DrainReleases()
	committed, acquired, failed := core.MetricsSnapshot()
	core.LogInfo("frames committed=%d acquired=%d import-failures=%d avg-import=%.2fms",
		committed, acquired, failed, core.MetricsImportMSAverage())

	e.caps.Destroy()
	return e.platform.Shutdown()
}
