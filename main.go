/*
Standalone harness for the external texture subsystem: brings up a
hidden context, negotiates import capabilities and reports the
outcome. Wallpaper hosts embed the engine package directly instead.
*/
package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glowpaper/glowpaper/engine"
	"github.com/glowpaper/glowpaper/engine/config"
	"github.com/glowpaper/glowpaper/engine/core"
)

func main() {
	cfg, err := config.Load("glowpaper.toml")
	if err != nil {
		core.LogFatal("failed to load config: %s", err)
	}

	// Capability options are read once at startup; a reload only moves
	// the log level of the running engine.
	watcher, err := config.NewWatcher("glowpaper.toml", func(next *config.Config) {
		core.SetLogLevel(next.LogLevel)
	})
	if err != nil {
		core.LogWarn("config: watch unavailable: %s", err)
	} else {
		defer watcher.Close()
	}

	e := engine.New(cfg)
	if err := e.Initialize(); err != nil {
		// No zero-copy path on this driver; a real host would fall
		// back to CPU uploads here.
		core.LogError("running without external texture import: %s", err)
	} else {
		uuid := e.DeviceUUID()
		core.LogInfo("device uuid: %x", uuid[:])
		core.LogInfo("tiling: %s", e.Tiling())
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-sigCh:
			if err := e.Shutdown(); err != nil {
				core.LogError("shutdown: %s", err)
			}
			return
		case <-ticker.C:
			// Consumer side of the exchange: pick up whatever frame a
			// producer published and retire superseded textures.
			if frame, ok := e.LatestFrame(); ok {
				core.LogDebug("frame %d ready as texture %d", frame.Handle.ID, frame.Texture)
			}
			e.DrainReleases()
			e.PumpMessages()
		}
	}
}
