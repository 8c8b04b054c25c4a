package exttex

import (
	"sync"

	"github.com/glowpaper/glowpaper/engine/containers"
)

// Frame couples an imported handle with the texture allocated from it.
type Frame struct {
	Handle  Handle
	Texture uint32
}

// FrameSwapchain hands completed frames from the import thread to the
// rendering thread. Textures of superseded frames are not deleted in
// place: the recycle hook runs on the producer side, which does not
// hold a context the textures are safe to delete on, and the consumer
// may still have the frame in flight. They are parked on a retire list
// instead, and the rendering thread deletes them via DrainRetired on
// its own schedule.
type FrameSwapchain struct {
	chain *containers.TripleSwapchain[Frame]

	mu      sync.Mutex
	retired []uint32
}

func NewFrameSwapchain() *FrameSwapchain {
	fs := &FrameSwapchain{}
	fs.chain = containers.NewTripleSwapchain[Frame](fs.retire)
	return fs
}

func (fs *FrameSwapchain) retire(f Frame) {
	if f.Texture == 0 {
		return
	}
	fs.mu.Lock()
	fs.retired = append(fs.retired, f.Texture)
	fs.mu.Unlock()
}

// BeginWrite returns the producer's slot. Producer side only.
func (fs *FrameSwapchain) BeginWrite() *Frame {
	return fs.chain.BeginWrite()
}

// Commit publishes the filled slot as the newest complete frame.
func (fs *FrameSwapchain) Commit() {
	fs.chain.Commit()
}

// AcquireLatest returns the newest committed frame, or false when the
// consumer already holds it. Consumer side only.
func (fs *FrameSwapchain) AcquireLatest() (*Frame, bool) {
	return fs.chain.AcquireLatest()
}

// DrainRetired releases every superseded texture collected since the
// last call and reports how many. Must run on the rendering thread,
// whose current context owns the textures.
func (fs *FrameSwapchain) DrainRetired(imp *Importer) int {
	fs.mu.Lock()
	retired := fs.retired
	fs.retired = nil
	fs.mu.Unlock()

	for _, tex := range retired {
		imp.ReleaseTexture(tex)
	}
	return len(retired)
}

// Generation reports the newest committed generation stamp.
func (fs *FrameSwapchain) Generation() uint64 {
	return fs.chain.Generation()
}
