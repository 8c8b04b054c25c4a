package exttex

// Handle describes one importable external memory region: a file
// descriptor to memory allocated outside GL (for example by a video
// decoder), its byte size and pixel geometry. The pixel format is
// fixed RGBA8.
//
// A handle is consumed by the import pipeline exactly once. On
// successful import the descriptor's ownership moves to the driver and
// FD is set to -1; the caller must not close it afterwards. A rejected
// handle keeps its descriptor and the caller stays responsible for
// closing it.
type Handle struct {
	FD     int
	Size   uint64
	Width  int32
	Height int32
	// ID orders frames for logging and debugging. Producers may assign
	// their own or leave it to core.IdentifierAquireNewID.
	ID int32
}

// Valid reports whether the handle may enter the import pipeline.
func (h *Handle) Valid() bool {
	return h.FD >= 0 && h.Size > 0
}
