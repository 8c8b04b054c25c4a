package core

import "sync/atomic"

var lastFrameID atomic.Int32

// IdentifierAquireNewID hands out the next monotonic frame identity.
// Producers that do not assign their own slot ids use this so that
// every handle entering the import pipeline stays distinguishable in
// logs and in the swapchain generation order.
func IdentifierAquireNewID() int32 {
	return lastFrameID.Add(1)
}

// IdentifierLastID reports the most recently issued id without
// consuming one.
func IdentifierLastID() int32 {
	return lastFrameID.Load()
}
