package common

// FrameID identifies a slot in the owning buffer pool's frame array.
// The pool hands out dense ids in [0, poolSize).
type FrameID uint64

// NoFrame is a sentinel for "no frame chosen".
const NoFrame = FrameID(^uint64(0))
