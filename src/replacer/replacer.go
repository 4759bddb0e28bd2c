package replacer

import (
	"github.com/Blackdeer1524/FrameCache/src/pkg/common"
	"github.com/Blackdeer1524/FrameCache/src/pkg/optional"
)

// AccessType tags the kind of page access behind a RecordAccess call.
// Victim selection ignores it; it only feeds workload accounting.
type AccessType int

const (
	AccessUnknown AccessType = iota
	AccessLookup
	AccessScan
	AccessIndex
)

func (t AccessType) String() string {
	switch t {
	case AccessLookup:
		return "lookup"
	case AccessScan:
		return "scan"
	case AccessIndex:
		return "index"
	default:
		return "unknown"
	}
}

// ParseAccessType maps a trace tag to its AccessType. The second result
// is false for tags outside the known set.
func ParseAccessType(s string) (AccessType, bool) {
	switch s {
	case "lookup":
		return AccessLookup, true
	case "scan":
		return AccessScan, true
	case "index":
		return AccessIndex, true
	case "unknown":
		return AccessUnknown, true
	default:
		return AccessUnknown, false
	}
}

// Replacer chooses which occupied frame the buffer pool reclaims next.
//
// The pool calls RecordAccess on every frame touch, toggles
// SetEvictable from its pin counts, and calls Evict when it needs a
// free slot. Frames without recorded history are invisible to Evict.
type Replacer interface {
	RecordAccess(frameID common.FrameID, accessType AccessType)
	Evict() optional.Optional[common.FrameID]
	SetEvictable(frameID common.FrameID, evictable bool)
	Remove(frameID common.FrameID)
	Size() uint64
}

const (
	AlgorithmLRUK = "lruk"
	AlgorithmLRU  = "lru"
)

// New picks a replacement policy by name, defaulting to LRU-K.
// k is only meaningful for the LRU-K policy.
func New(algorithm string, numFrames uint64, k uint64) Replacer {
	switch algorithm {
	case AlgorithmLRU:
		return NewLRUReplacer(numFrames)
	case AlgorithmLRUK:
		return NewLRUKReplacer(numFrames, k)
	default:
		return NewLRUKReplacer(numFrames, k)
	}
}
