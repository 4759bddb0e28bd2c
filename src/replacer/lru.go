package replacer

import (
	"container/list"
	"sync"

	"github.com/Blackdeer1524/FrameCache/src/pkg/assert"
	"github.com/Blackdeer1524/FrameCache/src/pkg/common"
	"github.com/Blackdeer1524/FrameCache/src/pkg/optional"
)

// LRUReplacer is the classic recency-only policy behind the same
// contract: one access history entry per frame, victim = least
// recently accessed evictable frame.
type LRUReplacer struct {
	mu        sync.Mutex
	lru       *list.List // front = most recently accessed
	frames    map[common.FrameID]*list.Element
	evictable map[common.FrameID]bool
	currSize  uint64
	numFrames uint64
}

var (
	_ Replacer = &LRUReplacer{}
)

func NewLRUReplacer(numFrames uint64) *LRUReplacer {
	return &LRUReplacer{
		lru:       list.New(),
		frames:    make(map[common.FrameID]*list.Element),
		evictable: make(map[common.FrameID]bool),
		numFrames: numFrames,
	}
}

func (l *LRUReplacer) RecordAccess(frameID common.FrameID, _ AccessType) {
	assert.Assert(
		uint64(frameID) < l.numFrames,
		"frame id %d out of range, replacer tracks %d frames",
		frameID,
		l.numFrames,
	)

	l.mu.Lock()
	defer l.mu.Unlock()

	if elem, ok := l.frames[frameID]; ok {
		l.lru.MoveToFront(elem)
		return
	}

	l.frames[frameID] = l.lru.PushFront(frameID)
	l.evictable[frameID] = false
}

func (l *LRUReplacer) Evict() optional.Optional[common.FrameID] {
	l.mu.Lock()
	defer l.mu.Unlock()

	for elem := l.lru.Back(); elem != nil; elem = elem.Prev() {
		frameID := elem.Value.(common.FrameID)
		if !l.evictable[frameID] {
			continue
		}

		l.lru.Remove(elem)
		delete(l.frames, frameID)
		delete(l.evictable, frameID)
		l.currSize--

		return optional.Some(frameID)
	}

	return optional.None[common.FrameID]()
}

func (l *LRUReplacer) SetEvictable(frameID common.FrameID, evictable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev, ok := l.evictable[frameID]
	if !ok {
		return
	}

	if prev && !evictable {
		l.currSize--
	} else if !prev && evictable {
		l.currSize++
	}

	l.evictable[frameID] = evictable
}

func (l *LRUReplacer) Remove(frameID common.FrameID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	elem, ok := l.frames[frameID]
	if !ok {
		return
	}

	assert.Assert(
		l.evictable[frameID],
		"removing pinned frame %d from the replacer",
		frameID,
	)

	l.lru.Remove(elem)
	delete(l.frames, frameID)
	delete(l.evictable, frameID)
	l.currSize--
}

func (l *LRUReplacer) Size() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.currSize
}
