package replacer

import (
	"container/list"
	"sync"

	"github.com/Blackdeer1524/FrameCache/src/pkg/assert"
	"github.com/Blackdeer1524/FrameCache/src/pkg/common"
	"github.com/Blackdeer1524/FrameCache/src/pkg/optional"
)

// lrukNode is one frame's bounded access history. history holds logical
// timestamps, most recent first, never more than k entries, so once a
// frame is fully tracked the last entry is its k-th most recent access.
type lrukNode struct {
	history     []uint64
	isEvictable bool
}

func (n *lrukNode) oldest() uint64 {
	return n.history[len(n.history)-1]
}

// LRUKReplacer evicts the evictable frame with the largest backward
// k-distance: the gap between the current logical time and the frame's
// k-th most recent access.
//
// A frame with fewer than k recorded accesses has +inf distance and
// always wins over fully-tracked frames; ties among such frames break
// by earliest first access (plain FIFO). Both orderings hold frame ids,
// not pointers into the node store, so growing the store never
// invalidates them.
type LRUKReplacer struct {
	mu sync.Mutex

	nodes map[common.FrameID]*lrukNode

	// frames with fewer than k recorded accesses;
	// front = newest first access, back = oldest
	fifoList  *list.List
	fifoIters map[common.FrameID]*list.Element

	// frames with exactly k recorded accesses, k-th most recent
	// timestamps descending from front to back; back = most stale
	lruList  *list.List
	lruIters map[common.FrameID]*list.Element

	currentTimestamp uint64
	currSize         uint64
	numFrames        uint64
	k                uint64
}

var (
	_ Replacer = &LRUKReplacer{}
)

// NewLRUKReplacer tracks at most numFrames frames with history depth k.
// Frame ids passed to RecordAccess must be smaller than numFrames.
func NewLRUKReplacer(numFrames uint64, k uint64) *LRUKReplacer {
	assert.Assert(k >= 1, "history depth must be at least 1, got %d", k)

	return &LRUKReplacer{
		nodes:     make(map[common.FrameID]*lrukNode),
		fifoList:  list.New(),
		fifoIters: make(map[common.FrameID]*list.Element),
		lruList:   list.New(),
		lruIters:  make(map[common.FrameID]*list.Element),
		numFrames: numFrames,
		k:         k,
	}
}

// RecordAccess registers one access to frameID at the current logical
// time and advances the clock. First access creates a non-evictable
// history record. Panics if frameID is outside the configured range.
func (r *LRUKReplacer) RecordAccess(frameID common.FrameID, _ AccessType) {
	assert.Assert(
		uint64(frameID) < r.numFrames,
		"frame id %d out of range, replacer tracks %d frames",
		frameID,
		r.numFrames,
	)

	r.mu.Lock()
	defer r.mu.Unlock()

	node, ok := r.nodes[frameID]
	if !ok {
		node = &lrukNode{history: make([]uint64, 0, r.k+1)}
		r.nodes[frameID] = node
		r.fifoIters[frameID] = r.fifoList.PushFront(frameID)
	}

	node.history = append(node.history, 0)
	copy(node.history[1:], node.history)
	node.history[0] = r.currentTimestamp

	if uint64(len(node.history)) > r.k {
		node.history = node.history[:r.k]

		r.lruList.Remove(r.lruIters[frameID])
		r.lruIters[frameID] = r.insertByStaleness(frameID, node)
	} else if uint64(len(node.history)) == r.k {
		r.fifoList.Remove(r.fifoIters[frameID])
		delete(r.fifoIters, frameID)

		// a freshly promoted frame may already be staler than some
		// fully tracked ones, so it lands at its sorted position too
		r.lruIters[frameID] = r.insertByStaleness(frameID, node)
	}

	r.currentTimestamp++
}

// insertByStaleness places frameID into lruList keeping the k-th most
// recent timestamps descending from front to back.
func (r *LRUKReplacer) insertByStaleness(
	frameID common.FrameID,
	node *lrukNode,
) *list.Element {
	for e := r.lruList.Front(); e != nil; e = e.Next() {
		other := r.nodes[e.Value.(common.FrameID)]
		if other.oldest() < node.oldest() {
			return r.lruList.InsertBefore(frameID, e)
		}
	}

	return r.lruList.PushBack(frameID)
}

// Evict drops the access history of the chosen victim and returns its
// id, or None when nothing is evictable. The FIFO pool is consulted
// first; if it holds frames but none of them is evictable, selection
// falls through to the fully tracked pool.
func (r *LRUKReplacer) Evict() optional.Optional[common.FrameID] {
	r.mu.Lock()
	defer r.mu.Unlock()

	if frameID, ok := r.evictFrom(r.fifoList, r.fifoIters); ok {
		return optional.Some(frameID)
	}

	if frameID, ok := r.evictFrom(r.lruList, r.lruIters); ok {
		return optional.Some(frameID)
	}

	return optional.None[common.FrameID]()
}

func (r *LRUKReplacer) evictFrom(
	order *list.List,
	iters map[common.FrameID]*list.Element,
) (common.FrameID, bool) {
	for e := order.Back(); e != nil; e = e.Prev() {
		frameID := e.Value.(common.FrameID)
		if !r.nodes[frameID].isEvictable {
			continue
		}

		order.Remove(e)
		delete(iters, frameID)
		delete(r.nodes, frameID)
		r.currSize--

		return frameID, true
	}

	return common.NoFrame, false
}

// SetEvictable toggles eviction eligibility. Size changes only on an
// actual transition. Unknown frame ids are ignored.
func (r *LRUKReplacer) SetEvictable(frameID common.FrameID, evictable bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	node, ok := r.nodes[frameID]
	if !ok {
		return
	}

	if node.isEvictable && !evictable {
		r.currSize--
	} else if !node.isEvictable && evictable {
		r.currSize++
	}

	node.isEvictable = evictable
}

// Remove unconditionally drops frameID's history, whatever its
// k-distance. Unknown ids are ignored; removing a frame the pool still
// holds pinned is a caller bug and panics.
func (r *LRUKReplacer) Remove(frameID common.FrameID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	node, ok := r.nodes[frameID]
	if !ok {
		return
	}

	assert.Assert(
		node.isEvictable,
		"removing pinned frame %d from the replacer",
		frameID,
	)

	if elem, ok := r.fifoIters[frameID]; ok {
		r.fifoList.Remove(elem)
		delete(r.fifoIters, frameID)
	}

	if elem, ok := r.lruIters[frameID]; ok {
		r.lruList.Remove(elem)
		delete(r.lruIters, frameID)
	}

	delete(r.nodes, frameID)
	r.currSize--
}

// Size is the number of frames currently marked evictable.
func (r *LRUKReplacer) Size() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.currSize
}
