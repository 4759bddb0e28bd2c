package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Blackdeer1524/FrameCache/src/pkg/common"
	"github.com/Blackdeer1524/FrameCache/src/pkg/optional"
	"github.com/Blackdeer1524/FrameCache/src/replacer"
)

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func TestReplayCounts(t *testing.T) {
	r := replacer.NewLRUKReplacer(8, 2)
	runner := NewRunner(testLogger(), r)

	ops := []Op{
		{Kind: OpAccess, Frame: 0, Type: replacer.AccessScan},
		{Kind: OpAccess, Frame: 1, Type: replacer.AccessLookup},
		{Kind: OpAccess, Frame: 0, Type: replacer.AccessScan},
		{Kind: OpUnpin, Frame: 0},
		{Kind: OpUnpin, Frame: 1},
		{Kind: OpEvict},
		{Kind: OpPin, Frame: 0},
		{Kind: OpEvict},
		{Kind: OpEvict},
		{Kind: OpUnpin, Frame: 0},
		{Kind: OpRemove, Frame: 0},
	}

	stats := runner.Replay(ops)

	assert.Equal(t, uint64(3), stats.Accesses)
	assert.Equal(t, uint64(2), stats.AccessesByType[replacer.AccessScan])
	assert.Equal(t, uint64(1), stats.AccessesByType[replacer.AccessLookup])
	assert.Equal(t, uint64(3), stats.Unpins)
	assert.Equal(t, uint64(1), stats.Pins)
	assert.Equal(t, uint64(1), stats.Evictions)       // frame 1
	assert.Equal(t, uint64(2), stats.FailedEvictions) // frame 0 pinned
	assert.Equal(t, uint64(1), stats.Removals)
	assert.Equal(t, uint64(0), r.Size())
}

func TestReplayDispatch(t *testing.T) {
	mockReplacer := new(replacer.MockReplacer)
	runner := NewRunner(testLogger(), mockReplacer)

	mockReplacer.On(
		"RecordAccess", common.FrameID(3), replacer.AccessIndex,
	).Return().Once()
	mockReplacer.On("SetEvictable", common.FrameID(3), true).Return().Once()
	mockReplacer.On("Evict").
		Return(optional.Some(common.FrameID(3))).Once()
	mockReplacer.On("Evict").
		Return(optional.None[common.FrameID]()).Once()
	mockReplacer.On("Remove", common.FrameID(4)).Return().Once()

	stats := runner.Replay([]Op{
		{Kind: OpAccess, Frame: 3, Type: replacer.AccessIndex},
		{Kind: OpUnpin, Frame: 3},
		{Kind: OpEvict},
		{Kind: OpEvict},
		{Kind: OpRemove, Frame: 4},
	})

	mockReplacer.AssertExpectations(t)
	assert.Equal(t, uint64(1), stats.Evictions)
	assert.Equal(t, uint64(1), stats.FailedEvictions)
}

func TestStress(t *testing.T) {
	r := replacer.NewLRUKReplacer(512, 2)
	runner := NewRunner(testLogger(), r)

	const workers = 4
	const framesPerWorker = 16
	const rounds = 8

	stats, err := runner.Stress(
		context.Background(),
		workers,
		framesPerWorker,
		rounds,
	)
	require.NoError(t, err)

	total := uint64(workers * framesPerWorker * rounds)
	assert.Equal(t, total, stats.Accesses)
	assert.Equal(t, total, stats.Evictions+stats.FailedEvictions)

	runner.Drain()
	assert.Equal(t, uint64(0), r.Size())
}

func TestStressCancelled(t *testing.T) {
	r := replacer.NewLRUKReplacer(512, 2)
	runner := NewRunner(testLogger(), r)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Stress(ctx, 4, 16, 1<<20)
	require.ErrorIs(t, err, context.Canceled)
}
