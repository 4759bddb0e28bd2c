package replacer

import (
	"github.com/stretchr/testify/mock"

	"github.com/Blackdeer1524/FrameCache/src/pkg/common"
	"github.com/Blackdeer1524/FrameCache/src/pkg/optional"
)

// Мок Replacer
type MockReplacer struct {
	mock.Mock
}

func (m *MockReplacer) RecordAccess(
	frameID common.FrameID,
	accessType AccessType,
) {
	m.Called(frameID, accessType)
}

func (m *MockReplacer) Evict() optional.Optional[common.FrameID] {
	args := m.Called()
	return args.Get(0).(optional.Optional[common.FrameID])
}

func (m *MockReplacer) SetEvictable(frameID common.FrameID, evictable bool) {
	m.Called(frameID, evictable)
}

func (m *MockReplacer) Remove(frameID common.FrameID) {
	m.Called(frameID)
}

func (m *MockReplacer) Size() uint64 {
	args := m.Called()
	return args.Get(0).(uint64)
}
