package game

import (
	"sync"
	"time"
)

// TimeProvider 时间来源
// SessionRunner 通过它计算帧间隔，测试中替换为 MockTimeProvider
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider 使用系统单调时钟
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider 创建系统时间来源
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now 返回带单调时钟读数的当前时间
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider 可控的时间来源，用于测试
type MockTimeProvider struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewMockTimeProvider 以给定起始时间创建模拟时间来源
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{
		currentTime: startTime,
	}
}

// Now 返回当前模拟时间
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// Advance 将模拟时间向前推进 d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}
