package testutil

import (
	"context"
	"strings"
	"sync"
	"time"

	"smsgate/internal/models"
	"smsgate/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Contains reports whether any recorded message format contains the substring.
func (m *MockLogger) Contains(substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Logs {
		if strings.Contains(e.Format, substr) {
			return true
		}
	}
	return false
}

// MockTransport implements interfaces.TransportInterface with injectable
// batches and errors.
type MockTransport struct {
	mu      sync.Mutex
	Msgs    []*models.Message
	Err     error
	Calls   int
	FetchFn func(ctx context.Context) ([]*models.Message, error)
}

// CallCount returns how many times FetchMessages was invoked.
func (m *MockTransport) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

func (m *MockTransport) FetchMessages(ctx context.Context) ([]*models.Message, error) {
	m.mu.Lock()
	m.Calls++
	fn := m.FetchFn
	msgs, err := m.Msgs, m.Err
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	return msgs, err
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu               sync.Mutex
	PollCycles       map[string]int
	MessagesReceived int
	ArchiveFailures  int
	StateSaves       int
	TrackedHashes    int
	CacheHits        int
	CacheMisses      int
	Requests         int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{PollCycles: make(map[string]int)}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) ObserveStateSaveDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StateSaves++
}

func (m *MockMetrics) IncPollCycles(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PollCycles[outcome]++
}

func (m *MockMetrics) AddMessagesReceived(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MessagesReceived += count
}

func (m *MockMetrics) IncArchiveFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArchiveFailures++
}

func (m *MockMetrics) SetTrackedHashes(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TrackedHashes = count
}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
