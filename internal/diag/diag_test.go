package diag

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestReporter_Disabled(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := NewReporter(false, zap.New(core))

	r.Skip("dropped", zap.String("key", "a"))

	assert.Equal(t, 0, logs.Len())
}

func TestReporter_Enabled(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := NewReporter(true, zap.New(core))

	r.Skip("dropped", zap.String("key", "a"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "dropped", entry.Message)
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "a", entry.ContextMap()["key"])
}

func TestReporter_FallsBackToPackageLogger(t *testing.T) {
	original := Logger()
	defer SetLogger(original)

	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))

	NewReporter(true, nil).Skip("dropped")

	assert.Equal(t, 1, logs.Len())
}

func TestSetLogger_Nil(t *testing.T) {
	original := Logger()
	defer SetLogger(original)

	SetLogger(nil)
	require.NotNil(t, Logger())
	NewReporter(true, nil).Skip("goes nowhere")
}

func TestLogger_ConcurrentSetAndGet(t *testing.T) {
	original := Logger()
	defer SetLogger(original)

	nop := zap.NewNop()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetLogger(nop)
		}()
		go func() {
			defer wg.Done()
			assert.NotNil(t, Logger())
		}()
	}
	wg.Wait()
	assert.Same(t, nop, Logger())
}
