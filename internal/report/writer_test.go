package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rahul4469/compiler-craft/internal/models"
)

func TestWriterSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), Filename)
	w := NewWriter(path, zap.NewNop())

	result := sampleResult()
	w.Save("int x;", result)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Assemble("int x;", result), string(data))
}

func TestWriterSave_SkipsInvalidCode(t *testing.T) {
	path := filepath.Join(t.TempDir(), Filename)
	w := NewWriter(path, zap.NewNop())

	w.Save("int x", &models.AnalysisResult{IsValidCode: false, Phases: []models.PhaseRecord{}})

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestWriterSave_FailureIsLoggedAndSwallowed(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	path := filepath.Join(t.TempDir(), "missing-dir", Filename)
	w := NewWriter(path, zap.New(core))

	assert.NotPanics(t, func() { w.Save("int x;", sampleResult()) })

	entries := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Failed to save compiler report", entries[0].Message)
}

func TestNewWriter_DefaultPath(t *testing.T) {
	w := NewWriter("", zap.NewNop())
	assert.Equal(t, filepath.Join("..", "compiler_report.txt"), w.Path())
}
