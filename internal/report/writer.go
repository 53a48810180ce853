package report

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/rahul4469/compiler-craft/internal/models"
)

// DefaultPath puts the report one directory above the working directory.
var DefaultPath = filepath.Join("..", Filename)

// Writer persists the report of the most recent valid analysis. Concurrent
// saves race on the same file; the last writer wins.
type Writer struct {
	path   string
	logger *zap.Logger
}

// NewWriter returns a Writer for path. A relative path is resolved against
// the working directory at save time.
func NewWriter(path string, logger *zap.Logger) *Writer {
	if path == "" {
		path = DefaultPath
	}
	return &Writer{path: path, logger: logger}
}

// Path returns the configured report path.
func (w *Writer) Path() string {
	return w.path
}

// Save writes the report. Failures are logged and swallowed: a report that
// cannot be written never fails the analysis that produced it.
func (w *Writer) Save(source string, result *models.AnalysisResult) {
	if result == nil || !result.IsValidCode {
		return
	}

	path, err := filepath.Abs(w.path)
	if err != nil {
		w.logger.Error("Failed to resolve report path", zap.String("path", w.path), zap.Error(err))
		return
	}

	if err := os.WriteFile(path, []byte(Assemble(source, result)), 0o644); err != nil {
		w.logger.Error("Failed to save compiler report", zap.String("path", path), zap.Error(err))
		return
	}

	w.logger.Info("Compiler report saved", zap.String("path", path))
}
