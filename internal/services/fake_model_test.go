package services

import (
	"context"
	"sync"
	"sync/atomic"
)

// fakeModel records requests and replies with a canned response.
type fakeModel struct {
	reply string
	err   error
	// gate, when set, blocks Generate until it is closed.
	gate chan struct{}

	calls atomic.Int32
	mu    sync.Mutex
	reqs  []Request
}

func (f *fakeModel) Generate(ctx context.Context, req Request) (string, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	f.mu.Unlock()

	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.reply, f.err
}

func (f *fakeModel) Name() string { return "fake" }

func (f *fakeModel) lastRequest() Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reqs[len(f.reqs)-1]
}

const validAnalysisJSON = `{
  "isValidCode": true,
  "error": null,
  "phases": [
    {"name": "Lexical Analysis", "explanation": "tokens", "inputDescription": "chars", "outputDescription": "|Token|Type|\n|---|---|\n|x|Identifier|"},
    {"name": "Syntax Analysis", "explanation": "tree", "inputDescription": "tokens", "outputDescription": "{\"name\":\"Program\"}"}
  ]
}`

const invalidCodeJSON = `{
  "isValidCode": false,
  "error": {"phase": "Syntax Analysis", "message": "missing ;", "suggestion": "add ;"},
  "phases": []
}`
