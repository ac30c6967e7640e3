package main

// Notes:
// - Test infrastructure shared by the command tests: a captured
//   Environment and fakes for the converter pool.

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	md2docx "github.com/Qiuzg/go-md2docx"
)

// testEnv returns an Environment whose output is captured and whose
// environment variables come from vars only.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:    time.Now,
		Stdout: &stdout,
		Stderr: &stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
	}
	return env, &stdout, &stderr
}

// writeFile creates path under dir with content and returns the full path.
func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

// staticConverter returns a fixed result and records the inputs it saw.
type staticConverter struct {
	mu     sync.Mutex
	result *md2docx.ConvertResult
	err    error
	inputs []md2docx.Input
}

func (m *staticConverter) Convert(_ context.Context, in md2docx.Input) (*md2docx.ConvertResult, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, in)
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// fakePool hands out the same converter to every worker.
type fakePool struct {
	conv       CLIConverter
	size       int
	acquireErr error

	mu       sync.Mutex
	released int
}

func (p *fakePool) Acquire(context.Context) (CLIConverter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	return p.conv, nil
}

func (p *fakePool) Release(CLIConverter) {
	p.mu.Lock()
	p.released++
	p.mu.Unlock()
}

func (p *fakePool) Size() int { return p.size }

var errFake = errors.New("fake failure")
