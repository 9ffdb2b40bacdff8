package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
)

// fakeTranscoder implements ports.Transcoder in-memory, recording every
// call and materializing output files so path handling can be asserted.
type fakeTranscoder struct {
	mu        sync.Mutex
	ops       []string
	manifests map[string]string // concat output path -> manifest content

	failSources map[string]bool
	failOutputs map[string]bool
}

func (f *fakeTranscoder) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, op)
}

func (f *fakeTranscoder) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.ops...)
}

func (f *fakeTranscoder) NormalizeImage(_ context.Context, source, outPath string, seconds float64) error {
	f.record(fmt.Sprintf("image %s %.2f", source, seconds))
	if f.failSources[source] {
		return errors.New("fake image failure")
	}
	return os.WriteFile(outPath, []byte("img"), 0o644)
}

func (f *fakeTranscoder) NormalizeVideo(_ context.Context, source, outPath string, maxSeconds float64) error {
	f.record(fmt.Sprintf("video %s %.2f", source, maxSeconds))
	if f.failSources[source] {
		return errors.New("fake video failure")
	}
	return os.WriteFile(outPath, []byte("vid"), 0o644)
}

func (f *fakeTranscoder) Concatenate(_ context.Context, listFile, outPath string) error {
	f.record("concat " + listFile)
	if b, err := os.ReadFile(listFile); err == nil {
		f.mu.Lock()
		if f.manifests == nil {
			f.manifests = make(map[string]string)
		}
		f.manifests[outPath] = string(b)
		f.mu.Unlock()
	}
	if f.failOutputs[outPath] {
		return errors.New("fake concat failure")
	}
	return os.WriteFile(outPath, []byte("joined"), 0o644)
}

func (f *fakeTranscoder) manifestFor(outPath string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.manifests[outPath]
}

func (f *fakeTranscoder) BlankClip(_ context.Context, outPath string, seconds float64) error {
	f.record(fmt.Sprintf("blank %.2f", seconds))
	return os.WriteFile(outPath, []byte("blank"), 0o644)
}
