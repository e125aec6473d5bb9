package flow

import (
	"context"
	"sync"

	"github.com/BTreeMap/CoverageGuide/internal/genai"
)

// fakeTextGenerator records requests and answers with a fixed reply or error. When release is
// set, each call waits for a value on it before answering.
type fakeTextGenerator struct {
	mu       sync.Mutex
	reply    string
	err      error
	requests []genai.TextRequest
	started  chan struct{}
	release  chan struct{}
}

func (f *fakeTextGenerator) GenerateText(ctx context.Context, req genai.TextRequest) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return f.reply, f.err
}

func (f *fakeTextGenerator) lastRequest() genai.TextRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

// fakeImageGenerator returns a fixed image or error, optionally waiting on release.
type fakeImageGenerator struct {
	mu      sync.Mutex
	data    string
	err     error
	calls   int
	prompts []string
	release chan struct{}
}

func (f *fakeImageGenerator) GenerateImage(ctx context.Context, req genai.ImageRequest) (genai.Image, error) {
	f.mu.Lock()
	f.calls++
	f.prompts = append(f.prompts, req.Prompt)
	f.mu.Unlock()
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return genai.Image{}, f.err
	}
	return genai.Image{Data: f.data, MIMEType: "image/png"}, nil
}
