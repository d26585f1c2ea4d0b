package services

import (
	"context"
	"sync"
)

type fakeGemini struct {
	configured bool
	completion string
	err        error

	mu      sync.Mutex
	prompts []string
	modes   []bool
}

func (f *fakeGemini) Configured() bool {
	return f.configured
}

func (f *fakeGemini) GenerateText(_ context.Context, prompt string, jsonMode bool) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.prompts = append(f.prompts, prompt)
	f.modes = append(f.modes, jsonMode)
	if !f.configured {
		return "", ErrConfiguration
	}
	if f.err != nil {
		return "", f.err
	}
	return f.completion, nil
}

func (f *fakeGemini) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}
