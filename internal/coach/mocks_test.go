package coach

import (
	"context"
	"fmt"
	"sync"
)

// mockLLM records prompts and returns a canned response or error.
type mockLLM struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
}

func (m *mockLLM) Complete(ctx context.Context, prompt string) (string, error) {
	return m.CompleteWithSystem(ctx, "", prompt)
}

func (m *mockLLM) CompleteWithSystem(_ context.Context, _ string, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.err != nil {
		return "", m.err
	}
	if m.response != "" {
		return m.response, nil
	}
	return fmt.Sprintf("coached: %d", len(prompt)), nil
}

func (m *mockLLM) promptCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}
