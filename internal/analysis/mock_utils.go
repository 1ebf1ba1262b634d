package analysis

import (
	"context"
)

// MockReply scripts one Generate call.
type MockReply struct {
	Text string
	Err  error
}

// MockLLMClient replays scripted replies in call order and records the
// prompts it received. Calls past the script return an empty findings
// reply.
type MockLLMClient struct {
	Replies []MockReply
	Prompts []string
	calls   int
}

func (m *MockLLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	i := m.calls
	m.calls++
	if i >= len(m.Replies) {
		return `{"inconsistencies": []}`, nil
	}
	r := m.Replies[i]
	if r.Err != nil {
		return "", r.Err
	}
	return r.Text, nil
}
