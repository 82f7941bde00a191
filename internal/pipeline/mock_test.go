package pipeline

import (
	"context"
	"image"
	"sync"

	"github.com/sells-group/cardscan-cli/pkg/anthropic"
	"github.com/sells-group/cardscan-cli/pkg/bbref"
	"github.com/sells-group/cardscan-cli/pkg/ebay"
)

// mockOCR returns scripted text per cell in call order and records the
// bounds of each image it receives.
type mockOCR struct {
	mu     sync.Mutex
	texts  []string
	calls  int
	bounds []image.Rectangle
	err    error
}

func (m *mockOCR) ExtractText(_ context.Context, img image.Image) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bounds = append(m.bounds, img.Bounds())
	if m.err != nil {
		return "", m.err
	}
	var text string
	if m.calls < len(m.texts) {
		text = m.texts[m.calls]
	}
	m.calls++
	return text, nil
}

// blockingDescriber never answers until its context is canceled.
type blockingDescriber struct{}

func (blockingDescriber) CreateMessage(ctx context.Context, _ anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// mockEbay serves canned prices keyed by player name.
type mockEbay struct {
	mu     sync.Mutex
	prices map[string]*ebay.Prices
	errs   map[string]error
	calls  []ebay.Query
}

func (m *mockEbay) SoldListings(_ context.Context, q ebay.Query) (*ebay.Prices, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, q)
	if err, ok := m.errs[q.PlayerName]; ok {
		return nil, err
	}
	return m.prices[q.PlayerName], nil
}

// mockBbref serves canned career stats keyed by player name.
type mockBbref struct {
	mu    sync.Mutex
	stats map[string]*bbref.CareerStats
	errs  map[string]error
}

func (m *mockBbref) CareerStats(_ context.Context, playerName string) (*bbref.CareerStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.errs[playerName]; ok {
		return nil, err
	}
	return m.stats[playerName], nil
}

// mockDescriber echoes a fixed description.
type mockDescriber struct {
	mu       sync.Mutex
	response string
	err      error
	requests []anthropic.MessageRequest
}

func (m *mockDescriber) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: m.response}},
	}, nil
}
