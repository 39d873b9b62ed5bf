package session

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sayafh/curriculum-chat/internal/gateway"
)

// MockGateway mocks the gateway.Gateway interface
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Ask(ctx context.Context, req gateway.AskRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// blockingGateway parks Ask until released, so tests can observe the
// in-flight status guard.
type blockingGateway struct {
	entered chan struct{}
	release chan struct{}
	answer  string
}

func newBlockingGateway(answer string) *blockingGateway {
	return &blockingGateway{
		entered: make(chan struct{}),
		release: make(chan struct{}),
		answer:  answer,
	}
}

func (g *blockingGateway) Ask(ctx context.Context, req gateway.AskRequest) (string, error) {
	close(g.entered)
	<-g.release
	return g.answer, nil
}
