package workers

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"chat-relay/contract"
	"chat-relay/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestStatusWorker_ReportsAndStops(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := mocks.NewMockIRegistry(ctrl)
	registry.EXPECT().
		ForEach(gomock.Any()).
		Do(func(fn func(string, string, contract.Role, contract.EventSink)) {
			fn("conn-1", "alice", contract.RoleUser, nil)
			fn("conn-2", "", "", nil)
		}).
		MinTimes(1)

	worker := NewStatusWorker(slog.Default(), registry, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	req.NoError(worker.Run(ctx))
}
