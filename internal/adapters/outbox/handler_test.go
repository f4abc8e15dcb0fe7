package outbox_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rafaelleal24/stock/internal/adapters/config"
	"github.com/rafaelleal24/stock/internal/adapters/outbox"
	outboxmock "github.com/rafaelleal24/stock/internal/adapters/outbox/mock"
	portmock "github.com/rafaelleal24/stock/internal/core/port/mock"
	"go.uber.org/mock/gomock"
)

func newTestHandler(t *testing.T, batch int, interval time.Duration) (*outbox.Handler, *outboxmock.MockRepository, *portmock.MockBrokerPort) {
	ctrl := gomock.NewController(t)
	broker := portmock.NewMockBrokerPort(ctrl)
	repo := outboxmock.NewMockRepository(ctrl)

	handler := outbox.NewHandler(repo, broker, config.OutboxConfig{
		Interval:  interval,
		BatchSize: batch,
	})
	return handler, repo, broker
}

func TestHandler_ProcessPending_PublishesAndDeletes(t *testing.T) {
	handler, repo, broker := newTestHandler(t, 10, time.Hour)

	entries := []outbox.Entry{
		{ID: "1", EventName: "stock.created", EntityName: "stock", EventData: []byte(`{"sku":"SKU1"}`)},
		{ID: "2", EventName: "stock.adjusted", EntityName: "stock", EventData: []byte(`{"sku":"SKU1"}`)},
	}

	repo.EXPECT().FetchPending(gomock.Any(), 10).Return(entries, nil)
	gomock.InOrder(
		broker.EXPECT().PublishRaw(gomock.Any(), "stock.created", "stock", []byte(`{"sku":"SKU1"}`)).Return(nil),
		repo.EXPECT().Delete(gomock.Any(), "1").Return(nil),
		broker.EXPECT().PublishRaw(gomock.Any(), "stock.adjusted", "stock", []byte(`{"sku":"SKU1"}`)).Return(nil),
		repo.EXPECT().Delete(gomock.Any(), "2").Return(nil),
	)

	if got := handler.ProcessPending(context.Background()); got != 2 {
		t.Fatalf("expected 2 published, got %d", got)
	}
}

func TestHandler_ProcessPending_KeepsEntryOnPublishFailure(t *testing.T) {
	handler, repo, broker := newTestHandler(t, 10, time.Hour)

	entries := []outbox.Entry{
		{ID: "1", EventName: "stock.deleted", EntityName: "stock", EventData: []byte(`{"id":"1"}`)},
		{ID: "2", EventName: "stock.created", EntityName: "stock", EventData: []byte(`{"id":"2"}`)},
	}

	repo.EXPECT().FetchPending(gomock.Any(), 10).Return(entries, nil)
	publishErr := errors.New("publish failed")
	broker.EXPECT().PublishRaw(gomock.Any(), "stock.deleted", "stock", []byte(`{"id":"1"}`)).Return(publishErr)
	repo.EXPECT().MarkFailed(gomock.Any(), "1", publishErr).Return(nil)
	broker.EXPECT().PublishRaw(gomock.Any(), "stock.created", "stock", []byte(`{"id":"2"}`)).Return(nil)
	repo.EXPECT().Delete(gomock.Any(), "2").Return(nil)

	if got := handler.ProcessPending(context.Background()); got != 1 {
		t.Fatalf("expected 1 published, got %d", got)
	}
}

func TestHandler_ProcessPending_MarkFailedErrorIsNotFatal(t *testing.T) {
	handler, repo, broker := newTestHandler(t, 10, time.Hour)

	repo.EXPECT().FetchPending(gomock.Any(), 10).Return([]outbox.Entry{
		{ID: "1", EventName: "stock.adjusted", EntityName: "stock", EventData: []byte(`{}`), Attempts: 3},
	}, nil)
	broker.EXPECT().PublishRaw(gomock.Any(), "stock.adjusted", "stock", []byte(`{}`)).Return(errors.New("broker closed"))
	repo.EXPECT().MarkFailed(gomock.Any(), "1", gomock.Any()).Return(errors.New("db down"))

	if got := handler.ProcessPending(context.Background()); got != 0 {
		t.Fatalf("expected 0 published, got %d", got)
	}
}

func TestHandler_ProcessPending_FetchError(t *testing.T) {
	handler, repo, _ := newTestHandler(t, 10, time.Hour)

	repo.EXPECT().FetchPending(gomock.Any(), 10).Return(nil, errors.New("db down"))

	if got := handler.ProcessPending(context.Background()); got != 0 {
		t.Fatalf("expected 0 published, got %d", got)
	}
}

func TestHandler_ProcessPending_DeleteFailureIsNotCounted(t *testing.T) {
	handler, repo, broker := newTestHandler(t, 10, time.Hour)

	repo.EXPECT().FetchPending(gomock.Any(), 10).Return([]outbox.Entry{
		{ID: "1", EventName: "stock.created", EntityName: "stock", EventData: []byte(`{}`)},
	}, nil)
	broker.EXPECT().PublishRaw(gomock.Any(), "stock.created", "stock", []byte(`{}`)).Return(nil)
	repo.EXPECT().Delete(gomock.Any(), "1").Return(errors.New("delete failed"))

	if got := handler.ProcessPending(context.Background()); got != 0 {
		t.Fatalf("expected 0 published, got %d", got)
	}
}

func TestHandler_StartPollsWithBatchSize(t *testing.T) {
	handler, repo, _ := newTestHandler(t, 5, 20*time.Millisecond)

	polled := make(chan struct{}, 1)
	repo.EXPECT().FetchPending(gomock.Any(), 5).DoAndReturn(func(context.Context, int) ([]outbox.Entry, error) {
		select {
		case polled <- struct{}{}:
		default:
		}
		return nil, nil
	}).MinTimes(1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		handler.Start(ctx)
		close(done)
	}()

	select {
	case <-polled:
	case <-time.After(2 * time.Second):
		t.Fatal("handler never polled the outbox")
	}
	cancel()
	<-done
}

func TestHandler_StopsOnContextCancel(t *testing.T) {
	handler, _, _ := newTestHandler(t, 10, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		handler.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not stop after context cancellation")
	}
}

func TestHandler_NonPositiveConfigFallsBackToDefaults(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		handler, repo, _ := newTestHandler(t, 0, interval)

		polled := make(chan struct{}, 1)
		repo.EXPECT().FetchPending(gomock.Any(), 100).DoAndReturn(func(context.Context, int) ([]outbox.Entry, error) {
			select {
			case polled <- struct{}{}:
			default:
			}
			return nil, nil
		}).MinTimes(1)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			handler.Start(ctx)
			close(done)
		}()

		select {
		case <-polled:
		case <-time.After(3 * time.Second):
			t.Fatalf("interval %s: handler never polled the outbox", interval)
		}
		cancel()
		<-done
	}
}
