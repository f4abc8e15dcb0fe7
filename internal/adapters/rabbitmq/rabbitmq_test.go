package rabbitmq_test

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rafaelleal24/stock/internal/adapters/config"
	"github.com/rafaelleal24/stock/internal/adapters/rabbitmq"
	"github.com/rafaelleal24/stock/internal/core/domain"
	tcrabbit "github.com/testcontainers/testcontainers-go/modules/rabbitmq"
)

var (
	testAdapter      *rabbitmq.RabbitMQAdapter
	testAmqpEndpoint string
)

func stockExchangeConfig(maxRetries int) config.RabbitMQConfig {
	return config.RabbitMQConfig{
		URL:        testAmqpEndpoint,
		MaxRetries: maxRetries,
		RetryDelay: 100 * time.Millisecond,
		ExchangeConfigs: []config.ExchangeConfig{
			{
				Name:       "exchange.stock",
				Type:       "direct",
				Durable:    true,
				AutoDelete: false,
			},
		},
	}
}

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := tcrabbit.Run(ctx, "rabbitmq:3-management-alpine")
	if err != nil {
		log.Fatalf("failed to start rabbitmq container: %v", err)
	}

	testAmqpEndpoint, err = container.AmqpURL(ctx)
	if err != nil {
		log.Fatalf("failed to get amqp url: %v", err)
	}

	testAdapter, err = rabbitmq.NewRabbitMQAdapter(stockExchangeConfig(2))
	if err != nil {
		log.Fatalf("failed to create rabbitmq adapter: %v", err)
	}

	code := m.Run()

	_ = testAdapter.Close()
	_ = container.Terminate(ctx)

	os.Exit(code)
}

func consume(t *testing.T, routingKey string) <-chan amqp.Delivery {
	t.Helper()

	conn, err := amqp.Dial(testAmqpEndpoint)
	if err != nil {
		t.Fatalf("consumer dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	ch, err := conn.Channel()
	if err != nil {
		t.Fatalf("consumer channel failed: %v", err)
	}

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		t.Fatalf("queue declare failed: %v", err)
	}
	if err := ch.QueueBind(q.Name, routingKey, "exchange.stock", false, nil); err != nil {
		t.Fatalf("queue bind failed: %v", err)
	}

	msgs, err := ch.Consume(q.Name, "", true, false, false, false, nil)
	if err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	return msgs
}

func TestRabbitMQAdapter_HealthCheck(t *testing.T) {
	if err := testAdapter.HealthCheck(); err != nil {
		t.Fatalf("expected healthy, got %v", err)
	}
}

func TestRabbitMQAdapter_PublishRaw(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes raw message successfully", func(t *testing.T) {
		data := []byte(`{"stock_id":"abc123","sku":"SKU1"}`)
		if err := testAdapter.PublishRaw(ctx, "stock.created", "stock", data); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("published message can be consumed", func(t *testing.T) {
		msgs := consume(t, "stock.adjusted")

		body, _ := json.Marshal(map[string]any{"sku": "SKU1", "quantity": 15})
		if err := testAdapter.PublishRaw(ctx, "stock.adjusted", "stock", body); err != nil {
			t.Fatalf("publish failed: %v", err)
		}

		select {
		case msg := <-msgs:
			var received map[string]any
			if err := json.Unmarshal(msg.Body, &received); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if received["sku"] != "SKU1" {
				t.Fatalf("expected sku SKU1, got %v", received["sku"])
			}
			if msg.Type != "stock.adjusted" || msg.MessageId == "" {
				t.Fatalf("unexpected message properties type=%q id=%q", msg.Type, msg.MessageId)
			}
			if msg.Headers["entity_name"] != "stock" {
				t.Fatalf("expected entity_name header, got %v", msg.Headers)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for message")
		}
	})
}

func TestRabbitMQAdapter_Publish(t *testing.T) {
	ctx := context.Background()
	msgs := consume(t, "stock.deleted")

	stock := &domain.Stock{ID: "id-1", Sku: "SKU1"}
	if err := testAdapter.Publish(ctx, domain.NewStockDeletedEvent(stock, time.Now())); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	select {
	case msg := <-msgs:
		var received domain.StockDeletedEvent
		if err := json.Unmarshal(msg.Body, &received); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if received.StockID != "id-1" || received.Sku != "SKU1" {
			t.Fatalf("unexpected event %+v", received)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestRabbitMQAdapter_PublishHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := testAdapter.PublishRaw(ctx, "stock.created", "stock", []byte(`{}`)); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
}

func TestRabbitMQAdapter_Close(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh adapter publishes successfully", func(t *testing.T) {
		adapter, err := rabbitmq.NewRabbitMQAdapter(stockExchangeConfig(3))
		if err != nil {
			t.Fatalf("failed to create adapter: %v", err)
		}
		defer adapter.Close()

		if err := adapter.PublishRaw(ctx, "stock.created", "stock", []byte(`{"test":"before"}`)); err != nil {
			t.Fatalf("initial publish failed: %v", err)
		}
	})

	t.Run("health check fails after close", func(t *testing.T) {
		adapter, err := rabbitmq.NewRabbitMQAdapter(stockExchangeConfig(0))
		if err != nil {
			t.Fatalf("failed to create adapter: %v", err)
		}

		_ = adapter.Close()

		if err := adapter.HealthCheck(); err == nil {
			t.Fatal("expected health check to fail after close")
		}
	})

	t.Run("publish after close reconnects", func(t *testing.T) {
		adapter, err := rabbitmq.NewRabbitMQAdapter(stockExchangeConfig(1))
		if err != nil {
			t.Fatalf("failed to create adapter: %v", err)
		}
		defer adapter.Close()

		_ = adapter.Close()

		if err := adapter.PublishRaw(ctx, "stock.created", "stock", []byte(`{}`)); err != nil {
			t.Fatalf("expected publish to reconnect, got %v", err)
		}
		if err := adapter.HealthCheck(); err != nil {
			t.Fatalf("expected healthy after reconnect, got %v", err)
		}
	})
}
