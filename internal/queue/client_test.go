package queue

import (
	"encoding/json"
	"testing"

	"github.com/agrimarket-logistics/internal/config"
)

func TestDisabledClientIsNoop(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueDeliveryCompleted(DeliveryCompletedPayload{DeliveryNo: "D1", PartnerID: 1}); err != nil {
		t.Fatalf("disabled enqueue should be noop: %v", err)
	}
	if err := client.EnqueueReviewSubmitted(ReviewSubmittedPayload{PartnerID: 1, Rating: 5}); err != nil {
		t.Fatalf("disabled enqueue should be noop: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close disabled client failed: %v", err)
	}

	var nilClient *Client
	if nilClient.Enabled() {
		t.Fatalf("nil client should be disabled")
	}
}

func TestResolveStatsQueue(t *testing.T) {
	if got := resolveStatsQueue(nil); got != DefaultQueue {
		t.Fatalf("nil config want %s got %s", DefaultQueue, got)
	}
	if got := resolveStatsQueue(&config.QueueConfig{Queues: map[string]int{"default": 1}}); got != DefaultQueue {
		t.Fatalf("missing stats queue want %s got %s", DefaultQueue, got)
	}
	if got := resolveStatsQueue(&config.QueueConfig{Queues: map[string]int{"default": 1, "stats": 3}}); got != StatsQueue {
		t.Fatalf("configured stats queue want %s got %s", StatsQueue, got)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(nil)
	if opt.Addr != "127.0.0.1:6379" {
		t.Fatalf("unexpected addr %s", opt.Addr)
	}
	if cfg.Concurrency != 10 {
		t.Fatalf("want concurrency 10 got %d", cfg.Concurrency)
	}
	if cfg.Queues[DefaultQueue] != 1 {
		t.Fatalf("default queue missing: %v", cfg.Queues)
	}

	opt, cfg = BuildServerConfig(&config.QueueConfig{Host: " redis ", Port: 6380, DB: 2, Concurrency: 4, Queues: map[string]int{"stats": 5}})
	if opt.Addr != "redis:6380" || opt.DB != 2 {
		t.Fatalf("unexpected redis opt %+v", opt)
	}
	if cfg.Concurrency != 4 || cfg.Queues["stats"] != 5 {
		t.Fatalf("unexpected server config %+v", cfg)
	}
}

func TestNewDeliveryCompletedTaskPayload(t *testing.T) {
	task, err := NewDeliveryCompletedTask(DeliveryCompletedPayload{
		DeliveryNo:          "DLV-9",
		PartnerID:           4,
		DeliveryTimeMinutes: 38.5,
		WasSuccessful:       true,
	})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskPartnerDeliveryCompleted {
		t.Fatalf("unexpected task type %s", task.Type())
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(task.Payload(), &decoded); err != nil {
		t.Fatalf("decode payload failed: %v", err)
	}
	if decoded["delivery_no"] != "DLV-9" || decoded["was_successful"] != true {
		t.Fatalf("unexpected payload %v", decoded)
	}
}
