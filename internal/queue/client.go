package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agrimarket-logistics/internal/config"
	"github.com/agrimarket-logistics/internal/constants"
	"github.com/agrimarket-logistics/internal/logger"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列名称
	DefaultQueue = constants.QueueDefault
	// StatsQueue 统计更新队列名称
	StatsQueue = constants.QueueStats

	defaultMaxRetry = 5
)

// Client 队列客户端封装
type Client struct {
	client     *asynq.Client
	enabled    bool
	statsQueue string
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{enabled: false, statsQueue: StatsQueue}, nil
	}
	opt := buildRedisOpt(cfg)
	client := asynq.NewClient(opt)
	return &Client{
		client:     client,
		enabled:    true,
		statsQueue: resolveStatsQueue(cfg),
	}, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueDeliveryCompleted 推送配送完成任务，以配送单号作为任务 ID 去重
func (c *Client) EnqueueDeliveryCompleted(payload DeliveryCompletedPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewDeliveryCompletedTask(payload)
	if err != nil {
		return err
	}
	options := []asynq.Option{
		asynq.Queue(c.statsQueue),
		asynq.MaxRetry(defaultMaxRetry),
	}
	if no := strings.TrimSpace(payload.DeliveryNo); no != "" {
		options = append(options, asynq.TaskID(TaskPartnerDeliveryCompleted+":"+no))
	}
	options = append(options, opts...)
	_, err = c.client.Enqueue(task, options...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		// 同一配送单已在队列中
		return nil
	}
	return err
}

// EnqueueReviewSubmitted 推送评价提交任务
func (c *Client) EnqueueReviewSubmitted(payload ReviewSubmittedPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewReviewSubmittedTask(payload)
	if err != nil {
		return err
	}
	options := append([]asynq.Option{asynq.Queue(c.statsQueue), asynq.MaxRetry(defaultMaxRetry)}, opts...)
	_, err = c.client.Enqueue(task, options...)
	return err
}

// resolveStatsQueue 配置中未声明 stats 队列时回退到默认队列
func resolveStatsQueue(cfg *config.QueueConfig) string {
	if cfg == nil || len(cfg.Queues) == 0 {
		return DefaultQueue
	}
	if _, ok := cfg.Queues[StatsQueue]; ok {
		return StatsQueue
	}
	return DefaultQueue
}

// BuildServerConfig 生成队列服务配置
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	opt := buildRedisOpt(cfg)
	concurrency := 10
	if cfg != nil && cfg.Concurrency > 0 {
		concurrency = cfg.Concurrency
	}
	queues := map[string]int{DefaultQueue: 1}
	if cfg != nil && len(cfg.Queues) > 0 {
		queues = cfg.Queues
	}
	return opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      queues,
		Logger:      logger.S(),
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)
			logger.Warnw("queue_task_failed",
				"task_type", task.Type(),
				"retried", retried,
				"max_retry", maxRetry,
				"error", err,
			)
		}),
	}
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	host := "127.0.0.1"
	port := 6379
	password := ""
	db := 0
	if cfg != nil {
		if strings.TrimSpace(cfg.Host) != "" {
			host = strings.TrimSpace(cfg.Host)
		}
		if cfg.Port > 0 {
			port = cfg.Port
		}
		password = cfg.Password
		db = cfg.DB
	}
	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	}
}
