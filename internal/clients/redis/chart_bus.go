package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/teamtempo/engage-backend/internal/logger"
	"github.com/teamtempo/engage-backend/internal/sse"
	"github.com/teamtempo/engage-backend/internal/utils"
)

// ChartBus relays chart invalidation messages across instances through a
// redis pub/sub channel, so a dashboard connected to one instance sees
// answers recorded on another.
type ChartBus interface {
	sse.Publisher
	StartForwarder(ctx context.Context, onMsg func(m sse.Message)) error
	Close() error
}

type chartBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

func NewChartBus(log *logger.Logger) (ChartBus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(utils.GetEnv("REDIS_ADDR", "", log))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	channel := utils.GetEnv("REDIS_CHART_CHANNEL", "charts", log)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &chartBus{
		log:     log.With("service", "RedisChartBus"),
		rdb:     rdb,
		channel: channel,
	}, nil
}

func (b *chartBus) Publish(ctx context.Context, msg sse.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal chart message: %w", err)
	}
	return b.rdb.Publish(ctx, b.channel, payload).Err()
}

// StartForwarder subscribes to the bus and hands every decoded message to
// onMsg until ctx is cancelled.
func (b *chartBus) StartForwarder(ctx context.Context, onMsg func(m sse.Message)) error {
	if onMsg == nil {
		return fmt.Errorf("onMsg required")
	}
	pubsub := b.rdb.Subscribe(ctx, b.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case raw, ok := <-ch:
				if !ok {
					return
				}
				var msg sse.Message
				if err := json.Unmarshal([]byte(raw.Payload), &msg); err != nil {
					b.log.Warn("Dropping undecodable chart message", "error", err)
					continue
				}
				onMsg(msg)
			}
		}
	}()
	return nil
}

func (b *chartBus) Close() error {
	return b.rdb.Close()
}
