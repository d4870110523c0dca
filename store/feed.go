package store

import (
	"context"
	"strings"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const feedChannel = "logivrac:changes"

// Feed propagates collection-change signals between app instances over
// Redis pub/sub, so a write on one device's server becomes a live
// notification on every other. The store works without one; subscriptions
// are then local to the process.
type Feed struct {
	rdb      *goredis.Client
	logger   *zap.Logger
	instance string
	sub      *goredis.PubSub
	done     chan struct{}
}

func NewFeed(rdb *goredis.Client, logger *zap.Logger) *Feed {
	return &Feed{
		rdb:      rdb,
		logger:   logger,
		instance: uuid.NewString(),
		done:     make(chan struct{}),
	}
}

// attach starts relaying remote change messages into the local hub. Messages
// published by this instance are skipped; the store already notified its own
// subscribers synchronously.
func (f *Feed) attach(h *hub) {
	f.sub = f.rdb.Subscribe(context.Background(), feedChannel)

	go func() {
		defer close(f.done)
		for msg := range f.sub.Channel() {
			instance, col, ok := strings.Cut(msg.Payload, " ")
			if !ok || instance == f.instance {
				continue
			}
			h.notify(Collection(col))
		}
	}()
}

func (f *Feed) publish(col Collection) {
	ctx := context.Background()
	if err := f.rdb.Publish(ctx, feedChannel, f.instance+" "+string(col)).Err(); err != nil {
		f.logger.Warn("change feed publish failed",
			zap.String("collection", string(col)), zap.Error(err))
	}
}

// Close tears the relay down and waits for the subscriber goroutine.
// Closing the PubSub closes its message channel, which ends the relay loop.
func (f *Feed) Close() {
	if f.sub != nil {
		f.sub.Close()
		<-f.done
	}
}
