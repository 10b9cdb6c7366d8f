// Package notify delivers desktop notifications to signed-in browsers through redis pub/sub.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"
)

const publishTimeout = 3 * time.Second

// Notification is single desktop notification
type Notification struct {
	Title string    `msgpack:"title" json:"title"`
	Body  string    `msgpack:"body" json:"body"`
	At    time.Time `msgpack:"at" json:"at"`
}

// Publisher sends notifications to subscribed browsers
type Publisher interface {
	Publish(context.Context, Notification) error
}

type redisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher builds publisher on redis channel
func NewRedisPublisher(client *redis.Client, channel string) Publisher {
	return &redisPublisher{client: client, channel: channel}
}

func (p *redisPublisher) Publish(ctx context.Context, n Notification) error {
	encoded, err := msgpack.Marshal(&n)
	if err != nil {
		return fmt.Errorf("failed to encode notification - %w", err)
	}

	if err := p.client.Publish(ctx, p.channel, encoded).Err(); err != nil {
		return fmt.Errorf("failed to publish notification - %w", err)
	}
	return nil
}

// Listen decodes notifications of redis channel into fn until ctx is done
func Listen(ctx context.Context, client *redis.Client, channel string, fn func(Notification)) error {
	sub := client.Subscribe(ctx, channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe on %s - %w", channel, err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var n Notification
			if err := msgpack.Unmarshal([]byte(msg.Payload), &n); err != nil {
				logrus.Warnf("skipping malformed notification on %s - %v", channel, err)
				continue
			}
			fn(n)
		}
	}
}

// Dispatcher is fire-and-forget notifier, disabled dispatcher drops everything
type Dispatcher struct {
	pub     Publisher
	enabled bool
	now     func() time.Time

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher builds dispatcher, enabled reflects whether user granted notifications
func NewDispatcher(pub Publisher, enabled bool) *Dispatcher {
	return &Dispatcher{pub: pub, enabled: enabled, now: time.Now}
}

// Notify publishes in background, failures are logged only
func (d *Dispatcher) Notify(title, body string) {
	if !d.enabled || d.pub == nil {
		return
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	n := Notification{Title: title, Body: body, At: d.now().UTC()}
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := d.pub.Publish(ctx, n); err != nil {
			logrus.Warnf("failed to deliver notification %q - %v", title, err)
		}
	}()
}

// Close waits for notifications in flight, later ones are dropped
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	d.wg.Wait()
}
