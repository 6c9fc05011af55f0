// Package dbclient is the state-store client: a typed facade over
// a set of logical databases multiplexed behind one Redis connection
// manager, with a separate pub/sub side-channel for change
// notifications. It is grounded on the ConfigDB/AppDB/AsicDB client
// pattern, generalized to every logical DB instead of one client type
// per DB.
package dbclient

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/go-redis/redis/v8"

	"github.com/racoon-project/racoon/pkg/logging"
	"github.com/racoon-project/racoon/pkg/schema"
)

// Client multiplexes logical-DB connections over one Redis instance.
// The zero value is not usable; construct with New.
type Client struct {
	baseOpts *redis.Options

	mu    sync.RWMutex
	conns map[schema.DB]*redis.Client
}

// New parses url (e.g. "redis://127.0.0.1:6379") and returns a Client
// with no connections yet open. Connections are established lazily,
// one per logical DB, on first use.
func New(url string) (*Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, schema.NewStoreError(schema.StoreConnection, 0, url, err)
	}
	return &Client{
		baseOpts: opts,
		conns:    make(map[schema.DB]*redis.Client),
	}, nil
}

// Close closes every open logical-DB connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var firstErr error
	for db, conn := range c.conns {
		if err := conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(c.conns, db)
	}
	return firstErr
}

// connFor returns the cached connection for db, opening one on first
// use. Read path takes a shared lock; the write-on-miss path takes an
// exclusive lock briefly.
func (c *Client) connFor(db schema.DB) *redis.Client {
	c.mu.RLock()
	conn, ok := c.conns[db]
	c.mu.RUnlock()
	if ok {
		return conn
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if conn, ok := c.conns[db]; ok {
		return conn
	}

	opts := *c.baseOpts
	opts.DB = int(db)
	conn = redis.NewClient(&opts)
	c.conns[db] = conn
	return conn
}

// Set serializes value to JSON and stores it at key, overwriting any
// existing value.
func (c *Client) Set(ctx context.Context, db schema.DB, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return schema.NewStoreError(schema.StoreSerialization, db, key, err)
	}
	if err := c.connFor(db).Set(ctx, key, data, 0).Err(); err != nil {
		return schema.NewStoreError(schema.StoreOperation, db, key, err)
	}
	return nil
}

// Get reads the value at key and deserializes it into out. Returns a
// StoreError wrapping schema.ErrStoreNotFound if the key is absent.
func (c *Client) Get(ctx context.Context, db schema.DB, key string, out interface{}) error {
	data, err := c.connFor(db).Get(ctx, key).Bytes()
	if err == redis.Nil {
		return schema.NewStoreError(schema.StoreNotFound, db, key, err)
	}
	if err != nil {
		return schema.NewStoreError(schema.StoreOperation, db, key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return schema.NewStoreError(schema.StoreInvalidFormat, db, key, err)
	}
	return nil
}

// Del removes key. It succeeds whether or not the key existed.
func (c *Client) Del(ctx context.Context, db schema.DB, key string) error {
	if err := c.connFor(db).Del(ctx, key).Err(); err != nil {
		return schema.NewStoreError(schema.StoreOperation, db, key, err)
	}
	return nil
}

// Exists reports whether key is present in db.
func (c *Client) Exists(ctx context.Context, db schema.DB, key string) (bool, error) {
	n, err := c.connFor(db).Exists(ctx, key).Result()
	if err != nil {
		return false, schema.NewStoreError(schema.StoreOperation, db, key, err)
	}
	return n > 0, nil
}

// Keys enumerates keys matching glob using a cursor-based SCAN rather
// than a blocking KEYS; callers tolerate snapshot-inconsistency across
// the scan.
func (c *Client) Keys(ctx context.Context, db schema.DB, glob string) ([]string, error) {
	var (
		cursor  uint64
		results []string
	)
	conn := c.connFor(db)
	for {
		batch, next, err := conn.Scan(ctx, cursor, glob, 1000).Result()
		if err != nil {
			return nil, schema.NewStoreError(schema.StoreOperation, db, glob, err)
		}
		results = append(results, batch...)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return results, nil
}

// HSetMultiple writes multiple hash fields at key in one call. SONiC
// convention: a table row with no fields still needs a key to exist, so
// callers that want an empty row should pass a single NULL:NULL
// sentinel field rather than an empty map (HSet with no fields is a
// no-op in Redis).
func (c *Client) HSetMultiple(ctx context.Context, db schema.DB, key string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	if err := c.connFor(db).HSet(ctx, key, args...).Err(); err != nil {
		return schema.NewStoreError(schema.StoreOperation, db, key, err)
	}
	return nil
}

// HGetAll reads every field of the hash at key.
func (c *Client) HGetAll(ctx context.Context, db schema.DB, key string) (map[string]string, error) {
	fields, err := c.connFor(db).HGetAll(ctx, key).Result()
	if err != nil {
		return nil, schema.NewStoreError(schema.StoreOperation, db, key, err)
	}
	return fields, nil
}

// Publish fire-and-forgets message on channel.
func (c *Client) Publish(ctx context.Context, channel, message string) error {
	conn := c.connFor(schema.Appl)
	if err := conn.Publish(ctx, channel, message).Err(); err != nil {
		return schema.NewStoreError(schema.StoreOperation, 0, channel, err)
	}
	return nil
}

// PublishNotification marshals n and publishes it on channel.
func (c *Client) PublishNotification(ctx context.Context, channel string, n schema.Notification) error {
	payload, err := n.Encode()
	if err != nil {
		return schema.NewStoreError(schema.StoreSerialization, 0, channel, err)
	}
	return c.Publish(ctx, channel, payload)
}

// Handler processes one pub/sub message. Subscribe awaits its
// completion before receiving the next message on the same
// subscription, which is the ordering guarantee the reconciliation
// pipeline relies on.
type Handler func(ctx context.Context, channel, payload string)

// Subscribe opens a dedicated pub/sub connection (never shared with a
// data-path connection), subscribes to every channel in channels, and
// dispatches each arriving message to handler strictly one at a time,
// in arrival order. It blocks until ctx is canceled or the connection
// is lost, in which case it returns a StoreError wrapping
// schema.ErrStoreConnection.
func (c *Client) Subscribe(ctx context.Context, channels []string, handler Handler) error {
	// Pub/sub in Redis is not scoped to a logical DB, so the
	// subscription connection never issues SELECT; any base client
	// serves as the template.
	opts := *c.baseOpts
	conn := redis.NewClient(&opts)
	defer conn.Close()

	pubsub := conn.Subscribe(ctx, channels...)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return schema.NewStoreError(schema.StoreConnection, 0, "subscribe", err)
	}

	log := logging.WithComponent("dbclient")
	for _, ch := range channels {
		log.WithField("channel", ch).Debug("subscribed")
	}

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return schema.NewStoreError(schema.StoreConnection, 0, "subscribe", errors.New("pubsub connection closed"))
			}
			handler(ctx, msg.Channel, msg.Payload)
		}
	}
}
