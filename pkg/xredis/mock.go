package xredis

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewMockClient returns an in-memory Client for tests.
func NewMockClient() *mockClient {
	return &mockClient{
		values: make(map[string]string),
		sets:   make(map[string]map[string]struct{}),
	}
}

type mockClient struct {
	mutex  sync.Mutex
	values map[string]string
	sets   map[string]map[string]struct{}
}

func (c *mockClient) Exist(ctx context.Context, key string) (bool, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, ok := c.values[key]; ok {
		return true, nil
	}

	_, ok := c.sets[key]
	return ok, nil
}

func (c *mockClient) Del(ctx context.Context, key ...string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for _, k := range key {
		delete(c.values, k)
		delete(c.sets, k)
	}

	return nil
}

func (c *mockClient) SAdd(ctx context.Context, key string, members ...string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, ok := c.sets[key]; !ok {
		c.sets[key] = make(map[string]struct{})
	}

	for _, m := range members {
		c.sets[key][m] = struct{}{}
	}

	return nil
}

func (c *mockClient) SRem(ctx context.Context, key string, members ...string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for _, m := range members {
		delete(c.sets[key], m)
	}

	return nil
}

func (c *mockClient) SMembers(ctx context.Context, key string) ([]string, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	members := []string{}
	for m := range c.sets[key] {
		members = append(members, m)
	}

	return members, nil
}

func (c *mockClient) SIsMember(ctx context.Context, key, member string) (bool, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	_, ok := c.sets[key][member]
	return ok, nil
}

func (c *mockClient) Set(ctx context.Context, key, value string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.values[key] = value
	return nil
}

func (c *mockClient) Get(ctx context.Context, key string) (string, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	s, ok := c.values[key]
	if !ok {
		return "", redis.Nil
	}

	return s, nil
}

func (c *mockClient) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	b, err := json.Marshal(obj)
	if err != nil {
		return err
	}

	return c.Set(ctx, key, string(b))
}

func (c *mockClient) GetObj(ctx context.Context, key string, v any) error {
	s, err := c.Get(ctx, key)
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(s), v)
}
