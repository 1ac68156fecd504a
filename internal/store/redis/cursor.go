package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/recallnet/js-recall-sub004/internal/domain/model"
)

// CursorStore keeps the next block to sync per wallet and chain.
type CursorStore struct {
	client *redis.Client
	prefix string
}

func NewCursorStore(url, prefix string) (*CursorStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &CursorStore{client: client, prefix: prefix}, nil
}

// Get returns the stored cursor. ok is false when none is stored yet.
func (s *CursorStore) Get(ctx context.Context, wallet string, c model.Chain) (int64, bool, error) {
	raw, err := s.client.Get(ctx, cursorKey(s.prefix, wallet, c)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get cursor: %w", err)
	}
	block, err := parseCursor(raw)
	if err != nil {
		return 0, false, err
	}
	return block, true, nil
}

func (s *CursorStore) Set(ctx context.Context, wallet string, c model.Chain, block int64) error {
	if block < 0 {
		return fmt.Errorf("cursor must not be negative: %d", block)
	}
	if err := s.client.Set(ctx, cursorKey(s.prefix, wallet, c), strconv.FormatInt(block, 10), 0).Err(); err != nil {
		return fmt.Errorf("set cursor: %w", err)
	}
	return nil
}

func (s *CursorStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *CursorStore) Close() error {
	return s.client.Close()
}

func cursorKey(prefix, wallet string, c model.Chain) string {
	parts := []string{"cursor", c.String(), model.NormalizeAddress(wallet)}
	if prefix != "" {
		parts = append([]string{prefix}, parts...)
	}
	return strings.Join(parts, ":")
}

func parseCursor(raw string) (int64, error) {
	block, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse cursor %q: %w", raw, err)
	}
	if block < 0 {
		return 0, fmt.Errorf("parse cursor %q: negative block", raw)
	}
	return block, nil
}

// MemoryCursorStore is an in-process CursorStore for local runs and tests.
type MemoryCursorStore struct {
	mu      sync.Mutex
	cursors map[string]int64
}

func NewMemoryCursorStore() *MemoryCursorStore {
	return &MemoryCursorStore{cursors: make(map[string]int64)}
}

func (s *MemoryCursorStore) Get(_ context.Context, wallet string, c model.Chain) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	block, ok := s.cursors[cursorKey("", wallet, c)]
	return block, ok, nil
}

func (s *MemoryCursorStore) Set(_ context.Context, wallet string, c model.Chain, block int64) error {
	if block < 0 {
		return fmt.Errorf("cursor must not be negative: %d", block)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursors[cursorKey("", wallet, c)] = block
	return nil
}
