// Package redis holds the Redis adapters (employee directory cache).
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/Shifts-api/internal/application/auth"
	"github.com/jhoicas/Shifts-api/internal/domain/entity"
	"github.com/jhoicas/Shifts-api/pkg/config"
)

var _ auth.EmployeeCache = (*EmployeeCache)(nil)

// DirectoryKey holds the JSON encoded employee directory.
const DirectoryKey = "shifts:employees:directory"

const defaultTTL = 5 * time.Minute

// NewClient opens a client for cfg and pings it.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	rc := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return rc, nil
}

// EmployeeCache implements auth.EmployeeCache on one Redis string key.
type EmployeeCache struct {
	rc  *goredis.Client
	key string
	ttl time.Duration
}

// NewEmployeeCache builds the cache; ttl <= 0 uses five minutes.
func NewEmployeeCache(rc *goredis.Client, ttl time.Duration) *EmployeeCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &EmployeeCache{rc: rc, key: DirectoryKey, ttl: ttl}
}

// Get returns the cached directory. A missing key is a miss, not an error.
func (c *EmployeeCache) Get(ctx context.Context) ([]entity.EmployeeSummary, bool, error) {
	raw, err := c.rc.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get employee directory: %w", err)
	}
	list, err := decodeDirectory(raw)
	if err != nil {
		return nil, false, err
	}
	return list, true, nil
}

// Set stores the directory with the configured TTL.
func (c *EmployeeCache) Set(ctx context.Context, employees []entity.EmployeeSummary) error {
	raw, err := encodeDirectory(employees)
	if err != nil {
		return err
	}
	if err := c.rc.Set(ctx, c.key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set employee directory: %w", err)
	}
	return nil
}

// Invalidate drops the cached directory.
func (c *EmployeeCache) Invalidate(ctx context.Context) error {
	if err := c.rc.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("invalidate employee directory: %w", err)
	}
	return nil
}

func encodeDirectory(employees []entity.EmployeeSummary) ([]byte, error) {
	if employees == nil {
		employees = []entity.EmployeeSummary{}
	}
	raw, err := json.Marshal(employees)
	if err != nil {
		return nil, fmt.Errorf("marshal employee directory: %w", err)
	}
	return raw, nil
}

func decodeDirectory(raw []byte) ([]entity.EmployeeSummary, error) {
	var list []entity.EmployeeSummary
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("unmarshal employee directory: %w", err)
	}
	return list, nil
}
