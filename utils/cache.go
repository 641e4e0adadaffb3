package utils

import (
	"DocVault/internal/repo"
	"DocVault/model"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a Redis cache client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client: client,
	}
}

// Get reads a cached value.
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) error {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

// Set writes a cached value.
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, string(data), expiration).Err()
}

// Delete removes a cache entry.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// DeleteByPattern deletes cache entries by pattern.
func (c *RedisCache) DeleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	return nil
}

// Exists checks whether a cache key exists.
func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	count, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

type CacheManager struct {
	cache Cache
}

var globalCacheManager *CacheManager
var cacheManagerOnce sync.Once

// InitCacheManager initializes the cache manager.
func InitCacheManager() {
	cacheManagerOnce.Do(func() {
		globalCacheManager = &CacheManager{
			cache: NewRedisCache(repo.Redis),
		}
	})
}

// GetCacheManager returns the cache manager.
func GetCacheManager() *CacheManager {
	if globalCacheManager == nil {
		InitCacheManager()
	}
	return globalCacheManager
}

// BuildCacheKey builds a cache key.
func BuildCacheKey(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key += fmt.Sprintf(":%v", param)
	}
	return key
}

const (
	CacheKeyMemberList  = "member:list"
	CacheKeyUserStorage = "user:storage"
)

// MemberListCache caches one folder level as seen by one user. Folders and
// documents are kept apart here and re-interleaved on read.
type MemberListCache struct {
	Folders   []model.Folder   `json:"folders"`
	Documents []model.Document `json:"documents"`
}

// GetMemberListFromCache reads a cached folder listing.
func GetMemberListFromCache(ctx context.Context, userID, parentID uint64) (*MemberListCache, bool) {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyMemberList, userID, parentID)

	var result MemberListCache
	if err := manager.cache.Get(ctx, key, &result); err != nil {
		return nil, false
	}
	return &result, true
}

// SetMemberListToCache writes a cached folder listing.
func SetMemberListToCache(ctx context.Context, userID, parentID uint64, data *MemberListCache, expiration time.Duration) error {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyMemberList, userID, parentID)
	return manager.cache.Set(ctx, key, data, expiration)
}

// InvalidateMemberListCache clears one cached folder level for one user.
func InvalidateMemberListCache(ctx context.Context, userID, parentID uint64) error {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyMemberList, userID, parentID)
	return manager.cache.Delete(ctx, key)
}

// InvalidateUserMemberListCache clears every cached listing for one user.
// Used after share grants, which change visibility at arbitrary depths.
func InvalidateUserMemberListCache(ctx context.Context, userID uint64) error {
	manager := GetCacheManager()
	keyPattern := BuildCacheKey(CacheKeyMemberList, userID) + ":*"
	cache, ok := manager.cache.(*RedisCache)
	if !ok {
		return manager.cache.Delete(ctx, keyPattern)
	}
	return cache.DeleteByPattern(ctx, keyPattern)
}

// GetUserStorageFromCache reads cached storage status.
func GetUserStorageFromCache(ctx context.Context, userID uint64) (*model.UserStorage, bool) {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyUserStorage, userID)

	var result model.UserStorage
	if err := manager.cache.Get(ctx, key, &result); err != nil {
		return nil, false
	}
	return &result, true
}

// SetUserStorageToCache writes cached storage status.
func SetUserStorageToCache(ctx context.Context, userID uint64, data *model.UserStorage, expiration time.Duration) error {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyUserStorage, userID)
	return manager.cache.Set(ctx, key, data, expiration)
}

// InvalidateUserStorageCache clears cached storage status.
func InvalidateUserStorageCache(ctx context.Context, userID uint64) error {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyUserStorage, userID)
	return manager.cache.Delete(ctx, key)
}
