package redis

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RouteCache caches route rows for the fare resolver. Routes change rarely
// (admin mutations invalidate) while every booking reads one.
type RouteCache struct {
	client *redis.Client
}

// NewRouteCache creates a new RouteCache.
func NewRouteCache(client *redis.Client) *RouteCache {
	return &RouteCache{client: client}
}

// RouteCacheTTL bounds staleness between an admin mutation on one node and
// reads on another.
const RouteCacheTTL = 60 * time.Second

const routeCachePrefix = "cache:route:"

// CachedRoute is the subset of a route the fare resolver needs.
type CachedRoute struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	StartLocation string  `json:"start_location"`
	EndLocation   string  `json:"end_location"`
	BaseFare      float64 `json:"base_fare"`
}

// GetRoute retrieves a route from cache. Returns nil on a miss.
func (s *RouteCache) GetRoute(ctx context.Context, routeID int64) (*CachedRoute, error) {
	key := routeCachePrefix + strconv.FormatInt(routeID, 10)
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var route CachedRoute
	if err := json.Unmarshal(data, &route); err != nil {
		return nil, err
	}
	return &route, nil
}

// SetRoute stores a route in cache.
func (s *RouteCache) SetRoute(ctx context.Context, route *CachedRoute) error {
	key := routeCachePrefix + strconv.FormatInt(route.ID, 10)
	data, err := json.Marshal(route)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, RouteCacheTTL).Err()
}

// InvalidateRoute removes a route from cache. Called after any admin
// mutation of the route or its stops.
func (s *RouteCache) InvalidateRoute(ctx context.Context, routeID int64) error {
	key := routeCachePrefix + strconv.FormatInt(routeID, 10)
	return s.client.Del(ctx, key).Err()
}
