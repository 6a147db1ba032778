package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/MKhiriev/go-api-gateway/internal/config"
	"github.com/MKhiriev/go-api-gateway/internal/logger"
	"github.com/MKhiriev/go-api-gateway/internal/utils"
)

// restReply is the envelope of every REST cache answer.
type restReply struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

type restCache struct {
	client *utils.HTTPClient
	token  string

	logger *logger.Logger
}

// NewRESTCache constructs a [Cache] that speaks the Upstash-style REST
// protocol: each command is POSTed to the base URL as a JSON array.
func NewRESTCache(cfg config.Cache, logger *logger.Logger) (Cache, error) {
	baseURL, err := utils.NormalizeBaseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid cache url: %w", err)
	}

	return &restCache{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		token:  cfg.Token,
		logger: logger,
	}, nil
}

func (c *restCache) Get(ctx context.Context, key string) (string, error) {
	result, err := c.do(ctx, "GET", key)
	if err != nil {
		return "", err
	}
	if isNull(result) {
		return "", fmt.Errorf("%w: %s", ErrCacheMiss, key)
	}

	var value string
	if err = json.Unmarshal(result, &value); err != nil {
		return "", fmt.Errorf("%w: GET returned non-string result: %w", ErrCacheCommand, err)
	}
	return value, nil
}

func (c *restCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	args := []any{"SET", key, value}
	if ttl > 0 {
		args = append(args, "EX", ttlSeconds(ttl))
	}

	_, err := c.do(ctx, args...)
	return err
}

func (c *restCache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	result, err := c.do(ctx, "EXPIRE", key, ttlSeconds(ttl))
	if err != nil {
		return err
	}

	var updated int
	if err = json.Unmarshal(result, &updated); err != nil {
		return fmt.Errorf("%w: EXPIRE returned non-integer result: %w", ErrCacheCommand, err)
	}
	if updated == 0 {
		return fmt.Errorf("%w: %s", ErrCacheMiss, key)
	}
	return nil
}

func (c *restCache) Delete(ctx context.Context, key string) error {
	_, err := c.do(ctx, "DEL", key)
	return err
}

func (c *restCache) Ping(ctx context.Context) error {
	_, err := c.do(ctx, "PING")
	return err
}

// Close is a no-op; resty keeps no connections that need releasing.
func (c *restCache) Close() error {
	return nil
}

// do sends one command and returns its raw result.
func (c *restCache) do(ctx context.Context, args ...any) (json.RawMessage, error) {
	var reply restReply

	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(c.token).
		SetHeader("Content-Type", "application/json").
		SetBody(args).
		SetResult(&reply).
		SetError(&reply).
		Post("")
	if err != nil {
		return nil, fmt.Errorf("%w: %v request: %w", ErrCacheUnavailable, args[0], err)
	}
	if reply.Error != "" && (resp.StatusCode() == http.StatusBadRequest || !resp.IsError()) {
		return nil, fmt.Errorf("%w: %v: %s", ErrCacheCommand, args[0], reply.Error)
	}
	if err = mapCacheError(resp); err != nil {
		c.logger.Debug().Int("status", resp.StatusCode()).Msgf("cache %v failed", args[0])
		return nil, err
	}

	return reply.Result, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// ttlSeconds rounds ttl up to whole seconds, never below one.
func ttlSeconds(ttl time.Duration) int64 {
	secs := int64(math.Ceil(ttl.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}
