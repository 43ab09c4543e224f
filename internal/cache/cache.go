package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dharmasatrya/flightvalue/internal/models"
)

type Cache interface {
	Get(ctx context.Context, params models.SearchParams) (models.Report, bool)
	Set(ctx context.Context, params models.SearchParams, report models.Report) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host:     "localhost",
		Port:     "6379",
		Password: "",
		DB:       0,
		TTL:      time.Hour,
	}
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, params models.SearchParams) (models.Report, bool) {
	data, err := c.client.Get(ctx, GenerateKey(params)).Bytes()
	if err != nil {
		return models.Report{}, false
	}
	return decode(data)
}

func (c *RedisCache) Set(ctx context.Context, params models.SearchParams, report models.Report) error {
	data, err := encode(report)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, GenerateKey(params), data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, params models.SearchParams) (models.Report, bool) {
	return models.Report{}, false
}

func (c *NoOpCache) Set(ctx context.Context, params models.SearchParams, report models.Report) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

// the envelope keeps the report source, which the report document omits
func encode(report models.Report) ([]byte, error) {
	return json.Marshal(models.CachedReport{Report: report, Source: report.Source})
}

func decode(data []byte) (models.Report, bool) {
	var cached models.CachedReport
	if err := json.Unmarshal(data, &cached); err != nil {
		return models.Report{}, false
	}
	report := cached.Report
	report.Source = cached.Source
	return report, true
}

func GenerateKey(params models.SearchParams) string {
	keyData := struct {
		Origin      string
		Destination string
		Date        string
		Passengers  int
		CabinClass  string
	}{
		Origin:      strings.ToUpper(params.Origin),
		Destination: strings.ToUpper(params.Destination),
		Date:        params.Date,
		Passengers:  params.Passengers,
		CabinClass:  strings.ToLower(params.CabinClass),
	}

	data, _ := json.Marshal(keyData)
	hash := sha256.Sum256(data)
	return "flight:" + hex.EncodeToString(hash[:])
}
