package catalog

import "time"

// Storage backends selectable through CATALOG_STORAGE.
const (
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// Cache backends selectable through CATALOG_CACHE.
const (
	CacheNone  = "none"
	CacheLRU   = "lru"
	CacheRedis = "redis"
)

// Config holds catalog settings loaded from the environment.
type Config struct {
	Storage             string        `env:"CATALOG_STORAGE" envDefault:"mongo"`
	Cache               string        `env:"CATALOG_CACHE" envDefault:"lru"`
	CacheTTL            time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"5m"`
	CacheSize           int           `env:"CATALOG_CACHE_SIZE" envDefault:"1000"`
	CachePrefix         string        `env:"CATALOG_CACHE_PREFIX" envDefault:"catalog:"`
	SeedOnStart         bool          `env:"CATALOG_SEED" envDefault:"true"`
	StockReportSchedule string        `env:"CATALOG_STOCK_REPORT_SCHEDULE" envDefault:"@every 1h"`
}
