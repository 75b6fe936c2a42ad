package constants

import "time"

var SearchConfig = struct {
	MaxResults     int
	IntentSuffix   string
	RequestTimeout time.Duration
}{
	MaxResults:     5,
	IntentSuffix:   "live stream schedule broadcast",
	RequestTimeout: 10 * time.Second,
}

var ExtractionConfig = struct {
	CompletionTimeout time.Duration
	MaxQueryLength    int
	MaxOutputTokens   int
}{
	CompletionTimeout: 45 * time.Second,
	MaxQueryLength:    500,
	MaxOutputTokens:   4096,
}

var TMDBConfig = struct {
	BaseURL        string
	MaxResults     int
	DefaultRegion  string
	RequestTimeout time.Duration
	LookupTimeout  time.Duration
	FanOutWorkers  int
}{
	BaseURL:        "https://api.themoviedb.org/3",
	MaxResults:     20,
	DefaultRegion:  "US",
	RequestTimeout: 10 * time.Second,
	LookupTimeout:  10 * time.Second,
	FanOutWorkers:  8,
}

var EnrichConfig = struct {
	PageTimeout   time.Duration
	FanOutWorkers int
	MaxBodyBytes  int64
}{
	PageTimeout:   5 * time.Second,
	FanOutWorkers: 4,
	MaxBodyBytes:  1 << 20, // 1 MiB per page is plenty for head metadata
}

var CacheTTL = struct {
	MediaSearch   time.Duration
	WatchProvider time.Duration
	PageMetadata  time.Duration
}{
	MediaSearch:   10 * time.Minute,
	WatchProvider: 30 * time.Minute,
	PageMetadata:  6 * time.Hour,
}

var CircuitBreakerConfig = struct {
	FailureThreshold    int
	ResetTimeout        time.Duration
	RateLimitTimeout    time.Duration
	HealthCheckInterval time.Duration
}{
	FailureThreshold:    3,
	ResetTimeout:        30 * time.Second,
	RateLimitTimeout:    15 * time.Minute,
	HealthCheckInterval: 10 * time.Minute,
}

var ServerConfig = struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
}{
	ReadTimeout:     15 * time.Second,
	WriteTimeout:    75 * time.Second,
	IdleTimeout:     60 * time.Second,
	ShutdownTimeout: 10 * time.Second,
	MaxBodyBytes:    64 << 10,
}

var RedisConfig = struct {
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
}{
	DialTimeout:  5 * time.Second,
	ReadTimeout:  3 * time.Second,
	WriteTimeout: 3 * time.Second,
	PoolSize:     10,
}
