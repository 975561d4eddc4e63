package model

import "time"

// Shared defaults used by the TUI and the headless commands.
const (
	DefaultAPIBaseURL     = "https://api.jikan.moe/v4"
	DefaultRequestTimeout = 15 * time.Second
	DefaultRateLimit      = 3.0 // requests per second, Jikan's public budget
	DefaultRateBurst      = 3
	DefaultCacheSize      = 256
	DefaultCacheTTL       = 5 * time.Minute
	DefaultUserAgent      = "aetheris/dev"
	DefaultSkin           = "default"
	DefaultLogLevel       = "info"
)
