package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "booklt"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "5000"
	DefaultLogLevel = "info"

	DefaultFrontendURL = "http://localhost:5173"

	DefaultBookingLockTTL = 10 * time.Second

	DefaultPromoUsageLimit    = 100
	DefaultPromoSweepInterval = "@hourly"

	DefaultImageUploadURL = ""

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 10 * 1024 * 1024 // multipart experience uploads carry images

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
