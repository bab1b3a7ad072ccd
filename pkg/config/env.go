package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvFrontendURL     = "FRONTEND_URL"
	EnvAdminSecretCode = "ADMIN_SECRET_CODE"

	EnvBookingExclusiveSlots = "BOOKING_EXCLUSIVE_SLOTS"
	EnvBookingLockTTL        = "BOOKING_LOCK_TTL"

	EnvPromoUsageLimit    = "PROMO_USAGE_LIMIT"
	EnvPromoSweepInterval = "PROMO_SWEEP_INTERVAL"

	EnvImageUploadURL    = "IMAGE_UPLOAD_URL"
	EnvImageUploadPreset = "IMAGE_UPLOAD_PRESET"

	EnvKafkaBrokers     = "KAFKA_BROKERS"
	EnvKafkaEventsTopic = "KAFKA_EVENTS_TOPIC"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
