package config

const (
	// EnvPrefix scopes every environment variable the service reads.
	EnvPrefix = "NGO"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvDBDSN  = "NGO_DB_DSN"
	EnvDBHost = "NGO_DB_HOST"
	EnvDBUser = "NGO_DB_USER"
	EnvDBName = "NGO_DB_NAME"

	// DefaultFreeDeliveryThreshold is the per-vendor subtotal at which the
	// delivery fee is waived, in catalog currency units.
	DefaultFreeDeliveryThreshold = 500
)
