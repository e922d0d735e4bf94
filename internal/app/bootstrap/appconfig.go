// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP ports,
// TLS, logging level, and request limits. AppConfig is everything
// specific to this service: the MongoDB connection, credential
// substitution, password hashing cost, and the optional event broker.
type AppConfig struct {
	// MongoDB connection configuration. MongoURI may contain the
	// placeholders <username> and <password>, which are substituted
	// from DBUser/DBPassword at load time so credentials can be
	// supplied separately from the URI.
	MongoURI      string
	MongoDatabase string
	DBUser        string
	DBPassword    string

	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// BcryptCost is the work factor for password hashing.
	BcryptCost int

	// AMQPURL enables the user-event publisher when non-empty.
	AMQPURL string
}
