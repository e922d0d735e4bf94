// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// appConfigKeys defines the configuration keys for UserHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, mongo_database, etc.
//   - Environment variables: USERHUB_MONGO_URI, USERHUB_MONGO_DATABASE, etc.
//   - Command-line flags: --mongo_uri, --mongo_database, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI (<username>/<password> placeholders allowed)"},
	{Name: "mongo_database", Default: "user_hub", Desc: "MongoDB database name"},
	{Name: "db_user", Default: "", Desc: "Database username substituted for <username> in the URI"},
	{Name: "db_password", Default: "", Desc: "Database password substituted for <password> in the URI"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "bcrypt_cost", Default: bcrypt.DefaultCost, Desc: "bcrypt work factor for password hashing"},

	// Event publishing (optional; disabled when empty)
	{Name: "amqp_url", Default: "", Desc: "AMQP broker URL for user events (blank disables publishing)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, USERHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "USERHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		DBUser:           appValues.String("db_user"),
		DBPassword:       appValues.String("db_password"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		BcryptCost:       appValues.Int("bcrypt_cost"),
		AMQPURL:          appValues.String("amqp_url"),
	}

	appCfg.MongoURI = substituteCredentials(appCfg.MongoURI, appCfg.DBUser, appCfg.DBPassword)

	return coreCfg, appCfg, nil
}

// substituteCredentials fills the <username> and <password> placeholders
// in a connection URI. Empty credentials leave the placeholders in place
// so validation can reject the URI with a clear error.
func substituteCredentials(uri, user, password string) string {
	if user != "" {
		uri = strings.ReplaceAll(uri, "<username>", user)
	}
	if password != "" {
		uri = strings.ReplaceAll(uri, "<password>", password)
	}
	return uri
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// UserHub validates the MongoDB URI format and the bcrypt cost range to
// catch configuration errors early, before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if strings.Contains(appCfg.MongoURI, "<username>") || strings.Contains(appCfg.MongoURI, "<password>") {
		return fmt.Errorf("mongo_uri contains unresolved credential placeholders; set db_user and db_password")
	}

	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.MongoDatabase == "" {
		return fmt.Errorf("mongo_database must not be empty")
	}

	if appCfg.BcryptCost < bcrypt.MinCost || appCfg.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt_cost %d out of range [%d, %d]", appCfg.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	return nil
}
