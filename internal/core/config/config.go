package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// RedisURL is the connection URL for the Redis store.
	RedisURL string `mapstructure:"REDIS_URL" default:"redis://localhost:6379/0"`

	// MercadoPago holds the payment gateway configuration.
	MercadoPago MercadoPagoConfig `mapstructure:",squash"`

	// Orders holds order lifecycle tunables.
	Orders OrdersConfig `mapstructure:",squash"`

	// Kafka holds the optional event broker configuration.
	Kafka KafkaConfig `mapstructure:",squash"`
}

// MercadoPagoConfig holds the credentials and endpoints for the payment gateway.
type MercadoPagoConfig struct {
	// AccessToken is the bearer credential for the Mercado Pago API.
	AccessToken string `mapstructure:"MP_ACCESS_TOKEN" required:"true"`
	// BaseURL is the API base URL. Overridable for tests.
	BaseURL string `mapstructure:"MP_BASE_URL" default:"https://api.mercadopago.com"`
	// PublicFrontendURL is the public checkout page origin. Back-urls are only
	// sent to the gateway when this is a non-loopback http(s) address.
	PublicFrontendURL string `mapstructure:"PUBLIC_FRONTEND_URL"`
}

// OrdersConfig holds order pricing and identifier settings.
type OrdersConfig struct {
	// IDPrefix is the prefix of generated order identifiers.
	IDPrefix string `mapstructure:"ORDER_ID_PREFIX" default:"FS"`
	// ShippingFlatFee is the home-delivery cost applied when the client omits one.
	ShippingFlatFee float64 `mapstructure:"SHIPPING_FLAT_FEE" default:"120"`
	// Currency is the ISO currency code used for totals and gateway line items.
	Currency string `mapstructure:"CURRENCY" default:"UYU"`
}

// KafkaConfig holds the order event broker settings. Empty brokers disable publishing.
type KafkaConfig struct {
	// Brokers is a comma-separated list of Kafka broker addresses.
	Brokers string `mapstructure:"KAFKA_BROKERS"`
	// Topic is the topic order events are written to.
	Topic string `mapstructure:"KAFKA_ORDER_TOPIC" default:"storefront.orders"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
