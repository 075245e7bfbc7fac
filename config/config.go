// config/config.go
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Configuration stores all the configurations
type Configuration struct {
	Server     ServerConfiguration     `mapstructure:"server"`
	SharePoint SharePointConfiguration `mapstructure:"sharepoint"`
	Cache      CacheConfiguration      `mapstructure:"cache"`
	Redis      RedisConfiguration      `mapstructure:"redis"`
	RateLimit  RateLimitConfiguration  `mapstructure:"ratelimit"`
	Log        LogConfiguration        `mapstructure:"log"`
}

// ServerConfiguration stores the port and other web server settings
type ServerConfiguration struct {
	Port string `mapstructure:"port" validate:"required"`
}

// SharePointConfiguration stores the remote list source settings
type SharePointConfiguration struct {
	// WebURL is used whenever a request does not name a site.
	WebURL      string        `mapstructure:"webUrl" validate:"omitempty,url"`
	AccessToken string        `mapstructure:"accessToken"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// CacheConfiguration stores the option cache settings
type CacheConfiguration struct {
	// TimeoutSecs of 0 disables caching and request de-duplication.
	TimeoutSecs           int    `mapstructure:"timeoutSecs" validate:"gte=0"`
	Scope                 string `mapstructure:"scope" validate:"oneof=session persistent"`
	SharedDataTimeoutSecs int    `mapstructure:"sharedDataTimeoutSecs" validate:"gte=0"`
}

// RedisConfiguration stores data for Redis connection. An empty Addr disables Redis.
type RedisConfiguration struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db" validate:"gte=0"`
	PoolSize     int           `mapstructure:"poolSize" validate:"gte=0"`
	DialTimeout  time.Duration `mapstructure:"dialTimeout"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"`
}

type RateLimitConfiguration struct {
	Requests int           `mapstructure:"requests" validate:"gte=0"`
	Duration time.Duration `mapstructure:"duration"`
}

type LogConfiguration struct {
	Dir   string `mapstructure:"dir"`
	Level string `mapstructure:"level"`
}

var config *Configuration

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("sharepoint.webUrl", "")
	viper.SetDefault("sharepoint.accessToken", "")
	viper.SetDefault("sharepoint.timeout", "30s")
	viper.SetDefault("cache.timeoutSecs", 10)
	viper.SetDefault("cache.scope", "session")
	viper.SetDefault("cache.sharedDataTimeoutSecs", 30)
	viper.SetDefault("redis.addr", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.poolSize", 10)
	viper.SetDefault("redis.dialTimeout", "5s")
	viper.SetDefault("redis.readTimeout", "3s")
	viper.SetDefault("redis.writeTimeout", "3s")
	viper.SetDefault("ratelimit.requests", 100)
	viper.SetDefault("ratelimit.duration", "1m")
	viper.SetDefault("log.dir", "logging")
	viper.SetDefault("log.level", "info")
}

// InitConfig loads config.yaml from configPath (if present), environment
// variables prefixed with LISTPANE_ and the defaults above.
func InitConfig(configPath string) error {
	if configPath == "" {
		configPath = "config"
	}
	viper.AddConfigPath(configPath)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("listpane")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found. Using default settings and environment variables.")
		} else {
			return err
		}
	}

	var loaded Configuration
	if err := viper.Unmarshal(&loaded); err != nil {
		return err
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	config = &loaded
	return nil
}

// Validate checks the struct tags of the whole configuration tree.
func (c *Configuration) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// SharedDataTimeout converts the configured wait bound into a duration.
func (c CacheConfiguration) SharedDataTimeout() time.Duration {
	return time.Duration(c.SharedDataTimeoutSecs) * time.Second
}

// GetConfig returns the loaded configuration
func GetConfig() *Configuration {
	return config
}

// GetString retrieves a string value from the configuration
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt retrieves an integer value from the configuration
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool retrieves a boolean value from the configuration
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration retrieves a duration value from the configuration
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}
