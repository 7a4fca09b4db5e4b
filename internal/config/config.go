package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	DB         DBConfig      `mapstructure:"db"`
	JWT        JWTConfig     `mapstructure:"jwt"`
	Storage    StorageConfig `mapstructure:"storage"`
	Server     ServerConfig  `mapstructure:"server"`
	Upload     UploadConfig  `mapstructure:"upload"`
	Production bool          `mapstructure:"production"`
}

type DBConfig struct {
	Source string `mapstructure:"source"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

// StorageConfig wybiera backend: "local" (katalog na dysku) albo "s3"
// (dowolny serwis zgodny z S3, np. MinIO).
type StorageConfig struct {
	Backend string   `mapstructure:"backend"`
	Path    string   `mapstructure:"path"`
	S3      S3Config `mapstructure:"s3"`
}

type S3Config struct {
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type UploadConfig struct {
	MaxSizeMB int64 `mapstructure:"max_size_mb"`
}

func Load() (*Config, error) {
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("/configs")
	viper.SetConfigName("settings")
	viper.SetConfigType("yml")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("storage.backend", "local")
	viper.SetDefault("storage.path", "./data/uploads")
	viper.SetDefault("upload.max_size_mb", 10)

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) MaxUploadBytes() int64 {
	return c.Upload.MaxSizeMB << 20
}
