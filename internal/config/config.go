package config

import (
	"errors"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Postgres DBConfig
	Redis    RedisConfig
	Media    MediaConfig
	FFmpeg   FFmpegConfig
	Worker   WorkerConfig
	Logger   Logger
}

type ServerConfig struct {
	AppVersion string
	Port       string
	Mode       string
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	PgDriver string
	SSLMode  string
}

type RedisConfig struct {
	RedisAddr       string
	RedisPassword   string
	DB              int
	MinIdleConns    int
	PoolSize        int
	PoolTimeout     int
	JobStatusPrefix string
	JobStatusTTLSec int
}

type MediaConfig struct {
	Root            string
	AssetsDir       string
	MaxUploadSizeMB int
}

type FFmpegConfig struct {
	FFmpegBin   string
	FFprobeBin  string
	FontsDir    string
	DefaultFont string
}

type WorkerConfig struct {
	WorkerCount   int
	QueueSize     int
	MaxCPUUsage   float64
	CPUCheckDelay int
}

type Logger struct {
	Development       bool
	DisableCaller     bool
	DisableStacktrace bool
	Encoding          string
	Level             string
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	v.AddConfigPath(".")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFound) {
			return nil, errors.New("config file not found")
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
