package configs

import (
	"errors"

	"github.com/PDPSchoolTeam/Metsenat-API/internal/logger"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	Server struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	JWT struct {
		SECRET          string `mapstructure:"secret"`
		AccessTTLHours  int    `mapstructure:"access_ttl_hours"`
		RefreshTTLHours int    `mapstructure:"refresh_ttl_hours"`
	} `mapstructure:"jwt"`
}

var AppConfig Config

func LoadConfig() {
	viper.AddConfigPath("./configs")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("jwt.access_ttl_hours", 24)
	viper.SetDefault("jwt.refresh_ttl_hours", 24*7)

	viper.AutomaticEnv()

	var fileLookupError viper.ConfigFileNotFoundError
	if err := viper.ReadInConfig(); err != nil {
		if errors.As(err, &fileLookupError) {
			logger.Log.Fatal("config file not found", zap.Error(err))
		}
		logger.Log.Fatal("failed to read config", zap.Error(err))
	}

	viper.Unmarshal(&AppConfig)
}
