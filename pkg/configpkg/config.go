// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper fron a config file or environement variables.
type Config struct {
	TelegramBotToken string `mapstructure:"TELEGRAM_BOT_TOKEN"`
	VisionAPIKey     string `mapstructure:"VISION_API_KEY"`
	VisionBaseURL    string `mapstructure:"VISION_BASE_URL"`
	VisionModel      string `mapstructure:"VISION_MODEL"`

	DBDriver      string `mapstructure:"DB_DRIVER"`
	DBSource      string `mapstructure:"DB_SOURCE"`
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`

	TargetGroupID    int64 `mapstructure:"TARGET_GROUP_ID"`
	TransfersTopicID int   `mapstructure:"TRANSFERS_TOPIC_ID"`
	BalanceTopicID   int   `mapstructure:"BALANCE_TOPIC_ID"`
	AlertsTopicID    int   `mapstructure:"ALERTS_TOPIC_ID"`

	// Empirically tuned matching constants. Amount bands are decimal
	// strings to avoid float drift on load.
	MediaGroupDelay    time.Duration `mapstructure:"MEDIA_GROUP_DELAY"`
	ExtractionTimeout  time.Duration `mapstructure:"EXTRACTION_TIMEOUT"`
	MMKTolerance       string        `mapstructure:"MMK_TOLERANCE"`
	USDTToleranceFloor string        `mapstructure:"USDT_TOLERANCE_FLOOR"`
	USDTToleranceRatio string        `mapstructure:"USDT_TOLERANCE_RATIO"`
	OverDeliveryRatio  string        `mapstructure:"OVER_DELIVERY_RATIO"`
	ConfidenceFloor    int           `mapstructure:"CONFIDENCE_FLOOR"`

	Environement string `mapstructure:"GO_ENV"`
}

// Load read configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = viper.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, nil
}
