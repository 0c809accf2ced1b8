package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Firebase / Firestore.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	FirebaseProjectID       string `mapstructure:"FIREBASE_PROJECT_ID"`
	BookingsCollection      string `mapstructure:"BOOKINGS_COLLECTION"`
	BookingsField           string `mapstructure:"BOOKINGS_FIELD"`
	UsersCollection         string `mapstructure:"USERS_COLLECTION"`

	// Push notifications.
	NotificationChannelID string `mapstructure:"NOTIFICATION_CHANNEL_ID"`
	DisplayTimezone       string `mapstructure:"DISPLAY_TIMEZONE"`
	DispatchConcurrency   int    `mapstructure:"DISPATCH_CONCURRENCY"`
	NotifyPatientOnCreate bool   `mapstructure:"NOTIFY_PATIENT_ON_CREATE"`

	// Trigger endpoint protection.
	TriggerAudience   string `mapstructure:"TRIGGER_AUDIENCE"`
	TriggerAuthToken  string `mapstructure:"TRIGGER_AUTH_TOKEN"`
	TaskRatePerMinute int    `mapstructure:"TASK_RATE_PER_MINUTE"`
	TaskRateBurst     int    `mapstructure:"TASK_RATE_BURST"`

	// TrustedProxies may set X-Forwarded-For; empty trusts none.
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES"`

	// Reminder sweep.
	ReminderSchedule       string  `mapstructure:"REMINDER_SCHEDULE"`
	ReminderTimezone       string  `mapstructure:"REMINDER_TIMEZONE"`
	ReminderSendsPerSecond float64 `mapstructure:"REMINDER_SENDS_PER_SECOND"`
	ReminderQueueEnabled   bool    `mapstructure:"REMINDER_QUEUE_ENABLED"`

	// Tracing.
	OTelExporterEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTelServiceName      string `mapstructure:"OTEL_SERVICE_NAME"`

	// Redis configuration (reminder queue).
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("FIREBASE_CREDENTIALS_FILE", FirebaseServiceAccountKeyPath)
	v.SetDefault("FIREBASE_PROJECT_ID", "")
	v.SetDefault("BOOKINGS_COLLECTION", BookingsCollection)
	v.SetDefault("BOOKINGS_FIELD", BookingsField)
	v.SetDefault("USERS_COLLECTION", UsersCollection)

	v.SetDefault("NOTIFICATION_CHANNEL_ID", NotificationChannelID)
	v.SetDefault("DISPLAY_TIMEZONE", "Local")
	v.SetDefault("DISPATCH_CONCURRENCY", 4)
	v.SetDefault("NOTIFY_PATIENT_ON_CREATE", false)

	v.SetDefault("TRIGGER_AUDIENCE", "")
	v.SetDefault("TRIGGER_AUTH_TOKEN", "")
	v.SetDefault("TASK_RATE_PER_MINUTE", 6)
	v.SetDefault("TASK_RATE_BURST", 2)
	v.SetDefault("TRUSTED_PROXIES", []string{})

	v.SetDefault("REMINDER_SCHEDULE", "@every 24h")
	v.SetDefault("REMINDER_TIMEZONE", "Local")
	v.SetDefault("REMINDER_SENDS_PER_SECOND", 20.0)
	v.SetDefault("REMINDER_QUEUE_ENABLED", false)

	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_SERVICE_NAME", "nhap")

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_REMINDER_QUEUE_DB", 3)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
