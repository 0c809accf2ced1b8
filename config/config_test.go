package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "Bookings", cfg.BookingsCollection)
	assert.Equal(t, "Bookings", cfg.BookingsField)
	assert.Equal(t, "Users", cfg.UsersCollection)
	assert.Equal(t, "chat_channel", cfg.NotificationChannelID)
	assert.Equal(t, "@every 24h", cfg.ReminderSchedule)
	assert.Equal(t, 4, cfg.DispatchConcurrency)
	assert.Equal(t, 20.0, cfg.ReminderSendsPerSecond)
	assert.False(t, cfg.ReminderQueueEnabled)
	assert.False(t, cfg.NotifyPatientOnCreate)
	assert.Equal(t, 3, cfg.RedisReminderQueueDB)
	assert.Equal(t, 6, cfg.TaskRatePerMinute)
	assert.Empty(t, cfg.TriggerAuthToken)
	assert.Empty(t, cfg.TrustedProxies)
	assert.Equal(t, "nhap", cfg.OTelServiceName)
}

func TestEnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("NOTIFY_PATIENT_ON_CREATE", "true")
	t.Setenv("DISPATCH_CONCURRENCY", "9")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1,10.0.0.2")

	v := viper.New()
	v.AutomaticEnv()
	SetDefaults(v)

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	assert.True(t, cfg.NotifyPatientOnCreate)
	assert.Equal(t, 9, cfg.DispatchConcurrency)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.TrustedProxies)
}

func TestLoadLocation(t *testing.T) {
	loc, err := LoadLocation("")
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = LoadLocation("Local")
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = LoadLocation("UTC")
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	_, err = LoadLocation("Mars/Olympus")
	assert.Error(t, err)
}
