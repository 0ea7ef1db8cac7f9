package config

import (
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Circulation
		OverdueSweep
	}

	HTTP struct {
		Port int32
		Host string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}

	Database struct {
		Path string
	}

	Circulation struct {
		DailyFineRate  float64 // Fine per calendar day a return is late
		LoanPeriodDays int     // Default loan length when no due date is given
	}

	OverdueSweep struct {
		Enabled  bool
		Schedule string // Cron format: "0 1 * * *" = daily at 01:00
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("fine_daily_rate", DefaultDailyFineRate)
	v.SetDefault("loan_period_days", DefaultLoanPeriodDays)
	v.SetDefault("overdue_sweep_enabled", false)
	v.SetDefault("overdue_sweep_schedule", "0 1 * * *") // Daily at 01:00

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Circulation: Circulation{
			DailyFineRate:  v.GetFloat64("FINE_DAILY_RATE"),
			LoanPeriodDays: v.GetInt("LOAN_PERIOD_DAYS"),
		},
		OverdueSweep: OverdueSweep{
			Enabled:  v.GetBool("OVERDUE_SWEEP_ENABLED"),
			Schedule: v.GetString("OVERDUE_SWEEP_SCHEDULE"),
		},
	}
}
