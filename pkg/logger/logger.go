package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

// InitLogger initializes the structured logger with proper configuration
func InitLogger(logLevel string, isDevelopment bool) *logrus.Logger {
	log := logrus.New()

	// Override with environment if not provided
	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
		if logLevel == "" {
			if isDevelopment {
				logLevel = "debug"
			} else {
				logLevel = "info"
			}
		}
	}

	if level, err := logrus.ParseLevel(strings.ToLower(logLevel)); err == nil {
		log.SetLevel(level)
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.WithField("invalid_level", logLevel).Warn("Invalid LOG_LEVEL, using INFO")
	}

	// Set formatter based on environment
	if !isDevelopment || strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			ForceColors:     true,
		})
	}

	log.SetOutput(os.Stdout)

	Logger = log

	return log
}

// GetLogger returns the global logger instance
func GetLogger() *logrus.Logger {
	if Logger == nil {
		return InitLogger("info", false)
	}
	return Logger
}

// WithService creates a logger with service context
func WithService(serviceName string) *logrus.Entry {
	return GetLogger().WithField("service", serviceName)
}

// WithRunID creates a logger with an evaluation/generation run id
func WithRunID(runID string) *logrus.Entry {
	return GetLogger().WithField("run_id", runID)
}

// WithLeagueContext creates a logger with league and date context
func WithLeagueContext(league, date string) *logrus.Entry {
	return GetLogger().WithFields(logrus.Fields{
		"league": league,
		"date":   date,
	})
}

// WithGameContext creates a logger with game context
func WithGameContext(gameID, league string) *logrus.Entry {
	fields := logrus.Fields{}
	if gameID != "" {
		fields["game_id"] = gameID
	}
	if league != "" {
		fields["league"] = league
	}
	return GetLogger().WithFields(fields)
}

// WithEventContext creates a logger with edge-event context
func WithEventContext(eventID, subject, market string) *logrus.Entry {
	return GetLogger().WithFields(logrus.Fields{
		"event_id": eventID,
		"subject":  subject,
		"market":   market,
	})
}
