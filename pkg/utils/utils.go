package utils

import (
	"time"

	"github.com/benedict-erwin/manufacture-online/pkg/logger"
)

var appLocation = time.UTC

// InitTimezone sets the application timezone; an empty or unknown name keeps UTC
func InitTimezone(timezone string) error {
	if timezone == "" {
		logger.Warn().Msg("No timezone configured, using UTC")
		appLocation = time.UTC
		return nil
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		logger.Error().Err(err).Str("timezone", timezone).Msg("Failed to load timezone, using UTC")
		appLocation = time.UTC
		return err
	}

	appLocation = loc
	logger.Info().Str("timezone", timezone).Msg("Timezone initialized")
	return nil
}

// Now returns current time in application timezone
func Now() time.Time {
	return time.Now().In(appLocation)
}
