package timezone

import (
	"fmt"
	"sync"
	"time"

	"guesthouse/config"

	"github.com/rs/zerolog/log"
)

var (
	appLocation *time.Location
	mu          sync.RWMutex
	loadOnce    sync.Once
)

// location resolves APP_TIMEZONE on first use. An empty or unknown name
// falls back to UTC.
func location() *time.Location {
	loadOnce.Do(func() {
		name := config.Get().App.Timezone
		if name == "" {
			name = "UTC"
		}

		if err := set(name); err != nil {
			log.Error().Err(err).Str("timezone", name).Msg("unknown timezone, falling back to UTC")
		}
	})

	mu.RLock()
	defer mu.RUnlock()

	if appLocation == nil {
		return time.UTC
	}

	return appLocation
}

// Set replaces the guest house time zone with the IANA zone name, taking
// precedence over APP_TIMEZONE.
func Set(name string) error {
	loadOnce.Do(func() {})

	return set(name)
}

func set(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("load location %q: %w", name, err)
	}

	mu.Lock()
	appLocation = loc
	mu.Unlock()

	log.Debug().Str("timezone", loc.String()).Msg("application timezone set")

	return nil
}

// Now returns the current time in the guest house time zone.
func Now() time.Time {
	return time.Now().In(location())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(location())
}

func GetLocation() *time.Location {
	return location()
}

// Parse reads value as a wall clock time in the guest house time zone.
func Parse(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, location())
	if err != nil {
		return t, fmt.Errorf("parse %q: %w", value, err)
	}

	return t, nil
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// StartOfDay is local midnight of the day t falls on in the guest house time zone.
func StartOfDay(t time.Time) time.Time {
	local := ToAppTime(t)

	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
}
