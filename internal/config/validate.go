package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.SRS.validate(); err != nil {
		return fmt.Errorf("srs: %w", err)
	}
	if err := c.Leitner.validate(); err != nil {
		return fmt.Errorf("leitner: %w", err)
	}

	return nil
}

func (s *SRSConfig) validate() error {
	if s.DesiredRetention <= 0 || s.DesiredRetention >= 1 {
		return fmt.Errorf("desired_retention must be in (0, 1) (got %v)", s.DesiredRetention)
	}
	if s.MaxIntervalDays <= 0 {
		return fmt.Errorf("max_interval_days must be > 0 (got %d)", s.MaxIntervalDays)
	}
	return nil
}

func (l *LeitnerConfig) validate() error {
	weights, err := ParseBoxMap(l.WeightsRaw)
	if err != nil {
		return fmt.Errorf("weights: %w", err)
	}
	l.Weights = weights

	capacities, err := ParseBoxMap(l.CapacitiesRaw)
	if err != nil {
		return fmt.Errorf("capacities: %w", err)
	}
	l.Capacities = capacities

	return nil
}

// ParseBoxMap parses a comma-separated string of "box:value" pairs
// (e.g. "1:13,2:8,3:5") into a map. Box keys must be 1, 2, or 3 and values
// must be non-negative. An empty string returns a nil map.
func ParseBoxMap(raw string) (map[int]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	out := make(map[int]int)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid pair %q, want box:value", pair)
		}
		box, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid box in %q: %w", pair, err)
		}
		if box < 1 || box > 3 {
			return nil, fmt.Errorf("box %d out of range [1, 3]", box)
		}
		value, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid value in %q: %w", pair, err)
		}
		if value < 0 {
			return nil, fmt.Errorf("value for box %d must be >= 0 (got %d)", box, value)
		}
		out[box] = value
	}

	return out, nil
}
