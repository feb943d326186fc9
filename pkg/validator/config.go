package validator

import (
	"fmt"

	"github.com/aretw0/timescript/pkg/domain"
)

// Range is an inclusive integer bound. A negative Max leaves the range open above.
type Range struct {
	Min int `json:"min" yaml:"min" mapstructure:"min"`
	Max int `json:"max" yaml:"max" mapstructure:"max"`
}

// Contains reports whether n lies inside the range.
func (r Range) Contains(n int) bool {
	if n < r.Min {
		return false
	}
	return r.Max < 0 || n <= r.Max
}

func (r Range) describe() string {
	switch {
	case r.Max >= 0:
		return fmt.Sprintf("between %d and %d", r.Min, r.Max)
	case r.Min == 0:
		return "non-negative"
	default:
		return fmt.Sprintf("at least %d", r.Min)
	}
}

// Config holds the value checks applied by a Validator.
type Config struct {
	OptionID   Range    `json:"option_id" yaml:"option_id" mapstructure:"option_id"`
	QID        Range    `json:"qid" yaml:"qid" mapstructure:"qid"`
	UITypes    []string `json:"ui_types" yaml:"ui_types" mapstructure:"ui_types"`
	VoiceTypes []string `json:"voice_types" yaml:"voice_types" mapstructure:"voice_types"`
}

// DefaultConfig accepts option ids 0..99, any non-negative qid and the
// standard uiType and voiceType codes.
func DefaultConfig() Config {
	return Config{
		OptionID:   Range{Min: 0, Max: 99},
		QID:        Range{Min: 0, Max: -1},
		UITypes:    domain.DefaultUITypes(),
		VoiceTypes: domain.DefaultVoiceTypes(),
	}
}
