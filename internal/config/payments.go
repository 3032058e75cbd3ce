package config

import (
	"github.com/mwantia/gopay/pkg/availability"
	"github.com/spf13/viper"
)

// PaymentsConfig holds the process-wide payment defaults
type PaymentsConfig struct {
	// AutoCapture applies to every payment method without an override
	AutoCapture bool `mapstructure:"auto_capture" yaml:"auto_capture"`

	// SilenceDeprecations drops the notices of deprecated queries
	SilenceDeprecations bool `mapstructure:"silence_deprecations" yaml:"silence_deprecations"`
}

// LiveDefaults reads payments.<key> from viper on every call, so runtime
// changes to the configuration apply to the next resolution.
type LiveDefaults struct {
	v *viper.Viper
}

var _ availability.Defaults = LiveDefaults{}

// NewLiveDefaults returns defaults backed by v, or the global viper when v is nil.
func NewLiveDefaults(v *viper.Viper) LiveDefaults {
	if v == nil {
		v = viper.GetViper()
	}
	return LiveDefaults{v: v}
}

func (d LiveDefaults) Bool(key string) bool {
	return d.v.GetBool("payments." + key)
}
