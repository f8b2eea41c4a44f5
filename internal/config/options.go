package config

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

// Options are the startup values gathered from the command line. Empty fields
// fall back to struct defaults, then to the stored Settings where one exists.
type Options struct {
	MPVBinary    string        `validate:"omitempty"`
	HistoryFile  string        `validate:"omitempty"`
	StartFolder  string        `validate:"omitempty,dir"`
	LogLevel     string        `default:"info" validate:"oneof=debug info warn error"`
	LogOutput    string        `default:"stdout" validate:"required"`
	StartTimeout time.Duration `default:"5s" validate:"gt=0"`
}

// Load applies defaults, fills gaps from settings and validates the result.
// settings may be nil.
func (o *Options) Load(settings *Settings) error {
	if err := defaults.Set(o); err != nil {
		return errors.Wrap(err, "failed to set defaults")
	}

	if o.MPVBinary == "" {
		o.MPVBinary = DefaultMPVBinary
		if settings != nil {
			o.MPVBinary = settings.GetMPVBinary()
		}
	}

	if err := o.Validate(); err != nil {
		return errors.Wrap(err, "invalid options")
	}
	return nil
}

// Validate checks the options against their struct tags
func (o *Options) Validate() error {
	return validator.New().Struct(o)
}
