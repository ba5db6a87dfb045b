package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate checks struct tags plus the few cross-field rules tags can't express.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("invalid config: nil")
	}
	validate := validator.New()
	_ = validate.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		_, err := parseDuration(fl.Field().String())
		return err == nil
	})

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	if strings.TrimSpace(cfg.History.Path) == "" {
		return errors.New("invalid config: history.path is required")
	}
	return nil
}
