package config

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaCUE string

// Validate checks the effective configuration against the embedded CUE
// schema. Returns a descriptive error naming the violated constraint.
func Validate(cfg Config) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	if !def.Exists() {
		return fmt.Errorf("config schema missing #Config definition")
	}

	value := ctx.Encode(cfg.asSchemaValue())
	if err := value.Err(); err != nil {
		return fmt.Errorf("encode config for validation: %w", err)
	}

	unified := def.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// asSchemaValue maps the config onto the field names the schema uses.
// Durations are validated as their string form.
func (c Config) asSchemaValue() map[string]any {
	return map[string]any{
		"listen":    c.Listen,
		"database":  c.Database,
		"log_level": c.LogLevel,
		"notifier": map[string]any{
			"delay": c.Notifier.Delay.String(),
		},
		"rate_limit": map[string]any{
			"enabled": c.RateLimit.Enabled,
			"rps":     c.RateLimit.RPS,
			"burst":   c.RateLimit.Burst,
		},
		"stats": map[string]any{
			"backend": c.Stats.Backend,
			"redis": map[string]any{
				"addr":     c.Stats.Redis.Addr,
				"password": c.Stats.Redis.Password,
				"db":       c.Stats.Redis.DB,
			},
		},
	}
}
