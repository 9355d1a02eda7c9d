package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ExpectedEnvSchemaVersion is bumped whenever a variable is renamed or
// becomes mandatory, so stale .env files are caught at startup
const ExpectedEnvSchemaVersion = "1.0"

// placeholders are the values shipped in .env.example
var placeholders = map[string]string{
	"API_KEY":               "generate_with_openssl_rand_hex_32",
	"DB_PASSWORD":           "change_this_secure_password",
	"DISCORD_WEBHOOK_TOKEN": "your_webhook_token",
}

var (
	structValidator     *validator.Validate
	structValidatorOnce sync.Once
)

func configValidator() *validator.Validate {
	structValidatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			return f.Tag.Get("env")
		})
		structValidator = v
	})
	return structValidator
}

// Validate checks field ranges and the dependencies between settings.
// Problems are reported by environment variable name.
func (c *Config) Validate() error {
	err := configValidator().Struct(c)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describe(fe))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
}

func describe(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required", "required_if", "required_with":
		return name + " must be set"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", name, fe.Param(), fe.Value())
	case "ltefield":
		return fmt.Sprintf("%s must not exceed %s", name, envName(fe.Param()))
	case "gtfield":
		return fmt.Sprintf("%s must be longer than %s", name, envName(fe.Param()))
	case "ip":
		return fmt.Sprintf("%s entry %q is not an IP address", name, fe.Value())
	default:
		return fmt.Sprintf("%s=%v fails %s=%s", name, fe.Value(), fe.Tag(), fe.Param())
	}
}

// envName maps a Config field name to its variable
func envName(field string) string {
	if f, ok := reflect.TypeOf(Config{}).FieldByName(field); ok {
		if tag := f.Tag.Get("env"); tag != "" {
			return tag
		}
	}
	return field
}

// ValidateEnv checks the .env schema version. It runs before Load so a
// stale file is reported even when Load would fail on a missing value.
func ValidateEnv() error {
	version := os.Getenv("ENV_SCHEMA_VERSION")
	switch {
	case version == "":
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set - add it to your .env file (expected: %s)", ExpectedEnvSchemaVersion)
	case version != ExpectedEnvSchemaVersion:
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - compare your .env with .env.example", ExpectedEnvSchemaVersion, version)
	}
	return nil
}

// Warnings lists settings that load fine but are probably not what the
// operator wants
func (c *Config) Warnings() []string {
	var warnings []string

	keys := make([]string, 0, len(placeholders))
	for k := range placeholders {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if os.Getenv(k) == placeholders[k] {
			warnings = append(warnings, k+" still has the example value from .env.example")
		}
	}

	if c.GeminiAPIKey == "" {
		warnings = append(warnings, "GEMINI_API_KEY is not set - tips will come from the built-in advisor")
	}
	if c.StoreDriver == StoreDriverSQLite && c.SQLitePath == ":memory:" {
		warnings = append(warnings, "SQLITE_PATH is :memory: - hives are lost on restart")
	}
	if c.MaxOfflineHours > maxSensibleOfflineHours {
		warnings = append(warnings, fmt.Sprintf("MAX_OFFLINE_HOURS=%g lets a returning player collect more than two days of production", c.MaxOfflineHours))
	}
	return warnings
}
