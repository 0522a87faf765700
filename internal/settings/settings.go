package settings

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Settings is the handler configuration read from the process environment.
// The mapstructure tags are used by Viper, the env tags name the variable.
type Settings struct {
	Region               string `mapstructure:"region" env:"Region"`
	AccountList          string `mapstructure:"account_list" env:"AccountList"`
	InitiateCheckLambda  string `mapstructure:"initiate_check_lambda" env:"InitiateCheckLambda"`
	AccountListParameter string `mapstructure:"account_list_parameter" env:"AccountListParameter" validate:"omitempty,max=2048"`
	MetricsNamespace     string `mapstructure:"metrics_namespace" env:"MetricsNamespace" validate:"omitempty,max=255"`
}

// ConfigurationError reports a missing or unusable environment variable.
type ConfigurationError struct {
	Name   string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s %s", e.Name, e.Reason)
}

var bindings = []struct {
	key string
	env string
}{
	{"region", "Region"},
	{"account_list", "AccountList"},
	{"initiate_check_lambda", "InitiateCheckLambda"},
	{"account_list_parameter", "AccountListParameter"},
	{"metrics_namespace", "MetricsNamespace"},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("env")
	})
	return v
}

// Load reads Settings from the environment. Region, AccountList and
// InitiateCheckLambda must be set; their values are passed through untouched,
// empty included. AccountList is not required when AccountListParameter names
// an SSM parameter instead. The optional variables are held to the SSM name
// and CloudWatch namespace length limits.
func Load() (Settings, error) {
	v := viper.New()
	v.AllowEmptyEnv(true)
	for _, b := range bindings {
		if err := v.BindEnv(b.key, b.env); err != nil {
			return Settings{}, fmt.Errorf("bind %s: %w", b.env, err)
		}
	}

	for _, key := range []string{"region", "initiate_check_lambda"} {
		if !v.IsSet(key) {
			return Settings{}, &ConfigurationError{Name: envName(key), Reason: "is not set"}
		}
	}
	if !v.IsSet("account_list") && v.GetString("account_list_parameter") == "" {
		return Settings{}, &ConfigurationError{Name: "AccountList", Reason: "is not set"}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return Settings{}, &ConfigurationError{Name: verrs[0].Field(), Reason: "is too long"}
		}
		return Settings{}, fmt.Errorf("validate settings: %w", err)
	}
	return s, nil
}

func envName(key string) string {
	for _, b := range bindings {
		if b.key == key {
			return b.env
		}
	}
	return key
}
