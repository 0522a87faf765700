package settings

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv removes key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func setAll(t *testing.T) {
	t.Helper()
	t.Setenv("Region", "us-east-1")
	t.Setenv("AccountList", "111111111111 | 222222222222|333333333333")
	t.Setenv("InitiateCheckLambda", "initiate-check")
	unsetEnv(t, "AccountListParameter")
	unsetEnv(t, "MetricsNamespace")
}

func TestLoad(t *testing.T) {
	setAll(t)
	t.Setenv("MetricsNamespace", "LimitCheck")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Settings{
		Region:              "us-east-1",
		AccountList:         "111111111111 | 222222222222|333333333333",
		InitiateCheckLambda: "initiate-check",
		MetricsNamespace:    "LimitCheck",
	}, s)
}

func TestLoadEmptyAccountList(t *testing.T) {
	setAll(t)
	t.Setenv("AccountList", "")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "", s.AccountList)
}

func TestLoadMissing(t *testing.T) {
	for _, name := range []string{"Region", "AccountList", "InitiateCheckLambda"} {
		t.Run(name, func(t *testing.T) {
			setAll(t)
			unsetEnv(t, name)

			_, err := Load()
			var cerr *ConfigurationError
			require.True(t, errors.As(err, &cerr), "got %v", err)
			assert.Equal(t, name, cerr.Name)
			assert.Equal(t, "configuration: "+name+" is not set", err.Error())
		})
	}
}

func TestLoadEmptyValuesPassThrough(t *testing.T) {
	setAll(t)
	t.Setenv("Region", "")
	t.Setenv("AccountList", "")
	t.Setenv("InitiateCheckLambda", "")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Settings{}, s)
}

func TestLoadOptionalTooLong(t *testing.T) {
	tests := []struct {
		name string
		max  int
	}{
		{name: "MetricsNamespace", max: 255},
		{name: "AccountListParameter", max: 2048},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setAll(t)
			t.Setenv(tt.name, strings.Repeat("a", tt.max))
			_, err := Load()
			require.NoError(t, err)

			t.Setenv(tt.name, strings.Repeat("a", tt.max+1))
			_, err = Load()
			var cerr *ConfigurationError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.name, cerr.Name)
			assert.Equal(t, "is too long", cerr.Reason)
		})
	}
}

func TestLoadParameterReplacesAccountList(t *testing.T) {
	setAll(t)
	unsetEnv(t, "AccountList")
	t.Setenv("AccountListParameter", "/limit-check/accounts")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/limit-check/accounts", s.AccountListParameter)
	assert.Empty(t, s.AccountList)
}
