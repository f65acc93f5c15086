package bootstrap

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapEnvToGinMode(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"production", "release"},
		{"prod", "release"},
		{"release", "release"},
		{"test", "test"},
		{"testing", "test"},
		{"development", "debug"},
		{"dev", "debug"},
		{"", "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			assert.Equal(t, tt.want, MapEnvToGinMode(tt.env))
		})
	}
}

func TestOptions_AddFlags(t *testing.T) {
	var opts Options
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	opts.AddFlags(cmd)

	cmd.SetArgs([]string{"--env", "production", "-c", "/etc/f3/config.yaml"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "production", opts.Env)
	assert.Equal(t, "/etc/f3/config.yaml", opts.ConfigPath)
}
