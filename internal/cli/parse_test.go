package cli

import (
	"io"
	"testing"

	"obsbotctl/internal/camera"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("mode with serial after positional", func(t *testing.T) {
		cmd, err := Parse([]string{"mode", "AutoFrame", "--sn", "SN001"}, io.Discard)
		require.NoError(t, err)
		assert.Equal(t, CmdMode, cmd.Name)
		assert.Equal(t, "SN001", cmd.Serial)
		assert.Equal(t, camera.MediaModeAutoFrame, cmd.Mode)
	})

	t.Run("framing with serial before positional", func(t *testing.T) {
		cmd, err := Parse([]string{"framing", "--sn=SN002", "Single"}, io.Discard)
		require.NoError(t, err)
		assert.Equal(t, "SN002", cmd.Serial)
		assert.Equal(t, camera.FramingSingle, cmd.Framing)
	})

	t.Run("hdr", func(t *testing.T) {
		cmd, err := Parse([]string{"hdr", "on"}, io.Discard)
		require.NoError(t, err)
		assert.Equal(t, camera.SwitchOn, cmd.HDR)
		assert.Empty(t, cmd.Serial)
	})

	t.Run("list format", func(t *testing.T) {
		cmd, err := Parse([]string{"list", "--format", "json"}, io.Discard)
		require.NoError(t, err)
		assert.Equal(t, FormatJSON, cmd.Format)
	})

	t.Run("list accepts sn", func(t *testing.T) {
		cmd, err := Parse([]string{"list", "--sn", "SN001"}, io.Discard)
		require.NoError(t, err)
		assert.Equal(t, CmdList, cmd.Name)
	})

	t.Run("info defaults to text", func(t *testing.T) {
		cmd, err := Parse([]string{"info"}, io.Discard)
		require.NoError(t, err)
		assert.Equal(t, FormatText, cmd.Format)
	})

	t.Run("image only records given flags", func(t *testing.T) {
		cmd, err := Parse([]string{"image", "--brightness", "55", "--wb-temp", "4500"}, io.Discard)
		require.NoError(t, err)
		require.NotNil(t, cmd.Image.Brightness)
		assert.Equal(t, 55, *cmd.Image.Brightness)
		require.NotNil(t, cmd.Image.WhiteBalanceTemp)
		assert.Equal(t, 4500, *cmd.Image.WhiteBalanceTemp)
		assert.Nil(t, cmd.Image.Contrast)
		assert.Nil(t, cmd.Image.WhiteBalanceAuto)
		assert.Nil(t, cmd.Image.Blur)
	})

	t.Run("image with no flags", func(t *testing.T) {
		cmd, err := Parse([]string{"image"}, io.Discard)
		require.NoError(t, err)
		assert.True(t, cmd.Image.IsEmpty())
	})

	t.Run("camera flags", func(t *testing.T) {
		cmd, err := Parse([]string{"camera", "--zoom", "1.5", "--focus-auto", "false", "--anti-flicker", "2"}, io.Discard)
		require.NoError(t, err)
		require.NotNil(t, cmd.Camera.Zoom)
		assert.InDelta(t, 1.5, *cmd.Camera.Zoom, 1e-9)
		require.NotNil(t, cmd.Camera.FocusAuto)
		assert.False(t, *cmd.Camera.FocusAuto)
		require.NotNil(t, cmd.Camera.AntiFlicker)
		assert.Equal(t, camera.AntiFlicker60Hz, *cmd.Camera.AntiFlicker)
		assert.Nil(t, cmd.Camera.Focus)
	})

	t.Run("help and version aliases", func(t *testing.T) {
		cmd, err := Parse([]string{"--help"}, io.Discard)
		require.NoError(t, err)
		assert.Equal(t, CmdHelp, cmd.Name)

		cmd, err = Parse([]string{"-v"}, io.Discard)
		require.NoError(t, err)
		assert.Equal(t, CmdVersion, cmd.Name)
	})

	t.Run("subcommand -h", func(t *testing.T) {
		_, err := Parse([]string{"image", "-h"}, io.Discard)
		assert.ErrorIs(t, err, errHelp)
	})
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{"no arguments", nil},
		{"unknown command", []string{"zoom"}},
		{"unknown mode", []string{"mode", "Portrait"}},
		{"unknown framing", []string{"framing", "Crowd"}},
		{"unknown hdr state", []string{"hdr", "maybe"}},
		{"missing positional", []string{"mode"}},
		{"extra positional", []string{"hdr", "on", "off"}},
		{"unknown flag", []string{"image", "--gamma", "3"}},
		{"non-numeric value", []string{"image", "--brightness", "bright"}},
		{"brightness out of range", []string{"image", "--brightness", "101"}},
		{"wb temp out of range", []string{"image", "--wb-temp", "12000"}},
		{"wb-auto needs a value", []string{"image", "--wb-auto", "yes"}},
		{"zoom out of range", []string{"camera", "--zoom", "3"}},
		{"zoom NaN", []string{"camera", "--zoom", "NaN"}},
		{"zoom Inf", []string{"camera", "--zoom", "Inf"}},
		{"focus out of range", []string{"camera", "--focus", "-5"}},
		{"anti-flicker out of range", []string{"camera", "--anti-flicker", "4"}},
		{"unknown format", []string{"list", "--format", "xml"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.args, io.Discard)
			require.Error(t, err)
			assert.ErrorIs(t, err, camera.ErrInvalidArgument)
		})
	}
}
