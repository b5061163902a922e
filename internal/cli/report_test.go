package cli

import (
	"bytes"
	"errors"
	"testing"

	"obsbotctl/internal/camera"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporter_ListText(t *testing.T) {
	var stdout, stderr bytes.Buffer
	rep := NewReporter(&stdout, &stderr)

	require.NoError(t, rep.List([]camera.DeviceSummary{
		{Index: 0, Model: "Meet SE", Serial: "SN001"},
		{Index: 1, Model: "Tiny 2", Serial: "SN002"},
	}, FormatText))

	assert.Equal(t, "Found 2 devices\nDevice 0: Meet SE (SN: SN001)\nDevice 1: Tiny 2 (SN: SN002)\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestReporter_ListEmptyJSON(t *testing.T) {
	var stdout bytes.Buffer
	rep := NewReporter(&stdout, &bytes.Buffer{})

	require.NoError(t, rep.List(nil, FormatJSON))
	assert.JSONEq(t, `{"count": 0, "devices": []}`, stdout.String())
}

func TestReporter_InfoText(t *testing.T) {
	var stdout bytes.Buffer
	rep := NewReporter(&stdout, &bytes.Buffer{})

	require.NoError(t, rep.Info(&camera.DeviceInfo{
		Model:     "Meet SE",
		Serial:    "SN001",
		Version:   "1.2.3",
		MediaMode: camera.MediaModeBackground,
		Framing:   camera.FramingGroup,
		HDR:       camera.SwitchOff,
	}, FormatText))

	assert.Equal(t, "Model: Meet SE\nSerial: SN001\nVersion: 1.2.3\nMedia Mode: Background\nFraming: Group\nHDR: Off\n", stdout.String())
}

func TestReporter_InfoYAML(t *testing.T) {
	var stdout bytes.Buffer
	rep := NewReporter(&stdout, &bytes.Buffer{})

	require.NoError(t, rep.Info(&camera.DeviceInfo{
		Model:     "Meet SE",
		Serial:    "SN001",
		Version:   "1.2.3",
		MediaMode: camera.MediaModeAutoFrame,
		Framing:   camera.FramingSingle,
		HDR:       camera.SwitchOn,
	}, FormatYAML))

	out := stdout.String()
	assert.Contains(t, out, "model: Meet SE\n")
	assert.Contains(t, out, "media_mode: AutoFrame\n")
	assert.Contains(t, out, "framing: Single\n")
	assert.Contains(t, out, "hdr: \"On\"\n")
}

func TestReporter_Acks(t *testing.T) {
	var stdout, stderr bytes.Buffer
	rep := NewReporter(&stdout, &stderr)

	failed := rep.Acks([]camera.Ack{
		{Field: "brightness", Message: "Set Brightness to 40."},
		{Field: "contrast", Err: errors.New("contrast の設定に失敗: code -1")},
		{Field: "hue", Message: "Set Hue to 3."},
	})

	assert.Equal(t, 1, failed)
	assert.Equal(t, "Set Brightness to 40.\nSet Hue to 3.\n", stdout.String())
	assert.Equal(t, "Error: contrast の設定に失敗: code -1\n", stderr.String())
}

func TestReporter_NotFound(t *testing.T) {
	var stdout, stderr bytes.Buffer
	NewReporter(&stdout, &stderr).NotFound()

	assert.Empty(t, stdout.String())
	assert.Equal(t, "No device found.\n", stderr.String())
}
