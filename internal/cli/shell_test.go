package cli

import (
	"bytes"
	"context"
	"io"
	"testing"

	"obsbotctl/internal/camera"
	"obsbotctl/internal/config"

	"github.com/stretchr/testify/assert"
)

// fakeLineReader は用意した行を順に返す
type fakeLineReader struct {
	lines  []string
	closed bool
}

func (f *fakeLineReader) Readline() (string, error) {
	if len(f.lines) == 0 {
		return "", io.EOF
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

func (f *fakeLineReader) Close() error {
	f.closed = true
	return nil
}

func newShellApp(reader *fakeLineReader, devices ...*camera.MockDevice) (*App, *bytes.Buffer, *bytes.Buffer, *string) {
	var stdout, stderr bytes.Buffer
	var prompt string

	cfg := config.Default()
	cfg.Discovery.MaxAttempts = 1

	app := New(cfg, camera.NewMockRegistryCreator(camera.NewMockRegistry(devices...)),
		WithOutput(&stdout, &stderr),
		WithLineReader(func(p string, _, _ io.Writer) (LineReader, error) {
			prompt = p
			return reader, nil
		}),
	)
	return app, &stdout, &stderr, &prompt
}

func TestShell_RunsCommandsWithDefaultSerial(t *testing.T) {
	first := camera.NewMockDevice("Meet SE", "SN001", "1.0.0")
	second := camera.NewMockDevice("Tiny 2", "SN002", "1.0.0")
	reader := &fakeLineReader{lines: []string{
		"",
		"hdr on",
		"mode --sn SN001 AutoFrame",
		"exit",
		"hdr off",
	}}
	app, stdout, _, prompt := newShellApp(reader, first, second)

	code := app.Run(context.Background(), []string{"shell", "--sn", "SN002"})
	assert.Equal(t, ExitSuccess, code)
	assert.True(t, reader.closed)
	assert.Equal(t, "obsbot[SN002]> ", *prompt)

	assert.Equal(t, []string{"SetHDR(On)"}, second.CallStrings())
	assert.Equal(t, []string{"SetMediaMode(AutoFrame)"}, first.CallStrings())
	assert.Contains(t, stdout.String(), "Set HDR.\n")
	assert.Equal(t, []string{"hdr off"}, reader.lines, "lines after exit must not run")
}

func TestShell_ErrorsDoNotStopLoop(t *testing.T) {
	dev := camera.NewMockDevice("Meet SE", "SN001", "1.0.0")
	reader := &fakeLineReader{lines: []string{
		"mode Portrait",
		"shell",
		"help",
		"framing single",
	}}
	app, stdout, stderr, _ := newShellApp(reader, dev)

	code := app.Run(context.Background(), []string{"shell"})
	assert.Equal(t, ExitSuccess, code, "status follows the last command")
	assert.Contains(t, stderr.String(), "Error:")
	assert.Contains(t, stdout.String(), "Commands:")
	assert.Equal(t, []string{"SetFramingType(Single)"}, dev.CallStrings())
}

func TestShell_StopsOnCanceledContext(t *testing.T) {
	dev := camera.NewMockDevice("Meet SE", "SN001", "1.0.0")
	reader := &fakeLineReader{lines: []string{"hdr on"}}
	app, _, _, _ := newShellApp(reader, dev)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	app.Run(ctx, []string{"shell"})
	assert.Empty(t, dev.Calls())
}
