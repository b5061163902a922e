package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"obsbotctl/internal/camera"

	"gopkg.in/yaml.v3"
)

// Reporter は結果を人が読める形式で出力する
type Reporter struct {
	stdout io.Writer
	stderr io.Writer
}

// NewReporter は新しいReporterを作成する
func NewReporter(stdout, stderr io.Writer) *Reporter {
	return &Reporter{stdout: stdout, stderr: stderr}
}

// listOutput はjson/yaml出力用のデバイス一覧
type listOutput struct {
	Count   int                    `json:"count" yaml:"count"`
	Devices []camera.DeviceSummary `json:"devices" yaml:"devices"`
}

// List はデバイス一覧を出力する
func (r *Reporter) List(devices []camera.DeviceSummary, format string) error {
	switch format {
	case FormatJSON, FormatYAML:
		if devices == nil {
			devices = []camera.DeviceSummary{}
		}
		return r.encode(listOutput{Count: len(devices), Devices: devices}, format)
	}

	fmt.Fprintf(r.stdout, "Found %d devices\n", len(devices))
	for _, d := range devices {
		fmt.Fprintf(r.stdout, "Device %d: %s (SN: %s)\n", d.Index, d.Model, d.Serial)
	}
	return nil
}

// Info はデバイス情報を出力する
func (r *Reporter) Info(info *camera.DeviceInfo, format string) error {
	switch format {
	case FormatJSON, FormatYAML:
		return r.encode(info, format)
	}

	fmt.Fprintf(r.stdout, "Model: %s\n", info.Model)
	fmt.Fprintf(r.stdout, "Serial: %s\n", info.Serial)
	fmt.Fprintf(r.stdout, "Version: %s\n", info.Version)
	fmt.Fprintf(r.stdout, "Media Mode: %s\n", info.MediaMode)
	fmt.Fprintf(r.stdout, "Framing: %s\n", info.Framing)
	fmt.Fprintf(r.stdout, "HDR: %s\n", info.HDR)
	return nil
}

// Acks は呼び出しごとの確認行を出力し、失敗した数を返す
func (r *Reporter) Acks(acks []camera.Ack) int {
	failed := 0
	for _, ack := range acks {
		if !ack.OK() {
			failed++
			fmt.Fprintf(r.stderr, "Error: %v\n", ack.Err)
			continue
		}
		fmt.Fprintln(r.stdout, ack.Message)
	}
	return failed
}

// NotFound はデバイスが見つからないことを出力する
func (r *Reporter) NotFound() {
	fmt.Fprintln(r.stderr, "No device found.")
}

// Error はエラー行を出力する
func (r *Reporter) Error(err error) {
	fmt.Fprintf(r.stderr, "Error: %v\n", err)
}

// encode はjsonまたはyamlで出力する
func (r *Reporter) encode(v any, format string) error {
	if format == FormatYAML {
		enc := yaml.NewEncoder(r.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("YAMLの出力に失敗: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(r.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("JSONの出力に失敗: %w", err)
	}
	return nil
}
