//go:build obsbot && cgo

package sdk

/*
#cgo CXXFLAGS: -std=c++14
#cgo LDFLAGS: -Wl,--no-as-needed -ldev -lstdc++
#include <stdlib.h>
#include "obsbot_wrapper.h"
*/
import "C"

import (
	"unsafe"

	"obsbotctl/internal/camera"
)

// registry はSDKのデバイスレジストリ（シングルトン）への参照
type registry struct {
	ctx C.ObsbotDevicesCtx
}

// Open はSDKのデバイスレジストリを取得する
func Open() (camera.Registry, error) {
	ctx := C.obsbot_devices_get_instance()
	if ctx == nil {
		return nil, ErrSDKUnavailable
	}
	return &registry{ctx: ctx}, nil
}

func (r *registry) DeviceCount() int {
	return int(C.obsbot_devices_get_dev_num(r.ctx))
}

func (r *registry) DeviceByIndex(index int) camera.Device {
	h := C.obsbot_devices_get_dev_by_index(r.ctx, C.int(index))
	if h == nil {
		return nil
	}
	return &device{h: h}
}

func (r *registry) DeviceBySerial(serial string) camera.Device {
	cs := C.CString(serial)
	defer C.free(unsafe.Pointer(cs))

	h := C.obsbot_devices_get_dev_by_sn(r.ctx, cs)
	if h == nil {
		return nil
	}
	return &device{h: h}
}

// device はSDKが所有するデバイスへの非所有参照
type device struct {
	h C.ObsbotDeviceCtx
}

// text は固定長バッファ経由で文字列を取得する
func (d *device) text(get func(buf *C.char, n C.int) C.int) string {
	var buf [bufLen]byte
	if get((*C.char)(unsafe.Pointer(&buf[0])), C.int(len(buf))) < 0 {
		return ""
	}
	return cString(buf[:])
}

func (d *device) Serial() string {
	return d.text(func(buf *C.char, n C.int) C.int { return C.obsbot_dev_get_sn(d.h, buf, n) })
}

func (d *device) Model() string {
	return d.text(func(buf *C.char, n C.int) C.int { return C.obsbot_dev_get_model(d.h, buf, n) })
}

func (d *device) Version() string {
	return d.text(func(buf *C.char, n C.int) C.int { return C.obsbot_dev_get_version(d.h, buf, n) })
}

func (d *device) Initialized() bool {
	return bool(C.obsbot_dev_is_inited(d.h))
}

func (d *device) MediaMode() camera.MediaMode {
	return camera.MediaMode(C.obsbot_meet_get_media_mode(d.h))
}

func (d *device) SetMediaMode(mode camera.MediaMode) error {
	return check("set_media_mode", int(C.obsbot_meet_set_media_mode(d.h, C.int(mode))))
}

func (d *device) FramingType() camera.FramingType {
	return camera.FramingType(C.obsbot_meet_get_auto_framing_type(d.h))
}

func (d *device) SetFramingType(framing camera.FramingType) error {
	return check("set_auto_framing_type", int(C.obsbot_meet_set_auto_framing_type(d.h, C.int(framing))))
}

func (d *device) HDR() camera.Switch {
	if C.obsbot_meet_get_hdr(d.h) == 1 {
		return camera.SwitchOn
	}
	return camera.SwitchOff
}

func (d *device) SetHDR(state camera.Switch) error {
	return check("set_hdr", int(C.obsbot_meet_set_hdr(d.h, C.int(state))))
}

func (d *device) SetBrightness(value int) error {
	return check("set_brightness", int(C.obsbot_image_set_brightness(d.h, C.int(value))))
}

func (d *device) SetContrast(value int) error {
	return check("set_contrast", int(C.obsbot_image_set_contrast(d.h, C.int(value))))
}

func (d *device) SetSaturation(value int) error {
	return check("set_saturation", int(C.obsbot_image_set_saturation(d.h, C.int(value))))
}

func (d *device) SetHue(value int) error {
	return check("set_hue", int(C.obsbot_image_set_hue(d.h, C.int(value))))
}

func (d *device) SetSharpness(value int) error {
	return check("set_sharpness", int(C.obsbot_image_set_sharpness(d.h, C.int(value))))
}

func (d *device) SetWhiteBalance(auto bool, temperature int) error {
	return check("set_white_balance", int(C.obsbot_image_set_white_balance(d.h, C.int(boolToInt(auto)), C.int(temperature))))
}

func (d *device) SetBackgroundBlur(level int) error {
	return check("set_bg_blur", int(C.obsbot_image_set_bg_blur(d.h, C.int(level))))
}

func (d *device) SetZoom(ratio float64) error {
	return check("set_zoom", int(C.obsbot_camera_set_zoom(d.h, C.float(ratio))))
}

func (d *device) SetFocus(auto bool, value int) error {
	return check("set_focus", int(C.obsbot_camera_set_focus(d.h, C.int(boolToInt(auto)), C.int(value))))
}

func (d *device) SetAntiFlicker(mode camera.AntiFlicker) error {
	return check("set_anti_flicker", int(C.obsbot_camera_set_anti_flicker(d.h, C.int(mode))))
}

func (d *device) ResetDefaults() error {
	return check("reset_default", int(C.obsbot_dev_reset_default(d.h)))
}
