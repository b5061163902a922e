package server

import (
	"errors"
	"log"
	"net/http"
	"time"

	"obsbotctl/internal/camera"

	"github.com/gin-gonic/gin"
)

// Handler はデバイス制御エンドポイントの実装
type Handler struct {
	controller *camera.Controller
	logger     *log.Logger
}

// ErrorResponse はエラー時のレスポンス
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// AckResponse は設定1件ごとの結果
type AckResponse struct {
	Field   string `json:"field"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SetResponse は設定系エンドポイントのレスポンス
type SetResponse struct {
	Results []AckResponse `json:"results"`
}

// ValueRequest は mode/framing/hdr のリクエストボディ
type ValueRequest struct {
	Serial string `json:"sn"`
	Value  string `json:"value" binding:"required"`
}

// ImageRequest は画質設定のリクエストボディ
type ImageRequest struct {
	Serial string `json:"sn"`
	camera.ImageParams
}

// CameraRequest はカメラ制御設定のリクエストボディ
type CameraRequest struct {
	Serial string `json:"sn"`
	camera.CameraParams
}

// ResetRequest はリセットのリクエストボディ（省略可）
type ResetRequest struct {
	Serial string `json:"sn"`
}

// HealthCheck はヘルスチェックエンドポイントの実装
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now(),
	})
}

// ListDevices はデバイス一覧取得エンドポイントの実装
func (h *Handler) ListDevices(c *gin.Context) {
	devices := h.controller.List(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"count":   len(devices),
		"devices": devices,
	})
}

// GetDevice はデバイス情報取得エンドポイントの実装
func (h *Handler) GetDevice(c *gin.Context) {
	info, err := h.controller.Info(c.Request.Context(), c.Query("sn"))
	if err != nil {
		h.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// SetMode はメディアモード設定エンドポイントの実装
func (h *Handler) SetMode(c *gin.Context) {
	var req ValueRequest
	if !h.bind(c, &req) {
		return
	}

	mode, err := camera.ParseMediaMode(req.Value)
	if err != nil {
		h.abort(c, err)
		return
	}

	acks, err := h.controller.SetMode(c.Request.Context(), req.Serial, mode)
	h.respond(c, acks, err)
}

// SetFraming はフレーミング種別設定エンドポイントの実装
func (h *Handler) SetFraming(c *gin.Context) {
	var req ValueRequest
	if !h.bind(c, &req) {
		return
	}

	framing, err := camera.ParseFramingType(req.Value)
	if err != nil {
		h.abort(c, err)
		return
	}

	acks, err := h.controller.SetFraming(c.Request.Context(), req.Serial, framing)
	h.respond(c, acks, err)
}

// SetHDR はHDR設定エンドポイントの実装
func (h *Handler) SetHDR(c *gin.Context) {
	var req ValueRequest
	if !h.bind(c, &req) {
		return
	}

	state, err := camera.ParseSwitch(req.Value)
	if err != nil {
		h.abort(c, err)
		return
	}

	acks, err := h.controller.SetHDR(c.Request.Context(), req.Serial, state)
	h.respond(c, acks, err)
}

// SetImage は画質設定エンドポイントの実装
func (h *Handler) SetImage(c *gin.Context) {
	var req ImageRequest
	if !h.bind(c, &req) {
		return
	}

	acks, err := h.controller.ApplyImage(c.Request.Context(), req.Serial, req.ImageParams)
	h.respond(c, acks, err)
}

// SetCamera はカメラ制御設定エンドポイントの実装
func (h *Handler) SetCamera(c *gin.Context) {
	var req CameraRequest
	if !h.bind(c, &req) {
		return
	}

	acks, err := h.controller.ApplyCamera(c.Request.Context(), req.Serial, req.CameraParams)
	h.respond(c, acks, err)
}

// Reset は設定リセットエンドポイントの実装
func (h *Handler) Reset(c *gin.Context) {
	var req ResetRequest
	// ボディは省略できる
	if c.Request.ContentLength != 0 {
		if !h.bind(c, &req) {
			return
		}
	}
	if sn := c.Query("sn"); sn != "" {
		req.Serial = sn
	}

	acks, err := h.controller.Reset(c.Request.Context(), req.Serial)
	h.respond(c, acks, err)
}

// ヘルパー関数

// bind はJSONボディを読み込む。失敗した場合は400を返してfalse
func (h *Handler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.writeError(c, http.StatusBadRequest, "invalid_argument", err.Error())
		return false
	}
	return true
}

// respond は設定結果を返す
// 1件でも失敗があれば502で、成功分も含めて返す
func (h *Handler) respond(c *gin.Context, acks []camera.Ack, err error) {
	if err != nil {
		h.abort(c, err)
		return
	}

	status := http.StatusOK
	results := make([]AckResponse, 0, len(acks))
	for _, ack := range acks {
		res := AckResponse{Field: ack.Field, Message: ack.Message}
		if !ack.OK() {
			res.Error = ack.Err.Error()
			status = http.StatusBadGateway
		}
		results = append(results, res)
	}

	c.JSON(status, SetResponse{Results: results})
}

// abort はエラー種別に応じたステータスで応答する
func (h *Handler) abort(c *gin.Context, err error) {
	switch {
	case errors.Is(err, camera.ErrInvalidArgument):
		h.writeError(c, http.StatusBadRequest, "invalid_argument", err.Error())
	case errors.Is(err, camera.ErrDeviceNotFound):
		h.writeError(c, http.StatusNotFound, "device_not_found", "No device found.")
	default:
		h.logger.Printf("デバイス操作に失敗しました: %v", err)
		h.writeError(c, http.StatusBadGateway, "device_error", err.Error())
	}
}

func (h *Handler) writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     code,
		Message:   message,
		RequestID: c.GetString(keyRequestID),
		Timestamp: time.Now(),
	})
}
