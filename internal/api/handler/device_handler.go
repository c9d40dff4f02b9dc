package handler

import (
	"banking-engine/internal/notification"
	"encoding/json"
	"log/slog"
	"net/http"
)

type DeviceLister interface {
	Devices() []notification.Entry
}

type DeviceResponse struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
}

type DevicesResponse struct {
	Count   int              `json:"count"`
	Devices []DeviceResponse `json:"devices"`
}

type DeviceHandler struct {
	lister DeviceLister
	logger *slog.Logger
}

func NewDeviceHandler(lister DeviceLister, l *slog.Logger) *DeviceHandler {
	if lister == nil {
		panic("device lister cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &DeviceHandler{
		lister: lister,
		logger: l.With("component", "DeviceHandler"),
	}
}

// ListDevices handles GET /devices
func (h *DeviceHandler) ListDevices(w http.ResponseWriter, r *http.Request) {
	entries := h.lister.Devices()
	resp := DevicesResponse{Count: len(entries), Devices: make([]DeviceResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Devices = append(resp.Devices, DeviceResponse{Position: e.Position, Name: e.Name})
	}
	h.logger.DebugContext(r.Context(), "Listing registered devices", "count", resp.Count)
	respondJSON(w, http.StatusOK, resp)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}
