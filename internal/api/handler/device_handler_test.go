package handler

import (
	"banking-engine/internal/notification"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

type MockDeviceLister struct {
	mock.Mock
}

func (m *MockDeviceLister) Devices() []notification.Entry {
	args := m.Called()
	if entries, ok := args.Get(0).([]notification.Entry); ok {
		return entries
	}
	return nil
}

func TestDeviceHandler_ListDevices(t *testing.T) {
	t.Run("lists registered devices in order", func(t *testing.T) {
		lister := new(MockDeviceLister)
		lister.On("Devices").Return([]notification.Entry{
			{Position: 1, Name: "Mobile phone"},
			{Position: 2, Name: "Laptop"},
		}).Once()
		h := NewDeviceHandler(lister, logger)

		rec := httptest.NewRecorder()
		h.ListDevices(rec, httptest.NewRequest(http.MethodGet, "/devices", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var resp DevicesResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Count)
		assert.Equal(t, []DeviceResponse{{Position: 1, Name: "Mobile phone"}, {Position: 2, Name: "Laptop"}}, resp.Devices)
		lister.AssertExpectations(t)
	})

	t.Run("empty registry", func(t *testing.T) {
		lister := new(MockDeviceLister)
		lister.On("Devices").Return(nil).Once()
		h := NewDeviceHandler(lister, logger)

		rec := httptest.NewRecorder()
		h.ListDevices(rec, httptest.NewRequest(http.MethodGet, "/devices", nil))

		assert.JSONEq(t, `{"count":0,"devices":[]}`, rec.Body.String())
	})
}

func TestNewDeviceHandler_PanicsOnNilDependencies(t *testing.T) {
	assert.Panics(t, func() { NewDeviceHandler(nil, logger) })
	assert.Panics(t, func() { NewDeviceHandler(new(MockDeviceLister), nil) })
}
