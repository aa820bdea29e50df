package tui

import (
	"bytes"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenpage/materials-cli/internal/api"
	appconfig "github.com/lumenpage/materials-cli/internal/config"
)

func previewPickerFor(t *testing.T, handler http.HandlerFunc) *PickerModel {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := api.NewClient(&appconfig.APIConfig{BaseURL: srv.URL, Timeout: 5})
	require.NoError(t, err)

	cfg := &appconfig.Config{
		UI: appconfig.UIConfig{MultiSelect: true, ImagePreview: true},
	}
	return NewPickerModel(client, cfg, "")
}

func TestOpenPreviewRendersImage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, imaging.New(4, 4, color.NRGBA{R: 200, A: 255})))

	m := previewPickerFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(buf.Bytes())
	})

	msg := m.openPreview(api.Material{Filename: "a.png", URL: "/files/materials/a.png"})()
	ready, ok := msg.(previewReadyMsg)
	require.True(t, ok)
	require.NoError(t, ready.err)
	assert.Equal(t, "a.png", ready.title)
	assert.NotEmpty(t, ready.body)
}

func TestOpenPreviewRejectsNonImageResponse(t *testing.T) {
	m := previewPickerFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<!DOCTYPE html><html><body>login required</body></html>"))
	})

	msg := m.openPreview(api.Material{Filename: "a.png", URL: "/files/materials/a.png"})()
	ready, ok := msg.(previewReadyMsg)
	require.True(t, ok)
	require.Error(t, ready.err)
	assert.Contains(t, ready.err.Error(), "not an image")
}
