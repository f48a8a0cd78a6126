package server

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rt1we/go-raytracer/pkg/renderer"
	"github.com/rt1we/go-raytracer/pkg/scene"
)

// pingInterval is how often the writer sends keepalive pings while a
// render is in flight
const pingInterval = 15 * time.Second

// RenderRequest is the first message a client sends after connecting
type RenderRequest struct {
	Scene           string `json:"scene"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	SamplesPerPixel int    `json:"samplesPerPixel"`
	MaxDepth        int    `json:"maxDepth"`
	Seed            int64  `json:"seed"`
}

// TileMessage reports one finished tile with its pixels as base64 PNG
type TileMessage struct {
	Type      string `json:"type"` // "tile"
	TileX     int    `json:"tileX"`
	TileY     int    `json:"tileY"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	ImageData string `json:"imageData"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

// CompleteMessage carries the final image and render statistics
type CompleteMessage struct {
	Type         string `json:"type"` // "complete"
	ImageData    string `json:"imageData"`
	TotalSamples int64  `json:"totalSamples"`
	TotalPixels  int64  `json:"totalPixels"`
	ElapsedMs    int64  `json:"elapsedMs"`
}

// ErrorMessage reports a failed render
type ErrorMessage struct {
	Type    string `json:"type"` // "error"
	Message string `json:"message"`
}

// handleRenderWS upgrades the connection, reads one render request, and
// streams tile updates until the render completes
func (s *Server) handleRenderWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("websocket upgrade: %v\n", err)
		return
	}
	defer conn.Close()

	var req RenderRequest
	if err := conn.ReadJSON(&req); err != nil {
		s.logger.Printf("read render request: %v\n", err)
		return
	}

	if err := s.runRender(conn, req); err != nil {
		conn.WriteJSON(ErrorMessage{Type: "error", Message: err.Error()})
	}

	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// runRender executes the render, pushing tile messages through a single
// writer goroutine. Gorilla connections allow only one concurrent writer,
// so all outbound messages funnel through the events channel.
func (s *Server) runRender(conn *websocket.Conn, req RenderRequest) error {
	if err := validateRequest(&req); err != nil {
		return err
	}

	sceneObj, err := scene.ByName(req.Scene)
	if err != nil {
		return err
	}

	config := sceneObj.GetSamplingConfig()
	config.Width = req.Width
	config.Height = req.Height
	config.SamplesPerPixel = req.SamplesPerPixel
	config.MaxDepth = req.MaxDepth
	config.Seed = req.Seed

	// Keep the camera aspect in sync with the requested resolution
	sceneObj.CameraConfig.AspectRatio = float64(req.Width) / float64(req.Height)

	if err := sceneObj.Preprocess(); err != nil {
		return err
	}

	rt, err := renderer.NewRaytracer(sceneObj, config, s.logger)
	if err != nil {
		return err
	}

	events := make(chan any, 64)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case msg, ok := <-events:
				if !ok {
					return
				}
				if err := conn.WriteJSON(msg); err != nil {
					// Client is gone; drain remaining events so the render
					// callback never blocks
					for range events {
					}
					return
				}
			case <-ticker.C:
				// Keepalive while long tiles are still rendering
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					for range events {
					}
					return
				}
			}
		}
	}()

	rt.OnTileComplete = func(update renderer.TileUpdate) {
		imageData, err := imageToBase64PNG(update.Image)
		if err != nil {
			return
		}
		events <- TileMessage{
			Type:      "tile",
			TileX:     update.Tile.Bounds.Min.X,
			TileY:     update.Tile.Bounds.Min.Y,
			Width:     update.Tile.Bounds.Dx(),
			Height:    update.Tile.Bounds.Dy(),
			ImageData: imageData,
			Completed: update.Completed,
			Total:     update.Total,
		}
	}

	start := time.Now()
	fb, stats, renderErr := rt.Render()

	if renderErr == nil {
		if imageData, encErr := imageToBase64PNG(fb.ToRGBA()); encErr == nil {
			events <- CompleteMessage{
				Type:         "complete",
				ImageData:    imageData,
				TotalSamples: stats.TotalSamples,
				TotalPixels:  stats.TotalPixels,
				ElapsedMs:    time.Since(start).Milliseconds(),
			}
		}
	}

	close(events)
	<-writerDone

	return renderErr
}

// validateRequest applies defaults and bounds to a render request
func validateRequest(req *RenderRequest) error {
	if req.Scene == "" {
		req.Scene = "default"
	}
	if req.Width == 0 {
		req.Width = 400
	}
	if req.Height == 0 {
		req.Height = 225
	}
	if req.SamplesPerPixel == 0 {
		req.SamplesPerPixel = 50
	}
	if req.MaxDepth == 0 {
		req.MaxDepth = 50
	}
	if req.Seed == 0 {
		req.Seed = 42
	}

	if req.Width < 16 || req.Width > 2000 || req.Height < 16 || req.Height > 2000 {
		return fmt.Errorf("image dimensions must be between 16 and 2000, got %dx%d", req.Width, req.Height)
	}
	if req.SamplesPerPixel < 1 || req.SamplesPerPixel > 5000 {
		return fmt.Errorf("samples per pixel must be between 1 and 5000, got %d", req.SamplesPerPixel)
	}
	if req.MaxDepth < 1 || req.MaxDepth > 200 {
		return fmt.Errorf("max depth must be between 1 and 200, got %d", req.MaxDepth)
	}

	return nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
