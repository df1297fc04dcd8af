package server

import (
	"fmt"
	"net/http"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/capture"
)

const streamBoundary = "mudraframe"

// StreamHandler serves raw camera frames as an MJPEG stream. The stream
// rate follows the camera's current FPS, so it slows down while the
// pipeline is idle and speeds up when tracking is active.
type StreamHandler struct {
	camera capture.Camera
}

// NewStreamHandler creates a new StreamHandler with the given camera.
func NewStreamHandler(camera capture.Camera) *StreamHandler {
	return &StreamHandler{camera: camera}
}

// ServeHTTP streams MJPEG frames until the client disconnects.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary="+streamBoundary)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, _ := w.(http.Flusher)

	for {
		select {
		case <-r.Context().Done():
			return
		default:
		}

		frame, err := h.camera.ReadFrame()
		if err != nil {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		buf, err := gocv.IMEncode(".jpg", *frame)
		frame.Close()
		if err != nil {
			continue
		}

		fmt.Fprintf(w, "--%s\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n", streamBoundary, buf.Len())
		if _, err := w.Write(buf.GetBytes()); err != nil {
			buf.Close()
			return
		}
		fmt.Fprintf(w, "\r\n")
		buf.Close()

		if flusher != nil {
			flusher.Flush()
		}

		time.Sleep(h.frameInterval())
	}
}

// frameInterval derives the pause between frames from the camera's
// current FPS, falling back to 15 FPS when the camera reports none.
func (h *StreamHandler) frameInterval() time.Duration {
	fps := h.camera.FPS()
	if fps <= 0 {
		fps = 15
	}
	return time.Second / time.Duration(fps)
}
