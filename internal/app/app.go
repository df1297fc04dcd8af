// Package app provides the main application logic for the Mudra hand
// tracking system.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/handpose"
	"github.com/ayusman/mudra/internal/hook"
	"github.com/ayusman/mudra/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active detection.
	ActiveFPS = 15
	// IdleTimeoutMs is the time in milliseconds to wait before switching back to idle mode.
	IdleTimeoutMs = 2000
	// EventLogSize bounds the persisted flip event log.
	EventLogSize = 100
)

// Broadcaster receives frame results for WebSocket fan-out.
type Broadcaster interface {
	BroadcastStates(states []handpose.HandState)
	BroadcastEvent(event handpose.FlipEvent)
}

// Publisher receives frame results for external delivery (MQTT).
type Publisher interface {
	PublishStates(states []handpose.HandState) error
	PublishEvent(event handpose.FlipEvent) error
}

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	HookDir      string
	CameraID     int
	MotionThresh float64
	Mirror       bool
	EnhanceLow   bool
	Broadcaster  Broadcaster
	Publisher    Publisher
}

// App orchestrates the capture, detection and classification pipeline
// and fans frame results out to the store, hub, publisher and hooks.
type App struct {
	config   Config
	camera   capture.Camera
	motion   *capture.MotionDetector
	detector detector.Detector
	hookMgr  *hook.Manager
	hooks    *hook.Runner

	// tracker is single-owner: Process and Reset go through trackerMu.
	tracker   *handpose.Tracker
	trackerMu sync.Mutex

	enabled        bool
	onEvent        func(handpose.FlipEvent)
	mu             sync.RWMutex
	stopCh         chan struct{}
	activeMode     bool
	lastMotionTime time.Time
	lastSummary    map[detector.Handedness]string

	frameMu   sync.RWMutex
	lastFrame []byte
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	a := &App{
		config:         config,
		camera:         capture.NewCamera(config.CameraID),
		motion:         capture.NewMotionDetector(motionThreshold),
		tracker:        handpose.NewTracker(handpose.DefaultConfig()),
		hookMgr:        hook.NewManager(config.HookDir),
		lastMotionTime: time.Now(),
		lastSummary:    make(map[detector.Handedness]string),
	}
	a.hooks = hook.NewRunner(a.hookMgr)

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables hand tracking. Toggling clears the
// accumulated motion history so a disabled stretch never counts toward
// the flip and motion windows.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	if a.enabled == enabled {
		a.mu.Unlock()
		return
	}
	a.enabled = enabled
	a.lastSummary = make(map[detector.Handedness]string)
	a.mu.Unlock()

	a.trackerMu.Lock()
	a.tracker.Reset()
	a.trackerMu.Unlock()

	a.motion.Reset()
}

// IsEnabled returns whether hand tracking is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// OnEvent registers a callback invoked for every flip event, after it
// has been persisted and fanned out. Used by the tray to show the last
// event.
func (a *App) OnEvent(fn func(handpose.FlipEvent)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onEvent = fn
}

// DiscoverHooks scans the hooks directory and loads available hooks.
func (a *App) DiscoverHooks() error {
	return a.hookMgr.Discover()
}

// Start begins the detection pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	go a.runPipeline()

	log.Println("Tracking pipeline started")
	return nil
}

// Stop halts the detection pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Tracking pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Tracker returns the hand pose tracker.
func (a *App) Tracker() *handpose.Tracker {
	return a.tracker
}

// HookManager returns the hook manager.
func (a *App) HookManager() *hook.Manager {
	return a.hookMgr
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// AnnotatedFrame returns the latest annotated frame as JPEG bytes, or
// nil before the first processed frame.
func (a *App) AnnotatedFrame() []byte {
	a.frameMu.RLock()
	defer a.frameMu.RUnlock()
	return a.lastFrame
}
