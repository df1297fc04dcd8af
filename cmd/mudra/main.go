package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/handpose"
	"github.com/ayusman/mudra/internal/publish"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "HTTP listen address")
		cameraID   = flag.Int("camera", 0, "camera device ID")
		dbPath     = flag.String("db", "", "path to the SQLite database (default ~/.mudra/mudra.db)")
		hookDir    = flag.String("hooks", "", "directory with event hooks (default ~/.mudra/hooks)")
		mqttBroker = flag.String("mqtt-broker", "", "MQTT broker URL, e.g. tcp://localhost:1883 (disabled when empty)")
		mqttTopic  = flag.String("mqtt-topic", "mudra", "MQTT base topic")
		mirror     = flag.Bool("mirror", true, "mirror frames horizontally")
		enhance    = flag.Bool("enhance", false, "apply low-light enhancement to frames")
		headless   = flag.Bool("headless", false, "run without the system tray")
	)
	flag.Parse()

	fmt.Println("Mudra - Hand Pose and Motion Tracking")

	dataDir, err := dataDir()
	if err != nil {
		log.Fatalf("Failed to resolve data directory: %v", err)
	}

	if *dbPath == "" {
		*dbPath = filepath.Join(dataDir, "mudra.db")
	}
	if *hookDir == "" {
		*hookDir = filepath.Join(dataDir, "hooks")
	}

	st, err := store.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	var publisher app.Publisher
	if *mqttBroker != "" {
		p, err := publish.Connect(publish.Config{
			Broker:    *mqttBroker,
			ClientID:  "mudra-publisher",
			BaseTopic: *mqttTopic,
		})
		if err != nil {
			log.Fatalf("Failed to connect to MQTT broker: %v", err)
		}
		defer p.Close()
		publisher = p
	}

	hub := server.NewHub()

	a := app.New(app.Config{
		Store:       st,
		HookDir:     *hookDir,
		CameraID:    *cameraID,
		Mirror:      *mirror,
		EnhanceLow:  *enhance,
		Broadcaster: hub,
		Publisher:   publisher,
	})

	if err := a.DiscoverHooks(); err != nil {
		log.Printf("Hook discovery failed: %v", err)
	} else {
		log.Printf("Discovered %d hooks in %s", len(a.HookManager().List()), *hookDir)
	}

	webDir := findWebDir(dataDir)
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Camera:    a.Camera(),
		Hub:       hub,
		Snapshot:  a.AnnotatedFrame,
	})

	go func() {
		fmt.Printf("Starting server on %s\n", *addr)
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}
	defer a.Stop()
	a.SetEnabled(true)

	if *headless {
		select {}
	}

	t := tray.New()
	t.OnToggle(a.SetEnabled)
	t.OnQuit(a.Stop)
	a.OnEvent(func(event handpose.FlipEvent) {
		t.SetLastEvent(event.Message())
	})

	// Blocks until quit is chosen from the menu.
	t.Run()
}

// dataDir returns ~/.mudra, creating it if needed.
func dataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(homeDir, ".mudra")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	return dir, nil
}

// findWebDir searches for the web directory in common locations.
// It checks "web", "../web", "../../web" and the data directory.
// Returns the first existing directory or empty string if none found.
func findWebDir(dataDir string) string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeWebDir := filepath.Join(dataDir, "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
