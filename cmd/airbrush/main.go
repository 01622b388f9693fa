package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/ayusman/airbrush/internal/app"
	"github.com/ayusman/airbrush/internal/detector"
	"github.com/ayusman/airbrush/internal/server"
	"github.com/ayusman/airbrush/internal/store"
	"github.com/ayusman/airbrush/internal/tray"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	cameraID := flag.Int("camera", 0, "camera device ID")
	noTray := flag.Bool("no-tray", false, "run without the system tray")
	mock := flag.Bool("mock", false, "use a mock hand detector (no MediaPipe)")
	flag.Parse()

	fmt.Println("Airbrush - Hand-Tracked Drawing")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dbDir := filepath.Join(homeDir, ".airbrush")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dbDir, "airbrush.db")
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	cfg := app.Config{
		Store:    st,
		CameraID: *cameraID,
	}
	if *mock {
		cfg.Detector = detector.NewMockDetector()
	}

	// A detector that cannot start is a startup failure, not something to
	// limp along without.
	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize drawing pipeline: %v", err)
	}
	defer a.Close()

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start drawing pipeline: %v", err)
	}
	a.SetEnabled(true)

	// Find web directory
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		App:       a,
	})

	fmt.Printf("Starting server on %s\n", *addr)
	go func() {
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if *noTray {
		select {}
	}

	runTray(a, *addr)
}

// runTray wires the system tray to the pipeline and blocks until quit.
func runTray(a *app.App, addr string) {
	tr := tray.New()

	tr.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
	})
	tr.OnClear(func() {
		a.ClearCanvas()
	})
	tr.OnSnapshot(func() {
		name := time.Now().Format("2006-01-02 15:04:05")
		if _, err := a.SaveSnapshot(name); err != nil {
			log.Printf("Failed to save snapshot: %v", err)
		}
	})
	tr.OnCanvas(func() {
		url := "http://localhost" + addr
		if err := exec.Command("open", url).Start(); err != nil {
			log.Printf("Failed to open browser: %v", err)
		}
	})
	tr.OnQuit(func() {
		a.Close()
	})

	// Mirror the stroke state into the tray menu.
	go func() {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			tr.SetState(a.State().String())
		}
	}()

	tr.Run()
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.airbrush/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
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

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".airbrush", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
