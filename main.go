// HearthGuard — simulated smart-home network security dashboard service.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/veslo/hearthguard/internal/config"
	"github.com/veslo/hearthguard/internal/models"
	"github.com/veslo/hearthguard/internal/server"
	"github.com/veslo/hearthguard/internal/store"
	"github.com/veslo/hearthguard/internal/synth"
)

const asciiLogo = `
 ██╗  ██╗███████╗ █████╗ ██████╗ ████████╗██╗  ██╗ ██████╗ ██╗   ██╗ █████╗ ██████╗ ██████╗
 ██║  ██║██╔════╝██╔══██╗██╔══██╗╚══██╔══╝██║  ██║██╔════╝ ██║   ██║██╔══██╗██╔══██╗██╔══██╗
 ███████║█████╗  ███████║██████╔╝   ██║   ███████║██║  ███╗██║   ██║███████║██████╔╝██║  ██║
 ██╔══██║██╔══╝  ██╔══██║██╔══██╗   ██║   ██╔══██║██║   ██║██║   ██║██╔══██║██╔══██╗██║  ██║
 ██║  ██║███████╗██║  ██║██║  ██║   ██║   ██║  ██║╚██████╔╝╚██████╔╝██║  ██║██║  ██║██████╔╝
 ╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝   ╚═╝  ╚═╝ ╚═════╝  ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝
`

const version = "v0.1.0"

func printBanner(mode string) {
	fmt.Print(asciiLogo, "\n")
	fmt.Printf("  ► HearthGuard %s  |  Mode: %s\n\n", version, mode)
}

// buildState wires the stores from configuration. The archive is optional
// and comes back nil when no archive_path is configured.
func buildState(cfg *config.Config) (*store.DeviceStore, *store.AlertLog, *store.Archive, error) {
	devices := store.NewDeviceStore(cfg.NetworkPath())

	var backend store.Backend
	if cfg.AlertPersistence == config.PersistenceEphemeral {
		backend = store.NewMemoryBackend()
	} else {
		backend = store.NewFileBackend(cfg.AlertsPath())
	}

	var archive *store.Archive
	if cfg.ArchivePath != "" {
		var err error
		archive, err = store.OpenArchive(cfg.ArchivePath)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	return devices, store.NewAlertLog(backend, cfg.AlertCap, archive), archive, nil
}

func main() {
	root := &cobra.Command{
		Use:   "hearthguard",
		Short: "HearthGuard — simulated smart-home network security dashboard",
		Long: `HearthGuard is a single-binary state service for a simulated smart-home
network: fabricated IoT devices, VLAN segmentation, and synthesized security
alerts, persisted to flat JSON documents and served over a REST API.`,
		SilenceUsage: true,
	}

	// ── server subcommand ─────────────────────────────────────────────────────
	serverCmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HearthGuard dashboard API",
		RunE: func(cmd *cobra.Command, args []string) error {
			printBanner("SERVER")

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			devices, alerts, archive, err := buildState(cfg)
			if err != nil {
				return fmt.Errorf("initializing state: %w", err)
			}
			server.Configure(cfg, devices, alerts, archive, synth.New(nil, nil))

			gin.SetMode(gin.ReleaseMode)
			corsMiddleware := func(c *gin.Context) {
				c.Header("Access-Control-Allow-Origin", "*")
				c.Header("Access-Control-Allow-Headers", "Content-Type")
				c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				if c.Request.Method == "OPTIONS" {
					c.AbortWithStatus(204)
					return
				}
				c.Next()
			}

			engine := gin.New()
			engine.Use(gin.Recovery(), corsMiddleware)
			server.RegisterRoutes(engine)

			addr := fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.HTTPPort)
			fmt.Printf("  ✓ Dashboard API     → http://%s\n", addr)
			fmt.Printf("  ✓ Device document   → %s\n", cfg.NetworkPath())
			if cfg.AlertPersistence == config.PersistenceEphemeral {
				fmt.Printf("  ✓ Alert log         → in-memory (session only)\n\n")
			} else {
				fmt.Printf("  ✓ Alert log         → %s\n\n", cfg.AlertsPath())
			}

			srv := &http.Server{Addr: addr, Handler: engine}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt) // os.Interrupt = SIGINT; works on all platforms

			select {
			case err := <-errCh:
				return err
			case <-quit:
				fmt.Println("\n  → Shutting down gracefully…")
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(ctx)
				return nil
			}
		},
	}

	// ── seed subcommand ───────────────────────────────────────────────────────
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Write a starter device document with sample smart-home devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			devices := store.NewDeviceStore(cfg.NetworkPath())
			force, _ := cmd.Flags().GetBool("force")
			if !force && len(devices.Load()) > 0 {
				return fmt.Errorf("%s already has devices; use --force to overwrite", cfg.NetworkPath())
			}

			if err := devices.Save(sampleDevices()); err != nil {
				return fmt.Errorf("seeding device document: %w", err)
			}
			fmt.Printf("  ✓ Seeded %d devices into %s\n", len(sampleDevices()), cfg.NetworkPath())
			return nil
		},
	}
	seedCmd.Flags().Bool("force", false, "Overwrite an existing device document")

	// ── simulate subcommand ───────────────────────────────────────────────────
	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Append synthetic security alerts to the alert log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			devices, alerts, _, err := buildState(cfg)
			if err != nil {
				return fmt.Errorf("initializing state: %w", err)
			}

			count, _ := cmd.Flags().GetInt("count")
			gen := synth.New(nil, nil)
			for i := 0; i < count; i++ {
				alert := gen.Generate(devices.Load())
				if err := alerts.Append(alert); err != nil {
					return fmt.Errorf("appending alert: %w", err)
				}
				fmt.Printf("  ✓ %s  %-20s %-8s %s (%s)\n",
					alert.Timestamp, alert.Type, alert.Severity, alert.Device, alert.Status)
			}
			return nil
		},
	}
	simulateCmd.Flags().Int("count", 1, "Number of alerts to generate")

	// ── version subcommand ────────────────────────────────────────────────────
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print HearthGuard version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("HearthGuard %s\n", version)
		},
	}

	root.AddCommand(serverCmd, seedCmd, simulateCmd, versionCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// sampleDevices is the starter network: one device per populated VLAN plus
// a couple of IoT nodes, matching the segment plan.
func sampleDevices() []models.Device {
	return []models.Device{
		{Name: "Admin Console", IP: "10.0.10.2", VLAN: models.VLANAdmin, Status: models.StatusSafe},
		{Name: "Family Laptop", IP: "10.0.20.11", VLAN: models.VLANUsers, Status: models.StatusSafe},
		{Name: "Guest Phone", IP: "10.0.30.7", VLAN: models.VLANGuest, Status: models.StatusSafe},
		{Name: "Smart Bulb", IP: "10.0.40.5", VLAN: models.VLANIoT, Status: models.StatusSafe},
		{Name: "Thermostat", IP: "10.0.40.6", VLAN: models.VLANIoT, Status: models.StatusSafe},
		{Name: "Door Camera", IP: "10.0.40.9", VLAN: models.VLANIoT, Status: models.StatusSuspicious},
	}
}
