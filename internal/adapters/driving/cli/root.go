package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docvault/internal/core/ports/driving"
	"github.com/custodia-labs/docvault/internal/logger"
)

// version is set at build time via -ldflags or SetVersion.
var version = "dev"

// annotationSettingsOnly marks commands that only touch the config file.
const annotationSettingsOnly = "docvault/settings-only"

// Options holds the persistent flag values.
type Options struct {
	Verbose   bool
	DataDir   string
	PDFDir    string
	ConfigDir string

	// SettingsOnly is set for commands that never open the archive.
	SettingsOnly bool
}

// WatchFunc blocks until ctx is cancelled, calling handle for each new
// or rewritten PDF in the watched directory.
type WatchFunc func(ctx context.Context, handle func(ctx context.Context, path string)) error

// Services are the driving ports the commands use.
type Services struct {
	Archive  driving.ArchiveService
	Settings driving.SettingsService
	Watch    WatchFunc

	// DataDir and PDFDir are the resolved locations, after flags and
	// config have been applied.
	DataDir string
	PDFDir  string
}

// Bootstrap builds services from the persistent flags. The returned
// cleanup func releases whatever the services hold open.
type Bootstrap func(opts Options) (*Services, func() error, error)

var (
	opts      Options
	services  *Services
	bootstrap Bootstrap
	release   func() error
)

var rootCmd = &cobra.Command{
	Use:   "docvault",
	Short: "Personal PDF document archive",
	Long: `docvault ingests PDF documents, splits them into chunks tagged with the
date, version and security level from each PDF's Keywords field, and finds
the document closest to a given date.

Run without a command to open the interactive menu.`,
	SilenceUsage:      true,
	PersistentPreRunE: bootstrapServices,
	RunE:              runShell,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "print debug and progress logs")
	flags.StringVar(&opts.DataDir, "data-dir", "", "directory holding documents.db")
	flags.StringVar(&opts.PDFDir, "pdf-dir", "", "directory scanned for PDF files")
	flags.StringVar(&opts.ConfigDir, "config-dir", "", "directory holding config.toml (default ~/.docvault)")
	rootCmd.Flags().BoolVar(&shellLine, "line", false, "use the line-oriented menu even on a terminal")
}

// SetBootstrap sets the function used to build services once flags are parsed.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs ready-made services, bypassing the bootstrap.
func SetServices(s *Services) {
	services = s
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command. Services built by the bootstrap are
// released before it returns.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer releaseServices()

	return rootCmd.ExecuteContext(ctx)
}

func bootstrapServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(opts.Verbose)

	if services != nil || bootstrap == nil {
		return nil
	}

	o := opts
	o.SettingsOnly = cmd.Annotations[annotationSettingsOnly] == "true"
	svc, cleanup, err := bootstrap(o)
	if err != nil {
		return err
	}
	services, release = svc, cleanup
	return nil
}

func releaseServices() {
	if release == nil {
		return
	}
	if err := release(); err != nil {
		logger.Error("Closing archive: %v", err)
	}
	services, release = nil, nil
}

func archiveService() (driving.ArchiveService, error) {
	if services == nil || services.Archive == nil {
		return nil, errors.New("archive service not configured")
	}
	return services.Archive, nil
}

func settingsService() (driving.SettingsService, error) {
	if services == nil || services.Settings == nil {
		return nil, errors.New("settings service not configured")
	}
	return services.Settings, nil
}
