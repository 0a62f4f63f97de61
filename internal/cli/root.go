// Package cli implements the semprops command-line interface.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/semprops/internal/namespace"
	"github.com/mesh-intelligence/semprops/internal/paths"
	"github.com/mesh-intelligence/semprops/internal/registry"
	"github.com/mesh-intelligence/semprops/internal/sqlite"
	"github.com/mesh-intelligence/semprops/pkg/semprops"
	"github.com/mesh-intelligence/semprops/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// pageNamespaces are the page prefixes --page recognizes in addition to the
// property namespace names.
var pageNamespaces = []string{"Talk", "User", "Project", "File", "Template", "Help", "Category"}

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
}

// app is the state shared by the commands of one invocation. It is filled
// in by the root command's PersistentPreRunE.
type app struct {
	flags     rootFlags
	configDir string
	settings  settings
	logger    *slog.Logger
	registry  *registry.Registry
	ns        *namespace.Service
	engine    *semprops.Engine
}

// NewRootCmd creates the top-level "semprops" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "semprops",
		Short: "Resolve semantic property names and encode their values",
		Long: "semprops normalizes and resolves property designators, encodes values\n" +
			"into value strings, and stores resulting assignments for a page.",
		Version:           semprops.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/"+paths.DefaultDataDirName+")")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newNormalizeCmd(a),
		newResolveCmd(a),
		newLabelCmd(a),
		newEncodeCmd(a),
		newBuildCmd(a),
		newSubobjectCmd(a),
		newAddCmd(a),
		newShowCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newPropertiesCmd(a),
	)
	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "semprops:", err)
		os.Exit(exitCode(err))
	}
}

// setup resolves directories, loads the configuration, and builds the
// registry, namespace service, and engine.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	s, err := settingsFrom(v)
	if err != nil {
		return err
	}
	a.configDir = configDir
	a.settings = s
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: s.LogLevel}))

	reg, err := registry.Default(registry.WithLogger(a.logger))
	if err != nil {
		return sysError(err)
	}
	if file := paths.ResolveFile(configDir, s.RegistryFile); file != "" {
		if err := reg.LoadFile(file); err != nil {
			return err
		}
	}
	ns, err := namespace.New(s.Namespace)
	if err != nil {
		return err
	}
	a.registry = reg
	a.ns = ns
	a.engine = semprops.New(reg, ns, semprops.WithLogger(a.logger), semprops.WithCaller(s.Caller))
	a.logger.Debug("configuration loaded",
		"config_dir", configDir,
		"properties", reg.Len(),
		"language", ns.Language().String())
	return nil
}

// dataDir returns the data directory: --data-dir, then config, then
// $SEMPROPS_DATA_DIR, then the CWD default.
func (a *app) dataDir() (string, error) {
	return paths.ResolveDataDir(a.flags.dataDir, a.settings.DataDir)
}

// attachBackend opens the SQLite store. The caller must Detach it.
func (a *app) attachBackend() (*sqlite.Backend, error) {
	dataDir, err := a.dataDir()
	if err != nil {
		return nil, sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	backend := sqlite.NewBackend(sqlite.WithLogger(a.logger), sqlite.WithProperties(a.registry))
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: dataDir}
	if err := backend.Attach(cfg); err != nil {
		return nil, sysError(fmt.Errorf("attach backend: %w", err))
	}
	return backend, nil
}

// parsePage reads a --page value, recognizing the property namespace names
// as well as the common page namespaces.
func (a *app) parsePage(text string) (types.Page, error) {
	known := append([]string{a.settings.Namespace.Canonical}, a.settings.Namespace.Aliases...)
	page := types.ParsePage(text, append(known, pageNamespaces...)...)
	if page.IsZero() {
		return types.Page{}, errors.New("--page must name a page")
	}
	return page, nil
}

// converter returns a Converter for the named command on page.
func (a *app) converter(caller string, page types.Page) *semprops.Converter {
	return a.engine.NewConverter(caller, page)
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal JSON: %w", err))
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// exitError carries a non-default exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// sysError marks err as a system failure (I/O, storage).
func sysError(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: exitSysError, err: err}
}

// exitCode maps an error to the process exit code. Errors not marked as
// system failures are user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}
