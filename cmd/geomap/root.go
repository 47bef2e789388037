package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"geoshape/internal/config"
	"geoshape/internal/logger"
	"geoshape/internal/tui"
)

var (
	cfgFile string
	v       = config.New()
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "geomap [file]",
	Short: "Terminal viewer and inspector for vector geometry files",
	Long: `geomap renders GeoJSON, WKT, WKB, CSV and KML geometries in the terminal.
Shapes are held as multi-part vertex containers with optional elevation and
measure channels; the info and convert subcommands work on the same model.`,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		var m tea.Model
		if len(args) > 0 {
			m = tui.NewWithPath(cfg, args[0])
		} else {
			m = tui.New(cfg)
		}
		_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
		return err
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.geomap.yaml)")
	if err := config.BindFlags(v, rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(infoCmd, convertCmd)
}

// setup resolves configuration and starts logging before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfg, err = config.Load(v, cfgFile); err != nil {
		return err
	}
	if err := logger.Init(logger.Options{
		Enabled: cfg.Debug,
		LogDir:  cfg.LogDir,
		Level:   zapcore.DebugLevel,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}
	logger.L.Info("starting geomap", zap.String("command", cmd.Name()), zap.Strings("args", args),
		zap.String("config", v.ConfigFileUsed()))
	return nil
}

func execute() {
	err := rootCmd.Execute()
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
