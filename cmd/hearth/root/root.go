package root

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/hearth/internal/scheduler"
	"github.com/sandeepkv93/hearth/internal/update"
)

const Version = "0.1.0"

type globalFlags struct {
	configPath string
	apiURL     string
	dbPath     string
	logFile    string
	logLevel   string
}

var flags globalFlags

var rootCmd = &cobra.Command{
	Use:           update.AppName,
	Short:         "hearth - day, week and month planner with shopping lists",
	Long:          "hearth is a terminal client for a household todo and shopping-list service.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default "+update.DefaultConfigPath()+")")
	pf.StringVar(&flags.apiURL, "api-url", "", "backend base URL")
	pf.StringVar(&flags.dbPath, "db", "", "local cache database path")
	pf.StringVar(&flags.logFile, "log-file", "", "write logs to this file")
	pf.StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error")

	rootCmd.AddCommand(
		newProgressCmd(),
		newWeekCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "hearth: "+err.Error())
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer env.Close()

	deps := update.Deps{
		Service: env.Service,
		Cache:   env.Cache,
		Logger:  env.Logger,
	}
	if env.Config.DueAlerts {
		engine := scheduler.NewEngine(env.Config.SchedulerBuffer)
		engine.Start()
		defer engine.Stop()
		deps.Scheduler = engine
	}

	env.Logger.Info("starting", "api", env.Config.APIURL, "cache", env.Config.DBPath)
	program := tea.NewProgram(
		update.NewModel(env.Config, deps),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
