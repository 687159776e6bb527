// Package cli is the employee's terminal client: it loads the user's entries
// through the REST API and drives the timesheet engine from cobra commands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/vinay0094k/myteamda-withroles-mobile/config"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/client"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/model"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/timesheet"
	"github.com/vinay0094k/myteamda-withroles-mobile/pkg/jwt"
	applogger "github.com/vinay0094k/myteamda-withroles-mobile/pkg/logger"
)

// DefaultConfigPath is read when --config is not given and the file exists.
const DefaultConfigPath = "~/.timesheet.yaml"

// Options override what the commands would otherwise build from config.
// Tests use them to run commands against an in-memory store.
type Options struct {
	Out      io.Writer
	Store    timesheet.EntryStore
	Projects timesheet.ProjectSource
	Clock    timesheet.Clock
	UserID   string
	Role     string
}

// app is the state shared by every command of one invocation.
type app struct {
	opts   Options
	cfg    *config.Config
	logger *zap.Logger

	out      io.Writer
	store    timesheet.EntryStore
	projects timesheet.ProjectSource
	clock    timesheet.Clock
	userID   string
	role     string

	session   *timesheet.Session
	validator *timesheet.CapValidator
	lifecycle *timesheet.Lifecycle
}

// New returns the root command.
func New(opts Options) *cobra.Command {
	a := &app{opts: opts}

	var (
		configPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:           "timesheet",
		Short:         "Log, review and submit working hours from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd, configPath, verbose)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default "+DefaultConfigPath+")")
	flags.String("server", "", "API base url, e.g. http://localhost:8080/api/v1")
	flags.String("token", "", "access token")
	flags.String("user", "", "user id to act for (defaults to the token's user)")
	flags.String("timezone", "", "IANA zone that decides what \"today\" is")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log API traffic to stderr")

	addWeek(cmd, a)
	addWeeks(cmd, a)
	addReport(cmd, a)
	addProjects(cmd, a)
	addAdd(cmd, a)
	addEdit(cmd, a)
	addRemove(cmd, a)
	addSubmit(cmd, a)
	addPing(cmd, a)

	return cmd
}

// Execute runs the root command and prints a classified error.
func Execute() int {
	cmd := New(Options{})
	if err := cmd.Execute(); err != nil {
		printError(cmd.ErrOrStderr(), err)
		return exitCode(err)
	}
	return 0
}

// ═══════════════════════════════════════════════════════════
// Setup
// ═══════════════════════════════════════════════════════════

func (a *app) init(cmd *cobra.Command, configPath string, verbose bool) error {
	cfg, err := loadConfig(cmd, configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := "warn"
	if verbose {
		level = "debug"
	}
	if a.logger, err = applogger.NewLogger(&config.LogConfig{Level: level, Format: "console"}); err != nil {
		return err
	}

	a.out = a.opts.Out
	if a.out == nil {
		a.out = color.Output
	}

	a.clock = a.opts.Clock
	if a.clock == nil {
		loc, err := cfg.Timesheet.Location()
		if err != nil {
			return err
		}
		a.clock = timesheet.SystemClock{Location: loc}
	}

	a.userID, a.role = a.opts.UserID, a.opts.Role
	if a.userID == "" {
		a.userID = cfg.Client.UserID
	}
	if cfg.Client.Token != "" {
		if claims, err := jwt.Inspect(cfg.Client.Token); err == nil {
			if a.userID == "" {
				a.userID = claims.UserID
			}
			if a.role == "" {
				a.role = claims.Role
			}
		}
	}
	if a.role == "" {
		a.role = model.RoleEmployee
	}

	a.store, a.projects = a.opts.Store, a.opts.Projects
	if a.store == nil || a.projects == nil {
		c, err := client.New(client.OptionsFromConfig(&cfg.Client, a.logger))
		if err != nil {
			return err
		}
		if a.store == nil {
			a.store = c
		}
		if a.projects == nil {
			a.projects = c
		}
	}
	return nil
}

// loadConfig layers defaults, the config file, TIMESHEET_ environment
// variables and finally the command-line flags.
func loadConfig(cmd *cobra.Command, path string) (*config.Config, error) {
	v := viper.New()
	config.SetDefaults(v)

	if path == "" {
		if p, err := homedir.Expand(DefaultConfigPath); err == nil {
			if _, err := os.Stat(p); err == nil {
				path = p
			}
		}
	}
	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, fmt.Errorf("resolve config path: %w", err)
		}
		v.SetConfigFile(expanded)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	config.BindEnv(v)

	for key, flag := range map[string]string{
		"client.base_url":    "server",
		"client.token":       "token",
		"client.user_id":     "user",
		"timesheet.timezone": "timezone",
	} {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	cfg, err := config.Decode(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Timesheet.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// engine loads the user's entries and returns the lifecycle over them.
func (a *app) engine(cmd *cobra.Command) (*timesheet.Lifecycle, error) {
	if a.lifecycle != nil {
		return a.lifecycle, nil
	}
	if a.userID == "" {
		return nil, errors.New("no user: pass --user or configure a token")
	}

	a.session = timesheet.NewSession(a.store, a.clock, a.userID, timesheet.WithFetchRange(timesheet.FetchRange{
		MonthsBack:   a.cfg.Timesheet.FetchMonthsBack,
		WeeksForward: a.cfg.Timesheet.FetchWeeksForward,
	}))
	if err := a.session.Refresh(cmd.Context()); err != nil {
		return nil, err
	}
	a.logger.Debug("entries loaded", zap.String("user_id", a.userID), zap.Int("entries", a.session.Days().Len()))
	a.validator = timesheet.NewCapValidator(a.clock, a.cfg.Timesheet.DailyCapHours)
	a.lifecycle = timesheet.NewLifecycle(a.session, a.validator)
	return a.lifecycle, nil
}

// horizon is how many weeks back the user may browse.
func (a *app) horizon() int {
	if model.CanReadOthers(a.role) {
		return a.cfg.Timesheet.AdminHorizonWeeks
	}
	return a.cfg.Timesheet.EmployeeHorizonWeeks
}

// warnStale flags a view built from a snapshot the last reload could not
// replace.
func (a *app) warnStale() {
	if a.session == nil || a.session.Phase() != timesheet.PhaseError {
		return
	}
	_, _ = color.New(color.FgYellow).Fprintf(a.out, "warning: reloading entries failed (%v); what is shown may be out of date\n", a.session.Err())
}

func (a *app) weekly() *timesheet.WeeklyAggregator {
	return timesheet.NewWeeklyAggregator(a.session.Days(), a.cfg.Timesheet.WeeklyTargetHours)
}

// ═══════════════════════════════════════════════════════════
// Errors
// ═══════════════════════════════════════════════════════════

func printError(w io.Writer, err error) {
	red := color.New(color.FgRed, color.Bold)
	switch timesheet.KindOf(err) {
	case timesheet.KindConflict:
		label := "rejected"
		switch timesheet.ConflictOf(err) {
		case timesheet.ConflictOverlap:
			label = "time overlap"
		case timesheet.ConflictDailyLimit:
			label = "daily limit exceeded"
		}
		_, _ = red.Fprintf(w, "%s: ", label)
		fmt.Fprintln(w, err)
	case timesheet.KindTransport:
		_, _ = red.Fprint(w, "server unavailable: ")
		fmt.Fprintln(w, err)
	case 0:
		_, _ = red.Fprint(w, "error: ")
		fmt.Fprintln(w, err)
	default:
		_, _ = red.Fprintf(w, "%s: ", timesheet.KindOf(err))
		fmt.Fprintln(w, err)
	}
	if timesheet.Retryable(err) {
		fmt.Fprintln(w, color.New(color.Faint).Sprint("nothing was changed; run the command again to retry"))
	}
}

// exitCode separates user mistakes (1) from failures worth retrying (2).
func exitCode(err error) int {
	if timesheet.Retryable(err) {
		return 2
	}
	return 1
}

func trimmed(s string) string { return strings.TrimSpace(s) }
