// Package cmd implements the datetimex command line.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hrygo/datetimex/internal/profile"
)

// app carries what the subcommands share once the root has run.
type app struct {
	v       *viper.Viper
	cfgFile string
	profile *profile.Profile
	logger  *slog.Logger
}

// NewRootCmd builds the command tree. Each call starts from fresh flags and
// configuration.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "datetimex",
		Short: "datetimex - temporal expression recognition",
		Long: `datetimex finds dates, times, durations, ranges and recurrences in
English text and resolves them to TIMEX values relative to a reference time.

Configuration is read from flags, DATETIMEX_* environment variables and an
optional config file, in that order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (yaml, json or toml)")
	flags.String("mode", "dev", `mode of server, can be "prod" or "dev" or "demo"`)
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("culture", "", "culture of the input text (default en-us)")
	flags.String("timezone", "", "IANA timezone of the reference time (default UTC)")
	flags.Bool("inclusive-end", false, "resolve period ends inclusively")
	bindFlag(a.v, "mode", flags.Lookup("mode"))
	bindFlag(a.v, "log_level", flags.Lookup("log-level"))
	bindFlag(a.v, "culture", flags.Lookup("culture"))
	bindFlag(a.v, "timezone", flags.Lookup("timezone"))
	bindFlag(a.v, "inclusive_end_period", flags.Lookup("inclusive-end"))

	rootCmd.AddCommand(newRecognizeCmd(a), newServeCmd(a), newVersionCmd())
	return rootCmd
}

// Execute runs the command line against os.Args.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		return err
	}
	return nil
}

func (a *app) load(logOut io.Writer) error {
	p, err := profile.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	p.Version = Version
	a.profile = p
	a.logger = newLogger(p, logOut)
	slog.SetDefault(a.logger)
	return nil
}

// newLogger writes JSON in prod and text otherwise.
func newLogger(p *profile.Profile, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: p.SlogLevel()}
	if p.IsDev() {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", key, err))
	}
}

func printError(w io.Writer, err error) {
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
