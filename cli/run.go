package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joakimwinum/weatherforecast/api"
	"github.com/joakimwinum/weatherforecast/forecast"
	"github.com/joakimwinum/weatherforecast/gazetteer"
	"github.com/joakimwinum/weatherforecast/log"
	"github.com/joakimwinum/weatherforecast/mcp"
	"github.com/joakimwinum/weatherforecast/render"
	"github.com/joho/godotenv"
	"github.com/morikuni/failure/v2"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

// defaultTerm is searched when no term is given
const defaultTerm = "oslo"

type rootFlags struct {
	scope       *enumFlag[gazetteer.Dataset]
	language    *enumFlag[gazetteer.Language]
	tableFormat *enumFlag[render.TableFormat]

	hourly  bool
	tabular bool
	text    bool

	noFuzzy bool
	dataDir string
	timeout time.Duration

	pager   bool
	browser bool
}

func newRootFlags() *rootFlags {
	return &rootFlags{
		scope:       newEnumFlag("scope", gazetteer.DatasetNorway, gazetteer.Datasets()),
		language:    newEnumFlag("language", gazetteer.LanguageEnglish, gazetteer.Languages()),
		tableFormat: newEnumFlag("format", render.TableSingle, render.TableFormats()),
	}
}

// NewRootCommand builds the weatherforecast command tree
func NewRootCommand() *cobra.Command {
	flags := newRootFlags()

	cmd := &cobra.Command{
		Use:           "weatherforecast [search term...]",
		Short:         "Weather forecast",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		Long: `weatherforecast looks up a place in Norway, a Norwegian postal code or a city
in the world and prints the weather forecast for it.

Words of the search term are joined with a space, and "oslo" is searched when no
term is given. A place is matched exactly first, ignoring case. When nothing
matches exactly the closest place name is used instead.`,
		Example: `  weatherforecast bergen
  weatherforecast --scope zip 5003
  weatherforecast --scope world --language nynorsk new york city
  weatherforecast --hourly --tableformat double tromsø`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, flags, args)
		},
	}

	f := cmd.Flags()
	f.VarP(flags.language, "language", "l", "Language of place names and feeds ("+flags.language.choices()+")")
	f.Var(flags.scope, "scope", "Where to search ("+flags.scope.choices()+")")
	f.Var(flags.tableFormat, "tableformat", "Table border style ("+flags.tableFormat.choices()+")")
	f.BoolVar(&flags.hourly, "hourly", false, "Print the hourly forecast")
	f.BoolVar(&flags.tabular, "tabular", false, "Print the tabular forecast (default)")
	f.BoolVar(&flags.text, "text", false, "Print the text forecast")
	f.BoolVar(&flags.noFuzzy, "no-fuzzy", false, "Only accept exact matches")
	f.StringVar(&flags.dataDir, "data-dir", "", "Directory with dataset files replacing the bundled ones (default $"+api.DataDirEnv+")")
	f.DurationVar(&flags.timeout, "timeout", 0, "Timeout of each feed request (default $"+api.TimeoutEnv+" or 30s)")
	f.BoolVarP(&flags.pager, "pager", "p", false, "Show the forecast in a pager")
	f.BoolVarP(&flags.browser, "browser", "b", false, "Open the forecast page in a browser")

	_ = cmd.RegisterFlagCompletionFunc("language", flags.language.complete)
	_ = cmd.RegisterFlagCompletionFunc("scope", flags.scope.complete)
	_ = cmd.RegisterFlagCompletionFunc("tableformat", flags.tableFormat.complete)

	cmd.AddCommand(newVersionCommand(), newScopesCommand(), mcp.Command())
	return cmd
}

// Run executes the main CLI functionality
func Run() error {
	// .env is optional and never overrides the environment
	err := godotenv.Load()
	log.InitLogger()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn("Failed to load .env", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print detailed version information about weatherforecast",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "weatherforecast version %s\n", api.Version)
			if api.VersionCommit != "" {
				fmt.Fprintf(out, "  commit: %s\n", api.VersionCommit)
			}
		},
	}
}

// mode picks the report. Hourly wins over text, tabular is the fallback.
func (f *rootFlags) mode() render.Mode {
	switch {
	case f.hourly:
		return render.ModeHourly
	case f.text:
		return render.ModeText
	default:
		return render.ModeTabular
	}
}

func (f *rootFlags) options(cmd *cobra.Command) (api.Options, error) {
	opts := api.DefaultOptions()
	opts.Scope = f.scope.Value
	opts.Language = f.language.Value
	opts.AllowFuzzy = !f.noFuzzy
	if f.dataDir != "" {
		opts.DataDir = f.dataDir
	}
	if cmd.Flags().Changed("timeout") {
		opts.Timeout = f.timeout
	}
	if err := opts.Validate(); err != nil {
		return api.Options{}, failure.Wrap(err)
	}
	return opts, nil
}

func runRoot(cmd *cobra.Command, flags *rootFlags, args []string) error {
	opts, err := flags.options(cmd)
	if err != nil {
		return err
	}

	term := defaultTerm
	if len(args) > 0 {
		term = strings.Join(args, " ")
	}

	out := cmd.OutOrStdout()
	tty := isTerminal(out)

	fmt.Fprintln(out, "Searching for: "+term)
	bar := newSearchProgress(out, tty)
	bar.Set(0.01)
	place, err := api.FindPlace(opts, term)
	bar.Done()
	if err != nil {
		return err
	}

	result, err := api.Forecast(cmd.Context(), opts, place)
	if err != nil {
		return err
	}

	if flags.browser {
		return openInBrowser(out, result.Document)
	}

	ro := render.Options{TableFormat: flags.tableFormat.Value}
	if tty {
		ro.MarkdownStyle = "auto"
	}

	if flags.pager {
		var buf bytes.Buffer
		if err := render.New(&buf, ro).Render(flags.mode(), result.Document, result.Hourly); err != nil {
			return err
		}
		return RunPager(buf.String())
	}

	if tty {
		fmt.Fprint(out, clearScreen)
	}
	return render.New(out, ro).Render(flags.mode(), result.Document, result.Hourly)
}

// openInBrowser opens the page the feed credits
func openInBrowser(out io.Writer, doc forecast.Document) error {
	u, err := doc.String("credit", "link", forecast.AttributesKey, "url")
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Opening forecast in browser: %s\n", u)
	if err := browser.OpenURL(u); err != nil {
		return failure.Wrap(err, failure.Message("Failed to open browser"))
	}
	return nil
}
