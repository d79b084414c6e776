package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/yogansh2008/AutoAttendDevArc/attend"
	"github.com/yogansh2008/AutoAttendDevArc/attend/app"
	"github.com/yogansh2008/AutoAttendDevArc/attend/importer"
	"github.com/yogansh2008/AutoAttendDevArc/attend/platform"
)

var (
	versionName = ""
	commitSHA   = ""
	buildTime   = ""
)

const usage = `usage: autoattend [-c config.ini] <command> [args]

commands:
  resolve <platform> <input>        print the canonical link for input
  detect [text...]                  find meeting links in text (stdin when empty)
  import [-p platform] [-s source] [--dry-run] [file|-]
                                    resolve one link per line and store new ones
  list [platform]                   list stored links with per-platform totals
  delete <platform> <input>         remove the stored link input resolves to
  platforms                         list registered platforms
`

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type cli struct {
	app    *app.App
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("autoattend", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.SetInterspersed(false)
	configPath := flags.StringP("config", "c", "config.ini", "config file")
	flags.Usage = func() { fmt.Fprint(stderr, usage) }

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 1
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return 1
	}

	command, rest := flags.Arg(0), flags.Args()[1:]

	var imp *importArgs
	if command == "import" {
		parsed, err := parseImportArgs(rest, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "autoattend: %v\n", err)
			return 1
		}
		imp = parsed
	}
	needsStore := command == "list" || command == "delete" || (imp != nil && !imp.dryRun)

	path := *configPath
	if !flags.Changed("config") {
		if _, err := os.Stat(path); err != nil {
			path = ""
		}
	}

	application, err := app.New(ctx, app.Options{
		ConfigPath: path,
		Store:      needsStore,
		LogOutput:  stderr,
		Build: app.BuildInfo{
			RuntimeVer: runtime.Version(),
			BinVersion: versionName,
			CommitSHA:  commitSHA,
			BuildTime:  buildTime,
			BuildArch:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		},
	})
	if err != nil {
		fmt.Fprintf(stderr, "autoattend: %v\n", err)
		return 1
	}
	defer func() { _ = application.Shutdown(context.Background()) }()

	c := &cli{app: application, stdin: stdin, stdout: stdout, stderr: stderr}

	switch command {
	case "resolve":
		err = c.resolve(rest)
	case "detect":
		err = c.detect(rest)
	case "import":
		err = c.importLinks(ctx, imp)
	case "list":
		err = c.list(ctx, rest)
	case "delete":
		err = c.delete(ctx, rest)
	case "platforms":
		err = c.platforms()
	default:
		err = fmt.Errorf("unknown command %q", command)
	}
	if err != nil {
		fmt.Fprintf(stderr, "autoattend: %v\n", err)
		return 1
	}
	return 0
}

func (c *cli) resolve(args []string) error {
	var name, input string
	switch len(args) {
	case 1:
		defaultName, ok := c.app.DefaultPlatform()
		if !ok {
			return errors.New("resolve: no platform given and DefaultPlatform is not registered")
		}
		name, input = defaultName, args[0]
	case 2:
		name, input = args[0], args[1]
	default:
		return errors.New("resolve: want <platform> <input>")
	}

	link, err := c.app.PlatformManager.Resolve(name, input)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, link.URL)
	return nil
}

func (c *cli) detect(args []string) error {
	text := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(c.stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}

	links := c.app.PlatformManager.DetectText(text)
	if len(links) == 0 {
		return fmt.Errorf("detect: %w", platform.ErrUnrecognized)
	}
	w := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	for _, link := range links {
		fmt.Fprintf(w, "%s\t%s\t%s\n", link.Platform, link.Kind, link.URL)
	}
	return w.Flush()
}

type importArgs struct {
	platform string
	source   string
	dryRun   bool
	file     string
}

// parseImportArgs runs before the app is built so a dry run never opens
// the database. An empty source falls back to ImportSource.
func parseImportArgs(args []string, stderr io.Writer) (*importArgs, error) {
	flags := pflag.NewFlagSet("import", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	out := &importArgs{}
	flags.StringVarP(&out.platform, "platform", "p", "", "resolve every line with this platform (default: detect)")
	flags.StringVarP(&out.source, "source", "s", "", "source label stored with records (default: ImportSource)")
	flags.BoolVar(&out.dryRun, "dry-run", false, "resolve without saving")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if flags.NArg() > 1 {
		return nil, errors.New("import: at most one file")
	}
	if flags.NArg() == 1 {
		out.file = flags.Arg(0)
	}
	return out, nil
}

func (c *cli) importLinks(ctx context.Context, args *importArgs) error {
	source := args.source
	if source == "" {
		source = c.app.Config.GetString("ImportSource")
	}

	var reader io.Reader = c.stdin
	if args.file != "" && args.file != "-" {
		file, err := os.Open(args.file)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}
		defer file.Close()
		reader = file
	}

	report, err := c.app.Importer.Import(ctx, importer.Request{
		Platform: args.platform,
		Source:   source,
		Reader:   reader,
		DryRun:   args.dryRun,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	for _, line := range report.Lines {
		detail := line.Link.URL
		if line.Err != nil {
			detail = line.Err.Error()
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", line.Number, line.Status, line.Link.Platform, detail)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "accepted %d, duplicate %d, rejected %d\n", report.Accepted, report.Duplicates, report.Rejected)
	if report.Rejected > 0 {
		return fmt.Errorf("import: %d line(s) rejected", report.Rejected)
	}
	return nil
}

func (c *cli) list(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return errors.New("list: at most one platform")
	}
	name := ""
	if len(args) == 1 {
		canonical, ok := c.app.PlatformManager.ResolveAlias(args[0])
		if !ok {
			return platform.NewUnknownPlatformError(args[0], "")
		}
		name = canonical
	}

	records, err := c.app.DB.List(ctx, name)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	for _, record := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", record.ID, record.Platform, record.Kind, record.CanonicalURL, record.Source)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return c.listSummary(ctx, name)
}

// listSummary prints "total N (platform n, ...)" for the whole store, or
// "total N" for a single platform.
func (c *cli) listSummary(ctx context.Context, name string) error {
	counts, err := c.app.DB.CountByPlatform(ctx)
	if err != nil {
		return err
	}
	if name != "" {
		fmt.Fprintf(c.stdout, "total %d\n", counts[name])
		return nil
	}

	total, err := c.app.DB.Count(ctx)
	if err != nil {
		return err
	}
	if total == 0 {
		fmt.Fprintln(c.stdout, "total 0")
		return nil
	}
	names := make([]string, 0, len(counts))
	for platformName := range counts {
		names = append(names, platformName)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, platformName := range names {
		parts = append(parts, fmt.Sprintf("%s %d", platformName, counts[platformName]))
	}
	fmt.Fprintf(c.stdout, "total %d (%s)\n", total, strings.Join(parts, ", "))
	return nil
}

func (c *cli) delete(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("delete: want <platform> <input>")
	}
	link, err := c.app.PlatformManager.Resolve(args[0], args[1])
	if err != nil {
		return err
	}

	record, err := c.app.DB.FindByURL(ctx, link.Platform, link.URL)
	if err != nil {
		if errors.Is(err, attend.ErrNotFound) {
			return fmt.Errorf("delete: %s is not stored", link.URL)
		}
		return err
	}
	if err := c.app.DB.Delete(ctx, record.ID); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "deleted %s\n", link.URL)
	return nil
}

func (c *cli) platforms() error {
	w := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	for _, meta := range c.app.PlatformManager.ListMeta() {
		detect := "-"
		if meta.Detectable {
			detect = "detect"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", meta.Name, meta.DisplayName, detect, strings.Join(meta.Aliases, ","))
	}
	return w.Flush()
}
