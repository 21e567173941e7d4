package internal

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"unicode/utf8"

	"github.com/anvesh9652/csvbench/internal/bench"
	"github.com/anvesh9652/csvbench/internal/frame"
	"github.com/anvesh9652/csvbench/internal/pgdb/dbv2"
	. "github.com/anvesh9652/csvbench/pkg/shared"
	"github.com/anvesh9652/csvbench/pkg/shared/reader"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Keys looked up in the process environment first, then in the env file.
const (
	TableIDKey = "TABLEID"
	FileKey    = "CSVBENCH_FILE"
)

type CommandInfo struct {
	// cobra command
	cmd  *cobra.Command
	args []string

	files       []string
	source      string
	format      string
	typeSetting string
	separator   rune
	comment     rune
	workers     int
	lookUp      int

	runs    int
	warmup  int
	summary bool
	verbose bool

	query  string
	driver string
	dbURL  string

	out    io.Writer
	logger *log.Logger
}

func NewCommandInfo(cmd *cobra.Command, args []string) (*CommandInfo, error) {
	c := &CommandInfo{
		cmd:    cmd,
		args:   args,
		out:    cmd.OutOrStdout(),
		logger: log.New(cmd.ErrOrStderr(), "", 0),
	}
	if err := c.validateParams(); err != nil {
		return nil, err
	}
	if c.source == PostgresSource {
		return c, c.setUpDBParams()
	}
	return c, c.resolveFiles()
}

func (c *CommandInfo) validateParams() error {
	flags := c.cmd.Flags()
	var err error

	if c.source, err = flags.GetString(Source); err != nil {
		return err
	}
	if c.source != FileSource && c.source != PostgresSource {
		return errors.Errorf("unsupported source %q, use %s or %s", c.source, FileSource, PostgresSource)
	}

	if c.format, err = flags.GetString(Format); err != nil {
		return err
	}
	if c.format != "" && c.format != CSV && c.format != JSONL {
		return errors.Errorf("unsupported format %q, use %s or %s", c.format, CSV, JSONL)
	}

	if c.typeSetting, err = flags.GetString(Type); err != nil {
		return err
	}
	if !ValidTypeSetting(c.typeSetting) {
		return errors.Errorf("unsupported type setting %q, use %s or %s", c.typeSetting, Dynamic, AllText)
	}

	if c.separator, err = runeFlag(flags, Separator); err != nil {
		return err
	}
	if c.separator == 0 {
		return errors.New("separator can't be empty")
	}
	if c.comment, err = runeFlag(flags, Comment); err != nil {
		return err
	}
	if c.comment != 0 && c.comment == c.separator {
		return errors.New("comment and separator must differ")
	}

	if c.workers, err = flags.GetInt(Workers); err != nil {
		return err
	}
	if c.lookUp, err = flags.GetInt(LookUp); err != nil {
		return err
	}
	if c.runs, err = flags.GetInt(Runs); err != nil {
		return err
	}
	if c.runs < 1 {
		return errors.Errorf("runs must be at least 1, got %d", c.runs)
	}
	if c.warmup, err = flags.GetInt(Warmup); err != nil {
		return err
	}
	if c.warmup < 0 {
		return errors.Errorf("warmup can't be negative, got %d", c.warmup)
	}
	if c.summary, err = flags.GetBool(Summary); err != nil {
		return err
	}
	c.verbose, err = flags.GetBool(Verbose)
	return err
}

// resolveFiles picks, in order: args, --file, CSVBENCH_FILE, TABLEID, DefaultFile.
func (c *CommandInfo) resolveFiles() error {
	if len(c.args) > 0 {
		c.files = c.args
		return nil
	}
	flags := c.cmd.Flags()
	if flags.Changed(File) {
		file, err := flags.GetString(File)
		if err != nil {
			return err
		}
		c.files = []string{file}
		return nil
	}

	env, err := c.readEnvFile()
	if err != nil {
		return err
	}
	switch {
	case lookupEnv(env, FileKey) != "":
		c.files = []string{lookupEnv(env, FileKey)}
	case lookupEnv(env, TableIDKey) != "":
		c.files = []string{"./" + lookupEnv(env, TableIDKey) + ".csv"}
	default:
		c.files = []string{DefaultFile}
	}
	return nil
}

// readEnvFile returns nil for a missing env file unless --env was set explicitly.
func (c *CommandInfo) readEnvFile() (map[string]string, error) {
	flags := c.cmd.Flags()
	path, err := flags.GetString(EnvFile)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, nil
	}
	env, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !flags.Changed(EnvFile) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to read env file %s", path)
	}
	return env, nil
}

func lookupEnv(env map[string]string, key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return env[key]
}

func (c *CommandInfo) setUpDBParams() error {
	flags := c.cmd.Flags()
	var err error
	if c.query, err = flags.GetString(Query); err != nil {
		return err
	}
	if c.query == "" {
		return errors.Errorf("--%s is required when the source is %s", Query, PostgresSource)
	}
	if c.driver, err = flags.GetString(Driver); err != nil {
		return err
	}
	var user, pass, dbName, host, port string
	for name, val := range map[string]*string{User: &user, Password: &pass, Database: &dbName, URL: &host, Port: &port} {
		if *val, err = flags.GetString(name); err != nil {
			return err
		}
	}
	c.dbURL = dbv2.BuildURL(user, pass, host, port, dbName)
	return nil
}

func (c *CommandInfo) RunBenchmark(ctx context.Context) error {
	if c.verbose {
		c.logger.Printf(`msg="starting benchmark" %s`, c)
	}
	if c.source == PostgresSource {
		return c.benchQuery(ctx)
	}
	for _, file := range c.files {
		if err := c.benchFile(ctx, file); err != nil {
			return err
		}
	}
	return nil
}

func (c *CommandInfo) frameOptions() []frame.Option {
	return []frame.Option{
		frame.WithSeparator(c.separator),
		frame.WithComment(c.comment),
		frame.WithWorkers(c.workers),
		frame.WithLookUp(c.lookUp),
		frame.WithTypeSetting(c.typeSetting),
	}
}

func (c *CommandInfo) benchFile(ctx context.Context, file string) error {
	format := c.format
	if format == "" {
		format = DetectFormat(file)
	}
	opts := c.frameOptions()

	load := func(ctx context.Context) (bench.Shape, error) {
		r, err := reader.NewFileGzipReader(file)
		if err != nil {
			return bench.Shape{}, err
		}
		defer r.Close()

		var f *frame.Frame
		if format == JSONL {
			f, err = frame.ReadJSONL(ctx, r, opts...)
		} else {
			f, err = frame.ReadCSV(ctx, r, opts...)
		}
		if err != nil {
			return bench.Shape{}, err
		}
		return bench.Shape{File: file, Size: r.Size(), Rows: f.Rows(), Columns: f.NumColumns()}, nil
	}

	runner := c.newRunner(func(res bench.Result) {
		c.logger.Printf("status=SUCCESS data_format=%q run=%d rows=%s columns=%d file_size=%s took=%s file=%s",
			format, res.Run, FormatNumber(res.Shape.Rows), res.Shape.Columns, FormatSize(res.Shape.Size), res.Elapsed, res.Shape.File)
	})
	durations, err := runner.Run(ctx, load)
	if err != nil {
		if c.verbose {
			c.logger.Printf(`status=FAILED data_format=%q msg="unable to load" file=%q error=%q`, format, file, err.Error())
		}
		return errors.WithMessagef(err, "unable to load %s", file)
	}
	if c.summary {
		c.logger.Printf("%s data_format=%q file=%s", bench.Summarize(durations), format, file)
	}
	return nil
}

func (c *CommandInfo) benchQuery(ctx context.Context) error {
	db, err := dbv2.NewPostgresDB(ctx, c.driver, c.dbURL)
	if err != nil {
		return err
	}
	defer db.Close()

	opts := c.frameOptions()
	load := func(ctx context.Context) (bench.Shape, error) {
		f, err := db.ReadFrame(ctx, c.query, opts...)
		if err != nil {
			return bench.Shape{}, err
		}
		return bench.Shape{Rows: f.Rows(), Columns: f.NumColumns()}, nil
	}

	runner := c.newRunner(func(res bench.Result) {
		c.logger.Printf("status=SUCCESS source=%q run=%d rows=%s columns=%d took=%s %s",
			PostgresSource, res.Run, FormatNumber(res.Shape.Rows), res.Shape.Columns, res.Elapsed, db)
	})
	durations, err := runner.Run(ctx, load)
	if err != nil {
		return errors.WithMessage(err, "unable to run query")
	}
	if c.summary {
		c.logger.Printf("%s source=%q", bench.Summarize(durations), PostgresSource)
	}
	return nil
}

func (c *CommandInfo) newRunner(onSuccess func(bench.Result)) *bench.Runner {
	r := &bench.Runner{Warmup: c.warmup, Runs: c.runs, Out: c.out}
	if c.verbose {
		r.OnResult = onSuccess
	}
	return r
}

// runeFlag reads a string flag that must hold at most one character.
func runeFlag(flags *pflag.FlagSet, name string) (rune, error) {
	s, err := flags.GetString(name)
	if err != nil || s == "" {
		return 0, err
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, errors.Errorf("--%s must be a single character, got %q", name, s)
	}
	return r, nil
}

func (c *CommandInfo) String() string {
	return fmt.Sprintf("source=%s files=%v format=%q type=%s runs=%d warmup=%d", c.source, c.files, c.format, c.typeSetting, c.runs, c.warmup)
}
