package internal

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/anvesh9652/csvbench/internal/pgdb/dbv2"
	. "github.com/anvesh9652/csvbench/pkg/shared"
	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"
	example = `1. csvbench
2. csvbench customers-100.csv orders.csv.gz
3. csvbench -n 10 --warmup 2 --summary customers-100.csv
4. csvbench -f jsonl -t alltext events.log
5. csvbench --source postgres -U test -P 123 -d temp -u "localhost:5432" -q "SELECT * FROM customers"`
)

// DefaultFile is loaded when no file is named by args, flags or the env file.
const DefaultFile = "./customers-100.csv"

const (
	File      = "file"
	Format    = "format"
	Type      = "type"
	Separator = "sep"
	Comment   = "comment"
	Workers   = "workers"
	LookUp    = "lookup"
	Runs      = "runs"
	Warmup    = "warmup"
	Summary   = "summary"
	Verbose   = "verbose"
	EnvFile   = "env"
	Source    = "source"
	Query     = "query"
	Driver    = "driver"
	User      = "user"
	Password  = "pass"
	Database  = "database"
	URL       = "url"
	Port      = "port"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "csvbench [files...]",
		Short:   "Times loading CSV data into an in-memory table",
		Long:    "Loads CSV (or JSONL, or a PostgreSQL query result) into an in-memory table and prints the elapsed seconds, rounded to six decimal places, one line per run.",
		Example: example,
		Version: version,
		// errors are reported once by failOnError
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			icmd, err := NewCommandInfo(cmd, args)
			if err != nil {
				return err
			}
			return icmd.RunBenchmark(cmd.Context())
		},
	}
	addFlags(cmd)
	return cmd
}

func Execute() {
	err := newRootCommand().ExecuteContext(context.Background())
	failOnError(err)
}

func failOnError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}

func addFlags(cmd *cobra.Command) {
	pflags := cmd.Flags()
	pflags.String(File, DefaultFile, "file to load when no files are given as arguments")
	pflags.StringP(Format, "f", "", fmt.Sprintf("the format of the data that is being loaded (%s, %s); detected from the extension by default", CSV, JSONL))
	pflags.StringP(Type, "t", Dynamic, "setting (dynamic, alltext) used to assign types to columns")
	pflags.StringP(Separator, "s", ",", "CSV field separator")
	pflags.StringP(Comment, "c", "", "CSV comment character; lines starting with it are skipped")
	pflags.IntP(Workers, "w", runtime.NumCPU(), "number of parse workers")
	pflags.IntP(LookUp, "l", 400, "looks up first n number of JSONL rows to find columns and their types")

	pflags.IntP(Runs, "n", 1, "number of timed runs per file")
	pflags.Int(Warmup, 0, "number of untimed runs before the timed ones")
	pflags.Bool(Summary, false, "print min/max/mean/median/stddev of the runs to stderr")
	pflags.BoolP(Verbose, "v", false, "print a status line per run to stderr")
	pflags.StringP(EnvFile, "e", ".env", "env file read for TABLEID and CSVBENCH_FILE; ignored when missing")

	pflags.String(Source, FileSource, fmt.Sprintf("where rows come from (%s, %s)", FileSource, PostgresSource))
	pflags.StringP(Query, "q", "", "query to time when the source is postgres")
	pflags.String(Driver, dbv2.PgxDriver, fmt.Sprintf("database/sql driver for postgres (%s, %s)", dbv2.PgxDriver, dbv2.PqDriver))
	pflags.StringP(User, "U", "postgres", "user name")
	pflags.StringP(Password, "P", "", "password for given user name")
	pflags.StringP(Database, "d", "postgres", "database name")
	pflags.StringP(URL, "u", "localhost:5432", "host and port of the server")
	pflags.StringP(Port, "p", "", "Postgres server localhost port number")
}
