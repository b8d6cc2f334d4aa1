// Command godb-server runs SQL statements against a godb database, either
// from --exec flags or one statement per line on stdin.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"godbtypes/internal/config"
	"godbtypes/internal/engine"
	"godbtypes/internal/logging"
	"godbtypes/internal/sqlerr"
	"godbtypes/internal/storage"
	"godbtypes/internal/storage/memstore"
	"godbtypes/internal/storage/sqlitestore"
)

const version = "0.2.0"

type CLI struct {
	Config config.Config `embed:""`

	Exec    []string         `name:"exec" short:"e" sep:"none" help:"Statement to run; may be repeated. Without it, statements are read from stdin."`
	Version kong.VersionFlag `name:"version" help:"Print version information"`
}

func main() {
	if err := config.LoadEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}

	var cli CLI
	ctx, err := config.Parse(&cli, os.Args[1:],
		kong.Name("godb-server"),
		kong.Description("Run SQL statements against a godb database."),
		kong.Vars{"version": version},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(2)
	}

	logger, err := logging.NewConfiguredLogger("godb", cli.Config.LogLevel, cli.Config.Dev)
	ctx.FatalIfErrorf(err)
	defer logger.Sync()

	store, err := openStore(cli.Config)
	ctx.FatalIfErrorf(err)

	eng := engine.New(store, engine.WithLogger(logger))
	ctx.FatalIfErrorf(eng.Start())
	defer eng.Close()

	logger.Infow("engine started", "storage", cli.Config.Storage)

	var failed bool
	if len(cli.Exec) > 0 {
		for _, q := range cli.Exec {
			if !run(os.Stdout, eng, q) {
				failed = true
			}
		}
	} else {
		failed = !runLines(os.Stdout, eng, os.Stdin)
	}

	if failed {
		eng.Close()
		os.Exit(1)
	}
}

func openStore(cfg config.Config) (storage.Engine, error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		return sqlitestore.Open(cfg.DataPath)
	case config.StorageMemory, "":
		return memstore.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}

// runLines runs every non-empty line of r. It reports whether all
// statements succeeded.
func runLines(w io.Writer, eng *engine.DBEngine, r io.Reader) bool {
	ok := true
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		if !run(w, eng, line) {
			ok = false
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(w, "ERROR:", err)
		return false
	}
	return ok
}

// run executes one statement or meta command and prints its outcome.
func run(w io.Writer, eng *engine.DBEngine, line string) bool {
	if strings.TrimSpace(line) == `\dt` {
		tables, err := eng.ListTables()
		if err != nil {
			printError(w, err)
			return false
		}
		for _, t := range tables {
			fmt.Fprintln(w, t.String())
		}
		return true
	}

	res, err := eng.ExecuteSQL(line)
	if err != nil {
		printError(w, err)
		return false
	}
	printResult(w, res)
	return true
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "ERROR: %s: %v\n", sqlerr.Code(err), err)
}

func printResult(w io.Writer, res *engine.Result) {
	if res.Columns != nil {
		fmt.Fprintln(w, strings.Join(res.Columns, " | "))
		for _, row := range res.Rows {
			parts := make([]string, len(row))
			for i, v := range row {
				parts[i] = formatValue(v)
			}
			fmt.Fprintln(w, strings.Join(parts, " | "))
		}
	}
	fmt.Fprintln(w, res.Tag)
}

// formatValue converts a normalized value to a human-readable string.
func formatValue(v any) string {
	switch val := v.(type) {
	case int16, int32, int64:
		return fmt.Sprintf("%d", val)
	case string:
		return val
	case bool:
		if val {
			return "t"
		}
		return "f"
	default:
		return "NULL"
	}
}
