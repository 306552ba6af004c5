package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/RichardKnop/sqlitepage/internal/pkg/logging"
	"github.com/RichardKnop/sqlitepage/internal/sqlitepage"
)

const (
	cliName string = "sqlitepage"
)

// CLI defines the command-line interface using Kong
var CLI struct {
	LogLevel    string `name:"log-level" default:"warn" env:"LOG_LEVEL" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`
	LogEncoding string `name:"log-encoding" default:"console" enum:"json,console" help:"Log encoding (json, console)"`

	DBInfo DBInfoCmd `cmd:"" name:"dbinfo" help:"Print the database header and schema page summary"`
	Cells  CellsCmd  `cmd:"" help:"Print the rows stored on the schema page"`
	Page   PageCmd   `cmd:"" help:"Print the header and cell pointers of one page"`
}

type globals struct {
	ctx    context.Context
	logger *zap.Logger
	out    io.Writer
}

func (g *globals) open(path string) (*sqlitepage.Database, error) {
	return sqlitepage.OpenFile(g.ctx, g.logger.With(zap.String("path", path)), path)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kctx := kong.Parse(&CLI,
		kong.Name(cliName),
		kong.Description("Inspect the pages of a SQLite database file"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	logger, err := logging.New(CLI.LogLevel, CLI.LogEncoding)
	kctx.FatalIfErrorf(err)

	err = kctx.Run(&globals{
		ctx:    ctx,
		logger: logger,
		out:    os.Stdout,
	})
	logger.Sync() // nolint:errcheck
	kctx.FatalIfErrorf(err)
}
