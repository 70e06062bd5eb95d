package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"

	"github.com/lox/inmetdash/internal/ingest"
	"github.com/lox/inmetdash/internal/logging"
	"github.com/lox/inmetdash/internal/store"
)

// Globals are the flags shared by every command.
type Globals struct {
	Data      string `help:"INMET station CSV export." env:"INMET_DATA" default:"data/A318_2025.csv" type:"path"`
	SkipRows  int    `help:"Lines to discard before the header row." env:"INMET_SKIP_ROWS" default:"0"`
	Encoding  string `help:"File encoding (${enum})." env:"INMET_ENCODING" enum:"auto,utf-8,latin1" default:"auto"`
	Station   string `help:"Station code shown on the KPI card." env:"INMET_STATION" default:"A318"`
	LogLevel  string `help:"Log level (${enum})." env:"LOG_LEVEL" enum:"debug,info,warn,error" default:"info"`
	LogFormat string `help:"Log format (${enum})." env:"LOG_FORMAT" enum:"text,json" default:"text"`

	Logger *slog.Logger `kong:"-"`
	Stdout io.Writer    `kong:"-"`
}

type CLI struct {
	Globals

	Serve  ServeCmd  `cmd:"" default:"withargs" help:"Serve the dashboard over HTTP."`
	Render RenderCmd `cmd:"" help:"Render one month selection to files."`
	Months MonthsCmd `cmd:"" help:"List the month selections present in the data."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("inmetdash"),
		kong.Description("Weather dashboard for INMET automatic station exports."),
		kong.UsageOnError(),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
	)

	logger, err := logging.New(os.Stderr, cli.LogLevel, cli.LogFormat)
	ctx.FatalIfErrorf(err)
	slog.SetDefault(logger)
	cli.Logger = logger
	cli.Stdout = os.Stdout

	if err := ctx.Run(&cli.Globals); err != nil {
		logger.Error("command failed", "command", ctx.Command(), "error", err)
		os.Exit(1)
	}
}

// load reads the CSV export and builds the observation store and the
// monthly aggregate view.
func (g *Globals) load() (*store.ObservationStore, *store.AggregateView, error) {
	ds, err := ingest.LoadFile(g.Data, ingest.Options{
		SkipRows: g.SkipRows,
		Encoding: ingest.Encoding(g.Encoding),
		Logger:   g.logger(),
	})
	if err != nil {
		return nil, nil, err
	}
	obs := store.New(ds)
	return obs, store.Aggregate(obs.All()), nil
}

func (g *Globals) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return g.Logger
}

func (g *Globals) stdout() io.Writer {
	if g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}
