package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/lox/inmetdash/internal/api"
	"github.com/lox/inmetdash/internal/charts"
	"github.com/lox/inmetdash/internal/dashboard"
	"github.com/lox/inmetdash/internal/models"
	"github.com/lox/inmetdash/internal/theme"
)

type ServeCmd struct {
	Addr  string `help:"Listen address." env:"INMET_ADDR" default:":8050"`
	Title string `help:"Page heading." env:"INMET_TITLE"`
}

func (c *ServeCmd) Run(g *Globals) error {
	obs, agg, err := g.load()
	if err != nil {
		return err
	}

	server, err := api.NewServer(obs, agg, c.Addr, g.logger())
	if err != nil {
		return err
	}
	server.SetTitle(c.Title)
	server.SetStation(g.Station)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return server.Run(ctx)
}

type RenderCmd struct {
	Month string `arg:"" optional:"" default:"Todos" help:"Month name, or Todos for the whole file."`
	Out   string `short:"o" help:"Output directory." default:"out" type:"path"`
	Theme string `help:"Colour palette (${enum})." enum:"claro,escuro" default:"claro"`
}

// Run writes the pipeline output for one selection: result.json, table.csv,
// one PNG per figure under figures/ and the KPI card.
func (c *RenderCmd) Run(g *Globals) error {
	obs, agg, err := g.load()
	if err != nil {
		return err
	}
	res := dashboard.Render(models.Selection(c.Month), obs, agg)

	figDir := filepath.Join(c.Out, "figures")
	if err := os.MkdirAll(figDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := os.WriteFile(filepath.Join(c.Out, "result.json"), data, 0o644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	if err := writeTableCSV(filepath.Join(c.Out, "table.csv"), res.Table); err != nil {
		return err
	}

	r := charts.New(theme.GetPalette(c.Theme), g.logger())
	for _, fig := range res.Figures {
		png, err := r.Figure(fig)
		if err != nil {
			return fmt.Errorf("render %s: %w", fig.ID, err)
		}
		if err := os.WriteFile(filepath.Join(figDir, fig.ID+".png"), png, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", fig.ID, err)
		}
	}

	card, err := r.KPICard(res, g.Station)
	if err != nil {
		return fmt.Errorf("render kpi card: %w", err)
	}
	if err := os.WriteFile(filepath.Join(c.Out, "kpi.png"), card, 0o644); err != nil {
		return fmt.Errorf("write kpi card: %w", err)
	}

	g.logger().Info("selection rendered",
		"selection", res.Selection.String(),
		"rows", res.Rows,
		"figures", len(res.Figures),
		"out", c.Out,
	)
	return nil
}

// writeTableCSV exports the table through a string-typed dataframe so
// cells are written exactly as displayed.
func writeTableCSV(path string, t dashboard.Table) error {
	cols := make([]series.Series, len(t.Columns))
	for j, name := range t.Columns {
		values := make([]string, len(t.Rows))
		for i, row := range t.Rows {
			values[i] = row[j]
		}
		cols[j] = series.New(values, series.String, name)
	}
	df := dataframe.New(cols...)
	if df.Err != nil {
		return fmt.Errorf("build table: %w", df.Err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := df.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

type MonthsCmd struct{}

func (c *MonthsCmd) Run(g *Globals) error {
	obs, _, err := g.load()
	if err != nil {
		return err
	}
	for _, opt := range dashboard.Options(obs) {
		fmt.Fprintln(g.stdout(), opt.Value)
	}
	return nil
}
