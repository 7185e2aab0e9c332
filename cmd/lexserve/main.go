// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the lexserve lookup server and CLI [DBG] application.

lexserve loads a lexicon document once at startup and answers prefix lookups:
for every query it returns the first headword (in locale collation order of
the normalized keys) that starts with the query, the remaining "ghost"
characters of that headword, and the entry description rendered as sanitized,
annotated markup with clickable words marked.

# Usage

Start the server with the configured lexicon:

	lexserve

Point at another document and enable debug logs:

	lexserve -lexicon https://example.org/vocabulary.json -d

Run the interactive CLI:

	lexserve -c

# Configuration

Runtime configuration lives in a TOML file, created with defaults when missing:

	[lexicon]
	source = "vocabulary.json"
	locale = "tr"
	fetch_timeout_ms = 10000

	[render]
	highlight_class = "pink"
	clickable_class = "clickable-word"
	searchable_class = "searchable"

	[server]
	max_query = 60

	[cli]
	show_ghost = true

# IPC Protocol

The server speaks MessagePack over stdin/stdout, see package server:

	{"id": "q1", "q": "at"}
	{"id": "q1", "st": "match", "k": "ata", "d": "father figure", "g": "a", "t": 41}

Clicking a searchable span asks for a new lookup of its text:

	{"id": "f1", "f": "kurt"}

# Load failures

Ctrl+C or SIGTERM stops either front end, even while it waits on stdin.

The lexicon is fetched once. If that fails the process keeps running and every
lookup answers with the "unavailable" state until a "reload" action succeeds.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bastiangx/lexserve/internal/cli"
	"github.com/bastiangx/lexserve/internal/logger"
	"github.com/bastiangx/lexserve/internal/utils"
	"github.com/bastiangx/lexserve/pkg/config"
	"github.com/bastiangx/lexserve/pkg/lexicon"
	"github.com/bastiangx/lexserve/pkg/render"
	"github.com/bastiangx/lexserve/pkg/search"
	"github.com/bastiangx/lexserve/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0-beta"
	AppName = "lexserve"
	gh      = "https://github.com/bastiangx/lexserve"
)

// main wires config, the engine and one of the two front ends.
// It does not implement lookup logic itself.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to a config.toml")
	source := flag.String("lexicon", "", "Lexicon document path or URL (overrides config)")
	locale := flag.String("locale", "", "Collation locale (overrides config)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	flag.Parse()

	log.SetOutput(os.Stderr)
	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	cfg, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activePath))
	if *source != "" {
		cfg.Lexicon.Source = *source
	}
	if *locale != "" {
		cfg.Lexicon.Locale = *locale
	}

	lexSource := cfg.Lexicon.Source
	if pathResolver, err := utils.NewPathResolver(); err != nil {
		log.Warnf("Failed to initialize path resolver: %v", err)
	} else {
		log.Debugf("Config dir: %s", pathResolver.ConfigDir())
		lexSource = pathResolver.ResolveSource(lexSource)
	}

	classes := render.Options{
		HighlightClass:  cfg.Render.HighlightClass,
		ClickableClass:  cfg.Render.ClickableClass,
		SearchableClass: cfg.Render.SearchableClass,
	}
	engine := search.NewEngine(
		search.WithLocale(cfg.LocaleTag()),
		search.WithRenderOptions(classes),
		search.WithLogger(logger.New("search")),
	)
	loader := lexicon.NewLoader(cfg.FetchTimeout())
	load := func(ctx context.Context) error {
		return engine.Load(ctx, loader, lexSource)
	}

	log.Debugf("Loading lexicon from: %s", lexSource)
	if err := load(ctx); err != nil {
		// Not fatal: the engine answers "unavailable" until a reload succeeds.
		log.Errorf("Oops! Failed to load lexicon: %v", err)
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		handler := cli.NewInputHandler(engine, os.Stdin, os.Stdout, cfg.CLI.ShowGhost, classes)
		if err := handler.Start(ctx); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		exitOnSignal(ctx)
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(engine, os.Stdin, os.Stdout, cfg.Server.MaxQuery, load, logger.New("server"))
	showStartupInfo(lexSource, engine.Stats()["entries"])
	if err := srv.Start(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	exitOnSignal(ctx)
}

// exitOnSignal reports a signal-driven shutdown once the front end has returned.
func exitOnSignal(ctx context.Context) {
	if ctx.Err() != nil {
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
	}
}

func printVersion() {
	vlog := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
	})
	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	vlog.SetStyles(styles)

	vlog.Print("")
	vlog.Print("[ lexserve ] prefix lookups over a lexicon")
	vlog.Print("", "version", Version)
	for _, f := range lexicon.ListSupportedFormats() {
		vlog.Print("", "format", f.Description, "ext", strings.Join(f.Extensions, " "))
	}
	vlog.Print("")
	vlog.Print("use -h or --help to see available options")
	vlog.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(source string, entries int) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(currentLevel)

	fmt.Fprintln(os.Stderr, "==========")
	fmt.Fprintln(os.Stderr, " lexserve ")
	fmt.Fprintln(os.Stderr, "==========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("lexicon: ( %s )", source)
	log.Infof("entries: %d", entries)
	log.Info("status: ready")
}
