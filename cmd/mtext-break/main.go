// Package main is the mtext-break command: it reads text and reports
// line break opportunities and word boundaries.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"unicode"

	"github.com/textforge/mtext/internal/config"
	"github.com/textforge/mtext/internal/linebreak"
	"github.com/textforge/mtext/internal/mtext"
	"github.com/textforge/mtext/internal/wordseg"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

type options struct {
	configPath string
	pos        int
	words      bool
	all        bool
}

func run() int {
	opts, showVersion := parseFlags()
	if showVersion {
		fmt.Printf("mtext-break %s (%s)\n", version, commit)
		return 0
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	text, err := readInput(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	registry, err := buildRegistry(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer registry.Close()

	if opts.words {
		return reportWords(text, registry)
	}

	analyzer := linebreak.New(linebreak.DefaultClasses(),
		linebreak.WithSegmenter(registry.Func()))
	lbOpts := analyzerOptions(cfg)

	if opts.all {
		return reportAllBreaks(text, analyzer, lbOpts)
	}
	before, after := analyzer.LineBreak(text, opts.pos, lbOpts)
	fmt.Printf("%d %d\n", before, after)
	return 0
}

func parseFlags() (options, bool) {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.IntVar(&opts.pos, "pos", 0, "Cursor position, in characters")
	flag.BoolVar(&opts.all, "all", false, "Report every break opportunity")
	flag.BoolVar(&opts.words, "words", false, "Report word boundaries instead of breaks")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Usage: mtext-break [flags] [file]\n\nReads from stdin when no file is given.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	return opts, showVersion
}

func loadConfig(path string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.NewTOMLLoader(path).Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	config.ApplyEnv(cfg)
	return cfg, nil
}

func readInput(path string) (*mtext.MText, error) {
	var data []byte
	var err error
	if path == "" {
		data, err = io.ReadAll(bufio.NewReader(os.Stdin))
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return mtext.FromString(string(data))
}

func buildRegistry(cfg *config.Config) (*wordseg.Registry, error) {
	registry := wordseg.NewRegistry()
	for _, d := range cfg.Dictionary {
		script, ok := unicode.Scripts[d.Script]
		if !ok {
			return nil, fmt.Errorf("unknown script %q", d.Script)
		}
		registry.Register(script, wordseg.NewDictionary(d.Path, script))
	}
	return registry, nil
}

func analyzerOptions(cfg *config.Config) linebreak.Options {
	var o linebreak.Options
	if cfg.LineBreak.SpaceCM {
		o |= linebreak.OptSpaceCM
	}
	if cfg.LineBreak.KoreanSpace {
		o |= linebreak.OptKoreanSpace
	}
	if cfg.LineBreak.AIAsID {
		o |= linebreak.OptAIAsID
	}
	return o
}

func reportAllBreaks(text *mtext.MText, analyzer *linebreak.Analyzer, opts linebreak.Options) int {
	pos := 0
	for pos < text.Len() {
		_, after := analyzer.LineBreak(text, pos, opts)
		if after >= text.Len() {
			break
		}
		fmt.Println(after)
		pos = after
	}
	return 0
}

func reportWords(text *mtext.MText, registry *wordseg.Registry) int {
	pos := 0
	for pos < text.Len() {
		from, to, inWord, err := registry.Segment(text, pos)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		if inWord {
			word, _ := text.Substring(from, to)
			fmt.Printf("%d %d %s\n", from, to, word)
		}
		if to <= pos {
			to = pos + 1
		}
		pos = to
	}
	return 0
}
