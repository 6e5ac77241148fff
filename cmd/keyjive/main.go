package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/linuxmatters/keyjive/internal/audio"
	"github.com/linuxmatters/keyjive/internal/cli"
	"github.com/linuxmatters/keyjive/internal/config"
	"github.com/linuxmatters/keyjive/internal/keyfinder"
	"github.com/linuxmatters/keyjive/internal/render"
	"github.com/linuxmatters/keyjive/internal/ui"
)

// version is set via ldflags at build time
// Local dev builds: "dev"
// Release builds: git tag (e.g. "v0.1.0")
var version = "dev"

var CLI struct {
	Paths    []string `arg:"" name:"path" help:"Audio files to analyse (.wav, .mp3 or .flac)" optional:""`
	Notation string   `help:"Key notation: standard, camelot or openkey" default:"${default_notation}" placeholder:"name"`
	JSON     bool     `help:"Print one JSON object per track instead of styled output"`
	Chroma   string   `help:"Write a chromagram PNG per track into this directory" placeholder:"dir"`
	Quiet    bool     `help:"Plain line-per-track output without the progress UI"`
	Version  bool     `help:"Show version information"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("keyjive"),
		kong.Description("Spin your .wav, .mp3 and .flac tracks through a groovy KeyFinder-style analysis to reveal their musical key."),
		kong.Vars{
			"version":          version,
			"default_notation": config.DefaultNotation,
		},
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	// Handle version flag
	if CLI.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	// Validate required arguments when not showing version
	if len(CLI.Paths) == 0 {
		cli.PrintError("at least one audio file is required")
		os.Exit(1)
	}

	notation, err := keyfinder.ParseNotation(CLI.Notation)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	// Validate input files exist before starting any analysis
	for _, path := range CLI.Paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			cli.PrintError(fmt.Sprintf("input file does not exist: %s", path))
			os.Exit(1)
		}
	}

	if CLI.Chroma != "" {
		if err := os.MkdirAll(CLI.Chroma, 0o755); err != nil {
			cli.PrintError(fmt.Sprintf("creating chroma directory: %v", err))
			os.Exit(1)
		}
	}

	_ = ctx // Kong context available for future use

	kf := keyfinder.NewKeyFinder()

	var failed int
	switch {
	case CLI.Quiet || CLI.JSON:
		failed = runPlain(kf, CLI.Paths, notation)
	case len(CLI.Paths) == 1:
		failed = runSingle(kf, CLI.Paths[0], notation)
	default:
		failed = runBatch(kf, CLI.Paths, notation)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// trackReport is one track's outcome, shared by every output mode.
type trackReport struct {
	Path    string
	Key     keyfinder.Key
	Chroma  []float64
	Elapsed time.Duration
	Err     error
}

// analyseTrack decodes one file, detects its key and, when requested,
// writes its chromagram PNG. A chromagram write failure fails the track
// even though the key was found.
func analyseTrack(kf *keyfinder.KeyFinder, path string) trackReport {
	started := time.Now()

	data, err := audio.Load(path)
	if err != nil {
		return trackReport{Path: path, Err: err, Elapsed: time.Since(started)}
	}

	result, err := kf.AnalyzeAudio(data)
	if err != nil {
		return trackReport{Path: path, Err: err, Elapsed: time.Since(started)}
	}

	report := trackReport{
		Path:    path,
		Key:     result.Key,
		Chroma:  result.Chroma,
		Elapsed: time.Since(started),
	}

	if CLI.Chroma != "" {
		if err := render.WriteChromagram(chromaPath(CLI.Chroma, path), result.Chromagram); err != nil {
			report.Err = err
		}
	}

	return report
}

// chromaPath places the PNG under the chroma directory, named after the
// source file.
func chromaPath(dir, inputPath string) string {
	base := filepath.Base(inputPath)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
	return filepath.Join(dir, name)
}

// runSingle analyses one track with styled output and no progress UI.
func runSingle(kf *keyfinder.KeyFinder, path string, notation keyfinder.Notation) int {
	cli.PrintBanner()

	report := analyseTrack(kf, path)
	if report.Err != nil {
		cli.PrintError(fmt.Sprintf("%s: %v", path, report.Err))
		return 1
	}

	if report.Key.IsSilence() {
		cli.PrintWarning("no tonal content detected, key is reported as silence")
	}

	cli.PrintSection("Results")
	cli.PrintInfo("File", path)
	if info, err := os.Stat(path); err == nil {
		cli.PrintInfo("Size", cli.FormatBytes(info.Size()))
	}
	cli.PrintInfo("Key", report.Key.Display(notation))
	cli.PrintInfo("Camelot", report.Key.Display(keyfinder.NotationCamelot))
	cli.PrintInfo("Open Key", report.Key.Display(keyfinder.NotationOpenKey))
	cli.PrintInfo("Analysis", cli.FormatDuration(report.Elapsed))

	if CLI.Chroma != "" {
		cli.PrintSuccess(fmt.Sprintf("Chromagram written to %s", chromaPath(CLI.Chroma, path)))
	}

	return 0
}

// runPlain analyses each track with line-per-track output, for scripts
// and pipelines.
func runPlain(kf *keyfinder.KeyFinder, paths []string, notation keyfinder.Notation) int {
	failed := 0

	for _, path := range paths {
		report := analyseTrack(kf, path)
		if report.Err != nil {
			failed++
		}

		if CLI.JSON {
			printJSON(report)
			continue
		}

		if report.Err != nil {
			fmt.Fprintf(os.Stderr, "%s\terror: %v\n", path, report.Err)
			continue
		}
		fmt.Printf("%s\t%s\n", path, report.Key.Display(notation))
	}

	return failed
}

// printJSON writes one track's result as a single JSON object per line.
func printJSON(report trackReport) {
	type trackJSON struct {
		File    string `json:"file"`
		Error   string `json:"error,omitempty"`
		Key     string `json:"key,omitempty"`
		Code    *int   `json:"code,omitempty"`
		Camelot string `json:"camelot,omitempty"`
		OpenKey string `json:"open_key,omitempty"`
	}

	out := trackJSON{File: report.Path}
	if report.Err != nil {
		out.Error = report.Err.Error()
	} else {
		code := report.Key.Code()
		out.Key = report.Key.String()
		out.Code = &code
		out.Camelot = report.Key.Display(keyfinder.NotationCamelot)
		out.OpenKey = report.Key.Display(keyfinder.NotationOpenKey)
	}

	line, err := json.Marshal(out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\terror: %v\n", report.Path, err)
		return
	}
	fmt.Println(string(line))
}

// runBatch analyses every track behind the progress UI, then prints a
// summary once the UI has quit.
func runBatch(kf *keyfinder.KeyFinder, paths []string, notation keyfinder.Notation) int {
	model := ui.NewModel()
	p := tea.NewProgram(model)

	batchStart := time.Now()
	var reports []trackReport

	// Run analysis in a goroutine and send progress updates
	go func() {
		failed := 0

		for i, path := range paths {
			p.Send(ui.TrackStart{Index: i + 1, Total: len(paths), Path: path})

			report := analyseTrack(kf, path)
			reports = append(reports, report)
			if report.Err != nil {
				failed++
			}

			p.Send(ui.TrackResult{
				Index:   i + 1,
				Total:   len(paths),
				Path:    path,
				Key:     report.Key,
				Tag:     report.Key.Display(notation),
				Chroma:  report.Chroma,
				Err:     report.Err,
				Elapsed: report.Elapsed,
			})
		}

		p.Send(ui.BatchComplete{
			Analysed: len(paths) - failed,
			Failed:   failed,
			Elapsed:  time.Since(batchStart),
		})
	}()

	// Run the Bubbletea UI
	if _, err := p.Run(); err != nil {
		cli.PrintError(fmt.Sprintf("running UI: %v", err))
		os.Exit(1)
	}

	failed := 0
	for _, report := range reports {
		if report.Err != nil {
			failed++
		}
	}

	cli.PrintBatchSummary(len(reports)-failed, failed, time.Since(batchStart))

	// The UI can be dismissed early; repeat failures on stderr so they
	// survive the final screen.
	for _, report := range reports {
		if report.Err != nil {
			cli.PrintError(fmt.Sprintf("%s: %v", report.Path, report.Err))
		}
	}

	return failed
}
