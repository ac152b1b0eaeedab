// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"

	"spanmark/internal/config"
	"spanmark/internal/formatters"
	_ "spanmark/internal/formatters/json"
	_ "spanmark/internal/formatters/text"
	_ "spanmark/internal/formatters/yaml"
	"spanmark/internal/observability"
	"spanmark/internal/preprocessors"
	"spanmark/internal/query"
	"spanmark/internal/readers"
	"spanmark/internal/recognizer"
	"spanmark/internal/resolver"
	"spanmark/internal/tokenizer"
	"spanmark/internal/version"
)

// loadConfiguration loads the configuration file or returns default config
func loadConfiguration(configFile string) *config.Config {
	// If config file is not specified, try to find one in standard locations
	configPath := configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	// Load configuration (will use defaults if file not found)
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		cfg, _ = config.LoadConfig("") // Load default config
	}
	return cfg
}

// configFlags holds command line flag values
type configFlags struct {
	outputFormat     string
	entityTypes      string
	verbose          bool
	debug            bool
	noColor          bool
	resolveConflicts bool
	compareForm      string
	minConfidence    float64
}

// finalConfiguration holds resolved configuration values
type finalConfiguration struct {
	format           string
	entityTypes      []string
	verbose          bool
	debug            bool
	noColor          bool
	resolveConflicts bool
	compareForm      string
	minConfidence    float64
}

// resolveConfiguration resolves final configuration values from config file, profile, and command line flags
func resolveConfiguration(cfg *config.Config, activeProfile *config.Profile, flags *configFlags) *finalConfiguration {
	final := &finalConfiguration{}

	// Format
	final.format = "text" // default fallback
	if cfg != nil && cfg.Defaults.Format != "" {
		final.format = cfg.Defaults.Format
	}
	if activeProfile != nil && activeProfile.Format != "" {
		final.format = activeProfile.Format
	}
	if isFlagSet("format") && flags.outputFormat != "" {
		final.format = flags.outputFormat
	}

	// Entity types
	if cfg != nil {
		final.entityTypes = cfg.Defaults.EntityTypes
	}
	if activeProfile != nil && len(activeProfile.EntityTypes) > 0 {
		final.entityTypes = activeProfile.EntityTypes
	}
	if isFlagSet("types") && flags.entityTypes != "" {
		final.entityTypes = splitList(flags.entityTypes)
	}

	// Verbose
	final.verbose = false // default fallback
	if cfg != nil {
		final.verbose = cfg.Defaults.Verbose
	}
	if activeProfile != nil {
		final.verbose = activeProfile.Verbose
	}
	if isFlagSet("verbose") {
		final.verbose = flags.verbose
	}

	// Debug
	final.debug = false // default fallback
	if cfg != nil {
		final.debug = cfg.Defaults.Debug
	}
	if activeProfile != nil {
		final.debug = activeProfile.Debug
	}
	if isFlagSet("debug") {
		final.debug = flags.debug
	}

	// No color
	final.noColor = false // default fallback
	if cfg != nil {
		final.noColor = cfg.Defaults.NoColor
	}
	if activeProfile != nil {
		final.noColor = activeProfile.NoColor
	}
	if isFlagSet("no-color") {
		final.noColor = flags.noColor
	}

	// Conflict resolution
	final.resolveConflicts = true // default fallback
	if cfg != nil {
		final.resolveConflicts = cfg.Defaults.ResolveConflicts
	}
	if activeProfile != nil {
		final.resolveConflicts = activeProfile.ResolveConflicts
	}
	if isFlagSet("resolve") {
		final.resolveConflicts = flags.resolveConflicts
	}

	// Comparison form for conflict resolution
	final.compareForm = "raw" // default fallback
	if cfg != nil && cfg.Defaults.CompareForm != "" {
		final.compareForm = cfg.Defaults.CompareForm
	}
	if activeProfile != nil && activeProfile.CompareForm != "" {
		final.compareForm = activeProfile.CompareForm
	}
	if isFlagSet("compare-form") && flags.compareForm != "" {
		final.compareForm = flags.compareForm
	}

	// Minimum confidence
	final.minConfidence = 0 // default fallback
	if cfg != nil {
		final.minConfidence = cfg.Defaults.MinConfidence
	}
	if activeProfile != nil && activeProfile.MinConfidence > 0 {
		final.minConfidence = activeProfile.MinConfidence
	}
	if isFlagSet("min-confidence") {
		final.minConfidence = flags.minConfidence
	}

	return final
}

// isFlagSet checks if a flag was explicitly set on the command line
func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isTerminal checks if the file descriptor is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func listFormats() {
	fmt.Println("Available output formats:")
	names := formatters.List()
	sort.Strings(names)
	for _, name := range names {
		if f, ok := formatters.Get(name); ok {
			fmt.Printf("  %-8s %s (%s)\n", name, f.Description(), f.FileExtension())
		}
	}
}

func listProfilesIn(cfg *config.Config) {
	if len(cfg.Profiles) == 0 {
		fmt.Println("No profiles defined")
		return
	}
	fmt.Println("Available profiles:")
	names := make([]string, 0, len(cfg.Profiles))
	for name := range cfg.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		profile := cfg.Profiles[name]
		fmt.Printf("  %-12s %s\n", name, profile.Description)
	}
}

func main() {
	inputText := flag.String("text", "", "Text to annotate (mutually exclusive with -file)")
	inputFile := flag.String("file", "", "Path to the input file (plain text or PDF)")
	configFile := flag.String("config", "", "Path to configuration file (YAML)")
	profileName := flag.String("profile", "", "Profile name to use from config file")
	listProfiles := flag.Bool("list-profiles", false, "List available profiles in config file")
	outputFormat := flag.String("format", "", "Output format: text, json, yaml (default: text)")
	entityTypes := flag.String("types", "", "System entity types to report, e.g. 'sys:email,sys:phone' (default: all)")
	verbose := flag.Bool("verbose", false, "Display all text forms and per-form spans for each entity")
	debug := flag.Bool("debug", false, "Enable debug logging of the annotation pipeline")
	outputFile := flag.String("output", "", "Path to output file (if not specified, output to stdout)")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	resolveConflicts := flag.Bool("resolve", true, "Resolve conflicts between overlapping entities (use -resolve=false to keep all candidates)")
	compareForm := flag.String("compare-form", "", "Text form used for span comparison during conflict resolution: raw, processed, normalized (default: raw)")
	minConfidence := flag.Float64("min-confidence", 0, "Hide entities below this confidence (0-1)")
	showListFormats := flag.Bool("list-formats", false, "List available output formats")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		return
	}

	if *showListFormats {
		listFormats()
		return
	}

	cfg := loadConfiguration(*configFile)

	if *listProfiles {
		listProfilesIn(cfg)
		return
	}

	var activeProfile *config.Profile
	if *profileName != "" {
		profile, exists := cfg.GetProfile(*profileName)
		if !exists {
			fmt.Fprintf(os.Stderr, "Error: profile '%s' not found in config\n", *profileName)
			os.Exit(1)
		}
		activeProfile = &profile
	}

	flags := &configFlags{
		outputFormat:     *outputFormat,
		entityTypes:      *entityTypes,
		verbose:          *verbose,
		debug:            *debug,
		noColor:          *noColor,
		resolveConflicts: *resolveConflicts,
		compareForm:      *compareForm,
		minConfidence:    *minConfidence,
	}
	finalConfig := resolveConfiguration(cfg, activeProfile, flags)

	// Disable color when stdout is not a terminal or output goes to a file
	if !isTerminal(os.Stdout) || *outputFile != "" {
		finalConfig.noColor = true
	}

	form, err := query.ParseTextForm(finalConfig.compareForm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *inputText == "" && *inputFile == "" {
		fmt.Fprintln(os.Stderr, "Error: either -text or -file is required")
		flag.Usage()
		os.Exit(1)
	}
	if *inputText != "" && *inputFile != "" {
		fmt.Fprintln(os.Stderr, "Error: -text and -file are mutually exclusive")
		os.Exit(1)
	}

	observerLevel := observability.ObservabilityOff
	if finalConfig.debug {
		observerLevel = observability.ObservabilityDebug
	}
	observer := observability.NewStandardObserver(observerLevel, os.Stderr)

	// Load input
	text := *inputText
	source := ""
	if *inputFile != "" {
		manager := readers.NewManager()
		manager.SetObserver(observer)
		doc, err := manager.Read(*inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
			os.Exit(1)
		}
		text = doc.Text
		source = doc.Path
	}

	// Build the annotation pipeline
	var pre query.Preprocessor
	if cfg.Preprocessor.Enabled {
		tp := preprocessors.NewTextPreprocessor().
			WithCollapseWhitespace(cfg.Preprocessor.CollapseWhitespace).
			WithTrim(cfg.Preprocessor.Trim)
		pre = tp
	}

	var rec query.SystemEntityRecognizer
	if cfg.Recognizer.Enabled {
		rr := recognizer.NewRegexRecognizer()
		rr.SetObserver(observer)
		rec = rr
	} else {
		rec = recognizer.NewNullRecognizer()
	}

	factory := query.NewQueryFactory(rec, tokenizer.NewDefaultTokenizer(), pre)
	q := factory.Create(text)

	entities := q.SystemEntityCandidates(finalConfig.entityTypes)

	removed := 0
	if finalConfig.resolveConflicts {
		res := resolver.New(form)
		res.SetObserver(observer)
		resolved := res.Resolve(entities)
		removed = len(entities) - len(resolved)
		entities = resolved
	}

	result := &formatters.Result{
		Query:        q,
		Entities:     entities,
		RemovedCount: removed,
		Source:       source,
	}
	options := formatters.FormatterOptions{
		Verbose:       finalConfig.verbose,
		NoColor:       finalConfig.noColor,
		MinConfidence: finalConfig.minConfidence,
	}

	output, err := formatters.Export(finalConfig.format, result, options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(output), 0o600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		return
	}
	fmt.Print(output)
	if !strings.HasSuffix(output, "\n") {
		fmt.Println()
	}
}
