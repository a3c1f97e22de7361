package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
	_ "time/tzdata"

	"github.com/chrissnell/panchanga/internal/app"
	"github.com/chrissnell/panchanga/internal/controllers/restserver"
	"github.com/chrissnell/panchanga/internal/log"
	"github.com/chrissnell/panchanga/pkg/config"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	cfgFile := flag.String("config", "config.yaml", "Path to YAML configuration file")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	logFile := flag.String("log-file", "", "Write logs to this file, rotated by size, instead of stderr")
	showVersion := flag.Bool("version", false, "Show version and exit")
	at := flag.String("at", "", "Instant to compute for: RFC 3339 or YYYY-MM-DD (default now)")
	limits := flag.Bool("limits", false, "Solve for the end of each element")
	abhijit := flag.Bool("abhijit", false, "Apply the Abhijit nakshatra rule")
	serve := flag.Bool("serve", false, "Run the REST server instead of printing one result")
	flag.Parse()

	if *showVersion {
		fmt.Printf("panchanga %s\n", version)
		os.Exit(0)
	}

	// Set up logging
	if err := log.Init(*debug, *logFile); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfgData, err := loadConfig(*cfgFile)
	if err != nil {
		log.Errorf("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	application, err := app.New(cfgData, log.GetSugaredLogger())
	if err != nil {
		log.Errorf("Failed to initialize: %v", err)
		os.Exit(1)
	}

	if *serve {
		if err := application.Run(context.Background()); err != nil {
			log.Errorf("Application error: %v", err)
			os.Exit(1)
		}
		return
	}

	instant := time.Now()
	if *at != "" {
		if instant, err = restserver.ParseInstant(*at, application.Location()); err != nil {
			log.Errorf("%v", err)
			os.Exit(1)
		}
	}

	report, err := application.Report(instant, *limits, *abhijit)
	if err != nil {
		log.Errorf("Failed to compute panchanga: %v", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		log.Errorf("Failed to write output: %v", err)
		os.Exit(1)
	}
}

func loadConfig(cfgFile string) (*config.ConfigData, error) {
	filename, _ := filepath.Abs(cfgFile)

	cfgData, err := config.NewYAMLProvider(filename).LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error reading config file. Did you pass the -config flag? Run with -h for help: %w", err)
	}
	return cfgData, nil
}
