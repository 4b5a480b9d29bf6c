// Command travelreport prints a travel report for a JSON file of location samples.
//
//	travelreport -in samples.json
//	cat samples.json | travelreport -json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/jengzang/travel-report-go/internal/config"
	"github.com/jengzang/travel-report-go/internal/geocoding"
	"github.com/jengzang/travel-report-go/internal/models"
	"github.com/jengzang/travel-report-go/internal/report"
	"github.com/jengzang/travel-report-go/internal/service"
)

func main() {
	_ = godotenv.Load()

	var (
		in         = flag.String("in", "-", "samples file, - for stdin")
		entity     = flag.String("entity", "", "entity id for samples that omit one")
		asJSON     = flag.Bool("json", false, "print the report as JSON")
		raw        = flag.Bool("raw", false, "skip gap bridging")
		thresholds = flag.String("thresholds", os.Getenv("THRESHOLDS_FILE"), "YAML thresholds file")
		geocoder   = flag.String("geocoder", os.Getenv("GEOCODER_URL"), "Nominatim base URL, empty for offline coordinates")
		timeout    = flag.Duration("geocoder-timeout", 5*time.Second, "per lookup timeout")
		verbose    = flag.Bool("v", false, "log progress to stderr")
	)
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	if err := run(*in, *entity, *asJSON, *raw, *thresholds, *geocoder, *timeout); err != nil {
		fmt.Fprintln(os.Stderr, "travelreport:", err)
		os.Exit(1)
	}
}

func run(in, entity string, asJSON, raw bool, thresholdsFile, geocoderURL string, timeout time.Duration) error {
	th := report.DefaultThresholds()
	if thresholdsFile != "" {
		var err error
		if th, err = config.LoadThresholds(thresholdsFile); err != nil {
			return err
		}
	}

	batch, err := readBatch(in)
	if err != nil {
		return err
	}
	if entity != "" {
		batch.EntityID = entity
	}

	locator := geocoding.NewChain(geocoding.ChainConfig{
		URL:       geocoderURL,
		UserAgent: "travel-report-go-cli",
		Timeout:   timeout,
	}, nil)
	engine := report.NewEngine(th, nil, locator)

	rpt, err := buildReport(context.Background(), service.NewReportService(nil, engine, nil), batch, raw)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rpt)
	}
	render(os.Stdout, rpt, time.Local)
	return nil
}

func buildReport(ctx context.Context, svc *service.ReportService, batch models.SampleBatch, raw bool) (*models.TravelReport, error) {
	if raw {
		return svc.GenerateRawFromSamples(ctx, batch.EntityID, batch.Samples)
	}
	return svc.GenerateFromSamples(ctx, batch.EntityID, batch.Samples)
}

// readBatch accepts either a bare array of samples or a SampleBatch object
func readBatch(path string) (models.SampleBatch, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return models.SampleBatch{}, fmt.Errorf("failed to open samples: %w", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return models.SampleBatch{}, fmt.Errorf("failed to read samples: %w", err)
	}

	var batch models.SampleBatch
	if strings.HasPrefix(strings.TrimSpace(string(data)), "[") {
		err = json.Unmarshal(data, &batch.Samples)
	} else {
		err = json.Unmarshal(data, &batch)
	}
	if err != nil {
		return models.SampleBatch{}, fmt.Errorf("failed to parse samples: %w", err)
	}
	return batch, nil
}
