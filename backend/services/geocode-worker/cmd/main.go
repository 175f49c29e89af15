package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cron "github.com/robfig/cron/v3"

	"github.com/leetaniau/foodmap/backend/shared/go-repositories"
	"github.com/leetaniau/foodmap/backend/shared/go-utils"

	"github.com/leetaniau/foodmap/backend/services/geocode-worker/internal/config"
	"github.com/leetaniau/foodmap/backend/services/geocode-worker/internal/services"
	gutils "github.com/leetaniau/foodmap/backend/services/geocode-worker/internal/utils"
)

const usage = `usage: geocode-worker <command> [flags]

commands:
  import   -csv <path> [-update-contacts]   load a spreadsheet export into the store
  geocode  [-results f] [-failed f] [-cron spec]   fill in missing coordinates
  check                                      report coordinate coverage
`

func main() {
	utils.InitLogger(config.AppName)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "import":
		err = runImport(ctx, os.Args[2:])
	case "geocode":
		err = runGeocode(ctx, os.Args[2:])
	case "check":
		err = runCheck(ctx, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		utils.Logger.WithError(err).Error(os.Args[1] + " failed")
		os.Exit(1)
	}
}

type deps struct {
	cfg  *config.Config
	repo repositories.ResourceRepository
	geo  *services.GeocodeService
	done func()
}

// setup connects to the store and, when a provider key is configured, the
// geocoder. needGeocoder turns a missing key into an error.
func setup(ctx context.Context, needGeocoder bool) (*deps, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	pool, err := repositories.ConnectPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := repositories.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	d := &deps{cfg: cfg, repo: repositories.NewResourceRepository(pool), done: pool.Close}

	if !cfg.GeocodingEnabled() {
		if needGeocoder {
			pool.Close()
			return nil, fmt.Errorf("GOOGLE_MAPS_API_KEY is required")
		}
		utils.Logger.Warn("GOOGLE_MAPS_API_KEY not set; rows without coordinates cannot be geocoded")
		return d, nil
	}

	g, err := gutils.NewGoogleGeocoder(cfg.GoogleMapsAPIKey)
	if err != nil {
		pool.Close()
		return nil, err
	}
	d.geo = services.NewGeocodeService(d.repo, g, services.GeocodeOptions{
		RequestInterval: cfg.RequestInterval,
		MaxAttempts:     cfg.MaxAttempts,
		RetryDelay:      cfg.RetryDelay,
		ServiceArea: gutils.ServiceArea{
			CenterLat:   cfg.ServiceAreaLat,
			CenterLng:   cfg.ServiceAreaLng,
			RadiusMiles: cfg.ServiceAreaRadiusMiles,
		},
	})
	return d, nil
}

func runImport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	csvPath := fs.String("csv", "data/sample-food-resources.csv", "path to the CSV export")
	updateContacts := fs.Bool("update-contacts", false, "refresh phone and appointment columns for existing ids")
	_ = fs.Parse(args)

	f, err := os.Open(*csvPath)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := services.ParseCSV(f)
	if err != nil {
		return err
	}
	utils.Logger.Infof("Found %d rows in %s", len(rows), *csvPath)

	d, err := setup(ctx, false)
	if err != nil {
		return err
	}
	defer d.done()

	svc := services.NewImportService(d.repo, d.geo)
	svc.UpdateContacts = *updateContacts
	sum, err := svc.Import(ctx, rows)
	if err != nil {
		return err
	}
	utils.Logger.Infof(
		"Import complete: imported=%d geocoded=%d skipped=%d updated=%d failed=%d total=%d",
		sum.Imported, sum.Geocoded, sum.Skipped, sum.Updated, sum.Failed, sum.Total,
	)
	return nil
}

func runGeocode(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("geocode", flag.ExitOnError)
	resultsPath := fs.String("results", "geocoding-results.json", "where to write every outcome")
	failedPath := fs.String("failed", "geocoding-failed.json", "where to write failures for manual review")
	schedule := fs.String("cron", "", "run on a cron schedule instead of once, e.g. \"@every 6h\"")
	_ = fs.Parse(args)

	d, err := setup(ctx, true)
	if err != nil {
		return err
	}
	defer d.done()

	runOnce := func(ctx context.Context) error {
		report, err := d.geo.GeocodeMissing(ctx)
		if err != nil {
			return err
		}
		if err := report.WriteReports(*resultsPath, *failedPath); err != nil {
			return err
		}
		utils.Logger.Infof("Success rate: %.1f%% (%d/%d)", report.SuccessRate(), report.Succeeded, report.Succeeded+report.Failed)
		if report.Failed > 0 {
			utils.Logger.Warnf("%d addresses failed to geocode; see %s", report.Failed, *failedPath)
		}
		return nil
	}

	if *schedule == "" {
		return runOnce(ctx)
	}

	c := cron.New()
	_, err = c.AddFunc(*schedule, func() {
		if e := runOnce(ctx); e != nil {
			utils.Logger.WithError(e).Error("Scheduled geocode run failed")
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", *schedule, err)
	}
	c.Start()
	utils.Logger.Infof("Geocoding on schedule %q", *schedule)

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

func runCheck(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	sample := fs.Int("sample", 10, "names to list on each side")
	_ = fs.Parse(args)

	d, err := setup(ctx, false)
	if err != nil {
		return err
	}
	defer d.done()

	inv, err := services.CheckInventory(ctx, d.repo, *sample)
	if err != nil {
		return err
	}

	fmt.Printf("Total resources: %d\n", inv.Total)
	fmt.Printf("With coordinates: %d\n", inv.WithCoordinates)
	fmt.Printf("Missing coordinates: %d\n", inv.MissingCoordinates)
	fmt.Printf("With phone: %d\n", inv.WithPhone)
	fmt.Printf("Appointment required: %d\n", inv.AppointmentRequired)
	for _, s := range inv.MissingSample {
		fmt.Println("  missing: " + s)
	}
	for _, s := range inv.LocatedSample {
		fmt.Println("  located: " + s)
	}
	return nil
}
