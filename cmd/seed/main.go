// Reseeds the JSON stores from scratch. Unlike first-boot seeding this
// OVERWRITES existing files, so it is a separate opt-in binary.
package main

import (
	"flag"
	"log"

	"station-chat-be/internal/config"
	"station-chat-be/internal/repository/jsonstore"
	"station-chat-be/internal/seed"

	"github.com/fatih/color"
)

func main() {
	seedValue := flag.Int64("seed", seed.DefaultSeed, "RNG seed for station generation")
	flag.Parse()

	cfg := config.Load()

	stationStore, err := jsonstore.NewStationStore(cfg.Store.StationsPath)
	if err != nil {
		log.Fatalf("Error: failed to open station store: %v", err)
	}
	poiStore, err := jsonstore.NewPOIStore(cfg.Store.PoisPath)
	if err != nil {
		log.Fatalf("Error: failed to open poi store: %v", err)
	}

	stations := seed.Stations(*seedValue)
	if err := stationStore.UpsertAll(stations); err != nil {
		log.Fatalf("Error: failed to write stations: %v", err)
	}
	color.Green("✓ Wrote %d stations to %s (seed=%d)", len(stations), cfg.Store.StationsPath, *seedValue)

	pois := seed.POIs()
	if err := poiStore.UpsertAll(pois); err != nil {
		log.Fatalf("Error: failed to write pois: %v", err)
	}
	color.Green("✓ Wrote %d pois to %s", len(pois), cfg.Store.PoisPath)

	color.Cyan("Seeding completed.")
}
