package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/ember/config"
	"github.com/plus3/ember/emitter"
	"github.com/plus3/ember/engine"
	"github.com/plus3/ember/preset"
)

func main() {
	configPath := flag.String("config", "ember.yaml", "Path to the YAML configuration file.")
	duration := flag.Duration("duration", 10*time.Second, "How long the simulation runs.")
	presetName := flag.String("preset", "", "Preset to load from the store instead of the demo scene.")
	saveName := flag.String("save", "", "Save the scene under this preset name once the run finishes.")
	emitterCount := flag.Int("emitters", 4, "Number of emitters in the demo scene.")
	particleCount := flag.Int("particles", 2500, "Particles per emitter in the demo scene.")
	workers := flag.Int("workers", -1, "Goroutines per emitter tick (overrides the config when >= 0).")
	realtime := flag.Bool("realtime", false, "Tick at the configured interval instead of as fast as possible.")
	memoryStore := flag.Bool("memory-store", false, "Keep presets in memory instead of the user data directory.")
	schema := flag.Bool("schema", false, "Print the JSON schema of preset documents and exit.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	if *schema {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(preset.Schema()); err != nil {
			log.Fatalf("Failed to encode schema: %v", err)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *workers >= 0 {
		cfg.Workers = *workers
	}
	if *presetName != "" {
		cfg.Preset = *presetName
	}
	if cfg.LogPrefix != "" {
		log.SetPrefix(cfg.LogPrefix)
	}

	store, err := openStore(cfg, *memoryStore)
	if err != nil {
		log.Fatalf("Failed to open preset store: %v", err)
	}
	registry := preset.NewRegistry()

	// 1. Build the scene
	var (
		emitters []*emitter.Emitter
		skipped  []string
	)
	if cfg.Preset != "" {
		log.Printf("Loading preset %q...", cfg.Preset)
		emitters, err = store.Restore(registry, cfg.Preset)
		for _, e := range preset.Unjoin(err) {
			skipped = append(skipped, e.Error())
		}
		if len(emitters) == 0 && err != nil {
			log.Fatalf("Failed to load preset: %v", err)
		}
	} else {
		log.Printf("Building demo scene with %d emitters of %d particles...", *emitterCount, *particleCount)
		emitters, err = demoScene(*emitterCount, *particleCount)
		if err != nil {
			log.Fatalf("Failed to build demo scene: %v", err)
		}
	}

	sim := engine.NewSimulation(engine.Options{
		Interval: cfg.TickInterval(),
		Workers:  cfg.Workers,
	})
	sim.Load(emitters...)

	// 2. Run the simulation loop
	report := &Report{
		Duration:       *duration,
		Emitters:       len(emitters),
		Workers:        cfg.Workers,
		Realtime:       *realtime,
		Skipped:        skipped,
		GCPauseMetrics: *gcPauseMetrics,
	}
	for _, e := range emitters {
		report.Particles += e.ParticleCount()
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	if *realtime {
		sim.Run(ctx)
	} else {
	Loop:
		for {
			select {
			case <-ctx.Done():
				break Loop
			default:
				updateStart := time.Now()
				sim.Step()
				report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			}
		}
	}

	report.TotalTime = time.Since(startTime)
	report.Counters = sim.Counters()
	report.Systems = sim.Scheduler().GetStats().Systems
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	// 3. Optionally persist the scene
	if *saveName != "" {
		doc, err := preset.Capture(registry, sim.World().Emitters()...)
		if err != nil {
			log.Fatalf("Failed to capture scene: %v", err)
		}
		if err := store.Save(*saveName, doc); err != nil {
			log.Fatalf("Failed to save preset: %v", err)
		}
	}

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Simulation Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

func openStore(cfg config.Config, inMemory bool) (*preset.Store, error) {
	if inMemory {
		return preset.NewStore(preset.NewMemoryBackend(), cfg.Store.Object, nil), nil
	}
	return preset.OpenStore(cfg.Store.AppName, cfg.Store.Object, nil)
}
