package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/plus3/ember/clock"
	"github.com/plus3/ember/engine"
	"github.com/plus3/ember/preset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 5 * time.Millisecond}}
	s.Finalize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 5*time.Millisecond, s.Max)
	assert.Equal(t, 3*time.Millisecond, s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportGenerate(t *testing.T) {
	emitters, err := demoScene(2, 64)
	require.NoError(t, err)

	world := engine.NewWorld()
	for _, e := range emitters {
		world.Add(e)
	}
	scheduler := engine.NewScheduler(world, nil)
	stats := &engine.StatsSystem{}
	scheduler.Register(&engine.EmitterSystem{})
	scheduler.Register(stats)

	clk := clock.NewManual(0)
	for i := 0; i < 10; i++ {
		clk.Advance(16 * time.Millisecond)
		scheduler.Once(clk)
	}

	report := &Report{
		Duration:       time.Second,
		Emitters:       len(emitters),
		Particles:      128,
		Skipped:        []string{`emitter "x" forces: record 0: unknown`},
		Counters:       stats.Counters(),
		Systems:        scheduler.GetStats().Systems,
		GCPauseMetrics: true,
		UpdateTime:     Stats{Samples: []time.Duration{time.Millisecond}},
	}
	report.UpdateTime.Finalize()

	var out bytes.Buffer
	require.NoError(t, report.Generate(&out))

	text := out.String()
	assert.Contains(t, text, "- **Emitters:** 2")
	assert.Contains(t, text, "- **Particles:** 128")
	assert.Contains(t, text, "- **Ticks:** 10")
	assert.Contains(t, text, "- **Simulated Time:** 160ms")
	assert.Contains(t, text, "GOMAXPROCS")
	assert.Contains(t, text, `record 0: unknown`)
	assert.Contains(t, text, "- **EmitterSystem:** 10 runs")
	assert.Contains(t, text, "## GC Pause Durations")
}

func TestDemoSceneIsPersistable(t *testing.T) {
	emitters, err := demoScene(3, 8)
	require.NoError(t, err)
	require.Len(t, emitters, 3)
	assert.Equal(t, "fountain-2", emitters[2].Name())
	assert.Equal(t, 4, emitters[0].Forces().Len())

	doc, err := preset.Capture(preset.NewRegistry(), emitters...)
	require.NoError(t, err)
	rebuilt, err := preset.Build(preset.NewRegistry(), doc)
	require.NoError(t, err)
	assert.Len(t, rebuilt, 3)
}
