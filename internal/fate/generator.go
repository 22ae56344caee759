package fate

import (
	"math/rand/v2"
	"memento/internal/structures"
	"sync"
	"time"
)

const (
	ModeCountdown = "countdown"
	ModeUnits     = "units"
)

// Draw is one random outcome. Target is nil when the outcome carries no
// countdown.
type Draw struct {
	TotalSeconds int64
	Breakdown    Breakdown
	Target       *time.Time
}

type Generator interface {
	Generate(now time.Time) Draw
	Mode() string
}

// DurationGenerator draws a total duration uniformly from
// [minYears, maxYears] fixed-size years, bounds inclusive, and derives the
// breakdown and the absolute target from it.
type DurationGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
	min int64
	max int64
}

func NewDurationGenerator(minYears, maxYears int, rng *rand.Rand) *DurationGenerator {
	if maxYears < minYears {
		minYears, maxYears = maxYears, minYears
	}
	return &DurationGenerator{
		rng: rng,
		min: int64(minYears) * YearSeconds,
		max: int64(maxYears) * YearSeconds,
	}
}

func (g *DurationGenerator) Generate(now time.Time) Draw {
	g.mu.Lock()
	total := g.min + g.rng.Int64N(g.max-g.min+1)
	g.mu.Unlock()

	target := now.Add(time.Duration(total) * time.Second)
	return Draw{
		TotalSeconds: total,
		Breakdown:    Decompose(total),
		Target:       &target,
	}
}

func (g *DurationGenerator) Mode() string { return ModeCountdown }

// UnitsGenerator draws every unit independently. The result has no
// arithmetic meaning and no target.
type UnitsGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewUnitsGenerator(rng *rand.Rand) *UnitsGenerator {
	return &UnitsGenerator{rng: rng}
}

func (g *UnitsGenerator) Generate(_ time.Time) Draw {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Draw{
		Breakdown: Breakdown{
			Years:   g.rng.Int64N(60),
			Months:  g.rng.Int64N(12),
			Days:    g.rng.Int64N(30),
			Hours:   g.rng.Int64N(24),
			Minutes: g.rng.Int64N(60),
			Seconds: g.rng.Int64N(60),
		},
	}
}

func (g *UnitsGenerator) Mode() string { return ModeUnits }

func NewGenerator(conf *structures.Config) Generator {
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	if conf.Generator.Mode == ModeUnits {
		return NewUnitsGenerator(rng)
	}
	return NewDurationGenerator(conf.Generator.MinYears, conf.Generator.MaxYears, rng)
}
