package models

import (
	"memento/internal/fate"
	"time"

	"github.com/google/uuid"
)

// DisplayLayout mirrors the ru-RU locale date-time string, e.g.
// "18.10.2026, 14:05:09".
const DisplayLayout = "02.01.2006, 15:04:05"

// Prediction is immutable once built. The live countdown is derived from
// TargetTimestamp and never stored here.
type Prediction struct {
	ID              string     `json:"id"`
	CreatedAt       time.Time  `json:"createdAt"`
	Date            string     `json:"date"`
	Mode            string     `json:"mode"`
	TargetTimestamp *time.Time `json:"targetTimestamp,omitempty"`
	TotalSeconds    int64      `json:"totalSeconds,omitempty"`
	fate.Breakdown
}

func NewPrediction(now time.Time, loc *time.Location, mode string, draw fate.Draw) *Prediction {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	if loc == nil {
		loc = time.Local
	}

	p := &Prediction{
		ID:           id.String(),
		CreatedAt:    now,
		Date:         now.In(loc).Format(DisplayLayout),
		Mode:         mode,
		TotalSeconds: draw.TotalSeconds,
		Breakdown:    draw.Breakdown,
	}
	if draw.Target != nil {
		target := *draw.Target
		p.TargetTimestamp = &target
	}
	return p
}

func (p *Prediction) HasCountdown() bool {
	return p.TargetTimestamp != nil
}

// FileName is the download name of the exported image.
func (p *Prediction) FileName() string {
	return "memento-mori-" + p.ID + ".png"
}
