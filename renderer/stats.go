package renderer

import "time"

// Per tick statistics.
type FrameStats struct {
	// Time spent in each stage.
	StageTimes [NumStages]time.Duration

	// Object pass counters.
	Considered int
	Dispatched int
	Culled     [numCullReasons]int

	// Total pixel area covered by object dispatches.
	PixelArea int

	// Total time for the tick.
	RenderTime time.Duration
}

// Get the number of culled objects.
func (fs *FrameStats) CulledTotal() int {
	total := 0
	for reason := CullInvisible; reason < numCullReasons; reason++ {
		total += fs.Culled[reason]
	}
	return total
}

// Aggregated statistics over many ticks.
type StatsSummary struct {
	Frames int

	// Per stage min, mean and max times.
	StageMin   [NumStages]time.Duration
	StageMax   [NumStages]time.Duration
	stageTotal [NumStages]time.Duration

	RenderMin   time.Duration
	RenderMax   time.Duration
	renderTotal time.Duration

	Dispatched int
	Culled     [numCullReasons]int
	PixelArea  int
}

// Fold a tick into the summary.
func (s *StatsSummary) Add(fs *FrameStats) {
	first := s.Frames == 0
	s.Frames++

	for stage := Stage(0); stage < NumStages; stage++ {
		d := fs.StageTimes[stage]
		s.stageTotal[stage] += d
		if first || d < s.StageMin[stage] {
			s.StageMin[stage] = d
		}
		if d > s.StageMax[stage] {
			s.StageMax[stage] = d
		}
	}

	s.renderTotal += fs.RenderTime
	if first || fs.RenderTime < s.RenderMin {
		s.RenderMin = fs.RenderTime
	}
	if fs.RenderTime > s.RenderMax {
		s.RenderMax = fs.RenderTime
	}

	s.Dispatched += fs.Dispatched
	s.PixelArea += fs.PixelArea
	for reason := range fs.Culled {
		s.Culled[reason] += fs.Culled[reason]
	}
}

// Get the mean time spent in a stage.
func (s *StatsSummary) StageMean(stage Stage) time.Duration {
	if s.Frames == 0 {
		return 0
	}
	return s.stageTotal[stage] / time.Duration(s.Frames)
}

// Get the mean tick time.
func (s *StatsSummary) RenderMean() time.Duration {
	if s.Frames == 0 {
		return 0
	}
	return s.renderTotal / time.Duration(s.Frames)
}
