package renderer

import "time"

// Run the interactive loop until the window is closed or a tick fails. The
// summary receives the stats of every completed tick and may be nil.
func (o *Orchestrator) Run(summary *StatsSummary) error {
	last := time.Now()
	for !o.window.ShouldClose() {
		o.window.PollEvents()

		now := time.Now()
		dt := float32(now.Sub(last).Seconds() * 1000)
		last = now

		if err := o.Tick(dt); err != nil {
			o.logger.Errorf("%s", err.Error())
			return err
		}

		if summary != nil {
			summary.Add(&o.stats)
			if summary.Frames%500 == 0 {
				o.logger.Debugf("frame %d: %s; %d/%d objects dispatched", summary.Frames, o.stats.RenderTime, o.stats.Dispatched, o.stats.Considered)
			}
		}
	}
	return nil
}
