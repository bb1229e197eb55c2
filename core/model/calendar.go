package model

// ExpandSlots materializes the feasible start offsets for a task of the given
// duration on a machine with the given daily calendar, over a horizon of
// days. A tick is feasible when the task finishes no later than the day's
// close; feasible ticks repeat on every day, shifted by whole days. The
// result is ascending by day then by tick, which fixes the slot-indicator
// order everywhere downstream.
//
// An empty result means the task can never run; callers must treat that as a
// hard input error, not hand it to the solver.
func ExpandSlots(calendar []int, duration, days int) []int {
	if len(calendar) == 0 || days <= 0 {
		return nil
	}
	close := calendar[len(calendar)-1]
	var slots []int
	for day := 0; day < days; day++ {
		offset := day * MinutesPerDay
		for _, tick := range calendar {
			if tick+duration <= close {
				slots = append(slots, offset+tick)
			}
		}
	}
	return slots
}
