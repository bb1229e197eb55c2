package model

// MinutesPerDay is the length of one calendar day.
const MinutesPerDay = 1440

// Machine pairs a machine id with its recurring daily calendar.
type Machine struct {
	ID string
	// Calendar lists the valid task-start ticks in minutes since midnight,
	// strictly increasing. The last tick is the close of day: the latest
	// instant at which a zero-length task could still begin. The calendar
	// repeats identically on every day of the horizon.
	Calendar []int
}

// Open returns the first valid start tick of the day.
func (m Machine) Open() int { return m.Calendar[0] }

// Close returns the last valid start tick of the day.
func (m Machine) Close() int { return m.Calendar[len(m.Calendar)-1] }

// WindowSpan returns the length of the daily window in minutes.
func (m Machine) WindowSpan() int { return m.Close() - m.Open() }
