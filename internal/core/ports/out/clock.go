package out

import "time"

// Clock abstracts "now" so aggregation over the current date is deterministic
// under test. Production code uses SystemClock in the configured timezone.
type Clock interface {
	Now() time.Time
}

type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return time.Now().In(loc)
}
