package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

type TimeOfDay struct {
	Time time.Time
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	if len(data) < 2 {
		return fmt.Errorf("invalid time: %s", string(data))
	}
	str := string(data[1 : len(data)-1])

	// Some endpoints send seconds, some do not
	parsedTime, err := time.Parse("15:04:05", str)
	if err != nil {
		parsedTime, err = time.Parse("15:04", str)
		if err != nil {
			return fmt.Errorf("failed to parse time: %v", err)
		}
	}
	*t = TimeOfDay{Time: parsedTime}
	return nil
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format("15:04"))
}

// On transposes the time-of-day onto the given calendar date in date's location.
func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Time.Hour(), t.Time.Minute(), t.Time.Second(), 0, date.Location())
}
