package todo

import (
	"fmt"
	"strconv"
	"time"
)

// EpochTime is a timestamp stored as Unix epoch seconds in the storage
// file. Sub-second precision is dropped on the wire.
type EpochTime struct {
	time.Time
}

// Now returns the current time truncated to whole seconds.
func Now() EpochTime {
	return EpochTime{time.Unix(time.Now().Unix(), 0)}
}

// MarshalJSON encodes the timestamp as an integer number of seconds.
func (e EpochTime) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, e.Unix(), 10), nil
}

// UnmarshalJSON decodes an integer number of epoch seconds.
func (e *EpochTime) UnmarshalJSON(data []byte) error {
	secs, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("epoch seconds: %w", err)
	}
	e.Time = time.Unix(secs, 0)
	return nil
}

// Item represents one entry on the todo list.
type Item struct {
	ID            int        `json:"id"`             // Unique identifier within the list
	Text          string     `json:"text"`           // What the thing to do is
	Done          bool       `json:"done"`           // Whether the item has been completed
	CreatedDate   EpochTime  `json:"created_date"`   // When the item was added
	CompletedDate *EpochTime `json:"completed_date"` // Set exactly once, only when Done is true
}

// detailLayout is the local-time format used by verbose rendering.
const detailLayout = "2006-01-02 15:04:05"

// details returns the parenthesized timestamp suffix for verbose
// rendering, or the empty string.
func (i Item) details(verbose bool) string {
	if !verbose {
		return ""
	}
	completed := ""
	if i.CompletedDate != nil {
		completed = " completed: " + i.CompletedDate.Local().Format(detailLayout)
	}
	return fmt.Sprintf("(created: %s%s)", i.CreatedDate.Local().Format(detailLayout), completed)
}

// Render returns the display line for the item: a right-aligned id
// field, a completion marker, the text, and when verbose a timestamp
// suffix.
//
//	Render(false) -> "  1. [ ] Walk the dog "
func (i Item) Render(verbose bool) string {
	marker := " "
	if i.Done {
		marker = "X"
	}
	return fmt.Sprintf("%4s [%s] %s %s", strconv.Itoa(i.ID)+".", marker, i.Text, i.details(verbose))
}
