package dto

import (
	"encoding/json"
	"time"

	"github.com/yukikurage/diet-tracker-api/internal/utils"
)

// Date is a YYYY-MM-DD calendar date in request bodies
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := utils.ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// NullableID is an optional id that tells an explicit null apart from an
// absent field
type NullableID struct {
	Set bool
	ID  *uint64
}

func (n *NullableID) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.ID = nil
		return nil
	}
	var id uint64
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	n.ID = &id
	return nil
}

// DatePtr returns the time of d or nil
func DatePtr(d *Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
