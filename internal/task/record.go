package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/weekboard/internal/dateutil"
	"github.com/javiermolinar/weekboard/internal/period"
)

// Record is the flat, string-typed form of a Task used on the wire and in
// import/export files.
type Record struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Icon      string    `json:"icon,omitempty" yaml:"icon,omitempty"`
	Date      string    `json:"date" yaml:"date"`
	Time      string    `json:"time" yaml:"time"`
	Period    string    `json:"period,omitempty" yaml:"period,omitempty"`
	Priority  string    `json:"priority,omitempty" yaml:"priority,omitempty"`
	Status    string    `json:"status,omitempty" yaml:"status,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero" yaml:"-"`
}

// NewRecord converts a task to its record form.
func NewRecord(t *Task) Record {
	return Record{
		ID:        t.ID,
		Name:      t.Name,
		Icon:      t.Icon,
		Date:      dateutil.Format(t.Date),
		Time:      t.Time.String(),
		Period:    t.Period().String(),
		Priority:  t.Priority.String(),
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
	}
}

// Task parses the record. Priority and status default to medium and pending.
// A period that disagrees with the time is rejected with ErrPeriodMismatch.
func (r Record) Task() (*Task, error) {
	if strings.TrimSpace(r.Date) == "" {
		return nil, dateutil.ErrInvalidDateFormat
	}
	date, err := dateutil.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	clock, err := period.ParseClock(r.Time)
	if err != nil {
		return nil, err
	}
	if r.Period != "" {
		p, err := period.Parse(r.Period)
		if err != nil {
			return nil, err
		}
		if got := period.Classify(clock); got != p {
			return nil, fmt.Errorf("%w: %s is %s, not %s", ErrPeriodMismatch, clock, got, p)
		}
	}

	t := &Task{
		ID:        strings.TrimSpace(r.ID),
		Name:      strings.TrimSpace(r.Name),
		Icon:      strings.TrimSpace(r.Icon),
		Time:      clock,
		Date:      date,
		Priority:  PriorityMedium,
		Status:    StatusPending,
		CreatedAt: r.CreatedAt,
	}
	if r.Priority != "" {
		if t.Priority, err = ParsePriority(r.Priority); err != nil {
			return nil, err
		}
	}
	if r.Status != "" {
		t.Status = Status(strings.ToLower(strings.TrimSpace(r.Status)))
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// PlacementRecord is the wire form of a Placement.
type PlacementRecord struct {
	Date   string `json:"date"`
	Period string `json:"period"`
	Time   string `json:"time"`
}

// NewPlacementRecord converts a placement to its record form.
func NewPlacementRecord(p Placement) PlacementRecord {
	return PlacementRecord{
		Date:   dateutil.Format(p.Date),
		Period: p.Period.String(),
		Time:   p.Time.String(),
	}
}

// Placement parses and validates the record.
func (r PlacementRecord) Placement() (Placement, error) {
	if strings.TrimSpace(r.Date) == "" {
		return Placement{}, dateutil.ErrInvalidDateFormat
	}
	date, err := dateutil.ParseDate(r.Date)
	if err != nil {
		return Placement{}, err
	}
	p, err := period.Parse(r.Period)
	if err != nil {
		return Placement{}, err
	}
	clock, err := period.ParseClock(r.Time)
	if err != nil {
		return Placement{}, err
	}
	pl := Placement{Date: date, Period: p, Time: clock}
	if err := pl.Validate(); err != nil {
		return Placement{}, err
	}
	return pl, nil
}

// FieldsRecord is the wire form of a partial update.
type FieldsRecord struct {
	Name     *string `json:"name,omitempty"`
	Icon     *string `json:"icon,omitempty"`
	Time     *string `json:"time,omitempty"`
	Priority *string `json:"priority,omitempty"`
	Status   *string `json:"status,omitempty"`
}

// NewFieldsRecord converts a partial update to its record form.
func NewFieldsRecord(f Fields) FieldsRecord {
	var r FieldsRecord
	r.Name = f.Name
	r.Icon = f.Icon
	if f.Time != nil {
		r.Time = ptr(f.Time.String())
	}
	if f.Priority != nil {
		r.Priority = ptr(f.Priority.String())
	}
	if f.Status != nil {
		r.Status = ptr(string(*f.Status))
	}
	return r
}

// Fields parses and validates the record.
func (r FieldsRecord) Fields() (Fields, error) {
	f := Fields{Name: r.Name, Icon: r.Icon}
	if r.Time != nil {
		c, err := period.ParseClock(*r.Time)
		if err != nil {
			return Fields{}, err
		}
		f.Time = &c
	}
	if r.Priority != nil {
		p, err := ParsePriority(*r.Priority)
		if err != nil {
			return Fields{}, err
		}
		f.Priority = &p
	}
	if r.Status != nil {
		s := Status(strings.ToLower(strings.TrimSpace(*r.Status)))
		f.Status = &s
	}
	if err := f.Validate(); err != nil {
		return Fields{}, err
	}
	return f, nil
}
