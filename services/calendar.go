package services

import (
	"time"

	"allure-backend/utils"
)

// Calendar decides what "today" is for the boutique.
type Calendar struct {
	Loc *time.Location
	Now func() time.Time
}

func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{Loc: loc, Now: time.Now}
}

// Today is the current calendar day in the boutique's zone, as midnight UTC.
func (c Calendar) Today() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	loc := c.Loc
	if loc == nil {
		loc = time.UTC
	}
	return utils.CivilDay(now().In(loc))
}
