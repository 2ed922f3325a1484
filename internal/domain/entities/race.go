package entities

import "time"

// Race holds the public information about the event shown on the site.
type Race struct {
	Name       string        `toml:"name" json:"name"`
	Edition    int           `toml:"edition" json:"edition"`
	EventDate  time.Time     `toml:"event_date" json:"event_date"`
	Location   string        `toml:"location" json:"location"`
	City       string        `toml:"city" json:"city"`
	Categories []Category    `toml:"categories" json:"categories"`
	Schedule   []ScheduleRow `toml:"schedule" json:"schedule"`
	Winners    []Winner      `toml:"winners" json:"winners"`
	Sponsors   []Sponsor     `toml:"sponsors" json:"sponsors"`
	Statistics Statistics    `toml:"statistics" json:"statistics"`
	Milestones []Milestone   `toml:"milestones" json:"milestones"`
	Benefits   []string      `toml:"benefits" json:"benefits"`
	Contact    Contact       `toml:"contact" json:"contact"`
	Route      Route         `toml:"route" json:"route"`
}

type Category struct {
	Name        string `toml:"name" json:"name"`
	Description string `toml:"description" json:"description"`
	Price       string `toml:"price" json:"price"`
	Details     string `toml:"details" json:"details"`
}

type ScheduleRow struct {
	Time     string `toml:"time" json:"time"`
	Activity string `toml:"activity" json:"activity"`
}

type Winner struct {
	Name      string `toml:"name" json:"name"`
	Category  string `toml:"category" json:"category"`
	Year      string `toml:"year" json:"year"`
	Time      string `toml:"time" json:"time"`
	Specialty string `toml:"specialty" json:"specialty"`
}

type Sponsor struct {
	Name string `toml:"name" json:"name"`
	Tier string `toml:"tier" json:"tier"`
}

type Statistics struct {
	PreviousParticipants   int `toml:"previous_participants" json:"previous_participants"`
	TotalEditions          int `toml:"total_editions" json:"total_editions"`
	CharityFundsRaised     int `toml:"charity_funds_raised" json:"charity_funds_raised"`
	HospitalsParticipating int `toml:"hospitals_participating" json:"hospitals_participating"`
	VolunteersInvolved     int `toml:"volunteers_involved" json:"volunteers_involved"`
}

type Milestone struct {
	Year         string `toml:"year" json:"year"`
	Title        string `toml:"title" json:"title"`
	Description  string `toml:"description" json:"description"`
	Participants int    `toml:"participants" json:"participants"`
}

type Contact struct {
	Phones  []string          `toml:"phones" json:"phones"`
	Emails  []string          `toml:"emails" json:"emails"`
	Address string            `toml:"address" json:"address"`
	City    string            `toml:"city" json:"city"`
	Social  map[string]string `toml:"social" json:"social"`
}

type Route struct {
	Start       string   `toml:"start" json:"start"`
	KeyPoints   []string `toml:"key_points" json:"key_points"`
	Finish      string   `toml:"finish" json:"finish"`
	Description string   `toml:"description" json:"description"`
}

// Countdown is the time remaining until the start of the race.
type Countdown struct {
	Days      int  `json:"days"`
	Hours     int  `json:"hours"`
	Minutes   int  `json:"minutes"`
	Seconds   int  `json:"seconds"`
	IsExpired bool `json:"is_expired"`
}

// CountdownTo computes the remaining time between now and t.
func CountdownTo(t, now time.Time) Countdown {
	d := t.Sub(now)
	if d <= 0 {
		return Countdown{IsExpired: true}
	}
	total := int(d / time.Second)
	return Countdown{
		Days:    total / 86400,
		Hours:   (total % 86400) / 3600,
		Minutes: (total % 3600) / 60,
		Seconds: total % 60,
	}
}
