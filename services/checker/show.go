package checker

import (
	"fmt"
	"strings"
)

// Source identifies the ticket-broker site a show was scraped from.
type Source string

const (
	SourceHouseSeats Source = "HouseSeats"
	SourceFirstTix   Source = "1stTix"
)

// Show is one bookable live-event listing from one source. It is only
// ever constructed through NewShow, so downstream code can rely on
// Name, Date and Link being present.
type Show struct {
	Name   string `json:"name"`
	Date   string `json:"date"`
	Source Source `json:"source"`
	Link   string `json:"link"`
	Image  string `json:"image,omitempty"`
	Rare   bool   `json:"rare"`
}

// NewShow builds a canonical show record from scraped fields, trimming
// whitespace. ok is false when a required field is missing, those
// records are discarded rather than propagated.
func NewShow(source Source, name, date, link, image string) (Show, bool) {
	name = strings.TrimSpace(name)
	date = strings.TrimSpace(date)
	link = strings.TrimSpace(link)
	if name == "" || date == "" || link == "" {
		return Show{}, false
	}
	return Show{
		Name:   name,
		Date:   date,
		Source: source,
		Link:   link,
		Image:  strings.TrimSpace(image),
	}, true
}

// Key is the notification identity: the same production on a different
// date is a different key and notifies again.
func (s Show) Key() string {
	return fmt.Sprintf("%s|%s|%s", s.Source, s.Name, s.Date)
}

// NameKey is the rarity identity: date-insensitive, so ten time slots
// of one production share a single history entry.
func (s Show) NameKey() string {
	return fmt.Sprintf("%s|%s", s.Source, strings.ToLower(s.Name))
}
