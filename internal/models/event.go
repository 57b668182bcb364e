package models

import "time"

type Event struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	Date           time.Time `json:"date"`
	Price          Cents     `json:"price"`
	AvailableSeats int       `json:"availableSeats"`
	BookedSeats    int       `json:"bookedSeats"`
	OrganizerID    string    `json:"organizer"`
	ImageURL       string    `json:"imageUrl"`
	CreatedAt      time.Time `json:"createdAt"`
}

// RemainingSeats never goes below zero, even for an overbooked event.
func (e *Event) RemainingSeats() int {
	return max(e.AvailableSeats-e.BookedSeats, 0)
}

func (e *Event) IsOverbooked() bool {
	return e.BookedSeats > e.AvailableSeats
}

func (e *Event) IsFree() bool {
	return e.Price == 0
}

type EventFilter struct {
	Category    string
	Location    string
	Name        string
	OrganizerID string
}
