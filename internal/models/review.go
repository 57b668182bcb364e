package models

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a buyer's rating of an event. EventTitle and Username are filled
// when the review is read back for display.
type Review struct {
	ID         string    `json:"id"`
	EventID    string    `json:"event"`
	UserID     string    `json:"user"`
	Rating     int       `json:"rating"`
	Text       string    `json:"reviewText"`
	CreatedAt  time.Time `json:"createdAt"`
	EventTitle string    `json:"eventTitle,omitempty"`
	Username   string    `json:"username,omitempty"`
}

func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}
