package domain

import "time"

type User struct {
	ID         int64
	TelegramID int64
	IsAdmin    bool
	FirstName  string
	Username   string

	// Active team selection; empty until the user picks one with /team.
	TeamID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) HasTeam() bool {
	return u.TeamID != ""
}
