package domain

import "time"

// Customer represents a registered canteen user.
type Customer struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	RollNumber   string    `json:"rollNumber,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Branch       string    `json:"branch"`
	Year         string    `json:"year"`
	IsTeacher    bool      `json:"isTeacher"`
	CreatedAt    time.Time `json:"createdAt"`
}

// User is the authenticated identity seen by checkout.
type User struct {
	ID string `json:"id"`
}

// Profile is the display profile of an authenticated user.
type Profile struct {
	Name   string `json:"name"`
	Branch string `json:"branch"`
	Year   string `json:"year"`
}

func (c Customer) User() User {
	return User{ID: c.ID}
}

func (c Customer) Profile() Profile {
	return Profile{Name: c.Name, Branch: c.Branch, Year: c.Year}
}
