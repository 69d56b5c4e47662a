package model

import (
	"errors"
	"strings"
	"time"
)

type BaseResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// Roles a character can hold. The store is expected to only ever contain
// these values.
var Roles = []string{"Tank", "Bard", "Cleric", "Mage", "Ranger", "Fighter"}

func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

type Character struct {
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Level        int       `json:"level"`
	Overall      int       `json:"overall"`
	Strength     int       `json:"strength"`
	Dexterity    int       `json:"dexterity"`
	Constitution int       `json:"constitution"`
	Intelligence int       `json:"intelligence"`
	Wisdom       int       `json:"wisdom"`
	Mentality    int       `json:"mentality"`
	Guild        string    `json:"guild"`
	DateSaved    time.Time `json:"date_saved"`
}

// AttributeSum is the authoritative overall score. The stored overall column
// is never trusted when the six attributes are available.
func (c *Character) AttributeSum() int {
	return c.Strength + c.Dexterity + c.Constitution + c.Intelligence + c.Wisdom + c.Mentality
}

type CharacterLog struct {
	Level        int       `json:"level"`
	Overall      int       `json:"overall"`
	Strength     int       `json:"strength"`
	Dexterity    int       `json:"dexterity"`
	Constitution int       `json:"constitution"`
	Intelligence int       `json:"intelligence"`
	Wisdom       int       `json:"wisdom"`
	Mentality    int       `json:"mentality"`
	DateSaved    time.Time `json:"date_saved"`
}

func (l *CharacterLog) AttributeSum() int {
	return l.Strength + l.Dexterity + l.Constitution + l.Intelligence + l.Wisdom + l.Mentality
}

// CharacterProfile is the by-name query result: the current snapshot plus
// the most recent history entries, newest first.
type CharacterProfile struct {
	Character Character      `json:"character"`
	Logs      []CharacterLog `json:"logs"`
}

type InviteAPI struct {
	Name string `json:"name"`
}

func (i *InviteAPI) Validate() error {
	if len(strings.TrimSpace(i.Name)) <= 2 {
		return errors.New("name must be longer than 2 characters")
	}
	return nil
}

type InviteListResponse struct {
	Names []string `json:"names"`
}

type InviteMutationResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Names   []string `json:"names,omitempty"`
}
