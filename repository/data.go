package repository

import "time"

// Row shapes for the two store collections. Documents are mapped onto these
// immediately on read; loosely-typed data never leaves this package.

type CharacterDB struct {
	Name         string    `db:"name"`
	Role         string    `db:"role"`
	Level        int       `db:"level"`
	Overall      int       `db:"overall"`
	Strength     int       `db:"strength"`
	Dexterity    int       `db:"dexterity"`
	Constitution int       `db:"constitution"`
	Intelligence int       `db:"intelligence"`
	Wisdom       int       `db:"wisdom"`
	Mentality    int       `db:"mentality"`
	Guild        string    `db:"guild"`
	DateSaved    time.Time `db:"date_saved"`
}

type CharacterLogDB struct {
	CharacterName string    `db:"character_name"`
	Level         int       `db:"level"`
	Overall       int       `db:"overall"`
	Strength      int       `db:"strength"`
	Dexterity     int       `db:"dexterity"`
	Constitution  int       `db:"constitution"`
	Intelligence  int       `db:"intelligence"`
	Wisdom        int       `db:"wisdom"`
	Mentality     int       `db:"mentality"`
	DateSaved     time.Time `db:"date_saved"`
}
