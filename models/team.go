package models

import "time"

// Region представляет соревновательный регион команды.
type Region string

const (
	RegionAmericas Region = "Americas"
	RegionEMEA     Region = "EMEA"
	RegionPacific  Region = "Pacific"
	RegionChina    Region = "China"
)

// Team представляет команду лиги.
type Team struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Tag       string    `json:"tag" db:"tag"`
	Region    Region    `json:"region" db:"region"`
	Rating    int       `json:"rating" db:"rating"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
