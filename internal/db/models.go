package db

import (
	"encoding/json"
	"time"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

type Person struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Bio         *string         `json:"bio"`
	PhotoURL    *string         `json:"photo_url"`
	BirthYear   *int32          `json:"birth_year"`
	DeathYear   *int32          `json:"death_year"`
	Gender      *string         `json:"gender"`
	SocialLinks json.RawMessage `json:"social_links"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type Relationship struct {
	ID           int64  `json:"id"`
	PersonAID    int64  `json:"person_a_id"`
	PersonBID    int64  `json:"person_b_id"`
	RelationType string `json:"relation_type"`
	StartedYear  *int32 `json:"started_year"`
	EndedYear    *int32 `json:"ended_year"`
}

type Tag struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

type Location struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Country *string `json:"country"`
	Region  *string `json:"region"`
}

type Media struct {
	ID          int64     `json:"id"`
	PersonID    int64     `json:"person_id"`
	Type        string    `json:"type"`
	URL         string    `json:"url"`
	FileKey     *string   `json:"file_key,omitempty"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
