package db

import (
	"context"
	"encoding/json"
)

const listPersons = `
SELECT id, name, bio, photo_url, birth_year, death_year, gender, social_links, created_at, updated_at
FROM persons
ORDER BY id
`

func (q *Queries) ListPersons(ctx context.Context) ([]Person, error) {
	rows, err := q.db.Query(ctx, listPersons)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Person
	for rows.Next() {
		var p Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Bio, &p.PhotoURL, &p.BirthYear, &p.DeathYear, &p.Gender, &p.SocialLinks, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

const getPerson = `
SELECT id, name, bio, photo_url, birth_year, death_year, gender, social_links, created_at, updated_at
FROM persons
WHERE id = $1
`

func (q *Queries) GetPerson(ctx context.Context, id int64) (Person, error) {
	row := q.db.QueryRow(ctx, getPerson, id)
	var p Person
	err := row.Scan(&p.ID, &p.Name, &p.Bio, &p.PhotoURL, &p.BirthYear, &p.DeathYear, &p.Gender, &p.SocialLinks, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const createPerson = `
INSERT INTO persons (name, bio, photo_url, birth_year, death_year, gender, social_links)
VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, '{}'::jsonb))
RETURNING id, name, bio, photo_url, birth_year, death_year, gender, social_links, created_at, updated_at
`

type CreatePersonParams struct {
	Name        string
	Bio         *string
	PhotoURL    *string
	BirthYear   *int32
	DeathYear   *int32
	Gender      *string
	SocialLinks json.RawMessage
}

func (q *Queries) CreatePerson(ctx context.Context, arg CreatePersonParams) (Person, error) {
	row := q.db.QueryRow(ctx, createPerson,
		arg.Name, arg.Bio, arg.PhotoURL, arg.BirthYear, arg.DeathYear, arg.Gender, arg.SocialLinks)
	var p Person
	err := row.Scan(&p.ID, &p.Name, &p.Bio, &p.PhotoURL, &p.BirthYear, &p.DeathYear, &p.Gender, &p.SocialLinks, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const updatePerson = `
UPDATE persons
SET name = COALESCE($2, name),
    bio = COALESCE($3, bio),
    photo_url = COALESCE($4, photo_url),
    birth_year = COALESCE($5, birth_year),
    death_year = COALESCE($6, death_year),
    gender = COALESCE($7, gender),
    social_links = COALESCE($8, social_links),
    updated_at = now()
WHERE id = $1
RETURNING id, name, bio, photo_url, birth_year, death_year, gender, social_links, created_at, updated_at
`

type UpdatePersonParams struct {
	ID          int64
	Name        *string
	Bio         *string
	PhotoURL    *string
	BirthYear   *int32
	DeathYear   *int32
	Gender      *string
	SocialLinks json.RawMessage
}

func (q *Queries) UpdatePerson(ctx context.Context, arg UpdatePersonParams) (Person, error) {
	row := q.db.QueryRow(ctx, updatePerson,
		arg.ID, arg.Name, arg.Bio, arg.PhotoURL, arg.BirthYear, arg.DeathYear, arg.Gender, arg.SocialLinks)
	var p Person
	err := row.Scan(&p.ID, &p.Name, &p.Bio, &p.PhotoURL, &p.BirthYear, &p.DeathYear, &p.Gender, &p.SocialLinks, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const deletePerson = `
DELETE FROM persons WHERE id = $1
`

func (q *Queries) DeletePerson(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, deletePerson, id)
	return err
}

const searchPersons = `
SELECT DISTINCT ON (p.id) p.id, p.name, p.bio, p.photo_url, p.birth_year, p.gender,
    CASE
        WHEN p.name ILIKE '%' || $1 || '%' THEN 'name'
        WHEN p.bio ILIKE '%' || $1 || '%' THEN 'bio'
        WHEN t.name ILIKE '%' || $1 || '%' THEN 'tag'
        ELSE 'location'
    END AS match_type
FROM persons p
LEFT JOIN person_tags pt ON pt.person_id = p.id
LEFT JOIN tags t ON t.id = pt.tag_id
LEFT JOIN person_locations pl ON pl.person_id = p.id
LEFT JOIN locations l ON l.id = pl.location_id
WHERE p.name ILIKE '%' || $1 || '%'
   OR p.bio ILIKE '%' || $1 || '%'
   OR t.name ILIKE '%' || $1 || '%'
   OR l.name ILIKE '%' || $1 || '%'
ORDER BY p.id
LIMIT 50
`

type SearchPersonsRow struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Bio       *string `json:"bio"`
	PhotoURL  *string `json:"photo_url"`
	BirthYear *int32  `json:"birth_year"`
	Gender    *string `json:"gender"`
	MatchType string  `json:"match_type"`
}

func (q *Queries) SearchPersons(ctx context.Context, query string) ([]SearchPersonsRow, error) {
	rows, err := q.db.Query(ctx, searchPersons, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []SearchPersonsRow
	for rows.Next() {
		var r SearchPersonsRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Bio, &r.PhotoURL, &r.BirthYear, &r.Gender, &r.MatchType); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

const listPersonTags = `
SELECT pt.person_id, t.id, t.name, t.color
FROM person_tags pt
JOIN tags t ON t.id = pt.tag_id
ORDER BY pt.person_id, t.name
`

type PersonTagRow struct {
	PersonID int64
	Tag      Tag
}

func (q *Queries) ListPersonTags(ctx context.Context) ([]PersonTagRow, error) {
	rows, err := q.db.Query(ctx, listPersonTags)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PersonTagRow
	for rows.Next() {
		var r PersonTagRow
		if err := rows.Scan(&r.PersonID, &r.Tag.ID, &r.Tag.Name, &r.Tag.Color); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

const listPersonLocations = `
SELECT pl.person_id, l.id, l.name, l.country, l.region
FROM person_locations pl
JOIN locations l ON l.id = pl.location_id
ORDER BY pl.person_id, l.name
`

type PersonLocationRow struct {
	PersonID int64
	Location Location
}

func (q *Queries) ListPersonLocations(ctx context.Context) ([]PersonLocationRow, error) {
	rows, err := q.db.Query(ctx, listPersonLocations)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PersonLocationRow
	for rows.Next() {
		var r PersonLocationRow
		if err := rows.Scan(&r.PersonID, &r.Location.ID, &r.Location.Name, &r.Location.Country, &r.Location.Region); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}
