package db

import "context"

const listMediaForPerson = `
SELECT id, person_id, type, url, file_key, title, description, created_at
FROM media
WHERE person_id = $1
ORDER BY id
`

func (q *Queries) ListMediaForPerson(ctx context.Context, personID int64) ([]Media, error) {
	rows, err := q.db.Query(ctx, listMediaForPerson, personID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Media
	for rows.Next() {
		var m Media
		if err := rows.Scan(&m.ID, &m.PersonID, &m.Type, &m.URL, &m.FileKey, &m.Title, &m.Description, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

const listAllMedia = `
SELECT id, person_id, type, url, file_key, title, description, created_at
FROM media
ORDER BY id
`

func (q *Queries) ListAllMedia(ctx context.Context) ([]Media, error) {
	rows, err := q.db.Query(ctx, listAllMedia)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Media
	for rows.Next() {
		var m Media
		if err := rows.Scan(&m.ID, &m.PersonID, &m.Type, &m.URL, &m.FileKey, &m.Title, &m.Description, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

const listUnmirroredMedia = `
SELECT id, person_id, type, url, file_key, title, description, created_at
FROM media
WHERE file_key IS NULL AND (url LIKE 'http://%' OR url LIKE 'https://%')
ORDER BY person_id, id
`

func (q *Queries) ListUnmirroredMedia(ctx context.Context) ([]Media, error) {
	rows, err := q.db.Query(ctx, listUnmirroredMedia)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Media
	for rows.Next() {
		var m Media
		if err := rows.Scan(&m.ID, &m.PersonID, &m.Type, &m.URL, &m.FileKey, &m.Title, &m.Description, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

const getMedia = `
SELECT id, person_id, type, url, file_key, title, description, created_at
FROM media
WHERE id = $1
`

func (q *Queries) GetMedia(ctx context.Context, id int64) (Media, error) {
	row := q.db.QueryRow(ctx, getMedia, id)
	var m Media
	err := row.Scan(&m.ID, &m.PersonID, &m.Type, &m.URL, &m.FileKey, &m.Title, &m.Description, &m.CreatedAt)
	return m, err
}

const createMedia = `
INSERT INTO media (person_id, type, url, title, description)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, person_id, type, url, file_key, title, description, created_at
`

type CreateMediaParams struct {
	PersonID    int64
	Type        string
	URL         string
	Title       *string
	Description *string
}

func (q *Queries) CreateMedia(ctx context.Context, arg CreateMediaParams) (Media, error) {
	row := q.db.QueryRow(ctx, createMedia, arg.PersonID, arg.Type, arg.URL, arg.Title, arg.Description)
	var m Media
	err := row.Scan(&m.ID, &m.PersonID, &m.Type, &m.URL, &m.FileKey, &m.Title, &m.Description, &m.CreatedAt)
	return m, err
}

const setMediaFileKey = `
UPDATE media SET file_key = $2 WHERE id = $1
`

type SetMediaFileKeyParams struct {
	ID      int64
	FileKey string
}

func (q *Queries) SetMediaFileKey(ctx context.Context, arg SetMediaFileKeyParams) error {
	_, err := q.db.Exec(ctx, setMediaFileKey, arg.ID, arg.FileKey)
	return err
}

const deleteMedia = `
DELETE FROM media WHERE id = $1
`

func (q *Queries) DeleteMedia(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, deleteMedia, id)
	return err
}
