package db

import "context"

const getStats = `
SELECT
    (SELECT count(*) FROM persons) AS persons,
    (SELECT count(*) FROM relationships) AS relationships,
    (SELECT count(*) FROM users) AS users,
    (SELECT count(*) FROM tags) AS tags,
    (SELECT count(*) FROM locations) AS locations,
    (SELECT count(*) FROM media) AS media
`

type GetStatsRow struct {
	Persons       int64 `json:"persons"`
	Relationships int64 `json:"relationships"`
	Users         int64 `json:"users"`
	Tags          int64 `json:"tags"`
	Locations     int64 `json:"locations"`
	Media         int64 `json:"media"`
}

func (q *Queries) GetStats(ctx context.Context) (GetStatsRow, error) {
	row := q.db.QueryRow(ctx, getStats)
	var s GetStatsRow
	err := row.Scan(&s.Persons, &s.Relationships, &s.Users, &s.Tags, &s.Locations, &s.Media)
	return s, err
}
