package db

import "context"

const listRelationships = `
SELECT id, person_a_id, person_b_id, relation_type, started_year, ended_year
FROM relationships
ORDER BY id
`

func (q *Queries) ListRelationships(ctx context.Context) ([]Relationship, error) {
	rows, err := q.db.Query(ctx, listRelationships)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Relationship
	for rows.Next() {
		var r Relationship
		if err := rows.Scan(&r.ID, &r.PersonAID, &r.PersonBID, &r.RelationType, &r.StartedYear, &r.EndedYear); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

const createRelationship = `
INSERT INTO relationships (person_a_id, person_b_id, relation_type, started_year, ended_year)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, person_a_id, person_b_id, relation_type, started_year, ended_year
`

type CreateRelationshipParams struct {
	PersonAID    int64
	PersonBID    int64
	RelationType string
	StartedYear  *int32
	EndedYear    *int32
}

func (q *Queries) CreateRelationship(ctx context.Context, arg CreateRelationshipParams) (Relationship, error) {
	row := q.db.QueryRow(ctx, createRelationship,
		arg.PersonAID, arg.PersonBID, arg.RelationType, arg.StartedYear, arg.EndedYear)
	var r Relationship
	err := row.Scan(&r.ID, &r.PersonAID, &r.PersonBID, &r.RelationType, &r.StartedYear, &r.EndedYear)
	return r, err
}

const deleteRelationship = `
DELETE FROM relationships WHERE id = $1
`

func (q *Queries) DeleteRelationship(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, deleteRelationship, id)
	return err
}
