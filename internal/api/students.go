package api

import (
	"context"

	"github.com/campuskit/campusctl/internal/user"
)

// pointsRequest carries the points to add to a student
type pointsRequest struct {
	Points int `json:"points"`
}

// ListStudents returns all student accounts, points included
func (c *Client) ListStudents(ctx context.Context) ([]user.Record, error) {
	var students []user.Record
	if err := c.get(ctx, "/students", &students); err != nil {
		return nil, err
	}
	return students, nil
}

// AddPoints adds points to a student (teacher action)
func (c *Client) AddPoints(ctx context.Context, studentID string, points int) error {
	return c.put(ctx, "/students/"+studentID+"/points", pointsRequest{Points: points}, nil)
}

// Ranking returns all students ordered by points descending, ties broken
// alphabetically
func (c *Client) Ranking(ctx context.Context) ([]user.Record, error) {
	students, err := c.ListStudents(ctx)
	if err != nil {
		return nil, err
	}
	user.SortByRank(students)
	return students, nil
}
