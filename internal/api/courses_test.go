package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/campusctl/internal/errors"
	"github.com/campuskit/campusctl/internal/user"
)

func TestEnrollAlreadyEnrolled(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/courses/c1/enroll", r.URL.Path)

		var req enrollRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "s1", req.StudentID)

		http.Error(w, "Already enrolled", http.StatusConflict)
	}))
	defer srv.Close()

	err := client.Enroll(context.Background(), "c1", "s1")
	require.Error(t, err)
	assert.True(t, errors.IsConflict(err))
}

func TestEnrollCourseGone(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Course not found", http.StatusNotFound)
	}))
	defer srv.Close()

	err := client.Enroll(context.Background(), "gone", "s1")
	require.Error(t, err)
	require.True(t, errors.IsNotFound(err))
	assert.Contains(t, err.Error(), "course not found")
}

func TestStudentCourses(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/courses/student/s1", r.URL.Path)
		json.NewEncoder(w).Encode([]Course{{ID: "c1", Title: "Databases"}})
	}))
	defer srv.Close()

	courses, err := client.StudentCourses(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Databases", courses[0].Title)
}

func TestCreateCourse(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/courses", r.URL.Path)

		var in CourseInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Operating Systems", in.Title)

		json.NewEncoder(w).Encode(Course{ID: "c9", Title: in.Title, Department: in.Department})
	}))
	defer srv.Close()

	course, err := client.CreateCourse(context.Background(), CourseInput{Title: "Operating Systems", Department: "CSE"})
	require.NoError(t, err)
	assert.Equal(t, "c9", course.ID)
}

func TestAddPoints(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/students/s1/points", r.URL.Path)

		var req pointsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 25, req.Points)
	}))
	defer srv.Close()

	require.NoError(t, client.AddPoints(context.Background(), "s1", 25))
}

func TestRankingOrdersByPoints(t *testing.T) {
	p := func(n int) *int { return &n }

	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/students", r.URL.Path)
		json.NewEncoder(w).Encode([]user.Record{
			{ID: "1", Email: "a@x.com", Role: user.RoleStudent, Name: "Low", Points: p(10)},
			{ID: "2", Email: "b@x.com", Role: user.RoleStudent, Name: "High", Points: p(99)},
			{ID: "3", Email: "c@x.com", Role: user.RoleStudent, Name: "None"},
		})
	}))
	defer srv.Close()

	ranked, err := client.Ranking(context.Background())
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, "High", ranked[0].Name)
	assert.Equal(t, "None", ranked[2].Name)
}
