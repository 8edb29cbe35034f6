package api

import (
	"context"
)

// Course is a campus course as returned by the API
type Course struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Department  string `json:"department"`
	Capacity    *int   `json:"capacity,omitempty"`
	CreatedBy   string `json:"createdBy,omitempty"`
}

// CourseInput is the payload for creating a course
type CourseInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Department  string `json:"department"`
	Capacity    *int   `json:"capacity"`
	CreatedBy   string `json:"createdBy"`
}

// Enrollment links a student to a course
type Enrollment struct {
	ID        string `json:"id"`
	CourseID  string `json:"courseId"`
	StudentID string `json:"studentId"`
}

// enrollRequest carries the enrolling student
type enrollRequest struct {
	StudentID string `json:"studentId"`
}

// ListCourses returns all courses
func (c *Client) ListCourses(ctx context.Context) ([]Course, error) {
	var courses []Course
	if err := c.get(ctx, "/courses", &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// CreateCourse creates a course (admin action)
func (c *Client) CreateCourse(ctx context.Context, in CourseInput) (Course, error) {
	var course Course
	if err := c.post(ctx, "/courses", in, &course); err != nil {
		return Course{}, err
	}
	return course, nil
}

// CourseEnrollments returns the enrollments of one course
func (c *Client) CourseEnrollments(ctx context.Context, courseID string) ([]Enrollment, error) {
	var enrollments []Enrollment
	if err := c.get(ctx, "/courses/"+courseID+"/enrollments", &enrollments); err != nil {
		return nil, err
	}
	return enrollments, nil
}

// Enroll enrolls a student into a course. A 409 means the student is
// already enrolled.
func (c *Client) Enroll(ctx context.Context, courseID, studentID string) error {
	return c.post(ctx, "/courses/"+courseID+"/enroll", enrollRequest{StudentID: studentID}, nil)
}

// StudentCourses returns the courses a student is enrolled in
func (c *Client) StudentCourses(ctx context.Context, studentID string) ([]Course, error) {
	var courses []Course
	if err := c.get(ctx, "/courses/student/"+studentID, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}
