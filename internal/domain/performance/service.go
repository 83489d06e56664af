package performance

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"hrledger/internal/domain/hrerr"
	"hrledger/internal/domain/records"
)

const aggregate = "performance"

type Service struct {
	records   *records.Store
	reviews   *records.Collection[Review]
	employees EmployeeDirectory
	now       func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(rs *records.Store, employees EmployeeDirectory, opts ...Option) *Service {
	s := &Service{
		records:   rs,
		reviews:   records.NewCollection[Review](rs, ReviewsKey),
		employees: employees,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddReview appends a review dated today. Reviews are never updated or deleted.
func (s *Service) AddReview(ctx context.Context, employeeID, rating int, feedback string) (Review, error) {
	if _, err := s.employees.GetEmployee(ctx, employeeID); err != nil {
		return Review{}, err
	}
	if rating < MinRating || rating > MaxRating {
		return Review{}, fmt.Errorf("rating %d: %w", rating, hrerr.ErrInvalidRating)
	}
	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		return Review{}, fmt.Errorf("feedback: %w", hrerr.ErrInvalidFeedback)
	}

	var created Review
	err := s.records.Critical(ctx, aggregate, func(ctx context.Context) error {
		var err error
		created, err = s.reviews.Add(ctx, Review{
			EmployeeID: employeeID,
			Date:       records.DateOf(s.now()),
			Rating:     rating,
			Feedback:   feedback,
		})
		return err
	})
	return created, err
}

// ListReviews returns the reviews of one employee, or all when employeeID is zero.
func (s *Service) ListReviews(ctx context.Context, employeeID int) ([]Review, error) {
	reviews, err := s.reviews.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if employeeID == 0 {
		return reviews, nil
	}
	out := make([]Review, 0, len(reviews))
	for _, review := range reviews {
		if review.EmployeeID == employeeID {
			out = append(out, review)
		}
	}
	return out, nil
}

// AverageRating is the mean rating of the employee, 0 without reviews.
func (s *Service) AverageRating(ctx context.Context, employeeID int) (float64, error) {
	reviews, err := s.ListReviews(ctx, employeeID)
	if err != nil {
		return 0, err
	}
	avg, _ := average(reviews)
	return avg, nil
}

// Leaderboard ranks every employee by average rating, highest first. Equal
// averages keep storage order.
func (s *Service) Leaderboard(ctx context.Context) ([]Standing, error) {
	employees, err := s.employees.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	byEmployee := map[int][]Review{}
	for _, review := range reviews {
		byEmployee[review.EmployeeID] = append(byEmployee[review.EmployeeID], review)
	}

	board := make([]Standing, 0, len(employees))
	for _, emp := range employees {
		avg, count := average(byEmployee[emp.ID])
		board = append(board, Standing{
			EmployeeID:   emp.ID,
			Name:         emp.Name,
			DepartmentID: emp.DepartmentID,
			AvgRating:    avg,
			ReviewCount:  count,
		})
	}
	slices.SortStableFunc(board, func(a, b Standing) int {
		switch {
		case a.AvgRating > b.AvgRating:
			return -1
		case a.AvgRating < b.AvgRating:
			return 1
		}
		return 0
	})
	return board, nil
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	reviews, err := s.reviews.GetAll(ctx)
	if err != nil {
		return Summary{}, err
	}
	return buildSummary(reviews), nil
}

func buildSummary(reviews []Review) Summary {
	summary := Summary{
		ReviewsTotal:       len(reviews),
		RatingDistribution: map[string]int{},
	}
	reviewed := map[int]struct{}{}
	for _, review := range reviews {
		summary.RatingDistribution[fmt.Sprintf("%d", review.Rating)]++
		reviewed[review.EmployeeID] = struct{}{}
	}
	summary.ReviewedEmployees = len(reviewed)
	summary.AverageRating, _ = average(reviews)
	return summary
}

func average(reviews []Review) (float64, int) {
	if len(reviews) == 0 {
		return 0, 0
	}
	total := 0
	for _, review := range reviews {
		total += review.Rating
	}
	return float64(total) / float64(len(reviews)), len(reviews)
}
