package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/sale"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/database"
)

type reviewRepositoryImpl struct {
	db *database.DB
}

func NewReviewRepository(db *database.DB) sale.ReviewRepository {
	return &reviewRepositoryImpl{db: db}
}

func (r *reviewRepositoryImpl) Create(ctx context.Context, review sale.ClientReview) (sale.ClientReview, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO client_reviews (employee_id, client_name, rating, comment, review_date, bonus)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, employee_id, client_name, rating, comment, review_date, bonus, created_at
	`

	var c sale.ClientReview
	err := q.QueryRow(ctx, query,
		review.EmployeeID, review.ClientName, review.Rating, review.Comment, review.ReviewDate, review.Bonus,
	).Scan(&c.ID, &c.EmployeeID, &c.ClientName, &c.Rating, &c.Comment, &c.ReviewDate, &c.Bonus, &c.CreatedAt)
	if err != nil {
		return sale.ClientReview{}, fmt.Errorf("failed to create client review: %w", err)
	}
	return c, nil
}

func (r *reviewRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]sale.ClientReview, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, client_name, rating, comment, review_date, bonus, created_at
		FROM client_reviews
		WHERE employee_id = $1 AND review_date BETWEEN $2 AND $3
		ORDER BY review_date, created_at
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list client reviews: %w", err)
	}
	defer rows.Close()

	var reviews []sale.ClientReview
	for rows.Next() {
		var c sale.ClientReview
		if err := rows.Scan(&c.ID, &c.EmployeeID, &c.ClientName, &c.Rating, &c.Comment, &c.ReviewDate, &c.Bonus, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan client review: %w", err)
		}
		reviews = append(reviews, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate client reviews: %w", err)
	}
	return reviews, nil
}
