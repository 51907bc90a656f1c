package sale

import "errors"

var (
	ErrSaleNotFound          = errors.New("policy sale not found")
	ErrPolicyNumberExists    = errors.New("policy number already recorded")
	ErrReviewNotFound        = errors.New("client review not found")
	ErrInvalidRating         = errors.New("rating must be between 1 and 5")
	ErrNegativeAmount        = errors.New("amount and broker fee must be non-negative")
	ErrCrossSoldPolicyNumber = errors.New("cross-sold policy must have a different policy number")
	ErrInvalidDateRange      = errors.New("from must not be after to")
)
