package timelog

import "errors"

var (
	ErrAlreadyClockedIn  = errors.New("you are already clocked in")
	ErrNotClockedIn      = errors.New("you are not clocked in")
	ErrAlreadyOnBreak    = errors.New("you are already on break")
	ErrBreakNotStarted   = errors.New("no break in progress")
	ErrBreakAlreadyTaken = errors.New("a break has already been taken in this session")
	ErrSessionNotFound   = errors.New("time session not found")
	ErrActionInProgress  = errors.New("another clock action is in progress, try again")
	ErrInvalidDateRange  = errors.New("from must not be after to")
)
