package domain

import "errors"

var (
	ErrUserAlreadyExists     = errors.New("user already exists")
	ErrMovieAlreadyExists    = errors.New("movie already exists")
	ErrShowtimeAlreadyExists = errors.New("showtime already exists")
	ErrRecordNotFound        = errors.New("record not found")
	ErrEditConflict          = errors.New("edit conflict")
	ErrSeatAlreadyReserved   = errors.New("one or more seats are already booked")
	ErrSeatOutOfRange        = errors.New("seat coordinates are outside the seat grid")
	ErrInvalidSeatSelection  = errors.New("invalid seat selection")
	ErrTicketAlreadyUsed     = errors.New("ticket has already been used")
)
