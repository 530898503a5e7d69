package game

import (
	"errors"
	"fmt"
)

// Board construction errors.
var (
	// ErrInvalidBoardSize indicates the grid does not hold a positive even number of cards.
	ErrInvalidBoardSize = errors.New("invalid board size")

	// ErrInsufficientAssets indicates there are fewer than rows*cols/2 distinct sounds.
	ErrInsufficientAssets = errors.New("insufficient sound assets")
)

// BoardSizeError reports a grid whose card count is odd or not positive.
type BoardSizeError struct {
	Rows int
	Cols int
}

// Error implements the error interface.
func (e *BoardSizeError) Error() string {
	if e.Rows <= 0 || e.Cols <= 0 {
		return fmt.Sprintf("invalid board size %dx%d: rows and columns must be positive", e.Rows, e.Cols)
	}
	return fmt.Sprintf("invalid board size %dx%d: number of cards must be even, got %d", e.Rows, e.Cols, e.Rows*e.Cols)
}

// Is makes errors.Is(err, ErrInvalidBoardSize) true.
func (e *BoardSizeError) Is(target error) bool {
	return target == ErrInvalidBoardSize
}

// InsufficientAssetsError reports a grid larger than the sound pool can pair.
type InsufficientAssetsError struct {
	Cards     int
	Available int
}

// Error implements the error interface.
func (e *InsufficientAssetsError) Error() string {
	return fmt.Sprintf("not enough sounds for %d cards: %d sounds allow %d cards at maximum",
		e.Cards, e.Available, e.Available*2)
}

// Is makes errors.Is(err, ErrInsufficientAssets) true.
func (e *InsufficientAssetsError) Is(target error) bool {
	return target == ErrInsufficientAssets
}

// ValidateGrid checks rows x cols against a pool of available sounds.
// It returns a *BoardSizeError or an *InsufficientAssetsError.
func ValidateGrid(rows, cols, available int) error {
	if rows <= 0 || cols <= 0 || (rows*cols)%2 != 0 {
		return &BoardSizeError{Rows: rows, Cols: cols}
	}
	if rows*cols > 2*available {
		return &InsufficientAssetsError{Cards: rows * cols, Available: available}
	}
	return nil
}
