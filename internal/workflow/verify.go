package workflow

import "fmt"

// Verify checks that pages holds exactly one classification for each page
// 1..pageCount in ascending order.
func Verify(pages []PageClassification, pageCount int) error {
	if len(pages) != pageCount {
		return fmt.Errorf("%w: %d classifications for %d pages", ErrIntegrityViolation, len(pages), pageCount)
	}

	for i, p := range pages {
		if p.PageNumber != i+1 {
			return fmt.Errorf("%w: position %d holds page %d", ErrIntegrityViolation, i+1, p.PageNumber)
		}
	}

	return nil
}
