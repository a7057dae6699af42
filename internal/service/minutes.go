package service

import (
	"fmt"
	"regexp"
	"strconv"

	"golang.org/x/text/width"

	"github.com/pkordes/drivetime/internal/domain"
	"github.com/pkordes/drivetime/internal/maps"
)

var (
	daysRe    = regexp.MustCompile(`(\d+)\s*(?:天|days?)`)
	hoursRe   = regexp.MustCompile(`(\d+)\s*(?:小時|hours?|hrs?)`)
	minutesRe = regexp.MustCompile(`(\d+)\s*(?:分鐘|分|minutes?|mins?)`)
	numberRe  = regexp.MustCompile(`\d+`)
)

// maxMinutes bounds a parsed duration; anything longer is not a drive.
const maxMinutes = 60 * 24 * 365

// ParseMinutes reads a localized duration such as "15 分鐘", "1 小時 5 分鐘",
// "1 天 2 小時" or "1 day 2 hours". Full-width digits are folded first. Text
// with units is summed; text without units falls back to its first integer.
// Text with no digits, or a number too large to be a drive, is an error.
func ParseMinutes(text string) (int, error) {
	s := width.Fold.String(text)

	var total int
	var matched bool
	for _, unit := range []struct {
		re     *regexp.Regexp
		factor int
	}{
		{daysRe, 24 * 60},
		{hoursRe, 60},
		{minutesRe, 1},
	} {
		m := unit.re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		n, err := readCount(m[1], text)
		if err != nil {
			return 0, err
		}
		total += n * unit.factor
		matched = true
	}
	if matched {
		if total > maxMinutes {
			return 0, fmt.Errorf("%w: duration %q out of range", domain.ErrProvider, text)
		}
		return total, nil
	}

	if n := numberRe.FindString(s); n != "" {
		return readCount(n, text)
	}
	return 0, fmt.Errorf("%w: cannot read minutes from %q", domain.ErrProvider, text)
}

func readCount(digits, text string) (int, error) {
	n, err := strconv.Atoi(digits)
	if err != nil || n > maxMinutes {
		return 0, fmt.Errorf("%w: duration %q out of range", domain.ErrProvider, text)
	}
	return n, nil
}

// minutesOf converts a provider duration to whole minutes, rounding down.
// Seconds win over text whenever both are present.
func minutesOf(d maps.Duration) (int, error) {
	if d.HasSeconds {
		return d.Seconds / 60, nil
	}
	return ParseMinutes(d.Text)
}
