package format

import (
	"fmt"
	"math/bits"
	"strconv"

	"github.com/arloliu/segar/errs"
)

// ParseSize parses a maximum segment size such as "10K", "32M" or "2G".
//
// Units are powers of 1024 and case-insensitive. "0" (with or without a
// unit) means unlimited and yields Unlimited. A nonzero value must carry a
// unit. Negative values, unknown units, trailing characters and values whose
// multiplication by the unit overflows 64 bits are rejected with errs.ErrParse.
func ParseSize(s string) (uint64, error) {
	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return 0, fmt.Errorf("%w: %q is not a number", errs.ErrParse, s)
	}

	value, err := strconv.ParseUint(s[:digits], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q (overflow)", errs.ErrParse, s)
	}

	suffix := s[digits:]
	if value == 0 {
		if len(suffix) > 1 {
			return 0, fmt.Errorf("%w: %q has trailing characters", errs.ErrParse, s)
		}
		if suffix != "" {
			if _, err := unitOf(suffix[0], s); err != nil {
				return 0, err
			}
		}

		return Unlimited, nil
	}

	if suffix == "" {
		return 0, fmt.Errorf("%w: missing unit in %q (valid are: K | M | G)", errs.ErrParse, s)
	}
	if len(suffix) > 1 {
		return 0, fmt.Errorf("%w: %q has trailing characters", errs.ErrParse, s)
	}

	unit, err := unitOf(suffix[0], s)
	if err != nil {
		return 0, err
	}

	hi, lo := bits.Mul64(value, unit)
	if hi != 0 {
		return 0, fmt.Errorf("%w: %q (overflow)", errs.ErrParse, s)
	}

	return lo, nil
}

func unitOf(c byte, s string) (uint64, error) {
	switch c {
	case 'k', 'K':
		return KiB, nil
	case 'm', 'M':
		return MiB, nil
	case 'g', 'G':
		return GiB, nil
	default:
		return 0, fmt.Errorf("%w: invalid unit %q in %q (valid are: K | M | G)", errs.ErrParse, string(c), s)
	}
}
