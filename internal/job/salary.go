package job

// SalaryBounds extracts the numeric bounds from an advertised salary range
// such as "$100k - $130k", "90000-110000" or "£45,000". Thousands separators
// and a trailing k multiplier are understood. ok is false when the string
// carries no number at all; a single number is both bounds.
func SalaryBounds(s string) (low, high int, ok bool) {
	nums := make([]int, 0, 2)
	n := 0
	inNumber := false

	flush := func() {
		if inNumber {
			nums = append(nums, n)
		}

		n = 0
		inNumber = false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case c >= '0' && c <= '9':
			n = n*10 + int(c-'0')
			inNumber = true
		case c == ',' && inNumber:
			// thousands separator inside a number
		case (c == 'k' || c == 'K') && inNumber:
			n *= 1000

			flush()
		default:
			flush()
		}
	}

	flush()

	if len(nums) == 0 {
		return 0, 0, false
	}

	low = nums[0]
	high = nums[len(nums)-1]

	if high < low {
		low, high = high, low
	}

	return low, high, true
}

// MatchesSalary reports whether a job's advertised range overlaps the
// search's salary bounds. Jobs without a parseable salary never match a
// salary filter.
func (s Search) MatchesSalary(salaryRange string) bool {
	if s.MinSalary == nil && s.MaxSalary == nil {
		return true
	}

	low, high, ok := SalaryBounds(salaryRange)
	if !ok {
		return false
	}

	if s.MinSalary != nil && high < *s.MinSalary {
		return false
	}

	if s.MaxSalary != nil && low > *s.MaxSalary {
		return false
	}

	return true
}
