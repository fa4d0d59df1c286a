package punch

import "github.com/gama-center/ponto-backend-go/internal/domain/user"

// Next determines the next expected punch kind and its 1-based ordinal from
// the punches already accepted today. Only non-absence punches advance the
// sequence; the count is what matters, not max(ordinal), so a day with ordinal
// gaps left behind by justification approvals still sequences correctly.
func Next(todayPunches []Punch, role user.Role) (Kind, int) {
	count := 0
	for _, p := range todayPunches {
		if p.Kind != KindAbsence {
			count++
		}
	}

	if role == user.RoleRestricted {
		// Two-punch day: entry then exit, saturating at exit.
		if count == 0 {
			return KindEntry, count + 1
		}
		return KindExit, count + 1
	}

	switch count {
	case 0:
		return KindEntry, count + 1
	case 1:
		return KindLunchOut, count + 1
	case 2:
		return KindLunchIn, count + 1
	default:
		return KindExit, count + 1
	}
}

// CountReal returns the number of non-absence punches, the quantity the daily
// quota is enforced against.
func CountReal(punches []Punch) int {
	count := 0
	for _, p := range punches {
		if p.Kind != KindAbsence {
			count++
		}
	}
	return count
}
