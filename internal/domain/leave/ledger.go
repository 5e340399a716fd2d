package leave

import "fmt"

// Commit debits amount from the counter matching category. A debit that
// would push a counter negative is a ConsistencyError: the evaluator already
// guaranteed sufficiency, so an underflow here means a stale read slipped
// through and the transaction must abort rather than clamp.
func Commit(ent Entitlement, category Category, amount float64) (Entitlement, error) {
	debit := int(amount)
	if debit < 0 {
		return ent, &ConsistencyError{Detail: fmt.Sprintf("negative debit %v", amount)}
	}
	switch category {
	case CategoryAnnual:
		if debit > ent.AnnualDays {
			return ent, &ConsistencyError{Detail: fmt.Sprintf("annual balance underflow: %d - %d", ent.AnnualDays, debit)}
		}
		ent.AnnualDays -= debit
	case CategoryCasual:
		if debit > ent.CasualDays {
			return ent, &ConsistencyError{Detail: fmt.Sprintf("casual balance underflow: %d - %d", ent.CasualDays, debit)}
		}
		ent.CasualDays -= debit
	case CategoryShort:
		if debit > ent.ShortCredits {
			return ent, &ConsistencyError{Detail: fmt.Sprintf("short credit underflow: %d - %d", ent.ShortCredits, debit)}
		}
		ent.ShortCredits -= debit
	default:
		return ent, ErrInvalidCategory
	}
	return ent, nil
}

// Reverse credits amount back to the counter matching category, undoing an
// earlier Commit when a pending request is rejected or withdrawn.
func Reverse(ent Entitlement, category Category, amount float64) (Entitlement, error) {
	credit := int(amount)
	if credit < 0 {
		return ent, &ConsistencyError{Detail: fmt.Sprintf("negative credit %v", amount)}
	}
	switch category {
	case CategoryAnnual:
		ent.AnnualDays += credit
	case CategoryCasual:
		ent.CasualDays += credit
	case CategoryShort:
		ent.ShortCredits += credit
	default:
		return ent, ErrInvalidCategory
	}
	return ent, nil
}

// DebitFor recomputes the amount a request debited when it was applied,
// keyed by its stored category and duration. Short leave records hours but
// always costs exactly one credit.
func DebitFor(category Category, duration float64) float64 {
	if category == CategoryShort {
		return shortLeaveCreditCost
	}
	return duration
}
