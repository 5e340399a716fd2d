package leave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitDebitsMatchingCounter(t *testing.T) {
	ent := Entitlement{AnnualDays: 10, CasualDays: 7, ShortCredits: 2}

	debited, err := Commit(ent, CategoryAnnual, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, debited.AnnualDays)
	assert.Equal(t, 7, debited.CasualDays)
	assert.Equal(t, 2, debited.ShortCredits)

	debited, err = Commit(ent, CategoryShort, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, debited.ShortCredits)
}

func TestCommitUnderflowIsConsistencyError(t *testing.T) {
	ent := Entitlement{AnnualDays: 2}

	_, err := Commit(ent, CategoryAnnual, 3)
	var consistency *ConsistencyError
	require.ErrorAs(t, err, &consistency)
}

func TestCommitNegativeAmount(t *testing.T) {
	_, err := Commit(Entitlement{AnnualDays: 5}, CategoryAnnual, -1)
	var consistency *ConsistencyError
	require.ErrorAs(t, err, &consistency)
}

func TestCommitUnknownCategory(t *testing.T) {
	_, err := Commit(Entitlement{}, Category("Sabbatical"), 1)
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestReverseUndoesCommit(t *testing.T) {
	ent := Entitlement{AnnualDays: 10, CasualDays: 7, ShortCredits: 2}

	for _, tc := range []struct {
		category Category
		amount   float64
	}{
		{CategoryAnnual, 3},
		{CategoryCasual, 2},
		{CategoryShort, 1},
	} {
		debited, err := Commit(ent, tc.category, tc.amount)
		require.NoError(t, err)
		restored, err := Reverse(debited, tc.category, tc.amount)
		require.NoError(t, err)
		assert.Equal(t, ent, restored, "category %s", tc.category)
	}
}

func TestDebitFor(t *testing.T) {
	assert.Equal(t, 3.0, DebitFor(CategoryAnnual, 3))
	assert.Equal(t, 2.0, DebitFor(CategoryCasual, 2))
	// Short leave records hours but costs a flat credit.
	assert.Equal(t, 1.0, DebitFor(CategoryShort, 1.5))
}
