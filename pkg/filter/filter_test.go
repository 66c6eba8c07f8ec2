package filter

import (
	"testing"

	"github.com/nchandra/callscope/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLogs() []models.CallLog {
	return []models.CallLog{
		{ID: "1", CallDatetime: "2025-03-10T09:00:00", StaffName: "Priya Sharma", Score: models.ParseScore("8/10"), RawScore: "8/10"},
		{ID: "2", CallDatetime: "2025-03-11T14:00:00", StaffName: "Arun Mehta", Score: models.ParseScore("10/13"), RawScore: "10/13"},
		{ID: "3", CallDatetime: "2025-03-12T16:30:00", StaffName: "priyanka rao", Score: models.ParseScore("N/A"), RawScore: "N/A"},
		{ID: "4", CallDatetime: "2025-03-12T17:00:00", StaffName: "Dev Patel", Score: models.ScoreFromNumber(10), RawScore: "10"},
	}
}

func TestApply_ZeroCriteriaReturnsAll(t *testing.T) {
	logs := sampleLogs()
	got := Apply(logs, Criteria{})
	require.Len(t, got, len(logs))
	assert.Equal(t, logs, got)
}

func TestApply_DateRange(t *testing.T) {
	got := Apply(sampleLogs(), Criteria{From: "2025-03-11", To: "2025-03-12"})
	require.Len(t, got, 3)
	assert.Equal(t, "2", got[0].ID)
	assert.Equal(t, "4", got[2].ID)
}

func TestApply_ExactDate(t *testing.T) {
	got := Apply(sampleLogs(), ExactDate("2025-03-12"))
	require.Len(t, got, 2)
	assert.Equal(t, "3", got[0].ID)
	assert.Equal(t, "4", got[1].ID)
}

func TestApply_UnparseableDateExcludedByDateFilter(t *testing.T) {
	logs := []models.CallLog{{ID: "x", CallDatetime: "garbage"}}
	assert.Empty(t, Apply(logs, Criteria{From: "2025-01-01"}))
	// No date constraint: the record passes.
	assert.Len(t, Apply(logs, Criteria{Staff: ""}), 1)
}

func TestApply_StaffSubstringCaseInsensitive(t *testing.T) {
	got := Apply(sampleLogs(), Criteria{Staff: "PRIYA"})
	require.Len(t, got, 2)
	assert.Equal(t, "Priya Sharma", got[0].StaffName)
	assert.Equal(t, "priyanka rao", got[1].StaffName)
}

func TestApply_BlankStaffMeansNoConstraint(t *testing.T) {
	got := Apply(sampleLogs(), Criteria{Staff: ""})
	assert.Len(t, got, len(sampleLogs()))
}

func TestApply_ScoreSubstringOfFlooredScore(t *testing.T) {
	logs := sampleLogs()

	// "1" matches floored 10 (Dev) and floored 10/13 -> 7.7 -> 7? No: only
	// strings containing "1". Floors here: 8, 7, 0 (N/A), 10.
	got := Apply(logs, Criteria{Score: "1"})
	require.Len(t, got, 1)
	assert.Equal(t, "4", got[0].ID)

	got = Apply(logs, Criteria{Score: "7"})
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	// Unscored calls floor to 0.
	got = Apply(logs, Criteria{Score: "0"})
	require.Len(t, got, 2)
	assert.Equal(t, "3", got[0].ID)
	assert.Equal(t, "4", got[1].ID)
}

func TestApply_CommutativeComposition(t *testing.T) {
	logs := sampleLogs()
	a := Apply(Apply(logs, Criteria{Staff: "a"}), Criteria{From: "2025-03-11"})
	b := Apply(Apply(logs, Criteria{From: "2025-03-11"}), Criteria{Staff: "a"})
	c := Apply(logs, Criteria{Staff: "a", From: "2025-03-11"})
	assert.Equal(t, a, b)
	assert.Equal(t, a, c)
}

func TestApply_PreservesOrder(t *testing.T) {
	logs := sampleLogs()
	got := Apply(logs, Criteria{From: "2025-03-10"})
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].ID, got[i].ID, "input order must be preserved")
	}
}
