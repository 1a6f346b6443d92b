package domain_test

import (
	"testing"

	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExamMark_Passed(t *testing.T) {
	exam := domain.Exam{ExamID: "e1", TotalMarks: 100, PassingMarks: 33}

	tests := []struct {
		name string
		mark domain.ExamMark
		want bool
	}{
		{
			name: "above passing marks",
			mark: domain.ExamMark{MarksObtained: 40},
			want: true,
		},
		{
			name: "exactly at passing marks",
			mark: domain.ExamMark{MarksObtained: 33},
			want: true,
		},
		{
			name: "below passing marks",
			mark: domain.ExamMark{MarksObtained: 32.5},
			want: false,
		},
		{
			name: "absent with high marks recorded",
			mark: domain.ExamMark{MarksObtained: 90, IsAbsent: true},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mark.Passed(exam))
		})
	}
}

func TestSummarizeMarks(t *testing.T) {
	exam := domain.Exam{ExamID: "e1", Title: "Midterm", TotalMarks: 100, PassingMarks: 33}

	marks := []domain.ExamMark{
		{MarksObtained: 40, IsAbsent: false},
		{MarksObtained: 20, IsAbsent: false},
		{IsAbsent: true},
	}

	summary := domain.SummarizeMarks(exam, marks)
	require.NotNil(t, summary)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Passed)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Absent)
	assert.InDelta(t, 33.3, summary.PassRate, 0.05)
	assert.True(t, summary.IsStruggling())
}

func TestSummarizeMarks_NoEntries(t *testing.T) {
	exam := domain.Exam{ExamID: "e1", PassingMarks: 33}

	// An exam with zero recorded marks must produce no summary at all.
	assert.Nil(t, domain.SummarizeMarks(exam, nil))
	assert.Nil(t, domain.SummarizeMarks(exam, []domain.ExamMark{}))
}

func TestExamSummary_IsStruggling(t *testing.T) {
	assert.True(t, domain.ExamSummary{PassRate: 59.9}.IsStruggling())
	assert.False(t, domain.ExamSummary{PassRate: 60.0}.IsStruggling())
	assert.False(t, domain.ExamSummary{PassRate: 100}.IsStruggling())
}
