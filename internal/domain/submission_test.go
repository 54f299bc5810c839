package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSubmission(t *testing.T) *Submission {
	t.Helper()
	s, err := NewSubmission(&SelectedFile{Name: "doc.pdf", Data: []byte("12345")})
	require.NoError(t, err)
	return s
}

func TestNewSubmission(t *testing.T) {
	s := newTestSubmission(t)

	assert.Equal(t, SubmissionStatusPending, s.Status)
	assert.Equal(t, "doc.pdf", s.FileName)
	assert.Equal(t, int64(5), s.FileSize)
	assert.Nil(t, s.CompletedAt)

	_, err := NewSubmission(nil)
	assert.ErrorIs(t, err, ErrNoFileSelected)
}

func TestSubmission_Completed(t *testing.T) {
	s := newTestSubmission(t)

	assert.ErrorIs(t, s.MarkCompleted("r.pdf", ""), ErrInvalidStatus)

	require.NoError(t, s.MarkProcessing())
	require.NoError(t, s.MarkCompleted("r.pdf", "c.pdf"))

	assert.Equal(t, SubmissionStatusCompleted, s.Status)
	assert.Equal(t, ReportReference("r.pdf"), s.Report)
	assert.Equal(t, ReportReference("c.pdf"), s.ContrastReport)
	assert.NotNil(t, s.CompletedAt)
	assert.True(t, s.Status.IsFinal())

	assert.ErrorIs(t, s.MarkFailed(ErrProcessingFailed), ErrInvalidStatus)
	assert.ErrorIs(t, s.MarkProcessing(), ErrInvalidStatus)
}

func TestSubmission_Failed(t *testing.T) {
	s := newTestSubmission(t)
	require.NoError(t, s.MarkProcessing())

	require.NoError(t, s.MarkFailed(fmt.Errorf("%w: refused", ErrBackendUnavailable)))

	assert.Equal(t, SubmissionStatusFailed, s.Status)
	assert.Equal(t, ErrorKindTransport, s.ErrorKind)
	assert.Contains(t, s.Error, "refused")
	assert.NotNil(t, s.CompletedAt)
	assert.True(t, s.Report.IsZero())
}

func TestSubmissionStatus(t *testing.T) {
	assert.True(t, SubmissionStatusPending.IsValid())
	assert.False(t, SubmissionStatus("unknown").IsValid())
	assert.False(t, SubmissionStatusProcessing.IsFinal())
	assert.True(t, SubmissionStatusFailed.IsFinal())
}
