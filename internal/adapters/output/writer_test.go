package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndcoders/commitcraft/internal/domain"
)

func TestWriter_WriteResult_Modified(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterWithOutput(&buf)

	err := w.WriteResult(&domain.RewriteOutput{
		Modified: true,
		Tickets:  []string{"NDC-123", "NDC-456"},
	})

	require.NoError(t, err)
	assert.Equal(t, "commitcraft: added NDC-123, NDC-456 to commit message\n", buf.String())
}

func TestWriter_WriteResult_Skipped(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterWithOutput(&buf)

	err := w.WriteResult(&domain.RewriteOutput{SkipReason: domain.SkipNoTicket})

	require.NoError(t, err)
	assert.Empty(t, buf.String(), "skip outcomes must stay silent")
}

func TestWriter_WriteResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterWithOutput(&buf)

	require.NoError(t, w.WriteResult(nil))
	assert.Empty(t, buf.String())
}
