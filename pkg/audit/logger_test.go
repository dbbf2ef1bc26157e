package audit_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyfort/guardkit/pkg/audit"
	"github.com/tallyfort/guardkit/pkg/logger"
)

func TestLogEmitsSecurityLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithFormat(logger.FormatJSON), logger.WithOutput(&buf))
	auditor := audit.NewLogger(log)

	err := auditor.Log(context.Background(), "account_locked",
		audit.WithIdentifier("user@example.com"),
		audit.WithMetadata(map[string]any{"failed_attempts": 5}),
	)
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "SECURITY", rec["level"])
	assert.Equal(t, "account_locked", rec["action"])
	assert.Equal(t, "user@example.com", rec["identifier"])
	assert.Equal(t, "success", rec["result"])
	assert.NotEmpty(t, rec["audit_id"])
}

func TestLogAdminActor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithFormat(logger.FormatJSON), logger.WithOutput(&buf))
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	auditor := audit.NewLogger(log, audit.WithClock(func() time.Time { return fixed }))

	err := auditor.Log(context.Background(), "admin_unlock",
		audit.WithIdentifier("user@example.com"),
		audit.WithActor("admin@example.com"),
	)
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "admin@example.com", rec["actor"])
	assert.Equal(t, "2025-06-01T12:00:00Z", rec["created_at"])
}

func TestLogMissingAction(t *testing.T) {
	t.Parallel()

	auditor := audit.NewLogger(nil)
	err := auditor.Log(context.Background(), "")
	require.ErrorIs(t, err, audit.ErrEventValidation)
}
