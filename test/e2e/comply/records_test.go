package comply_test

import (
	"bytes"
	"io"
	"net/http"
	"testing"

	"github.com/clausehq/comply/pkg/complysdk"
	"github.com/stretchr/testify/require"
)

func TestComplianceRecordsAndEvidence(t *testing.T) {
	baseURL, cleanup := setupComplyContainer(t)
	defer cleanup()

	ctx := t.Context()
	client := complysdk.NewClient(baseURL)
	admin := bootstrapAndLogin(t, client)

	std, err := admin.CreateStandard(ctx, complysdk.StandardRequest{
		Clause:      "1.1",
		Description: "Training and assessment strategies",
	})
	require.NoError(t, err)
	require.NotEmpty(t, std.ID)

	rec, err := admin.CreateRecord(ctx, complysdk.RecordRequest{
		ComplianceItem:   "Trainer qualification matrix",
		StandardClause:   "1.1",
		ComplianceStatus: "in_progress",
		ReviewStatus:     "pending",
	})
	require.NoError(t, err)
	require.False(t, rec.HasEvidence)

	// Attach evidence and read it back byte for byte.
	payload := []byte("%PDF-1.4 fake evidence payload")
	err = admin.UploadEvidence(ctx, rec.ID, "matrix.pdf", bytes.NewReader(payload))
	require.NoError(t, err)

	got, err := admin.GetRecord(ctx, rec.ID)
	require.NoError(t, err)
	require.True(t, got.HasEvidence)
	require.Equal(t, "matrix.pdf", got.FileName)

	body, name, err := admin.DownloadEvidence(ctx, rec.ID)
	require.NoError(t, err)
	defer body.Close()
	require.Equal(t, "matrix.pdf", name)
	downloaded, err := io.ReadAll(body)
	require.NoError(t, err)
	require.Equal(t, payload, downloaded)

	// Executable uploads are refused.
	err = admin.UploadEvidence(ctx, rec.ID, "malware.exe", bytes.NewReader([]byte("nope")))
	require.True(t, complysdk.IsStatus(err, http.StatusBadRequest))

	// Record activity shows up in the notification feed.
	notifications, err := admin.ListNotifications(ctx, 10)
	require.NoError(t, err)
	require.NotEmpty(t, notifications)

	// Deleting the record removes its evidence too.
	require.NoError(t, admin.DeleteRecord(ctx, rec.ID))
	_, _, err = admin.DownloadEvidence(ctx, rec.ID)
	require.True(t, complysdk.IsStatus(err, http.StatusNotFound))
}
