package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/clausehq/comply/internal/comply/domain"
	"github.com/clausehq/comply/internal/comply/evidence"
	"github.com/clausehq/comply/internal/comply/store"
	"github.com/clausehq/comply/pkg/idx"
	"github.com/clausehq/comply/pkg/slogx"
)

var (
	ErrRecordNotFound        = errors.New("compliance record not found")
	ErrInvalidRecord         = errors.New("compliance item and standard clause are required")
	ErrInvalidStatus         = errors.New("invalid compliance status")
	ErrNoEvidence            = errors.New("record has no evidence file")
	ErrUnsupportedEvidence   = errors.New("unsupported evidence file type")
	ErrEvidenceStoreRequired = errors.New("evidence store not configured")
)

// evidenceExtensions is the closed set of accepted upload types.
var evidenceExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".xls":  true,
	".xlsx": true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

type RecordService struct {
	Store    store.Store
	Evidence *evidence.Store
}

func validComplianceStatus(s string) bool {
	switch s {
	case domain.ComplianceStatusCompliant,
		domain.ComplianceStatusNonCompliant,
		domain.ComplianceStatusInProgress:
		return true
	}
	return false
}

func validReviewStatus(s string) bool {
	switch s {
	case "", domain.ReviewStatusPending, domain.ReviewStatusReviewed, domain.ReviewStatusOverdue:
		return true
	}
	return false
}

func (s *RecordService) CreateRecord(
	ctx context.Context,
	organisationID string,
	createdBy string,
	rec domain.Record,
) (domain.Record, error) {
	log := slogx.FromContext(ctx)

	rec.ComplianceItem = strings.TrimSpace(rec.ComplianceItem)
	rec.StandardClause = strings.TrimSpace(rec.StandardClause)
	if rec.ComplianceItem == "" || rec.StandardClause == "" {
		return domain.Record{}, ErrInvalidRecord
	}
	if !validComplianceStatus(rec.ComplianceStatus) || !validReviewStatus(rec.ReviewStatus) {
		return domain.Record{}, ErrInvalidStatus
	}

	now := time.Now().UTC()
	rec.ID = idx.New().String()
	rec.OrganisationID = organisationID
	rec.FileName = ""
	rec.FilePath = ""
	rec.CreatedAt = now
	rec.UpdatedAt = now

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Records().CreateRecord(ctx, rec); err != nil {
			return err
		}
		return tx.Notifications().CreateNotification(ctx, domain.Notification{
			ID:             idx.New().String(),
			OrganisationID: organisationID,
			Type:           domain.NotificationTypeRecord,
			Action:         "created",
			Title:          "Compliance record created",
			Message:        rec.ComplianceItem + " was added against clause " + rec.StandardClause,
			RecordID:       rec.ID,
			CreatedBy:      createdBy,
			CreatedAt:      now,
		})
	})
	if err != nil {
		log.Error("failed to create compliance record", slog.Any("error", err))
		return domain.Record{}, err
	}

	log.Info("compliance record created",
		slog.String("record_id", rec.ID),
		slog.String("organisation_id", organisationID),
	)
	return rec, nil
}

func (s *RecordService) GetRecord(ctx context.Context, id, organisationID string) (domain.Record, error) {
	rec, err := s.Store.Records().GetRecordByID(ctx, id, organisationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Record{}, ErrRecordNotFound
		}
		return domain.Record{}, err
	}
	return rec, nil
}

func (s *RecordService) ListRecords(ctx context.Context, organisationID string) ([]domain.Record, error) {
	return s.Store.Records().ListRecords(ctx, organisationID)
}

func (s *RecordService) UpdateRecord(
	ctx context.Context,
	organisationID string,
	updatedBy string,
	rec domain.Record,
) error {
	log := slogx.FromContext(ctx)

	rec.ComplianceItem = strings.TrimSpace(rec.ComplianceItem)
	rec.StandardClause = strings.TrimSpace(rec.StandardClause)
	if rec.ComplianceItem == "" || rec.StandardClause == "" {
		return ErrInvalidRecord
	}
	if !validComplianceStatus(rec.ComplianceStatus) || !validReviewStatus(rec.ReviewStatus) {
		return ErrInvalidStatus
	}
	rec.OrganisationID = organisationID

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Records().UpdateRecord(ctx, rec); err != nil {
			return err
		}
		return tx.Notifications().CreateNotification(ctx, domain.Notification{
			ID:             idx.New().String(),
			OrganisationID: organisationID,
			Type:           domain.NotificationTypeRecord,
			Action:         "updated",
			Title:          "Compliance record updated",
			Message:        rec.ComplianceItem + " was updated",
			RecordID:       rec.ID,
			CreatedBy:      updatedBy,
			CreatedAt:      time.Now().UTC(),
		})
	})
	if errors.Is(err, store.ErrNotFound) {
		return ErrRecordNotFound
	}
	if err != nil {
		log.Error("failed to update compliance record",
			slog.String("record_id", rec.ID),
			slog.Any("error", err),
		)
	}
	return err
}

// DeleteRecord removes a record and its evidence object, if any. The row is
// deleted first; a leaked blob is recoverable, a dangling row is not.
func (s *RecordService) DeleteRecord(ctx context.Context, id, organisationID string) error {
	log := slogx.FromContext(ctx)

	rec, err := s.GetRecord(ctx, id, organisationID)
	if err != nil {
		return err
	}

	if err := s.Store.Records().DeleteRecord(ctx, id, organisationID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrRecordNotFound
		}
		return err
	}

	if rec.FilePath != "" && s.Evidence != nil {
		if err := s.Evidence.Delete(rec.FilePath); err != nil {
			log.Warn("failed to delete evidence object",
				slog.String("record_id", id),
				slog.Any("error", err),
			)
		}
	}

	log.Info("compliance record deleted",
		slog.String("record_id", id),
		slog.String("organisation_id", organisationID),
	)
	return nil
}

// AttachEvidence stores an uploaded file and links it to the record,
// replacing any previous evidence object.
func (s *RecordService) AttachEvidence(
	ctx context.Context,
	id string,
	organisationID string,
	fileName string,
	body io.Reader,
) error {
	log := slogx.FromContext(ctx)

	if s.Evidence == nil {
		return ErrEvidenceStoreRequired
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if !evidenceExtensions[ext] {
		return ErrUnsupportedEvidence
	}

	rec, err := s.GetRecord(ctx, id, organisationID)
	if err != nil {
		return err
	}

	key := idx.New().String() + ext
	size, err := s.Evidence.Put(key, body)
	if err != nil {
		log.Error("failed to store evidence object", slog.Any("error", err))
		return err
	}

	if err := s.Store.Records().UpdateRecordEvidence(ctx, id, organisationID, filepath.Base(fileName), key); err != nil {
		_ = s.Evidence.Delete(key)
		if errors.Is(err, store.ErrNotFound) {
			return ErrRecordNotFound
		}
		return err
	}

	if rec.FilePath != "" && rec.FilePath != key {
		if err := s.Evidence.Delete(rec.FilePath); err != nil {
			log.Warn("failed to delete replaced evidence object", slog.Any("error", err))
		}
	}

	log.Info("evidence attached",
		slog.String("record_id", id),
		slog.String("file_name", filepath.Base(fileName)),
		slog.Int64("size_bytes", size),
	)
	return nil
}

// OpenEvidence returns the record's evidence object and its original file
// name. The caller must close the reader.
func (s *RecordService) OpenEvidence(
	ctx context.Context,
	id string,
	organisationID string,
) (io.ReadCloser, string, error) {
	if s.Evidence == nil {
		return nil, "", ErrEvidenceStoreRequired
	}

	rec, err := s.GetRecord(ctx, id, organisationID)
	if err != nil {
		return nil, "", err
	}
	if rec.FilePath == "" {
		return nil, "", ErrNoEvidence
	}

	r, err := s.Evidence.Open(rec.FilePath)
	if err != nil {
		if errors.Is(err, evidence.ErrNotFound) {
			return nil, "", ErrNoEvidence
		}
		return nil, "", err
	}
	return r, rec.FileName, nil
}
