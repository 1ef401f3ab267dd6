package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/trigger/internal/dashboard/domain"
	"github.com/aussiebroadwan/trigger/internal/dashboard/store"
	"github.com/aussiebroadwan/trigger/pkg/idx"
	"github.com/aussiebroadwan/trigger/pkg/slogx"
	"github.com/aussiebroadwan/trigger/pkg/triggersdk"
)

// Submission list bounds.
const (
	DefaultSubmissionLimit = 20
	MaxSubmissionLimit     = 100
)

// ErrUnknownProcessType is returned by Submit for a process type other than
// add refresh or stop refresh. Nothing is sent or recorded.
var ErrUnknownProcessType = errors.New("unknown process type")

// Remediator is the part of triggersdk.Client the service drives.
type Remediator interface {
	AddRefresh(ctx context.Context, file *triggersdk.File, marketCode string) (*triggersdk.RemediationResult, error)
	StopRefresh(ctx context.Context, file *triggersdk.File, marketCode string) (*triggersdk.RemediationResult, error)
}

// RemediationService submits CSV uploads and keeps an audit trail of them.
type RemediationService struct {
	Client Remediator
	Store  store.Store

	// Now defaults to time.Now.
	Now func() time.Time
}

// Submit sends file to the remediation endpoint and records the outcome.
// Uploads rejected by file validation never reach the network and are not
// recorded.
func (s *RemediationService) Submit(
	ctx context.Context,
	processType triggersdk.ProcessType,
	file *triggersdk.File,
	marketCode string,
) (*triggersdk.RemediationResult, error) {
	log := slogx.FromContext(ctx)

	var (
		res *triggersdk.RemediationResult
		err error
	)
	switch processType {
	case triggersdk.ProcessAddRefreshTrigger:
		res, err = s.Client.AddRefresh(ctx, file, marketCode)
	case triggersdk.ProcessStopRefresh:
		res, err = s.Client.StopRefresh(ctx, file, marketCode)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownProcessType, processType)
	}
	if triggersdk.IsValidationError(err) {
		return nil, err
	}

	if marketCode == "" {
		marketCode = triggersdk.DefaultMarketCode
	}
	sub := domain.Submission{
		ID:          idx.New().String(),
		ProcessType: string(processType),
		MarketCode:  marketCode,
		FileName:    file.Name,
		FileSize:    int64(len(file.Content)),
		CreatedAt:   s.now(),
	}
	if err != nil {
		sub.Error = err.Error()
		if apiErr, ok := triggersdk.AsAPIError(err); ok {
			sub.UpstreamStatus = apiErr.StatusCode
		}
	} else {
		sub.Status = res.Status
		sub.Message = res.Message
		sub.RemoteID = res.ID
	}

	// The upload already happened, so a failed audit write must not fail it
	if recErr := s.Store.Submissions().Record(context.WithoutCancel(ctx), sub); recErr != nil {
		log.Error("failed to record submission",
			slog.String("submission_id", sub.ID),
			slog.Any("error", recErr),
		)
	}

	if err != nil {
		log.Warn("remediation failed",
			slog.String("process_type", sub.ProcessType),
			slog.String("file", sub.FileName),
			slog.Any("error", err),
		)
		return nil, err
	}
	return res, nil
}

// ListSubmissions returns recent submissions, newest first. limit is clamped
// to [1, MaxSubmissionLimit]; zero or negative means DefaultSubmissionLimit.
func (s *RemediationService) ListSubmissions(ctx context.Context, limit int) ([]domain.Submission, error) {
	switch {
	case limit <= 0:
		limit = DefaultSubmissionLimit
	case limit > MaxSubmissionLimit:
		limit = MaxSubmissionLimit
	}
	return s.Store.Submissions().ListRecent(ctx, limit)
}

func (s *RemediationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
