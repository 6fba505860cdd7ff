package reference

import (
	"Reimbursement-Tracker/domain"
	"Reimbursement-Tracker/pkg/sheet"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

type (
	ReferenceService interface {
		GetEntries(ctx context.Context, req domain.GetReferenceDataRequest) (*domain.ReferenceData, error)
		AddEntry(ctx context.Context, req domain.AddReferenceItemRequest) (*domain.ReferenceEntry, error)
		Initialize(ctx context.Context) (*domain.InitReferenceResponse, error)
	}

	referenceService struct {
		referenceRepository ReferenceRepository
		log                 logrus.FieldLogger
	}
)

func NewReferenceService(referenceRepository ReferenceRepository, log logrus.FieldLogger) ReferenceService {
	return &referenceService{
		referenceRepository: referenceRepository,
		log:                 log.WithField("component", "reference"),
	}
}

func (s *referenceService) GetEntries(ctx context.Context, req domain.GetReferenceDataRequest) (*domain.ReferenceData, error) {
	entries, err := s.referenceRepository.List(ctx)
	if errors.Is(err, sheet.ErrSheetNotFound) || (err == nil && len(entries) == 0) {
		return nil, domain.NewError(domain.ErrNotInitialized,
			"%s sheet not found or empty. Use initReferenceData to create it.", SheetName)
	}
	if err != nil {
		return nil, fmt.Errorf("read reference data: %w", err)
	}

	data := &domain.ReferenceData{
		Entries: make([]*domain.ReferenceEntry, 0, len(entries)),
		Grouped: map[string][]*domain.ReferenceEntry{},
	}
	for _, e := range entries {
		if req.Type != "" && e.Type != req.Type {
			continue
		}
		data.Entries = append(data.Entries, e)
		data.Grouped[e.Type] = append(data.Grouped[e.Type], e)
	}
	data.Count = len(data.Entries)
	return data, nil
}

func (s *referenceService) AddEntry(ctx context.Context, req domain.AddReferenceItemRequest) (*domain.ReferenceEntry, error) {
	if req.Type == "" {
		return nil, domain.Validation("type is required (%s)", strings.Join(domain.ReferenceTypes, ", "))
	}
	if req.Value == "" {
		return nil, domain.Validation("value is required")
	}
	if !domain.IsReferenceType(req.Type) {
		return nil, domain.Validation("Invalid type. Must be one of: %s", strings.Join(domain.ReferenceTypes, ", "))
	}

	entries, err := s.referenceRepository.List(ctx)
	if errors.Is(err, sheet.ErrSheetNotFound) {
		if _, err := s.Initialize(ctx); err != nil {
			return nil, err
		}
		entries, err = s.referenceRepository.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("read reference data: %w", err)
	}

	for _, e := range entries {
		if e.Type == req.Type && e.Value == req.Value {
			return nil, domain.NewError(domain.ErrDuplicateEntry, "Entry already exists: %s = %s", req.Type, req.Value)
		}
	}

	entry := &domain.ReferenceEntry{
		Type:        req.Type,
		Value:       req.Value,
		DisplayName: req.DisplayName,
		Description: req.Description,
	}
	if entry.DisplayName == "" {
		entry.DisplayName = req.Value
	}
	if err := s.referenceRepository.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("append reference entry: %w", err)
	}

	s.log.WithFields(logrus.Fields{"type": entry.Type, "value": entry.Value}).Info("reference entry added")
	return entry, nil
}

// Initialize creates the sheet and seeds the defaults when it has no data rows.
func (s *referenceService) Initialize(ctx context.Context) (*domain.InitReferenceResponse, error) {
	if err := s.referenceRepository.EnsureSheet(ctx); err != nil {
		return nil, fmt.Errorf("create reference sheet: %w", err)
	}
	entries, err := s.referenceRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("read reference data: %w", err)
	}
	if len(entries) > 0 {
		return &domain.InitReferenceResponse{
			Created: false,
			Entries: len(entries),
			Message: domain.MessageReferenceKept,
		}, nil
	}

	defaults := domain.DefaultReferenceEntries()
	for _, e := range defaults {
		if err := s.referenceRepository.Append(ctx, e); err != nil {
			return nil, fmt.Errorf("seed reference data: %w", err)
		}
	}

	s.log.WithField("entries", len(defaults)).Info("reference data seeded")
	return &domain.InitReferenceResponse{
		Created: true,
		Entries: len(defaults),
		Message: fmt.Sprintf("%s with %d entries", domain.MessageSuccessInitReference, len(defaults)),
	}, nil
}
