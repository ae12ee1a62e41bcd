package registration

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/apnaswastha/registry-api/internal/asset"
	"github.com/apnaswastha/registry-api/internal/model"
	"github.com/apnaswastha/registry-api/internal/qr"
	"github.com/apnaswastha/registry-api/internal/repository"
	"github.com/apnaswastha/registry-api/pkg/apperror"
)

const dateLayout = "2006-01-02"

// Service orchestrates a registration: validate, persist the identity,
// store the face, compose the QR, cache it, and report resource paths.
type Service struct {
	workers  repository.WorkerRepository
	faces    *asset.Store
	qrs      *asset.QRStore
	composer *qr.Composer
	logger   zerolog.Logger
}

func NewService(
	workers repository.WorkerRepository,
	faces *asset.Store,
	qrs *asset.QRStore,
	composer *qr.Composer,
	logger zerolog.Logger,
) *Service {
	return &Service{
		workers:  workers,
		faces:    faces,
		qrs:      qrs,
		composer: composer,
		logger:   logger,
	}
}

// Result carries the identifiers and relative asset paths for a saved
// registration. The handler resolves the paths against the request host.
type Result struct {
	HealthID string
	QRPath   string
	FacePath string
}

// Register validates and normalizes the submission, then writes identity,
// face, and QR through their stores. A bad face payload never fails the
// registration; the record is simply saved without one.
func (s *Service) Register(ctx context.Context, req *model.RegisterWorkerRequest) (*Result, error) {
	healthID := strings.TrimSpace(req.HealthID)
	if healthID == "" {
		return nil, apperror.NewValidation("healthId is required")
	}

	worker := &model.Worker{
		HealthID:           healthID,
		FullName:           strings.TrimSpace(req.FullName),
		Age:                nonNegativeInt(req.Age),
		Gender:             strings.TrimSpace(req.Gender),
		Phone:              strings.TrimSpace(req.Phone),
		Address:            strings.TrimSpace(req.Address),
		NativeState:        strings.TrimSpace(req.NativeState),
		BloodGroup:         strings.TrimSpace(req.BloodGroup),
		MaritalStatus:      strings.TrimSpace(req.MaritalStatus),
		Language:           strings.TrimSpace(req.Language),
		FinancialStatus:    strings.TrimSpace(req.FinancialStatus),
		Allergies:          strings.TrimSpace(req.Allergies),
		Conditions:         strings.TrimSpace(req.Conditions),
		InheritedDiseases:  strings.TrimSpace(req.InheritedDiseases),
		PreviousTreatments: strings.TrimSpace(req.PreviousTreatments),
		VaccinationCount:   nonNegativeInt(req.VaccinationCount),
		RegistrationDate:   strings.TrimSpace(req.RegistrationDate),
	}
	if worker.RegistrationDate == "" {
		worker.RegistrationDate = time.Now().UTC().Format(dateLayout)
	}

	var faceBytes []byte
	if req.FaceImage != "" {
		decoded, err := decodeFaceImage(req.FaceImage)
		if err != nil {
			s.logger.Warn().Err(err).Str("health_id", healthID).
				Msg("discarding undecodable face image")
		} else {
			faceBytes = decoded
			name, err := s.faces.Put(healthID, faceBytes)
			if err != nil {
				return nil, apperror.NewInternal(fmt.Errorf("failed to store face image: %w", err))
			}
			worker.FaceFilename = name
		}
	}

	qrPNG, err := s.composer.Compose(qrPayload(worker), faceBytes)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("failed to compose QR: %w", err))
	}
	qrName, err := s.qrs.Put(healthID, qrPNG)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("failed to store QR image: %w", err))
	}
	worker.QRFilename = qrName

	if err := s.workers.Upsert(ctx, worker); err != nil {
		return nil, err
	}

	result := &Result{
		HealthID: healthID,
		QRPath:   fmt.Sprintf("/api/workers/%s/qr.png", healthID),
	}
	if worker.FaceFilename != "" {
		result.FacePath = fmt.Sprintf("/api/workers/%s/face.png", healthID)
	}
	return result, nil
}

// Lookup returns the stored record for a health ID.
func (s *Service) Lookup(ctx context.Context, healthID string) (*model.Worker, error) {
	return s.workers.GetByHealthID(ctx, healthID)
}

// List returns up to limit records, newest registration first.
func (s *Service) List(ctx context.Context, limit int) ([]*model.Worker, error) {
	return s.workers.List(ctx, limit)
}

// FaceImage returns the stored face PNG for a health ID.
func (s *Service) FaceImage(ctx context.Context, healthID string) ([]byte, error) {
	return s.faces.Get(healthID)
}

// QRImage returns the cached QR PNG, regenerating it from the stored
// record and face when the cache has no entry.
func (s *Service) QRImage(ctx context.Context, healthID string) ([]byte, error) {
	return s.qrs.GetOrRegenerate(healthID, func() ([]byte, error) {
		worker, err := s.workers.GetByHealthID(ctx, healthID)
		if err != nil {
			return nil, err
		}

		var faceBytes []byte
		if worker.FaceFilename != "" {
			if data, err := s.faces.Get(worker.HealthID); err == nil {
				faceBytes = data
			}
		}
		return s.composer.Compose(qrPayload(worker), faceBytes)
	})
}

// qrPayload selects the fixed field subset encoded into a worker's QR.
func qrPayload(w *model.Worker) *qr.Payload {
	return qr.NewPayload().
		Add("healthId", w.HealthID).
		Add("fullName", w.FullName).
		Add("gender", w.Gender).
		Add("address", w.Address).
		Add("nativeState", w.NativeState).
		Add("bloodGroup", w.BloodGroup).
		Add("maritalStatus", w.MaritalStatus).
		Add("financialStatus", w.FinancialStatus).
		Add("registrationDate", w.RegistrationDate)
}

// decodeFaceImage strips an optional data-URL prefix and base64-decodes
// the remainder.
func decodeFaceImage(payload string) ([]byte, error) {
	if idx := strings.IndexByte(payload, ','); idx >= 0 {
		payload = payload[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image payload: %w", err)
	}
	return data, nil
}

// nonNegativeInt parses a JSON number or numeric string, defaulting to
// zero on omission, parse failure, or a negative value.
func nonNegativeInt(v interface{}) int {
	var n int
	switch val := v.(type) {
	case nil:
		return 0
	case float64:
		n = int(val)
	case int:
		n = val
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0
		}
		n = parsed
	default:
		return 0
	}
	if n < 0 {
		return 0
	}
	return n
}
