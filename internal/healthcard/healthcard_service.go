package healthcard

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/RonikAgarwal/Swasthi/internal/biometric"
	"github.com/RonikAgarwal/Swasthi/internal/events"
	healthcarderrors "github.com/RonikAgarwal/Swasthi/internal/healthcard/errors"
	"github.com/RonikAgarwal/Swasthi/internal/messaging/kafka"
	"github.com/RonikAgarwal/Swasthi/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const CardCacheKeyPrefix = "healthcard:card:"

const (
	defaultCaptureTimeout = 30 * time.Second
	cardCacheTTL          = 5 * time.Minute
)

func GetCardCacheKey(cardID string) string {
	return CardCacheKeyPrefix + cardID
}

//go:generate mockgen -source=healthcard_service.go -destination=mock/healthcard_service_mock.go -package=mock
type Service interface {
	BeginCapture(ctx context.Context, employeeID string) (WorkflowResponse, error)
	CancelCapture(ctx context.Context, employeeID string) (WorkflowResponse, error)
	WaitCapture(ctx context.Context, employeeID string) (WorkflowResponse, error)
	Workflow(ctx context.Context, employeeID string) (WorkflowResponse, error)
	Submit(ctx context.Context, employeeID string, req SubmitRequest) (CardResponse, error)
	Update(ctx context.Context, employeeID string, req UpdateRequest) (CardResponse, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (CardResponse, error)
	GetByCardID(ctx context.Context, cardID string) (CardResponse, error)
	GetAll(ctx context.Context) ([]CardResponse, error)
}

type service struct {
	db             *sql.DB
	repo           Repository
	outbox         kafka.OutboxRepository
	rdb            *redis.Client
	sf             *singleflight.Group
	capturer       biometric.Capturer
	tracker        *captureTracker
	captureTimeout time.Duration
	logger         *zap.Logger
}

func NewService(db *sql.DB, repo Repository, capturer biometric.Capturer, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, nil, capturer, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	capturer biometric.Capturer,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("healthcard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("healthcard.service")
	}
	if capturer == nil {
		capturer = biometric.NewSimulatedCapturer(0)
	}
	return &service{
		db:             db,
		repo:           repo,
		outbox:         outboxRepo,
		rdb:            rdb,
		sf:             &singleflight.Group{},
		capturer:       capturer,
		tracker:        newCaptureTracker(),
		captureTimeout: defaultCaptureTimeout,
		logger:         l,
	}
}

func (s *service) BeginCapture(ctx context.Context, employeeID string) (WorkflowResponse, error) {
	if employeeID == "" {
		return WorkflowResponse{}, healthcarderrors.ErrMissingRequiredFields
	}
	s.logger.Debug("begin biometric capture requested", zap.String("employee_id", employeeID))

	registered, err := s.isRegistered(ctx, employeeID)
	if err != nil {
		s.logger.Error("begin capture registration lookup failed", zap.Error(err))
		return WorkflowResponse{}, err
	}
	if registered {
		return WorkflowResponse{}, healthcarderrors.ErrAlreadyRegistered
	}

	started := s.tracker.Begin(employeeID, s.captureTimeout, func(cctx context.Context) error {
		err := s.capturer.Capture(cctx)
		if err != nil {
			s.logger.Warn("biometric capture did not complete",
				zap.String("employee_id", employeeID),
				zap.Error(err),
			)
			return err
		}
		s.logger.Info("biometric capture succeeded", zap.String("employee_id", employeeID))
		return nil
	})
	if !started {
		return WorkflowResponse{}, healthcarderrors.ErrCaptureInProgress
	}

	return s.workflowResponse(ctx, employeeID)
}

func (s *service) CancelCapture(ctx context.Context, employeeID string) (WorkflowResponse, error) {
	if !s.tracker.Cancel(employeeID) {
		return WorkflowResponse{}, healthcarderrors.ErrNoCapturePending
	}

	// Wait for the capture goroutine to drain so the returned state is final.
	if _, err := s.tracker.Wait(ctx, employeeID); err != nil && ctx.Err() != nil {
		return WorkflowResponse{}, err
	}

	s.logger.Info("biometric capture cancelled", zap.String("employee_id", employeeID))
	return s.workflowResponse(ctx, employeeID)
}

func (s *service) WaitCapture(ctx context.Context, employeeID string) (WorkflowResponse, error) {
	if _, err := s.tracker.Wait(ctx, employeeID); err != nil && ctx.Err() != nil {
		return WorkflowResponse{}, err
	}
	return s.workflowResponse(ctx, employeeID)
}

func (s *service) Workflow(ctx context.Context, employeeID string) (WorkflowResponse, error) {
	return s.workflowResponse(ctx, employeeID)
}

func (s *service) Submit(ctx context.Context, employeeID string, req SubmitRequest) (CardResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit registration requested",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
	)

	if employeeID == "" || req.Name == "" {
		return CardResponse{}, healthcarderrors.ErrMissingRequiredFields
	}
	if !s.tracker.Captured(employeeID) {
		s.logger.Warn("submit rejected, biometrics not captured",
			zap.String("employee_id", employeeID),
		)
		return CardResponse{}, healthcarderrors.ErrBiometricsRequired
	}

	var checkup, nextAppointment *time.Time
	if req.CheckupDate != "" {
		d, err := time.Parse("2006-01-02", req.CheckupDate)
		if err != nil {
			return CardResponse{}, healthcarderrors.ErrInvalidCheckupDate
		}
		n := d.AddDate(0, 0, 180)
		checkup, nextAppointment = &d, &n
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return CardResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	_, err = qtx.FindByEmployeeID(ctx, employeeID)
	if err == nil {
		return CardResponse{}, healthcarderrors.ErrAlreadyRegistered
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("submit existing record lookup failed", zap.Error(err))
		return CardResponse{}, err
	}

	cardID, err := s.generateCardID(ctx, qtx)
	if err != nil {
		return CardResponse{}, err
	}

	rec := &HealthRecord{
		ID:                   uuid.New(),
		EmployeeID:           employeeID,
		HealthCardID:         &cardID,
		Name:                 req.Name,
		Place:                req.Place,
		Hospital:             req.Hospital,
		BloodGroup:           req.BloodGroup,
		Age:                  req.Age,
		Medications:          req.Medications,
		Allergies:            req.Allergies,
		Chronic:              req.Chronic,
		Disability:           req.Disability,
		Vaccination:          req.Vaccination,
		Illnesses:            req.Illnesses,
		Hospitalizations:     req.Hospitalizations,
		EmergencyContact:     req.EmergencyContact,
		CheckupDate:          checkup,
		NextAppointmentDate:  nextAppointment,
		BiometricsRegistered: true,
	}

	if err := qtx.Create(ctx, rec); err != nil {
		s.logger.Error("submit persist failed", zap.Error(err))
		return CardResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.CardRegisteredEvent{
			EventType:    "card_registered",
			RequestID:    rid,
			EmployeeID:   employeeID,
			HealthCardID: cardID,
			OccurredAt:   time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return CardResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "health_card",
			AggregateID:   employeeID,
			EventType:     event.EventType,
			Topic:         events.CardRegisteredTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("submit outbox persist failed",
				zap.String("employee_id", employeeID),
				zap.Error(err),
			)
			return CardResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit commit failed", zap.String("request_id", rid), zap.Error(err))
		return CardResponse{}, err
	}

	s.tracker.ClearCaptured(employeeID)
	s.invalidateCardCache(ctx, cardID)

	s.logger.Info("registration submitted",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("health_card_id", cardID),
	)

	return mapToResponse(*rec), nil
}

func (s *service) Update(ctx context.Context, employeeID string, req UpdateRequest) (CardResponse, error) {
	s.logger.Debug("update health record requested", zap.String("employee_id", employeeID))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update begin tx failed", zap.Error(err))
		return CardResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rec, err := qtx.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		s.logger.Error("update fetch existing failed", zap.Error(err))
		return CardResponse{}, mapRepositoryError(err)
	}

	applyString(&rec.Name, req.Name)
	applyString(&rec.Place, req.Place)
	applyString(&rec.Hospital, req.Hospital)
	applyString(&rec.BloodGroup, req.BloodGroup)
	applyString(&rec.Age, req.Age)
	applyString(&rec.Medications, req.Medications)
	applyString(&rec.Allergies, req.Allergies)
	applyString(&rec.Chronic, req.Chronic)
	applyString(&rec.Disability, req.Disability)
	applyString(&rec.Vaccination, req.Vaccination)
	applyString(&rec.Illnesses, req.Illnesses)
	applyString(&rec.Hospitalizations, req.Hospitalizations)
	applyString(&rec.EmergencyContact, req.EmergencyContact)

	if req.CheckupDate != nil {
		d, err := time.Parse("2006-01-02", *req.CheckupDate)
		if err != nil {
			return CardResponse{}, healthcarderrors.ErrInvalidCheckupDate
		}
		n := d.AddDate(0, 0, 180)
		rec.CheckupDate = &d
		rec.NextAppointmentDate = &n
	}
	if req.BiometricsRegistered != nil {
		rec.BiometricsRegistered = *req.BiometricsRegistered
	}

	if err := qtx.Save(ctx, rec); err != nil {
		s.logger.Error("update persist failed", zap.Error(err))
		return CardResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update commit failed", zap.Error(err))
		return CardResponse{}, err
	}

	if rec.HealthCardID != nil {
		s.invalidateCardCache(ctx, *rec.HealthCardID)
	}

	s.logger.Info("health record updated", zap.String("employee_id", employeeID))
	return mapToResponse(*rec), nil
}

func (s *service) GetByEmployeeID(ctx context.Context, employeeID string) (CardResponse, error) {
	rec, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No stored record yet: show the template, flagged unregistered.
			resp := mapToResponse(withTemplateDefaults(HealthRecord{EmployeeID: employeeID}))
			return resp, nil
		}
		s.logger.Error("get health record failed", zap.Error(err))
		return CardResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(withTemplateDefaults(*rec)), nil
}

func (s *service) GetByCardID(ctx context.Context, cardID string) (CardResponse, error) {
	cacheKey := GetCardCacheKey(cardID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp CardResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		rec, err := s.repo.FindByCardID(ctx, cardID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Placeholder view; misses are not cached so a fresh
				// registration is visible immediately.
				resp := mapToResponse(withTemplateDefaults(HealthRecord{}))
				resp.HealthCardID = cardID
				resp.Registered = false
				return resp, nil
			}
			return nil, mapRepositoryError(err)
		}

		resp := mapToResponse(withTemplateDefaults(*rec))

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, cardCacheTTL)
			}
		}

		return resp, nil
	})
	if err != nil {
		return CardResponse{}, err
	}

	return v.(CardResponse), nil
}

func (s *service) GetAll(ctx context.Context) ([]CardResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all health records failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]CardResponse, len(rows))
	for i, rec := range rows {
		res[i] = mapToResponse(rec)
	}
	return res, nil
}

func (s *service) generateCardID(ctx context.Context, repo Repository) (string, error) {
	for attempt := 0; attempt < maxCardIDAttempts; attempt++ {
		id := newCardID()
		exists, err := repo.ExistsByCardID(ctx, id)
		if err != nil {
			s.logger.Error("card id uniqueness check failed", zap.Error(err))
			return "", err
		}
		if !exists {
			return id, nil
		}
		s.logger.Warn("card id collision, retrying",
			zap.String("card_id", id),
			zap.Int("attempt", attempt+1),
		)
	}

	s.logger.Error("card id generation exhausted retries")
	return "", healthcarderrors.ErrCardIDGeneration
}

func (s *service) isRegistered(ctx context.Context, employeeID string) (bool, error) {
	rec, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return rec.HealthCardID != nil, nil
}

func (s *service) workflowResponse(ctx context.Context, employeeID string) (WorkflowResponse, error) {
	registered, err := s.isRegistered(ctx, employeeID)
	if err != nil {
		return WorkflowResponse{}, err
	}

	state := s.tracker.State(employeeID, registered)
	return WorkflowResponse{
		EmployeeID:           employeeID,
		State:                string(state),
		BiometricsRegistered: state == StateBiometricCaptured || state == StateRegistered,
	}, nil
}

func (s *service) invalidateCardCache(ctx context.Context, cardID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetCardCacheKey(cardID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate card cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func applyString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func mapToResponse(rec HealthRecord) CardResponse {
	resp := CardResponse{
		EmployeeID:           rec.EmployeeID,
		Registered:           rec.HealthCardID != nil,
		Name:                 rec.Name,
		Place:                rec.Place,
		Hospital:             rec.Hospital,
		BloodGroup:           rec.BloodGroup,
		Age:                  rec.Age,
		Medications:          rec.Medications,
		Allergies:            rec.Allergies,
		Chronic:              rec.Chronic,
		Disability:           rec.Disability,
		Vaccination:          rec.Vaccination,
		Illnesses:            rec.Illnesses,
		Hospitalizations:     rec.Hospitalizations,
		EmergencyContact:     rec.EmergencyContact,
		BiometricsRegistered: rec.BiometricsRegistered,
	}
	if rec.HealthCardID != nil {
		resp.HealthCardID = *rec.HealthCardID
	}
	if rec.CheckupDate != nil {
		resp.CheckupDate = rec.CheckupDate.Format("2006-01-02")
	}
	if rec.NextAppointmentDate != nil {
		resp.NextAppointmentDate = rec.NextAppointmentDate.Format("2006-01-02")
	}
	return resp
}
