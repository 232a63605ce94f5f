package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/RonikAgarwal/Swasthi/internal/events"
	"github.com/RonikAgarwal/Swasthi/internal/messaging/kafka"
	"github.com/RonikAgarwal/Swasthi/internal/shared/apperror"
	"github.com/RonikAgarwal/Swasthi/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Get(ctx context.Context, companyID, employeeID string) (AttendanceResponse, error)
	GetAll(ctx context.Context, companyID string) ([]AttendanceResponse, error)
	UpdateField(ctx context.Context, companyID, employeeID string, req UpdateFieldRequest) (AttendanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	// When set, continuousLeaves may not exceed leaves. Off by default to
	// match the observed behavior of the product.
	strictLeaves bool
	logger       *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

// NewStrictService enforces continuousLeaves <= leaves on updates.
func NewStrictService(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	s := NewServiceWithOutbox(db, repo, outboxRepo, logger...).(*service)
	s.strictLeaves = true
	return s
}

func (s *service) Get(ctx context.Context, companyID, employeeID string) (AttendanceResponse, error) {
	row, err := s.repo.FindByEmployeeID(ctx, companyID, employeeID)
	if err != nil {
		s.logger.Error("get attendance failed", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]AttendanceResponse, error) {
	rows, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("get all attendance failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]AttendanceResponse, len(rows))
	for i, row := range rows {
		res[i] = mapToResponse(row)
	}
	return res, nil
}

func (s *service) UpdateField(ctx context.Context, companyID, employeeID string, req UpdateFieldRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update attendance field requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("employee_id", employeeID),
		zap.String("field", req.Field),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update attendance begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByEmployeeID(ctx, companyID, employeeID)
	if err != nil {
		s.logger.Error("update attendance fetch existing failed", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	prevContinuous := row.ContinuousLeaves

	if err := applyField(row, req.Field, req.Value); err != nil {
		return AttendanceResponse{}, err
	}
	if s.strictLeaves && row.ContinuousLeaves > row.Leaves {
		return AttendanceResponse{}, apperror.New(
			apperror.CodeValidationError,
			"Continuous Leaves may not exceed total leaves",
			400,
		)
	}

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("update attendance persist failed", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	// Raise the worker check only on the upward crossing of the limit, not
	// on every read while the count stays above it.
	crossed := prevContinuous <= ContinuousLeaveLimit && row.ContinuousLeaves > ContinuousLeaveLimit
	if crossed && s.outbox != nil {
		event := events.WorkerCheckRequestedEvent{
			EventType:        "worker_check_requested",
			RequestID:        rid,
			EmployeeID:       employeeID,
			CompanyID:        companyID,
			ContinuousLeaves: row.ContinuousLeaves,
			OccurredAt:       time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal worker check event failed", zap.Error(err))
			return AttendanceResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "attendance",
			AggregateID:   employeeID,
			EventType:     event.EventType,
			Topic:         events.WorkerCheckTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("worker check outbox persist failed",
				zap.String("employee_id", employeeID),
				zap.Error(err),
			)
			return AttendanceResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update attendance commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	if crossed {
		s.logger.Warn("continuous leave limit exceeded",
			zap.String("employee_id", employeeID),
			zap.Int("continuous_leaves", row.ContinuousLeaves),
		)
	}
	s.logger.Info("attendance field updated",
		zap.String("employee_id", employeeID),
		zap.String("field", req.Field),
	)

	return mapToResponse(*row), nil
}

func applyField(row *Attendance, field, value string) error {
	switch field {
	case FieldTotalDays, FieldLeaves, FieldContinuousLeaves:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return apperror.InvalidField(field)
		}
		switch field {
		case FieldTotalDays:
			row.TotalDays = n
		case FieldLeaves:
			row.Leaves = n
		case FieldContinuousLeaves:
			row.ContinuousLeaves = n
		}
		return nil
	case FieldStatus:
		status, ok := normalizeStatus(value)
		if !ok {
			return apperror.InvalidField(field)
		}
		row.Status = status
		return nil
	default:
		return apperror.InvalidField("field")
	}
}

func normalizeStatus(v string) (string, bool) {
	switch strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(v), " ", "_")) {
	case StatusPresent:
		return StatusPresent, true
	case StatusOnLeave:
		return StatusOnLeave, true
	default:
		return "", false
	}
}

func mapToResponse(a Attendance) AttendanceResponse {
	cls := Classify(a)
	return AttendanceResponse{
		EmployeeID:       a.EmployeeID,
		CompanyID:        a.CompanyID,
		TotalDays:        a.TotalDays,
		Leaves:           a.Leaves,
		ContinuousLeaves: a.ContinuousLeaves,
		Status:           a.Status,
		WarningLevel:     string(cls.WarningLevel),
		Tone:             cls.Tone,
	}
}
