package roster

import (
	"context"
	"database/sql"

	"github.com/RonikAgarwal/Swasthi/internal/attendance"
	"github.com/RonikAgarwal/Swasthi/internal/healthcard"
	rostererrors "github.com/RonikAgarwal/Swasthi/internal/roster/errors"
	"github.com/RonikAgarwal/Swasthi/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	statusRegistered   = "Registered"
	statusUnregistered = "Unregistered"
)

//go:generate mockgen -source=roster_service.go -destination=mock/roster_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateEntryRequest) (EntryResponse, error)
	GetAll(ctx context.Context, companyID string) ([]EntryResponse, error)
	Update(ctx context.Context, companyID, employeeID string, req UpdateEntryRequest) (EntryResponse, error)
	Delete(ctx context.Context, companyID, employeeID string) error
}

type service struct {
	db             *sql.DB
	repo           Repository
	attendanceRepo attendance.Repository
	cardRepo       healthcard.Repository
	logger         *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	attendanceRepo attendance.Repository,
	cardRepo healthcard.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("roster.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("roster.service")
	}
	return &service{
		db:             db,
		repo:           repo,
		attendanceRepo: attendanceRepo,
		cardRepo:       cardRepo,
		logger:         l,
	}
}

// Create adds a roster entry and seeds its zeroed attendance row inside the
// same transaction.
func (s *service) Create(ctx context.Context, companyID string, req CreateEntryRequest) (EntryResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create roster entry requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
	)

	if companyID == "" {
		return EntryResponse{}, rostererrors.ErrMissingCompany
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create roster entry begin tx failed", zap.Error(err))
		return EntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	entry := &Entry{
		ID:         uuid.New(),
		CompanyID:  companyID,
		EmployeeID: req.EmployeeID,
		Name:       req.Name,
		Place:      req.Place,
	}
	if err := qtx.Create(ctx, entry); err != nil {
		s.logger.Error("create roster entry persist failed", zap.Error(err))
		return EntryResponse{}, mapRepositoryError(err)
	}

	attendanceRow := &attendance.Attendance{
		EmployeeID: req.EmployeeID,
		CompanyID:  companyID,
		Status:     attendance.StatusPresent,
	}
	if err := s.attendanceRepo.WithTx(tx).Create(ctx, attendanceRow); err != nil {
		s.logger.Error("seed attendance row failed", zap.Error(err))
		return EntryResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create roster entry commit failed", zap.Error(err))
		return EntryResponse{}, err
	}

	s.logger.Info("roster entry created",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
	)

	return mapToResponse(*entry, ""), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]EntryResponse, error) {
	entries, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("get roster failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	employeeIDs := make([]string, len(entries))
	for i, e := range entries {
		employeeIDs[i] = e.EmployeeID
	}

	cardIDs, err := s.cardRepo.FindCardIDs(ctx, employeeIDs)
	if err != nil {
		s.logger.Error("roster card badge lookup failed", zap.Error(err))
		return nil, err
	}

	res := make([]EntryResponse, len(entries))
	for i, e := range entries {
		res[i] = mapToResponse(e, cardIDs[e.EmployeeID])
	}
	return res, nil
}

func (s *service) Update(ctx context.Context, companyID, employeeID string, req UpdateEntryRequest) (EntryResponse, error) {
	s.logger.Debug("update roster entry requested",
		zap.String("company_id", companyID),
		zap.String("employee_id", employeeID),
	)

	entry, err := s.repo.FindByEmployeeID(ctx, companyID, employeeID)
	if err != nil {
		s.logger.Error("update roster entry fetch failed", zap.Error(err))
		return EntryResponse{}, mapRepositoryError(err)
	}

	entry.Name = req.Name
	entry.Place = req.Place

	if err := s.repo.Update(ctx, entry); err != nil {
		s.logger.Error("update roster entry persist failed", zap.Error(err))
		return EntryResponse{}, mapRepositoryError(err)
	}

	cardIDs, err := s.cardRepo.FindCardIDs(ctx, []string{employeeID})
	if err != nil {
		return EntryResponse{}, err
	}

	s.logger.Info("roster entry updated", zap.String("employee_id", employeeID))
	return mapToResponse(*entry, cardIDs[employeeID]), nil
}

// Delete removes the roster membership and its attendance counts. The
// health record, registered or not, is left alone.
func (s *service) Delete(ctx context.Context, companyID, employeeID string) error {
	s.logger.Debug("delete roster entry requested",
		zap.String("company_id", companyID),
		zap.String("employee_id", employeeID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete roster entry begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, companyID, employeeID); err != nil {
		s.logger.Error("delete roster entry failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	if err := s.attendanceRepo.WithTx(tx).Delete(ctx, companyID, employeeID); err != nil {
		s.logger.Error("delete attendance row failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete roster entry commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("roster entry deleted", zap.String("employee_id", employeeID))
	return nil
}

func mapToResponse(e Entry, cardID string) EntryResponse {
	status := statusUnregistered
	if cardID != "" {
		status = statusRegistered
	}
	return EntryResponse{
		EmployeeID:   e.EmployeeID,
		Name:         e.Name,
		Place:        e.Place,
		HealthCardID: cardID,
		Status:       status,
	}
}
