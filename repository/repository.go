// Package repository is the record store of the bay-plan service, backed
// by PostgreSQL through gorm.
package repository

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ccgmariano/bayplan/repository/models"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgreSQL error codes as constants
const (
	// Class 23 — Integrity Constraint Violation
	PgErrForeignKeyViolation = "23503" // foreign_key_violation
	PgErrUniqueViolation     = "23505" // unique_violation
	PgErrCheckViolation      = "23514" // check_violation
	PgErrNotNullViolation    = "23502" // not_null_violation

	// Class 08 — Connection Exception
	PgErrConnectionException = "08000" // connection_exception
	PgErrConnectionFailure   = "08006" // connection_failure

	// Class 40 — Transaction Rollback
	PgErrTransactionRollback = "40000" // transaction_rollback

	// Class 53 — Insufficient Resources
	PgErrInsufficientResources = "53000" // insufficient_resources
	PgErrDiskFull              = "53100" // disk_full
)

// Application-level repository error codes
const (
	ErrCodeEntityNotFound = "ENTITY_NOT_FOUND"
	ErrCodeDatabase       = "DATABASE_ERROR"
)

// RepositoryError represent an error in the repository layer
type RepositoryError struct {
	Code    string
	Message string
	Detail  string
}

// NotFound reports whether the error is a missing-entity signal rather
// than a store failure.
func (e *RepositoryError) NotFound() bool {
	return e != nil && e.Code == ErrCodeEntityNotFound
}

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(logger *slog.Logger) *Repository {
	return &Repository{logger: logger}
}

// ConnectDB opens the Postgres connection, retrying while the database
// comes up.
func (r *Repository) ConnectDB(dsn string) error {
	var lastErr error
	for i := 0; i < 10; i++ {
		r.logger.Info("Connecting to Postgres", "attempt", i+1)
		db, err := gorm.Open(postgres.Open(dsn))
		if err == nil {
			r.db = db
			r.logger.Info("Connected to Postgres")
			return nil
		}
		lastErr = err
		r.logger.Warn("Connection attempt failed", "attempt", i+1, "err", err)
		time.Sleep(2 * time.Second)
	}
	return fmt.Errorf("connecting to postgres: %w", lastErr)
}

// Migrate creates or updates the bay-plan tables.
func (r *Repository) Migrate() error {
	err := r.db.AutoMigrate(
		&models.Voyage{},
		&models.Workset{},
		&models.Container{},
		&models.Operation{},
		&models.EdiImport{},
		&models.StowageUnit{},
	)
	if err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	r.logger.Info("Database migration completed")
	return nil
}

// Ping checks database connectivity.
func (r *Repository) Ping() *RepositoryError {
	sqlDB, err := r.db.DB()
	if err != nil {
		return wrapDBError(err)
	}
	if err := sqlDB.Ping(); err != nil {
		return wrapDBError(err)
	}
	return nil
}

// DB Operations

// CreateVoyage creates a new voyage row
func (r *Repository) CreateVoyage(vesselName, voyageCode string) (*models.Voyage, *RepositoryError) {
	voyage := models.Voyage{
		VesselName: vesselName,
		VoyageCode: voyageCode,
	}
	if err := r.db.Create(&voyage).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return &voyage, nil
}

// CreateWorkset creates a new operation workset under a voyage
func (r *Repository) CreateWorkset(voyageID uint) (*models.Workset, *RepositoryError) {
	workset := models.Workset{
		VoyageID: voyageID,
		Type:     "OPERATION",
	}
	if err := r.db.Create(&workset).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return &workset, nil
}

// GetWorkset fetches one workset by ID
func (r *Repository) GetWorkset(id uint) (*models.Workset, *RepositoryError) {
	var workset models.Workset
	err := r.db.First(&workset, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &RepositoryError{
				Code:    ErrCodeEntityNotFound,
				Message: "Workset does not exist",
				Detail:  fmt.Sprintf("Workset with id %d does not exist", id),
			}
		}
		return nil, wrapDBError(err)
	}
	return &workset, nil
}

// UpsertContainer creates or replaces the position fields of a container
// keyed by (workset_id, container_no) in a single statement. Status and
// done_at are never touched, so operator progress survives re-imports.
func (r *Repository) UpsertContainer(c *models.Container) *RepositoryError {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "workset_id"}, {Name: "container_no"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"iso_type", "bay", "row", "tier", "area",
		}),
	}).Create(c).Error
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

// AppendOperation appends one (bay, area) operation row for a workset.
// Append-only: repeated imports accumulate rows.
func (r *Repository) AppendOperation(worksetID uint, operationType string, bay int, area string) (*models.Operation, *RepositoryError) {
	op := models.Operation{
		WorksetID:     worksetID,
		OperationType: operationType,
		Bay:           bay,
		Area:          area,
	}
	if err := r.db.Create(&op).Error; err != nil {
		return nil, wrapDBError(err)
	}
	return &op, nil
}

// ListOperations returns the raw operation rows of a workset for one
// operation type, unnormalized.
func (r *Repository) ListOperations(worksetID uint, operationType string) ([]models.Operation, *RepositoryError) {
	var ops []models.Operation
	err := r.db.
		Where("workset_id = ? AND operation_type = ?", worksetID, operationType).
		Find(&ops).Error
	if err != nil {
		return nil, wrapDBError(err)
	}
	return ops, nil
}

// ListContainers returns the containers of a workset sitting in any of the
// given physical bays and the given area.
func (r *Repository) ListContainers(worksetID uint, bays []int, area string) ([]models.Container, *RepositoryError) {
	var containers []models.Container
	err := r.db.
		Where("workset_id = ? AND bay IN ? AND area = ?", worksetID, bays, area).
		Find(&containers).Error
	if err != nil {
		return nil, wrapDBError(err)
	}
	return containers, nil
}

// SetContainerStatus marks a container done or pending. Returns an
// ENTITY_NOT_FOUND error when the (workset, container_no) pair does not
// exist.
func (r *Repository) SetContainerStatus(worksetID uint, containerNo string, done bool) (*models.Container, *RepositoryError) {
	fields := map[string]interface{}{
		"status":  models.StatusPending,
		"done_at": nil,
	}
	if done {
		now := time.Now().UTC()
		fields["status"] = models.StatusDone
		fields["done_at"] = now
	}

	tx := r.db.Model(&models.Container{}).
		Where("workset_id = ? AND container_no = ?", worksetID, containerNo).
		Updates(fields)
	if tx.Error != nil {
		return nil, wrapDBError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, &RepositoryError{
			Code:    ErrCodeEntityNotFound,
			Message: "Container not found for this workset",
			Detail:  fmt.Sprintf("Container %s does not exist in workset %d", containerNo, worksetID),
		}
	}

	var container models.Container
	err := r.db.
		Where("workset_id = ? AND container_no = ?", worksetID, containerNo).
		First(&container).Error
	if err != nil {
		return nil, wrapDBError(err)
	}
	return &container, nil
}

// CreateEdiImport stores the write-once audit row of one import.
func (r *Repository) CreateEdiImport(imp *models.EdiImport) *RepositoryError {
	if err := r.db.Create(imp).Error; err != nil {
		return wrapDBError(err)
	}
	return nil
}

// CreateStowageUnits stores the per-import parse output in one batch.
func (r *Repository) CreateStowageUnits(units []models.StowageUnit) *RepositoryError {
	if len(units) == 0 {
		return nil
	}
	if err := r.db.Create(&units).Error; err != nil {
		return wrapDBError(err)
	}
	return nil
}

// wrapDBError maps a gorm/driver error to a RepositoryError, preserving
// the Postgres error code where one exists.
func wrapDBError(err error) *RepositoryError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &RepositoryError{
			Code:    pgErr.Code,
			Message: pgErr.Message,
			Detail:  pgErr.Detail,
		}
	}
	return &RepositoryError{
		Code:    ErrCodeDatabase,
		Message: "Database error occured",
		Detail:  err.Error(),
	}
}
