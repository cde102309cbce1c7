package results

import "codeberg.org/mutker/sensorbench/internal/errors"

const (
	// Configuration errors
	ErrInvalidConfig  = errors.ErrorCode("results_invalid_config")
	ErrInvalidCSVPath = errors.ErrorCode("results_invalid_csv_path")

	// Recording errors
	ErrInvalidRecord = errors.ErrorCode("results_invalid_record")
	ErrCSVAccess     = errors.ErrorCode("results_csv_access_failed")

	// Schema errors
	ErrSchemaInitFailed       = errors.ErrorCode("results_schema_init_failed")
	ErrSchemaValidationFailed = errors.ErrorCode("results_schema_validation_failed")
	ErrTransactionFailed      = errors.ErrorCode("results_transaction_failed")

	// Storage errors
	ErrStorageInit  = errors.ErrInitFailed
	ErrStorageClose = errors.ErrShutdownFailed

	// Service errors
	ErrServiceShutdown = errors.ErrShutdownFailed

	// Operation errors
	ErrOperationTimeout = errors.ErrTimeout

	// Rendering errors
	ErrNoData = errors.ErrorCode("results_no_data")
)
