package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldUserID     = "user_id"
	FieldJobID      = "job_id"
	FieldSeasonID   = "season_id"
	FieldEmployerID = "employer_id"
	FieldEntryID    = "entry_id"
	FieldCollection = "collection"
)

// Standard component names.
const (
	ComponentLedger      = "ledger"
	ComponentJobs        = "jobs"
	ComponentTransaction = "transaction"
	ComponentUser        = "user"
	ComponentSeason      = "season"
	ComponentStore       = "store"
	ComponentAMQP        = "amqp"
	ComponentHTTP        = "http"
	ComponentWorker      = "worker"
)
