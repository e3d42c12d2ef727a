package errors

// Error codes used across the data layer and API.
const (
	// CodeNotFound: the operation target id does not resolve.
	CodeNotFound = "NOT_FOUND"
	// CodeDuplicate: create collides with an existing name/gender/age triple.
	CodeDuplicate = "DUPLICATE_CHARACTER"
	// CodeStorage: the underlying blob read/write or decode failed.
	CodeStorage = "STORAGE_FAILURE"
	// CodeValidation: a structurally invalid payload was rejected.
	CodeValidation = "VALIDATION_FAILED"
	// CodeAlreadyVoted: this client already rated the character.
	CodeAlreadyVoted = "ALREADY_VOTED"
	// CodeRateLimited: too many requests from one client.
	CodeRateLimited = "RATE_LIMIT_EXCEEDED"
	// CodeInternal: anything unexpected.
	CodeInternal = "INTERNAL_ERROR"
)

// NewDuplicateError reports a character create colliding on the identity triple.
func NewDuplicateError(message string) *AppError {
	return NewConflictError(CodeDuplicate, message)
}

// NewStorageError wraps a failed blob read/write.
func NewStorageError(err error) *AppError {
	return NewInternalServerError(CodeStorage, err.Error())
}

// NewValidationError reports a structurally invalid payload.
func NewValidationError(message string) *AppError {
	return NewBadRequestError(CodeValidation, message)
}

func hasCode(err error, code string) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}

// IsNotFound reports whether err is a NOT_FOUND application error.
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsDuplicate reports whether err is a duplicate-create error.
func IsDuplicate(err error) bool { return hasCode(err, CodeDuplicate) }

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return hasCode(err, CodeValidation) }

// IsStorage reports whether err is a storage failure.
func IsStorage(err error) bool { return hasCode(err, CodeStorage) }
