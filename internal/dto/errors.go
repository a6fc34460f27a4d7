package dto

// BaseError универсальный корневой формат ошибки
// Code: машинно-ориентированный код (snake_case)
// Message: краткое человеко-читаемое описание
// Details: дополнительная строка (причина / фрагмент)
// Fields: для валидационных ошибок (имя поля + текст)
type BaseError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details string       `json:"details,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError отдельная ошибка по конкретному полю
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

const (
	CodeValidation         = "validation_error"
	CodeNotFound           = "not_found"
	CodeConflict           = "conflict"
	CodeUnprocessable      = "unprocessable"
	CodeRateLimited        = "rate_limited"
	CodeStorageUnavailable = "storage_unavailable"
	CodeInternal           = "internal_error"
)

func NewValidationError(msg string, fields []FieldError) BaseError {
	return BaseError{Code: CodeValidation, Message: msg, Fields: fields}
}
func NewNotFoundError(msg string) BaseError {
	return BaseError{Code: CodeNotFound, Message: msg}
}
func NewConflictError(msg string) BaseError {
	return BaseError{Code: CodeConflict, Message: msg}
}
func NewUnprocessableError(msg string) BaseError {
	return BaseError{Code: CodeUnprocessable, Message: msg}
}
func NewRateLimitedError(msg string) BaseError {
	return BaseError{Code: CodeRateLimited, Message: msg}
}
func NewStorageUnavailableError() BaseError {
	return BaseError{Code: CodeStorageUnavailable, Message: "storage temporarily unavailable, retry later"}
}
func NewInternalError(details string) BaseError {
	return BaseError{Code: CodeInternal, Message: "internal server error", Details: details}
}
