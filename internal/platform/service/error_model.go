package service

import (
	"errors"

	"github.com/adromero/frame-sync/internal/db"
)

type ErrorCode string

const (
	ErrorCodeValidation         ErrorCode = "validation"
	ErrorCodeNotFound           ErrorCode = "not_found"
	ErrorCodeConstraint         ErrorCode = "constraint_violation"
	ErrorCodeStorageUnavailable ErrorCode = "storage_unavailable"
	ErrorCodeRateLimited        ErrorCode = "rate_limited"
	ErrorCodeInternal           ErrorCode = "internal"
)

type ServiceError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func NewServiceError(code ErrorCode, message string) error {
	return &ServiceError{Code: code, Message: message}
}

func NewValidationError(message string) error {
	return NewServiceError(ErrorCodeValidation, message)
}

func NewNotFoundError(message string) error {
	return NewServiceError(ErrorCodeNotFound, message)
}

func NewConstraintError(message string) error {
	return NewServiceError(ErrorCodeConstraint, message)
}

func NewStorageUnavailableError(message string) error {
	return NewServiceError(ErrorCodeStorageUnavailable, message)
}

func NewInternalError(message string) error {
	return NewServiceError(ErrorCodeInternal, message)
}

func AsServiceError(err error) (*ServiceError, bool) {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr, true
	}
	return nil, false
}

// IsCode 判断错误是否为指定分类
func IsCode(err error, code ErrorCode) bool {
	serviceErr, ok := AsServiceError(err)
	return ok && serviceErr.Code == code
}

// TranslateStorageError 将存储层错误映射到业务错误分类，已是业务错误的原样返回
func TranslateStorageError(err error, notFoundMessage string) error {
	if err == nil {
		return nil
	}
	if _, ok := AsServiceError(err); ok {
		return err
	}

	switch {
	case db.IsNotFound(err):
		return &ServiceError{Code: ErrorCodeNotFound, Message: notFoundMessage, Err: err}
	case db.IsBusyError(err):
		return &ServiceError{Code: ErrorCodeStorageUnavailable, Message: "数据库繁忙，请稍后重试", Err: err}
	case db.IsConstraintError(err):
		return &ServiceError{Code: ErrorCodeConstraint, Message: "数据约束冲突", Err: err}
	default:
		return &ServiceError{Code: ErrorCodeInternal, Message: "数据库操作失败", Err: err}
	}
}
