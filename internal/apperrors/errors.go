package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrStorage indicates a persistence-layer fault (serialization or I/O).
// Unlike business-rule rejections, these signal an environment problem and
// must propagate to the caller instead of being folded into a result message.
var ErrStorage = errors.New("storage error")

// ErrUnknownCurrency indicates a currency code that is not part of the
// supported catalog. Returned by strict conversion; lenient paths degrade
// instead of returning it.
var ErrUnknownCurrency = errors.New("unknown currency")
