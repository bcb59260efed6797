package common

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP Status Code Constants
const (
	StatusOK        = 200 // Thành công
	StatusCreated   = 201 // Tạo mới thành công
	StatusNoContent = 204 // Thành công nhưng không có nội dung trả về

	StatusBadRequest      = 400 // Yêu cầu không hợp lệ
	StatusUnauthorized    = 401 // Chưa xác thực
	StatusNotFound        = 404 // Không tìm thấy tài nguyên
	StatusConflict        = 409 // Xung đột dữ liệu
	StatusTooManyRequests = 429 // Quá nhiều yêu cầu

	StatusInternalServerError = 500 // Lỗi server
	StatusServiceUnavailable  = 503 // Dịch vụ không khả dụng
)

// Response Messages
const (
	MsgSuccess         = "Thao tác thành công"
	MsgInternalError   = "Lỗi hệ thống"
	MsgValidationError = "Dữ liệu không hợp lệ"
	MsgTokenMissing    = "Thiếu token xác thực"
	MsgTokenInvalid    = "Token không hợp lệ"
)

// ErrorCode định nghĩa mã lỗi chi tiết
type ErrorCode struct {
	Code        string // Mã lỗi (ví dụ: AUTH_001)
	Category    string // Phân loại lỗi (ví dụ: Authentication)
	SubCategory string // Phân loại con (ví dụ: Token)
	Description string // Mô tả chi tiết
}

var (
	// System Errors (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{Code: "SYS_001", Category: "System", SubCategory: "Internal", Description: "Lỗi hệ thống nội bộ"}

	// Authentication Errors (AUTH_xxx)
	ErrCodeAuthToken = ErrorCode{Code: "AUTH_001", Category: "Authentication", SubCategory: "Token", Description: "Lỗi liên quan đến token"}

	// Validation Errors (VAL_xxx)
	ErrCodeValidationInput  = ErrorCode{Code: "VAL_001", Category: "Validation", SubCategory: "Input", Description: "Lỗi dữ liệu đầu vào"}
	ErrCodeValidationFormat = ErrorCode{Code: "VAL_002", Category: "Validation", SubCategory: "Format", Description: "Lỗi định dạng dữ liệu"}

	// Analytics Errors (ANL_xxx)
	ErrCodeAnalyticsRange    = ErrorCode{Code: "ANL_001", Category: "Analytics", SubCategory: "Range", Description: "Khoảng thời gian không hợp lệ"}
	ErrCodeAnalyticsMetric   = ErrorCode{Code: "ANL_002", Category: "Analytics", SubCategory: "Metric", Description: "Loại thống kê không hợp lệ"}
	ErrCodeAnalyticsStrategy = ErrorCode{Code: "ANL_003", Category: "Analytics", SubCategory: "Strategy", Description: "Phương pháp tính không hợp lệ"}

	// Database Errors (DB_xxx)
	ErrCodeDatabase           = ErrorCode{Code: "DB", Category: "Database", SubCategory: "General", Description: "Lỗi cơ sở dữ liệu chung"}
	ErrCodeDatabaseConnection = ErrorCode{Code: "DB_001", Category: "Database", SubCategory: "Connection", Description: "Lỗi kết nối cơ sở dữ liệu"}
	ErrCodeDatabaseQuery      = ErrorCode{Code: "DB_002", Category: "Database", SubCategory: "Query", Description: "Lỗi truy vấn dữ liệu"}

	// Business Logic Errors (BIZ_xxx)
	ErrCodeBusinessOperation = ErrorCode{Code: "BIZ_002", Category: "Business", SubCategory: "Operation", Description: "Lỗi thao tác nghiệp vụ"}
)

// Error định nghĩa cấu trúc lỗi chi tiết
type Error struct {
	Code       ErrorCode // Mã lỗi chi tiết
	Message    string    // Thông báo lỗi (hiển thị cho client)
	StatusCode int       // HTTP status code
	Details    any       // Thông tin chi tiết thêm về lỗi (lỗi gốc, không trả về client nếu là lỗi server)
}

// Error trả về message của lỗi
func (e *Error) Error() string {
	return e.Message
}

// Unwrap trả về lỗi gốc nếu Details là error
func (e *Error) Unwrap() error {
	if err, ok := e.Details.(error); ok {
		return err
	}
	return nil
}

// Is so sánh theo mã lỗi, để errors.Is(err, ErrInvalidRange) đúng cả khi message đã được bổ sung chi tiết
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code.Code == t.Code.Code && e.StatusCode == t.StatusCode
}

// NewError tạo một error mới với đầy đủ thông tin
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// Custom errors
var (
	ErrTokenMissing = NewError(ErrCodeAuthToken, MsgTokenMissing, StatusUnauthorized, nil)
	ErrTokenInvalid = NewError(ErrCodeAuthToken, MsgTokenInvalid, StatusUnauthorized, nil)

	ErrInvalidInput  = NewError(ErrCodeValidationInput, MsgValidationError, StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, "Định dạng dữ liệu không hợp lệ", StatusBadRequest, nil)

	ErrInvalidRange    = NewError(ErrCodeAnalyticsRange, "start_date và end_date phải là thời điểm hợp lệ (ISO-8601)", StatusBadRequest, nil)
	ErrInvalidMetric   = NewError(ErrCodeAnalyticsMetric, "type phải là visits hoặc profit", StatusBadRequest, nil)
	ErrInvalidStrategy = NewError(ErrCodeAnalyticsStrategy, "method phải là aggregation, js hoặc reduce", StatusBadRequest, nil)

	ErrNotFound          = NewError(ErrCodeDatabaseQuery, "Không tìm thấy dữ liệu", StatusNotFound, nil)
	ErrRepositoryFailure = NewError(ErrCodeDatabase, MsgInternalError, StatusInternalServerError, nil)
)

// MongoDB Specific Errors
var (
	ErrMongoNetwork   = NewError(ErrCodeDatabaseConnection, "Lỗi mạng khi kết nối MongoDB", StatusServiceUnavailable, nil)
	ErrMongoTimeout   = NewError(ErrCodeDatabaseConnection, "Kết nối MongoDB bị timeout", StatusServiceUnavailable, nil)
	ErrMongoDuplicate = NewError(ErrCodeDatabaseQuery, "Dữ liệu trùng lặp trong MongoDB", StatusConflict, nil)
)

// Wrap gắn lỗi gốc vào một lỗi mẫu, giữ nguyên mã lỗi và message của mẫu
func Wrap(template error, cause error) error {
	var t *Error
	if !errors.As(template, &t) {
		return cause
	}
	return &Error{Code: t.Code, Message: t.Message, StatusCode: t.StatusCode, Details: cause}
}

// WithMessage tạo bản sao của lỗi mẫu với message chi tiết hơn
func WithMessage(template error, message string) error {
	var t *Error
	if !errors.As(template, &t) {
		return template
	}
	return &Error{Code: t.Code, Message: message, StatusCode: t.StatusCode, Details: t.Details}
}

// ConvertMongoError chuyển đổi lỗi MongoDB sang lỗi hệ thống.
// Lỗi đã là *Error được giữ nguyên; mongo.ErrNoDocuments thành ErrNotFound.
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return err
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return Wrap(ErrMongoDuplicate, err)
	}
	if mongo.IsNetworkError(err) {
		return Wrap(ErrMongoNetwork, err)
	}
	if mongo.IsTimeout(err) {
		return Wrap(ErrMongoTimeout, err)
	}

	return Wrap(ErrRepositoryFailure, err)
}
