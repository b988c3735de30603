package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "TIME_CONFLICT"

	// ─── Course tables ─────────────────────────────────────────────────
	ErrIngestion      ErrCode = "CSV_UNREADABLE"
	ErrSchemaMismatch ErrCode = "CSV_SCHEMA_MISMATCH"
	ErrMissingValues  ErrCode = "CSV_MISSING_VALUES"
	ErrTimeFormat     ErrCode = "CSV_TIME_FORMAT"
	ErrWeekday        ErrCode = "CSV_WEEKDAY"
	ErrFileRequired   ErrCode = "FILE_REQUIRED"
	ErrFileTooLarge   ErrCode = "FILE_TOO_LARGE"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrValidation:
		return "请填写所有课程信息！"
	case ErrInvalidID:
		return "会话ID格式不正确。"
	case ErrInvalidPayload:
		return "请求内容无效。"
	case ErrNotFound:
		return "会话不存在或已过期。"
	case ErrConflict:
		return "时间冲突！该时间段已有课程。"
	case ErrIngestion:
		return "CSV读取失败。"
	case ErrSchemaMismatch:
		return "CSV列名不匹配！"
	case ErrMissingValues:
		return "CSV存在空值列。"
	case ErrTimeFormat:
		return "CSV时间格式错误。"
	case ErrWeekday:
		return "CSV星期错误。"
	case ErrFileRequired:
		return "请上传CSV文件。"
	case ErrFileTooLarge:
		return "文件大小超出限制。"
	case ErrInternal:
		return "服务器内部错误。"
	default:
		return "发生未知错误。"
	}
}
