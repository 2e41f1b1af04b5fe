package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrEmailTaken         ErrCode = "EMAIL_TAKEN"
	ErrGoogleTokenInvalid ErrCode = "GOOGLE_TOKEN_INVALID"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden       ErrCode = "FORBIDDEN"
	ErrAdminAccessOnly ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation  ErrCode = "VALIDATION_ERROR"
	ErrInvalidID   ErrCode = "INVALID_ID"
	ErrInvalidCond ErrCode = "INVALID_COND"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Exam-specific ─────────────────────────────────────────────────
	ErrDuplicateTitle      ErrCode = "DUPLICATE_TITLE"
	ErrNoCorrectAnswer     ErrCode = "NO_CORRECT_ANSWER"
	ErrAnswerIndexOutRange ErrCode = "ANSWER_INDEX_OUT_OF_RANGE"
	ErrNotExamAuthor       ErrCode = "NOT_EXAM_AUTHOR"
	ErrUnknownReference    ErrCode = "UNKNOWN_REFERENCE"

	// ─── Export ────────────────────────────────────────────────────────
	ErrExportFailed ErrCode = "EXPORT_FAILED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email hoặc mật khẩu không đúng."
	case ErrEmailTaken:
		return "Email này đã được đăng ký."
	case ErrGoogleTokenInvalid:
		return "Không thể xác thực tài khoản Google."
	case ErrSessionInvalidated:
		return "Phiên đăng nhập đã hết hạn. Vui lòng đăng nhập lại."
	case ErrTokenRequired:
		return "Yêu cầu token xác thực."
	case ErrTokenInvalid:
		return "Token xác thực không hợp lệ."
	case ErrTokenExpired:
		return "Token xác thực đã hết hạn."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "Bạn không có quyền truy cập tài nguyên này."
	case ErrAdminAccessOnly:
		return "Tài nguyên này chỉ dành cho quản trị viên."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Dữ liệu không hợp lệ. Vui lòng kiểm tra lại."
	case ErrInvalidID:
		return "Định dạng ID không hợp lệ."
	case ErrInvalidCond:
		return "Điều kiện lọc không hợp lệ."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Không tìm thấy dữ liệu."
	case ErrConflict:
		return "Dữ liệu đã tồn tại."

	// ─── Exam-specific ─────────────────────────────────────────────────
	case ErrDuplicateTitle:
		return "Tiêu đề đề thi đã tồn tại trong môn học này."
	case ErrNoCorrectAnswer:
		return "Mỗi câu hỏi phải có ít nhất một đáp án đúng."
	case ErrAnswerIndexOutRange:
		return "Chỉ số đáp án đúng nằm ngoài danh sách lựa chọn."
	case ErrNotExamAuthor:
		return "Bạn không phải người tạo đề thi này."
	case ErrUnknownReference:
		return "Môn học, khối lớp hoặc loại đề thi không tồn tại."

	// ─── Export ────────────────────────────────────────────────────────
	case ErrExportFailed:
		return "Không thể xuất đề thi. Vui lòng thử lại."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Quá nhiều yêu cầu. Vui lòng thử lại sau."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Đã xảy ra lỗi máy chủ."
	default:
		return "Đã xảy ra lỗi không xác định."
	}
}
