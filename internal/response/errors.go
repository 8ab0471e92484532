package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrNoSession          ErrCode = "NO_SESSION"
	ErrSessionExpired     ErrCode = "SESSION_EXPIRED"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden       ErrCode = "FORBIDDEN"
	ErrRoleDenied      ErrCode = "ROLE_DENIED"
	ErrStudentOnly     ErrCode = "STUDENT_ACCESS_ONLY"
	ErrCoordinatorOnly ErrCode = "COORDINATOR_ACCESS_ONLY"
	ErrOfficerOnly     ErrCode = "OFFICER_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrInvalidView    ErrCode = "INVALID_VIEW"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrConflict         ErrCode = "CONFLICT"
	ErrDependencyExists ErrCode = "DEPENDENCY_EXISTS"
	ErrActionForbidden  ErrCode = "ACTION_FORBIDDEN"

	// ─── Program-specific ──────────────────────────────────────────────
	ErrProgramClosed      ErrCode = "PROGRAM_CLOSED"
	ErrAlreadyParticipant ErrCode = "ALREADY_PARTICIPANT"
	ErrNotParticipant     ErrCode = "NOT_PARTICIPANT"
	ErrNoParticipants     ErrCode = "NO_PARTICIPANTS"

	// ─── Media ─────────────────────────────────────────────────────────
	ErrFileRequired    ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge    ErrCode = "FILE_TOO_LARGE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrConnection ErrCode = "CONNECTION_ERROR"
	ErrInternal   ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Identitas atau kata sandi salah."
	case ErrNoSession:
		return "Tidak ada sesi aktif. Silakan login."
	case ErrSessionExpired:
		return "Sesi Anda berakhir karena tidak ada aktivitas. Silakan login kembali."
	case ErrSessionInvalidated:
		return "Sesi Anda digantikan oleh login baru."
	case ErrTokenRequired:
		return "Token autentikasi diperlukan."
	case ErrTokenInvalid:
		return "Token autentikasi tidak valid."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "Anda tidak memiliki izin untuk mengakses sumber daya ini."
	case ErrRoleDenied:
		return "Peran Anda tidak diizinkan untuk tindakan ini."
	case ErrStudentOnly:
		return "Sumber daya ini terbatas untuk siswa."
	case ErrCoordinatorOnly:
		return "Sumber daya ini terbatas untuk pembina."
	case ErrOfficerOnly:
		return "Sumber daya ini terbatas untuk pengurus."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validasi gagal. Silakan periksa masukan Anda."
	case ErrInvalidID:
		return "Format ID tidak valid."
	case ErrInvalidPayload:
		return "Payload permintaan tidak valid."
	case ErrInvalidView:
		return "Tampilan yang diminta tidak dikenal."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Sumber daya tidak ditemukan."
	case ErrConflict:
		return "Sumber daya sudah ada."
	case ErrDependencyExists:
		return "Data tidak dapat dihapus karena masih digunakan oleh data lain."
	case ErrActionForbidden:
		return "Tindakan ini tidak diperbolehkan."

	// ─── Program-specific ──────────────────────────────────────────────
	case ErrProgramClosed:
		return "Kegiatan ini sudah ditutup."
	case ErrAlreadyParticipant:
		return "Siswa sudah terdaftar sebagai peserta."
	case ErrNotParticipant:
		return "Siswa bukan peserta kegiatan ini."
	case ErrNoParticipants:
		return "Kegiatan ini belum memiliki peserta."

	// ─── Media ─────────────────────────────────────────────────────────
	case ErrFileRequired:
		return "Unggah file diperlukan."
	case ErrUnsupportedFile:
		return "Jenis file tidak didukung."
	case ErrFileTooLarge:
		return "Ukuran file melebihi batas."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Terlalu banyak permintaan. Silakan coba lagi nanti."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrConnection:
		return "Tidak dapat memuat data awal. Periksa koneksi server."
	case ErrInternal:
		return "Terjadi kesalahan server internal."
	default:
		return "Terjadi kesalahan yang tidak terduga."
	}
}
