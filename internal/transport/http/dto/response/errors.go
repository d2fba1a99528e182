package response

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  "error",
		Error:   "invalid_request",
		Details: "Invalid request format",
	}

	ErrAuthenticationFailed = ErrorResponse{
		Status:  "error",
		Error:   "authentication_failed",
		Details: "Invalid username or password",
	}

	ErrUnauthorized = ErrorResponse{
		Status:  "error",
		Error:   "unauthorized",
		Details: "Admin token required",
	}

	ErrNotFound = ErrorResponse{
		Status:  "error",
		Error:   "not_found",
		Details: "Record not found",
	}

	ErrFileTooLarge = ErrorResponse{
		Status:  "error",
		Error:   "file_too_large",
		Details: "File size exceeds limit",
	}

	ErrUnsupportedMedia = ErrorResponse{
		Status:  "error",
		Error:   "unsupported_media_type",
		Details: "Only JPEG, PNG, GIF and WebP images are accepted",
	}

	ErrInternal = ErrorResponse{
		Status:  "error",
		Error:   "internal_error",
		Details: "Internal server error",
	}
)
