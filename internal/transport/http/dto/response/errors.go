package response

var (
	ErrInvalidToken = ErrorResponse{
		Status:  "error",
		Error:   "invalid_token",
		Details: "Write token is missing or does not match",
	}

	ErrNoFile = ErrorResponse{
		Status:  "error",
		Error:   "no_file",
		Details: "Multipart field 'file' is required",
	}

	ErrFileTooLarge = ErrorResponse{
		Status:  "error",
		Error:   "file_too_large",
		Details: "Uploaded file exceeds the size limit",
	}

	ErrInvalidBody = ErrorResponse{
		Status:  "error",
		Error:   "invalid_body",
		Details: "Request body has the wrong shape",
	}

	ErrReadFailed = ErrorResponse{
		Status: "error",
		Error:  "read_failed",
	}

	ErrWriteFailed = ErrorResponse{
		Status: "error",
		Error:  "write_failed",
	}
)
