package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"google.golang.org/api/googleapi"

	"taskie/internal/api"
	"taskie/internal/exitcode"
)

// reportFailure prints err and maps it to an exit code.
// 401/403 are auth errors, other 4xx are user errors, the rest are backend errors.
func reportFailure(errOut io.Writer, err error) int {
	if api.IsAuthError(err) {
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(errOut, "error: cancelled")
		return exitcode.BackendError
	}

	if errors.Is(err, api.ErrTaskIDRequired) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code >= http.StatusBadRequest && gerr.Code < http.StatusInternalServerError {
		msg := gerr.Message
		if msg == "" {
			msg = http.StatusText(gerr.Code)
		}
		fmt.Fprintf(errOut, "error: %s\n", msg)
		return exitcode.UserError
	}

	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}
