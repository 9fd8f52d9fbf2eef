package errors

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

// PublicServerError is the only body callers see for server-side failures.
const PublicServerError = "Server error"

// StatusCode maps an error to the HTTP status the function responds with.
// Upstream, network and untyped failures all collapse to 500.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch GetType(err) {
	case ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the response body for err. Only client-facing
// error types expose their message.
func PublicMessage(err error) string {
	switch StatusCode(err) {
	case http.StatusBadRequest, http.StatusNotFound:
		bErr, _ := As(err)
		return bErr.Message
	default:
		return PublicServerError
	}
}

// UserMessage returns a user-friendly error message
func UserMessage(err error) string {
	if bErr, ok := As(err); ok {
		return formatUserError(bErr)
	}
	return err.Error()
}

// formatUserError creates user-friendly error messages based on error type
func formatUserError(bErr *BlogError) string {
	switch bErr.Type {
	case ErrorTypeValidation:
		return formatValidationError(bErr)
	case ErrorTypeNetwork:
		return formatNetworkError(bErr)
	case ErrorTypeUpstream:
		return formatUpstreamError(bErr)
	case ErrorTypeConfig:
		return formatConfigError(bErr)
	default:
		return bErr.Message
	}
}

func formatValidationError(bErr *BlogError) string {
	msg := bErr.Message
	if field, ok := bErr.Context["field"]; ok {
		msg = fmt.Sprintf("Invalid %s: %s", field, msg)
	}
	return msg
}

func formatNetworkError(bErr *BlogError) string {
	msg := bErr.Message
	if url, ok := bErr.Context["url"]; ok {
		msg = fmt.Sprintf("Network error accessing %s: %s", url, msg)
	}
	return msg
}

func formatUpstreamError(bErr *BlogError) string {
	msg := bErr.Message
	if status, ok := bErr.Context["status"]; ok {
		msg = fmt.Sprintf("%s (status %v)", msg, status)
	}
	return msg
}

func formatConfigError(bErr *BlogError) string {
	msg := bErr.Message
	if configType, ok := bErr.Context["config_type"]; ok {
		msg = fmt.Sprintf("Configuration error (%s): %s", configType, msg)
	}
	return msg
}

// PresentError displays an error to the user through the global logger and exits
func PresentError(err error) {
	if err == nil {
		return
	}

	if bErr, ok := As(err); ok {
		event := log.Fatal()

		for key, value := range bErr.Context {
			event = event.Interface(key, value)
		}

		event.Msg(UserMessage(bErr))
	} else {
		log.Fatal().Err(err).Msg("")
	}
}

// DebugInfo returns detailed error information for debugging
func DebugInfo(err error) map[string]interface{} {
	info := map[string]interface{}{
		"error":   err.Error(),
		"type":    "unknown",
		"context": map[string]interface{}{},
	}

	if bErr, ok := As(err); ok {
		info["type"] = string(bErr.Type)
		info["message"] = bErr.Message
		info["context"] = bErr.Context

		if bErr.Cause != nil {
			info["cause"] = bErr.Cause.Error()
		}
	}

	return info
}
