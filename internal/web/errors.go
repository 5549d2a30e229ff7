package web

import "fmt"

// APIError is a classified failure returned by the workspace API.
type APIError struct {
	Code string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: %s", e.Code)
}

// Common failure codes, exported as sentinels so callers can match
// with errors.Is. Codes outside this set still surface as *APIError.
var (
	ErrInvalidAuth     = &APIError{Code: "invalid_auth"}
	ErrTokenRevoked    = &APIError{Code: "token_revoked"}
	ErrAccountInactive = &APIError{Code: "account_inactive"}
	ErrChannelNotFound = &APIError{Code: "channel_not_found"}
	ErrMessageNotFound = &APIError{Code: "message_not_found"}
	ErrNotInChannel    = &APIError{Code: "not_in_channel"}
	ErrAlreadyReacted  = &APIError{Code: "already_reacted"}
	ErrNoReaction      = &APIError{Code: "no_reaction"}
	ErrRateLimited     = &APIError{Code: "rate_limited"}
)

var knownErrors = map[string]*APIError{
	ErrInvalidAuth.Code:     ErrInvalidAuth,
	ErrTokenRevoked.Code:    ErrTokenRevoked,
	ErrAccountInactive.Code: ErrAccountInactive,
	ErrChannelNotFound.Code: ErrChannelNotFound,
	ErrMessageNotFound.Code: ErrMessageNotFound,
	ErrNotInChannel.Code:    ErrNotInChannel,
	ErrAlreadyReacted.Code:  ErrAlreadyReacted,
	ErrNoReaction.Code:      ErrNoReaction,
	ErrRateLimited.Code:     ErrRateLimited,
}

// classify maps a server error code to its sentinel when known.
func classify(code string) error {
	if err, ok := knownErrors[code]; ok {
		return err
	}
	return &APIError{Code: code}
}
