package gateway

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/adearn/internal/client/models"
)

var (
	ErrUnavailable  = errors.New("backend unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("account already registered")
	// ErrSignupsDisabled and ErrConfirmationRequired describe a backend
	// configured in a way this client cannot work with.
	ErrSignupsDisabled      = errors.New("sign-ups are disabled on the backend")
	ErrConfirmationRequired = errors.New("backend requires email confirmation before sign-in")
)

// UnknownRejection is the code used when a procedure fails without saying why.
const UnknownRejection = "unknown"

// DomainError is a structured rejection from a remote procedure.
type DomainError struct {
	RPC  RPC
	Code string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s rejected: %s", e.RPC, e.Code)
}

// RemoteError is a backend failure that maps onto no sentinel.
type RemoteError struct {
	Status  int
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("backend error %d: %s", e.Status, e.Message)
}

// decodeRPCResult reads a procedure's JSON answer. Answers that are not an
// object with a success field count as successful.
func decodeRPCResult(name RPC, raw []byte) (*models.RPCResult, error) {
	raw = bytes.TrimSpace(raw)
	res := &models.RPCResult{Success: true, Data: json.RawMessage(raw)}

	if len(raw) == 0 || raw[0] != '{' {
		return res, nil
	}

	var head struct {
		Success *bool  `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("decode %s result: %w", name, err)
	}
	if head.Success != nil {
		res.Success = *head.Success
	}
	res.Message = head.Message

	if !res.Success {
		code := head.Message
		if code == "" {
			code = UnknownRejection
		}
		return res, &DomainError{RPC: name, Code: code}
	}
	return res, nil
}
