package flow

import (
	"fmt"
	"time"
)

type State int

const (
	CollectingIdentity State = iota
	DispatchingCode
	CollectingCode
	Verified
)

var stateNames = map[State]string{
	CollectingIdentity: "collecting_identity",
	DispatchingCode:    "dispatching_code",
	CollectingCode:     "collecting_code",
	Verified:           "verified",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type DispatchStatus string

const (
	DispatchPending DispatchStatus = "pending"
	DispatchSent    DispatchStatus = "sent"
	DispatchFailed  DispatchStatus = "failed"
)

// CodeLength is the number of positions in a verification code.
const CodeLength = 4

// Code is a verification code as typed by the user, one character per position.
type Code [CodeLength]string

func (c Code) complete() bool {
	for _, d := range c {
		if d == "" {
			return false
		}
	}
	return true
}

// Identity is an email address accepted into a flow.
type Identity string

func (i Identity) String() string {
	return string(i)
}

// Request is one dispatch attempt for an identity. ID grows with every
// accepted submission and reset so that late results can be told apart.
type Request struct {
	ID          uint64         `json:"id"`
	Identity    Identity       `json:"identity"`
	Status      DispatchStatus `json:"status"`
	AttemptedAt time.Time      `json:"attempted_at"`
}

type Session struct {
	Identity   Identity  `json:"identity"`
	VerifiedAt time.Time `json:"verified_at"`
}

// Snapshot is a read-only copy of a flow.
type Snapshot struct {
	State   State    `json:"state"`
	Error   string   `json:"error"`
	Request *Request `json:"request,omitempty"`
	// Identity is only populated once the flow is Verified.
	Identity Identity `json:"identity,omitempty"`
	Session  *Session `json:"session,omitempty"`
	// Err is the error behind Error, if any.
	Err error `json:"-"`
}
