package psp

import "encoding/json"

const (
	MethodInitialize     = "initialize"
	MethodInitialized    = "initialized"
	MethodShutdown       = "shutdown"
	MethodExit           = "exit"
	MethodStartLspServer = "host/startLspServer"
	MethodShowMessage    = "window/showMessage"
)

// MessageType is the severity of a message shown to the user.
type MessageType int

const (
	MessageError MessageType = iota + 1
	MessageWarning
	MessageInfo
	MessageLog
)

func (typ MessageType) String() string {
	switch typ {
	case MessageError:
		return "error"
	case MessageWarning:
		return "warning"
	case MessageInfo:
		return "info"
	case MessageLog:
		return "log"
	default:
		return "unknown"
	}
}

// InitializeParams is the subset of the initialize request the plugin reads.
type InitializeParams struct {
	ProcessID *int   `json:"processId,omitempty"`
	RootURI   string `json:"rootUri,omitempty"`

	// InitializationOptions is kept raw so that it can be handed back to the
	// host byte-for-byte when starting the language server.
	InitializationOptions json.RawMessage `json:"initializationOptions,omitempty"`
}

// DocumentFilter describes which documents a language server applies to.
type DocumentFilter struct {
	Language string `json:"language,omitempty"`
	Scheme   string `json:"scheme,omitempty"`
	Pattern  string `json:"pattern,omitempty"`
}

type DocumentSelector []DocumentFilter

// StartLspServerParams asks the host to launch and attach a language server.
type StartLspServerParams struct {
	ServerURI        string           `json:"serverUri"`
	ServerArgs       []string         `json:"serverArgs"`
	DocumentSelector DocumentSelector `json:"documentSelector"`
	Options          json.RawMessage  `json:"options,omitempty"`
}

type ShowMessageParams struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}
