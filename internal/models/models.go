package models

// JoinRequest is the body of POST /api/join.
type JoinRequest struct {
	Room     string `json:"room"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// JoinResponse carries the relay credential back to the client.
type JoinResponse struct {
	Token    string `json:"token"`
	RelayURL string `json:"relayUrl"`
	Identity string `json:"identity"`
}

// TranslateRequest is the body of POST /api/translate. MyLang is the
// sender's own language, used as an explicit source hint when present.
// Room is optional; when set the server also publishes the chat envelope
// on that room's data channel.
type TranslateRequest struct {
	Text       string `json:"text"`
	MyLang     string `json:"myLang,omitempty"`
	TargetLang string `json:"targetLang,omitempty"`
	Tone       string `json:"tone,omitempty"`
	Room       string `json:"room,omitempty"`
}

// TranslateResponse is the success body of POST /api/translate.
type TranslateResponse struct {
	Original       string `json:"original"`
	Translated     string `json:"translated"`
	DetectedSource string `json:"detectedSource,omitempty"`
	Provider       string `json:"provider"`
	Version        string `json:"version"`
}

// SeatsResponse reports which seat identities are currently connected.
type SeatsResponse struct {
	Room  string   `json:"room"`
	Taken []string `json:"taken"`
}

// ChatEnvelope is the application-level message the two participants
// exchange over the relay's reliable data channel on the "chat" topic.
type ChatEnvelope struct {
	Type       string `json:"type"`
	Original   string `json:"original"`
	Translated string `json:"translated"`
}

// NewChatEnvelope builds the envelope for one translated message.
func NewChatEnvelope(original, translated string) ChatEnvelope {
	return ChatEnvelope{Type: "chat", Original: original, Translated: translated}
}
