package ws

import (
	"encoding/json"

	"github.com/Agrid-Dev/energydash/internal/heatpump"
)

const TypeReport = "report"

// Envelope wraps every message with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type ReportPayload struct {
	DeviceID string `json:"device_id"`
	heatpump.Report
}

func NewEnvelope(msgType string, payload any) ([]byte, error) {
	env := Envelope{Type: msgType}
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		env.Payload = b
	}
	return json.Marshal(env)
}
