package messenger

import "encoding/json"

// EventKind distinguishes the two webhook event shapes the bridge handles.
type EventKind string

const (
	KindMessage  EventKind = "message"
	KindPostback EventKind = "postback"
)

// Event is one unwrapped webhook event. It lives for the duration of a
// single request.
type Event struct {
	SenderID string
	Kind     EventKind
	Text     string // message text, may be empty (e.g. attachment-only)
	Postback string // postback code for KindPostback
}

// webhookEnvelope is the top-level POST /webhook payload.
type webhookEnvelope struct {
	Object string         `json:"object"`
	Entry  []webhookEntry `json:"entry"`
}

type webhookEntry struct {
	ID        string           `json:"id"`
	Time      int64            `json:"time"`
	Messaging []messagingEvent `json:"messaging"`
}

type messagingEvent struct {
	Sender    principal        `json:"sender"`
	Recipient principal        `json:"recipient"`
	Timestamp int64            `json:"timestamp"`
	Message   *inboundMessage  `json:"message,omitempty"`
	Postback  *inboundPostback `json:"postback,omitempty"`
}

type principal struct {
	ID string `json:"id"`
}

type inboundMessage struct {
	MID         string            `json:"mid,omitempty"`
	Text        string            `json:"text,omitempty"`
	Attachments []json.RawMessage `json:"attachments,omitempty"`
}

type inboundPostback struct {
	Title   string `json:"title,omitempty"`
	Payload string `json:"payload"`
}

// Payload is an outbound message body: either plain text or a button
// template attachment.
type Payload struct {
	Text       string      `json:"text,omitempty"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

// Attachment wraps a template payload.
type Attachment struct {
	Type    string          `json:"type"`
	Payload TemplatePayload `json:"payload"`
}

// TemplatePayload is a button template: a sentence plus up to three buttons.
type TemplatePayload struct {
	TemplateType string   `json:"template_type"`
	Text         string   `json:"text"`
	Buttons      []Button `json:"buttons,omitempty"`
}

// Button is either a web_url link or a postback code button.
type Button struct {
	Type    string `json:"type"` // "web_url" or "postback"
	Title   string `json:"title"`
	URL     string `json:"url,omitempty"`
	Payload string `json:"payload,omitempty"`
}

// TextPayload builds a plain-text reply.
func TextPayload(text string) *Payload {
	return &Payload{Text: text}
}

// ButtonTemplate builds a button-template reply.
func ButtonTemplate(text string, buttons []Button) *Payload {
	return &Payload{
		Attachment: &Attachment{
			Type: "template",
			Payload: TemplatePayload{
				TemplateType: "button",
				Text:         text,
				Buttons:      buttons,
			},
		},
	}
}
