package dto

// InboundMessage is one webhook delivery from the channel: exactly one
// fragment of user input, retried independently by the channel on failure.
type InboundMessage struct {
	Sender         string      `json:"sender"`
	ForceAnonymous bool        `json:"forceAnonymous"`
	Data           MessageData `json:"data"`
}

type MessageData struct {
	Type     string           `json:"type"`
	Text     string           `json:"text"`
	MediaURL string           `json:"mediaUrl"`
	MimeType string           `json:"mimeType"`
	Caption  string           `json:"caption"`
	Contacts []InboundContact `json:"contacts"`
}

type InboundContact struct {
	Name   string         `json:"name"`
	Phones []ContactPhone `json:"phones"`
}

type ContactPhone struct {
	Phone string `json:"phone"`
}
