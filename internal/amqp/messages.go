package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ReportRequestMessage asks the worker to generate a report for a date
// window. Dates travel as YYYY-MM-DD strings.
type ReportRequestMessage struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Timestamp time.Time `json:"timestamp"`
}

// NewReportRequestMessage creates a request for the given date window.
func NewReportRequestMessage(from, to time.Time) *ReportRequestMessage {
	return &ReportRequestMessage{
		From:      from.Format(dateLayout),
		To:        to.Format(dateLayout),
		Timestamp: time.Now(),
	}
}

// Window parses the message's date window.
func (m *ReportRequestMessage) Window() (from, to time.Time, err error) {
	from, err = time.Parse(dateLayout, m.From)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse from date %q: %w", m.From, err)
	}
	to, err = time.Parse(dateLayout, m.To)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse to date %q: %w", m.To, err)
	}
	return from, to, nil
}

// ToJSON converts the message to JSON bytes
func (m *ReportRequestMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReportRequestMessageFromJSON creates a message from JSON bytes
func ReportRequestMessageFromJSON(data []byte) (*ReportRequestMessage, error) {
	var msg ReportRequestMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
