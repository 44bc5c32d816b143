// Copyright 2019 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package message provides the common data objects used by the rest
// of the program: the lightweight listing record returned when a
// mailbox is enumerated, and the fully hydrated message with bodies
// and attachment metadata.
//
// Decoding is strict.  The remote service transmits timestamps as
// "YYYY-MM-DD HH:MM:SS" with an implied UTC zone, and a record
// missing a required field is a decode failure, never defaulted.  The
// one normalization applied is semantic, not error recovery: an HTML
// body transmitted as the empty string means "no HTML part" and
// decodes to nil.
package message

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// dateLayout is the only timestamp format the service emits.
const dateLayout = "2006-01-02 15:04:05"

// ErrMalformedTimestamp reports a date field that did not match the
// service's fixed timestamp format.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// MissingFieldError reports a decoded record lacking a required
// field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// Summary is the listing record for one message: just enough to show
// an inbox line and to key a later hydration by ID.
type Summary struct {
	// ID is the message handle, unique within one mailbox.
	ID int64

	From    string
	Subject string

	// Date is the arrival timestamp, in UTC.
	Date time.Time
}

// Attachment describes one attachment of a message.  Only metadata
// travels with the message; the bytes are fetched separately by
// (message ID, filename).
type Attachment struct {
	Filename    string
	ContentType string

	// Size is the declared length in bytes.
	Size int64
}

// Message is a fully hydrated message.
type Message struct {
	ID      int64
	From    string
	Subject string
	Date    time.Time

	// Attachments preserves the document order of the source
	// message.
	Attachments []Attachment

	// Body is the full body; TextBody its text-only rendering.
	Body     string
	TextBody string

	// HTMLBody is nil when the message has no HTML part.  The
	// service transmits absent parts as either a missing field or
	// an empty string; both decode to nil.
	HTMLBody *string
}

func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrMalformedTimestamp, "date %q", s)
	}
	return t, nil
}

// summaryWire mirrors the service's listing record.  Pointer fields
// distinguish absent from zero.
type summaryWire struct {
	ID      *int64  `json:"id"`
	From    *string `json:"from"`
	Subject *string `json:"subject"`
	Date    *string `json:"date"`
}

func (w *summaryWire) validate() error {
	switch {
	case w.ID == nil:
		return &MissingFieldError{Field: "id"}
	case w.From == nil:
		return &MissingFieldError{Field: "from"}
	case w.Subject == nil:
		return &MissingFieldError{Field: "subject"}
	case w.Date == nil:
		return &MissingFieldError{Field: "date"}
	}
	return nil
}

// UnmarshalJSON decodes a listing record, rejecting records with
// missing fields or an unparseable date.
func (s *Summary) UnmarshalJSON(data []byte) error {
	var w summaryWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if err := w.validate(); err != nil {
		return err
	}
	date, err := parseDate(*w.Date)
	if err != nil {
		return err
	}
	*s = Summary{ID: *w.ID, From: *w.From, Subject: *w.Subject, Date: date}
	return nil
}

type attachmentWire struct {
	Filename    *string `json:"filename"`
	ContentType *string `json:"content_type"`
	Size        *int64  `json:"size"`
}

// UnmarshalJSON decodes one attachment metadata record.
func (a *Attachment) UnmarshalJSON(data []byte) error {
	var w attachmentWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch {
	case w.Filename == nil:
		return &MissingFieldError{Field: "filename"}
	case w.ContentType == nil:
		return &MissingFieldError{Field: "content_type"}
	case w.Size == nil:
		return &MissingFieldError{Field: "size"}
	}
	*a = Attachment{Filename: *w.Filename, ContentType: *w.ContentType, Size: *w.Size}
	return nil
}

type messageWire struct {
	summaryWire
	Attachments *[]Attachment `json:"attachments"`
	Body        *string       `json:"body"`
	TextBody    *string       `json:"text_body"`
	HTMLBody    *string       `json:"html_body"`
}

// UnmarshalJSON decodes a hydrated message and applies the HTML-body
// normalization.
func (m *Message) UnmarshalJSON(data []byte) error {
	var w messageWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if err := w.validate(); err != nil {
		return err
	}
	switch {
	case w.Attachments == nil:
		return &MissingFieldError{Field: "attachments"}
	case w.Body == nil:
		return &MissingFieldError{Field: "body"}
	case w.TextBody == nil:
		return &MissingFieldError{Field: "text_body"}
	}
	date, err := parseDate(*w.Date)
	if err != nil {
		return err
	}
	html := w.HTMLBody
	if html != nil && *html == "" {
		html = nil
	}
	*m = Message{
		ID:          *w.ID,
		From:        *w.From,
		Subject:     *w.Subject,
		Date:        date,
		Attachments: *w.Attachments,
		Body:        *w.Body,
		TextBody:    *w.TextBody,
		HTMLBody:    html,
	}
	return nil
}

// Summary returns the listing view of a hydrated message.
func (m *Message) Summary() Summary {
	return Summary{ID: m.ID, From: m.From, Subject: m.Subject, Date: m.Date}
}
