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

package message

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func strptr(s string) *string { return &s }

func TestSummaryDecode(t *testing.T) {
	const in = `{"id": 7, "from": "a@b.c", "subject": "hello", "date": "2023-01-15 10:30:00"}`
	var got Summary
	if err := json.Unmarshal([]byte(in), &got); err != nil {
		t.Fatalf("Unmarshal(%s) = %v, want nil", in, err)
	}
	want := Summary{
		ID:      7,
		From:    "a@b.c",
		Subject: "hello",
		Date:    time.Date(2023, 1, 15, 10, 30, 0, 0, time.UTC),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
	if !got.Date.Equal(time.Date(2023, 1, 15, 10, 30, 0, 0, time.UTC)) {
		t.Errorf("Date = %v, want 2023-01-15T10:30:00Z", got.Date)
	}
}

func TestSummaryDecodeMalformedDate(t *testing.T) {
	cases := []string{
		`{"id": 1, "from": "a", "subject": "s", "date": "15/01/2023"}`,
		`{"id": 1, "from": "a", "subject": "s", "date": "2023-01-15T10:30:00Z"}`,
		`{"id": 1, "from": "a", "subject": "s", "date": ""}`,
	}
	for _, in := range cases {
		var s Summary
		err := json.Unmarshal([]byte(in), &s)
		if errors.Cause(err) != ErrMalformedTimestamp {
			t.Errorf("Unmarshal(%s) = %v, want cause ErrMalformedTimestamp", in, err)
		}
	}
}

func TestSummaryDecodeMissingField(t *testing.T) {
	cases := []struct {
		in    string
		field string
	}{
		{`{"from": "a", "subject": "s", "date": "2023-01-15 10:30:00"}`, "id"},
		{`{"id": 1, "subject": "s", "date": "2023-01-15 10:30:00"}`, "from"},
		{`{"id": 1, "from": "a", "date": "2023-01-15 10:30:00"}`, "subject"},
		{`{"id": 1, "from": "a", "subject": "s"}`, "date"},
	}
	for _, tc := range cases {
		var s Summary
		err := json.Unmarshal([]byte(tc.in), &s)
		missing, ok := err.(*MissingFieldError)
		if !ok {
			t.Errorf("Unmarshal(%s) = %v, want *MissingFieldError", tc.in, err)
			continue
		}
		if missing.Field != tc.field {
			t.Errorf("Unmarshal(%s) missing field = %q, want %q", tc.in, missing.Field, tc.field)
		}
	}
}

func TestSummaryDecodeTypeMismatch(t *testing.T) {
	const in = `{"id": "seven", "from": "a", "subject": "s", "date": "2023-01-15 10:30:00"}`
	var s Summary
	err := json.Unmarshal([]byte(in), &s)
	if _, ok := err.(*json.UnmarshalTypeError); !ok {
		t.Errorf("Unmarshal(%s) = %v, want *json.UnmarshalTypeError", in, err)
	}
}

const fullMessage = `{
	"id": 42,
	"from": "sender@example.com",
	"subject": "report",
	"date": "2023-01-15 10:30:00",
	"attachments": [
		{"filename": "z.pdf", "content_type": "application/pdf", "size": 1024},
		{"filename": "a.png", "content_type": "image/png", "size": 512}
	],
	"body": "<p>hi</p>",
	"text_body": "hi",
	"html_body": "<p>hi</p>"
}`

func TestMessageDecode(t *testing.T) {
	var got Message
	if err := json.Unmarshal([]byte(fullMessage), &got); err != nil {
		t.Fatalf("Unmarshal(full message) = %v, want nil", err)
	}
	want := Message{
		ID:      42,
		From:    "sender@example.com",
		Subject: "report",
		Date:    time.Date(2023, 1, 15, 10, 30, 0, 0, time.UTC),
		Attachments: []Attachment{
			{Filename: "z.pdf", ContentType: "application/pdf", Size: 1024},
			{Filename: "a.png", ContentType: "image/png", Size: 512},
		},
		Body:     "<p>hi</p>",
		TextBody: "hi",
		HTMLBody: strptr("<p>hi</p>"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("message mismatch (-want +got):\n%s", diff)
	}
	// Attachment order is document order, never re-sorted.
	if got.Attachments[0].Filename != "z.pdf" || got.Attachments[1].Filename != "a.png" {
		t.Errorf("attachment order = [%s, %s], want [z.pdf, a.png]",
			got.Attachments[0].Filename, got.Attachments[1].Filename)
	}
}

func TestMessageHTMLBodyNormalization(t *testing.T) {
	cases := []struct {
		name string
		json string
		want *string
	}{
		{
			name: "empty becomes absent",
			json: `{"id":1,"from":"a","subject":"s","date":"2023-01-15 10:30:00","attachments":[],"body":"b","text_body":"t","html_body":""}`,
			want: nil,
		},
		{
			name: "non-empty passes through",
			json: `{"id":1,"from":"a","subject":"s","date":"2023-01-15 10:30:00","attachments":[],"body":"b","text_body":"t","html_body":"<p>hi</p>"}`,
			want: strptr("<p>hi</p>"),
		},
		{
			name: "absent stays absent",
			json: `{"id":1,"from":"a","subject":"s","date":"2023-01-15 10:30:00","attachments":[],"body":"b","text_body":"t"}`,
			want: nil,
		},
	}
	for _, tc := range cases {
		var m Message
		if err := json.Unmarshal([]byte(tc.json), &m); err != nil {
			t.Errorf("%s: Unmarshal = %v, want nil", tc.name, err)
			continue
		}
		if diff := cmp.Diff(tc.want, m.HTMLBody); diff != "" {
			t.Errorf("%s: HTMLBody mismatch (-want +got):\n%s", tc.name, diff)
		}
	}
}

func TestMessageDecodeMissingField(t *testing.T) {
	cases := []struct {
		name  string
		json  string
		field string
	}{
		{
			name:  "no attachments",
			json:  `{"id":1,"from":"a","subject":"s","date":"2023-01-15 10:30:00","body":"b","text_body":"t"}`,
			field: "attachments",
		},
		{
			name:  "no body",
			json:  `{"id":1,"from":"a","subject":"s","date":"2023-01-15 10:30:00","attachments":[],"text_body":"t"}`,
			field: "body",
		},
		{
			name:  "no text body",
			json:  `{"id":1,"from":"a","subject":"s","date":"2023-01-15 10:30:00","attachments":[],"body":"b"}`,
			field: "text_body",
		},
	}
	for _, tc := range cases {
		var m Message
		err := json.Unmarshal([]byte(tc.json), &m)
		missing, ok := err.(*MissingFieldError)
		if !ok {
			t.Errorf("%s: Unmarshal = %v, want *MissingFieldError", tc.name, err)
			continue
		}
		if missing.Field != tc.field {
			t.Errorf("%s: missing field = %q, want %q", tc.name, missing.Field, tc.field)
		}
	}
}

func TestAttachmentDecodeMissingField(t *testing.T) {
	const in = `{"id":1,"from":"a","subject":"s","date":"2023-01-15 10:30:00","attachments":[{"filename":"f"}],"body":"b","text_body":"t"}`
	var m Message
	err := json.Unmarshal([]byte(in), &m)
	missing, ok := err.(*MissingFieldError)
	if !ok {
		t.Fatalf("Unmarshal = %v, want *MissingFieldError", err)
	}
	if missing.Field != "content_type" {
		t.Errorf("missing field = %q, want %q", missing.Field, "content_type")
	}
}

func TestMessageSummaryView(t *testing.T) {
	var m Message
	if err := json.Unmarshal([]byte(fullMessage), &m); err != nil {
		t.Fatalf("Unmarshal = %v", err)
	}
	want := Summary{
		ID:      42,
		From:    "sender@example.com",
		Subject: "report",
		Date:    time.Date(2023, 1, 15, 10, 30, 0, 0, time.UTC),
	}
	if diff := cmp.Diff(want, m.Summary()); diff != "" {
		t.Errorf("Summary() mismatch (-want +got):\n%s", diff)
	}
}
