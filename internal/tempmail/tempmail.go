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

// Package tempmail provides access to the messages of one disposable
// mailbox on the remote service.
package tempmail

import (
	"context"

	"github.com/knvi/tempmail/internal/mailbox"
	"github.com/knvi/tempmail/internal/message"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const (
	// The service publishes no quota; stay well under anything it
	// could plausibly enforce.
	rateLimitPerSecond = 4
	rateLimitBurst     = 8
)

// Transport performs one GET exchange against the service.  It must
// be safe for concurrent use.
type Transport interface {
	// GetJSON fetches the query and decodes the JSON response
	// into v.
	GetJSON(ctx context.Context, query string, v interface{}) error

	// GetBytes fetches the query and returns the raw response
	// body.
	GetBytes(ctx context.Context, query string) ([]byte, error)
}

// Service reads one mailbox.  Every method is a single stateless
// exchange keyed by the identity; the service holds no session and no
// cache, so any number of calls may run concurrently.
type Service struct {
	transport Transport
	box       mailbox.Identity
	limiter   *rate.Limiter
}

// New returns a service for the given mailbox with the default
// politeness limit.
func New(t Transport, box mailbox.Identity) *Service {
	return NewLimited(t, box, rate.NewLimiter(rateLimitPerSecond, rateLimitBurst))
}

// NewLimited returns a service throttled by the given limiter.  A nil
// limiter disables throttling.
func NewLimited(t Transport, box mailbox.Identity, l *rate.Limiter) *Service {
	return &Service{transport: t, box: box, limiter: l}
}

// Identity returns the mailbox this service reads.
func (s *Service) Identity() mailbox.Identity {
	return s.box
}

func (s *Service) wait(ctx context.Context) error {
	if s.limiter == nil {
		return nil
	}
	return s.limiter.Wait(ctx)
}

// ListSummaries fetches the listing records for the mailbox, in the
// order the service returns them.  An empty mailbox yields an empty
// list, not an error.
func (s *Service) ListSummaries(ctx context.Context) ([]message.Summary, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	var sums []message.Summary
	if err := s.transport.GetJSON(ctx, s.box.MessagesQuery(), &sums); err != nil {
		return nil, errors.Wrapf(err, "listing mailbox %s", s.box.Address())
	}
	return sums, nil
}

// Read hydrates one listing record into a full message.  The summary
// must belong to this mailbox; the service rejects foreign IDs
// remotely.
func (s *Service) Read(ctx context.Context, sum message.Summary) (*message.Message, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	var msg message.Message
	if err := s.transport.GetJSON(ctx, s.box.ReadQuery(sum.ID), &msg); err != nil {
		return nil, errors.Wrapf(err, "reading message %d", sum.ID)
	}
	return &msg, nil
}

// ListMessages fetches every message in the mailbox, hydrating the
// summaries one by one in listing order.  The first failure aborts
// the rest; there are no partial results.
func (s *Service) ListMessages(ctx context.Context) ([]*message.Message, error) {
	sums, err := s.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}
	msgs := make([]*message.Message, 0, len(sums))
	for _, sum := range sums {
		msg, err := s.Read(ctx, sum)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// Attachment fetches the raw bytes of one attachment, exactly as the
// service sent them.  The filename is not checked against the
// message's attachment list; an unknown name surfaces as a remote
// rejection.
func (s *Service) Attachment(ctx context.Context, msgID int64, filename string) ([]byte, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	b, err := s.transport.GetBytes(ctx, s.box.DownloadQuery(msgID, filename))
	if err != nil {
		return nil, errors.Wrapf(err, "downloading %q of message %d", filename, msgID)
	}
	return b, nil
}
