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

// Package mailbox defines the identity of a disposable mailbox: a
// username paired with one of the closed set of domains the remote
// service answers for, plus the query strings the service expects.
package mailbox

import (
	"fmt"
	"net/url"
)

const (
	usernameAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	minUsernameLen = 10
	maxUsernameLen = 50
)

// Identity names one mailbox on the remote service.  The pair is
// opaque locally; the service alone decides what usernames exist.
type Identity struct {
	Username string
	Domain   Domain
}

// New returns an identity for the given username and domain.
func New(username string, domain Domain) Identity {
	return Identity{Username: username, Domain: domain}
}

// NewDefault returns an identity on the default domain.
func NewDefault(username string) Identity {
	return Identity{Username: username, Domain: DefaultDomain}
}

// Random generates a throwaway identity.  The username length is
// drawn uniformly from [10, 50) and every character uniformly from
// the 62 ASCII letters and digits; the domain is drawn uniformly from
// the supported set.
func Random(r Rand) Identity {
	n := int(minUsernameLen + r.Float64()*float64(maxUsernameLen-minUsernameLen))
	b := make([]byte, n)
	for i := range b {
		j := int(r.Float64() * float64(len(usernameAlphabet)))
		if j >= len(usernameAlphabet) {
			j = len(usernameAlphabet) - 1
		}
		b[i] = usernameAlphabet[j]
	}
	return Identity{Username: string(b), Domain: RandomDomain(r)}
}

// Address returns the mailbox as a plain "user@host" address.
func (id Identity) Address() string {
	return id.Username + "@" + id.Domain.String()
}

// credentials renders the login/domain pair.  The generated alphabet
// never needs escaping, but caller-supplied usernames may.
func (id Identity) credentials() string {
	return fmt.Sprintf("login=%s&domain=%s",
		url.QueryEscape(id.Username), url.QueryEscape(id.Domain.String()))
}

// MessagesQuery is the query string listing the mailbox.
func (id Identity) MessagesQuery() string {
	return "action=getMessages&" + id.credentials()
}

// ReadQuery is the query string fetching one full message.
//
// The action name really is spelled "readMesage"; the deployed
// service routes on that exact string.
func (id Identity) ReadQuery(msgID int64) string {
	return fmt.Sprintf("action=readMesage&%s&id=%d", id.credentials(), msgID)
}

// DownloadQuery is the query string fetching one attachment's bytes.
func (id Identity) DownloadQuery(msgID int64, filename string) string {
	return fmt.Sprintf("action=download&%s&id=%d&file=%s",
		id.credentials(), msgID, url.QueryEscape(filename))
}
