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

package tracehttp

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
)

// traceTransport is an http.RoundTripper that dumps each request and
// response to a writer while delegating the real work to another
// http.RoundTripper.  The dump goes to an injected writer rather than
// stdout; the commands that enable tracing own stdout for their own
// output.
type traceTransport struct {
	delegate http.RoundTripper
	w        io.Writer
}

// RoundTrip dumps the request and response while delegating the round
// trip to the delegate.
func (t *traceTransport) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	dump, dumpErr := httputil.DumpRequestOut(req, true)
	if dumpErr == nil {
		fmt.Fprintln(t.w, string(dump))
	}
	resp, err = t.delegate.RoundTrip(req)
	if err == nil {
		dump, dumpErr = httputil.DumpResponse(resp, true)
		if dumpErr == nil {
			fmt.Fprintln(t.w, string(dump))
		}
	}
	return resp, err
}

// Wrap decorates d with tracing onto w.  A nil d wraps
// http.DefaultTransport.
func Wrap(d http.RoundTripper, w io.Writer) http.RoundTripper {
	if d == nil {
		d = http.DefaultTransport
	}
	return &traceTransport{delegate: d, w: w}
}

// Client returns an *http.Client whose exchanges are dumped to w.
func Client(w io.Writer) *http.Client {
	return &http.Client{Transport: Wrap(nil, w)}
}
