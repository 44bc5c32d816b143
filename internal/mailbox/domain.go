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

package mailbox

// Domain is one of the mail domains served by the remote service.
// The set is closed; the service recognizes exactly these hosts.
type Domain int

const (
	SecMailCom Domain = iota
	SecMailOrg
	SecMailNet
	WwjmpCom
	XojxeCom
	EsiixCom
	YoggmCom
)

// DefaultDomain is the fallback used when the caller names no domain.
const DefaultDomain = SecMailCom

// Domains is the closed set of supported domains.
var Domains = []Domain{
	SecMailCom,
	SecMailOrg,
	SecMailNet,
	WwjmpCom,
	XojxeCom,
	EsiixCom,
	YoggmCom,
}

// String returns the canonical hostname.  The remote service matches
// these strings case-sensitively, so they must be passed on verbatim.
func (d Domain) String() string {
	switch d {
	case SecMailCom:
		return "1secmail.com"
	case SecMailOrg:
		return "1secmail.org"
	case SecMailNet:
		return "1secmail.net"
	case WwjmpCom:
		return "wwjmp.com"
	case XojxeCom:
		return "xojxe.com"
	case EsiixCom:
		return "esiix.com"
	case YoggmCom:
		return "yoggm.com"
	}
	return "1secmail.com"
}

// ParseDomain maps a hostname back to its Domain.  The second return
// is false for hosts outside the supported set.
func ParseDomain(host string) (Domain, bool) {
	for _, d := range Domains {
		if d.String() == host {
			return d, true
		}
	}
	return DefaultDomain, false
}

// Rand supplies uniform samples in [0, 1).  *math/rand.Rand satisfies
// it; tests substitute fixed sequences.
type Rand interface {
	Float64() float64
}

// RandomDomain selects one domain uniformly.  Each domain gets an
// equal 1/N slice of [0, 1); the index is clamped so a sample
// arbitrarily close to 1.0 still maps to the last domain.
func RandomDomain(r Rand) Domain {
	i := int(r.Float64() * float64(len(Domains)))
	if i < 0 {
		i = 0
	}
	if i >= len(Domains) {
		i = len(Domains) - 1
	}
	return Domains[i]
}
