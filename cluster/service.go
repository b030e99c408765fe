// Copyright 2026 The Locate Authors
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

package cluster

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ServiceType identifies a service a cluster node may run.
type ServiceType int

const (
	ServiceKV ServiceType = iota + 1
	ServiceView
	ServiceQuery
	ServiceSearch
	ServiceAnalytics
	ServiceConfig
)

//nolint:gochecknoglobals
var serviceNames = map[ServiceType]string{
	ServiceKV:        "kv",
	ServiceView:      "view",
	ServiceQuery:     "query",
	ServiceSearch:    "search",
	ServiceAnalytics: "analytics",
	ServiceConfig:    "config",
}

func (s ServiceType) String() string {
	if name, ok := serviceNames[s]; ok {
		return name
	}
	return fmt.Sprintf("ServiceType(%d)", int(s))
}

// ParseServiceType returns the service with the given name. Matching is
// case-insensitive.
func ParseServiceType(name string) (ServiceType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for svc, svcName := range serviceNames {
		if svcName == name {
			return svc, nil
		}
	}
	return 0, errors.Errorf("unknown service type %q", name)
}

// UnmarshalText implements encoding.TextUnmarshaler, so service names can
// be used directly in topology files and flags.
func (s *ServiceType) UnmarshalText(text []byte) error {
	svc, err := ParseServiceType(string(text))
	if err != nil {
		return err
	}
	*s = svc
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s ServiceType) MarshalText() ([]byte, error) {
	if _, ok := serviceNames[s]; !ok {
		return nil, errors.Errorf("unknown service type %d", int(s))
	}
	return []byte(s.String()), nil
}
