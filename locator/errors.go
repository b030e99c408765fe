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

package locator

import (
	"errors"
	"fmt"

	"github.com/clusterkit/locate/cluster"
)

// ErrServiceNotAvailable is matched, via errors.Is, by every error a
// locator uses to fail a request whose bucket type cannot support the
// requested service.
var ErrServiceNotAvailable = errors.New("service not available on this bucket type")

// ServiceNotAvailableError reports that a service is not available on the
// type of bucket a request targets.
type ServiceNotAvailableError struct {
	Service cluster.ServiceType
}

func (e *ServiceNotAvailableError) Error() string {
	return fmt.Sprintf("%s service is not available on this bucket type", e.Service)
}

// Is makes the error match ErrServiceNotAvailable.
func (e *ServiceNotAvailableError) Is(target error) bool {
	return target == ErrServiceNotAvailable //nolint:errorlint // sentinel identity
}

//nolint:gochecknoglobals
var errViewsNotAvailable error = &ServiceNotAvailableError{Service: cluster.ServiceView}
