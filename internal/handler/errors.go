// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoHandlersAreCreated is a startup misconfiguration: no transport has an
// address to listen on.
var errNoHandlersAreCreated = errors.New("no handlers are created: both HTTP and gRPC addresses are empty")
