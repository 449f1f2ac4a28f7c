// SPDX-License-Identifier: Apache-2.0

package handler

import "errors"

// errNoHandlersAreCreated is returned by NewHandlers when the server
// configuration carries no HTTP address, leaving the mock with no transport
// to serve. This is a fatal misconfiguration surfaced at startup.
var errNoHandlersAreCreated = errors.New("no handlers are created")
