// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// The helpers cover process-wide state that tests must restore: the working
// directory (MustChdir) and environment variables (MustSetenv, MustUnsetenv).
package testutil
