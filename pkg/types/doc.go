// SPDX-License-Identifier: MPL-2.0

// Package types holds small value types shared by the dmglicense packages:
// process exit statuses and filesystem paths.
package types
