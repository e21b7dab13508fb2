// SPDX-License-Identifier: MPL-2.0

// Package platform names the operating systems the tool distinguishes.
package platform
