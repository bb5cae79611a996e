/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package endian detects the platform specific byte endianness. On initialization
// the package checks if the system is using big or little endian byte ordering.
package endian
