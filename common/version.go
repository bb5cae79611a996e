/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package common contains properties and utilities shared by the quill
// subpackages: logging and the release stamp used in generated Producer
// strings.
package common

// Version is embedded in the PDF Info dictionary's Producer entry unless
// the caller sets pdfdoc.Info.Producer.
const Version = "0.1.0"
