// SPDX-License-Identifier: MIT

package movielens

import "errors"

var (
	// ErrUnknownFormat is returned by Open when the path contains none of
	// the recognized MovieLens file layouts.
	ErrUnknownFormat = errors.New("movielens: unrecognized collection format")

	// ErrInvalidArchive is returned by Open when a zip archive cannot be
	// read.
	ErrInvalidArchive = errors.New("movielens: invalid archive")

	// ErrBadRecord is returned when a ratings or movies line does not
	// parse under the detected format.
	ErrBadRecord = errors.New("movielens: malformed record")
)
