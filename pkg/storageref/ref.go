// Package storageref converts between stored file references and the
// (container, object path) pair the object store is addressed by.
//
// Public URLs look like
//
//	https://host/storage/v1/object/public/<container>/<path...>
//
// and bare references like "<container>/<path...>".
package storageref

import (
	"errors"
	"net/url"
	"strings"
)

// Marker is the path segment that precedes the container in a public URL.
const Marker = "object"

var ErrUnparsable = errors.New("storageref: unparsable file reference")

// access segments that may sit between the marker and the container
var accessSegments = map[string]bool{
	"public":        true,
	"sign":          true,
	"authenticated": true,
}

type Ref struct {
	Container string
	Path      string
}

func (r Ref) String() string {
	return r.Container + "/" + r.Path
}

// Parse splits a file reference into container and object path.
func Parse(ref string) (Ref, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Ref{}, ErrUnparsable
	}

	if !strings.Contains(ref, "://") {
		return parseBare(ref)
	}

	u, err := url.Parse(ref)
	if err != nil || u.Scheme == "" {
		return Ref{}, ErrUnparsable
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	idx := -1
	for i, p := range parts {
		if p == Marker {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Ref{}, ErrUnparsable
	}
	idx++
	if idx < len(parts) && accessSegments[parts[idx]] {
		idx++
	}
	if idx+1 >= len(parts) {
		return Ref{}, ErrUnparsable
	}

	return build(parts[idx], parts[idx+1:])
}

func parseBare(ref string) (Ref, error) {
	parts := strings.Split(strings.TrimLeft(ref, "/"), "/")
	if len(parts) < 2 {
		return Ref{}, ErrUnparsable
	}
	return build(parts[0], parts[1:])
}

func build(container string, rest []string) (Ref, error) {
	path := strings.Join(rest, "/")
	if container == "" || strings.Trim(path, "/") == "" {
		return Ref{}, ErrUnparsable
	}
	return Ref{Container: container, Path: path}, nil
}

// PublicURL is the inverse of Parse for URL references.
func PublicURL(baseURL, container, path string) string {
	segs := strings.Split(path, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.TrimRight(baseURL, "/") + "/storage/v1/" + Marker + "/public/" +
		url.PathEscape(container) + "/" + strings.Join(segs, "/")
}
