package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type ImageRefKind int

const (
	ImageRefNone ImageRefKind = iota
	ImageRefUpload
	ImageRefExisting
)

// ImageRef is the polymorphic question image slot. On the wire it is either
// a numeric index into the files uploaded with the same request, an existing
// storage path being kept, or null/absent.
type ImageRef struct {
	kind  ImageRefKind
	index int
	path  string
}

func NoImage() ImageRef {
	return ImageRef{}
}

func UploadImage(index int) ImageRef {
	return ImageRef{kind: ImageRefUpload, index: index}
}

func ExistingImage(path string) ImageRef {
	if path == "" {
		return ImageRef{}
	}
	return ImageRef{kind: ImageRefExisting, path: path}
}

func (r ImageRef) Kind() ImageRefKind { return r.kind }

// UploadIndex is only meaningful when Kind() == ImageRefUpload.
func (r ImageRef) UploadIndex() int { return r.index }

// Path is only meaningful when Kind() == ImageRefExisting.
func (r ImageRef) Path() string { return r.path }

func (r *ImageRef) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*r = ImageRef{}
		return nil
	}
	if trimmed[0] == '"' {
		var path string
		if err := json.Unmarshal(trimmed, &path); err != nil {
			return err
		}
		*r = ExistingImage(path)
		return nil
	}
	var index int
	if err := json.Unmarshal(trimmed, &index); err != nil {
		return fmt.Errorf("question image reference must be an upload index or a storage path: %w", err)
	}
	*r = UploadImage(index)
	return nil
}

func (r ImageRef) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case ImageRefUpload:
		return json.Marshal(r.index)
	case ImageRefExisting:
		return json.Marshal(r.path)
	default:
		return []byte("null"), nil
	}
}
