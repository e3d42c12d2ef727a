package service

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"

	"character-studio/backend/internal/store"
	apperrors "character-studio/backend/pkg/errors"
)

// BackupService produces the full-collection ZIP artifact: one JSON file
// per character, plus the character's image when it is embedded as a data
// URI. Images referenced by path or URL are left out of the archive.
type BackupService struct {
	characters *store.CharacterStore
}

func NewBackupService(characters *store.CharacterStore) *BackupService {
	return &BackupService{characters: characters}
}

// BuildZip assembles the archive in memory.
func (s *BackupService) BuildZip(ctx context.Context) ([]byte, error) {
	characters, err := s.characters.ListValid(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for i := range characters {
		c := &characters[i]
		entry := c.ID
		if c.Name != "" {
			entry = sanitizeEntryName(c.Name) + "_" + c.ID
		}

		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return nil, apperrors.NewInternalServerError(apperrors.CodeInternal, err.Error())
		}
		w, err := zw.Create(entry + "/character.json")
		if err != nil {
			return nil, apperrors.NewInternalServerError(apperrors.CodeInternal, err.Error())
		}
		if _, err := w.Write(data); err != nil {
			return nil, apperrors.NewInternalServerError(apperrors.CodeInternal, err.Error())
		}

		if image, ext, ok := decodeDataURI(c.ImageURL); ok {
			w, err := zw.Create(entry + "/image" + ext)
			if err != nil {
				return nil, apperrors.NewInternalServerError(apperrors.CodeInternal, err.Error())
			}
			if _, err := w.Write(image); err != nil {
				return nil, apperrors.NewInternalServerError(apperrors.CodeInternal, err.Error())
			}
		}
	}

	if err := zw.Close(); err != nil {
		return nil, apperrors.NewInternalServerError(apperrors.CodeInternal, err.Error())
	}
	return buf.Bytes(), nil
}

func sanitizeEntryName(name string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, name)
	if clean == "" {
		clean = "character"
	}
	return clean
}

// decodeDataURI extracts the bytes and a file extension from an embedded
// image data URI such as "data:image/png;base64,...".
func decodeDataURI(uri string) ([]byte, string, bool) {
	if !strings.HasPrefix(uri, "data:image/") {
		return nil, "", false
	}
	comma := strings.Index(uri, ",")
	if comma < 0 {
		return nil, "", false
	}
	meta := uri[len("data:image/"):comma]
	semi := strings.Index(meta, ";")
	if semi < 0 {
		return nil, "", false
	}
	ext := "." + meta[:semi]
	if ext == ".jpeg" {
		ext = ".jpg"
	}

	data, err := base64.StdEncoding.DecodeString(uri[comma+1:])
	if err != nil {
		return nil, "", false
	}
	return data, ext, true
}
