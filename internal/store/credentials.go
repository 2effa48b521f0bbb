package store

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MKhiriev/go-clinic/internal/logger"
	"github.com/MKhiriev/go-clinic/models"
)

// DefaultCredentials returns the built-in staff accounts used when nothing
// is persisted. The password of "user" is 123456.
func DefaultCredentials() models.Credentials {
	return models.Credentials{
		"user": "8d969eef6ecad3c29a3a629280e686cf0c3f5d5a86aff3ca12020c923adc6c92",
		"ali":  "6394ffec21517605c1b426d43e6fa7eb0cff606ded9c2956821c2c36bfee2810",
		"kala": "e5268ad137eec951a48a5e5da52558c7727aaa537c8b308b5e403e6b434e036e",
	}
}

// LoadCredentials reads a credential file of "username,digest" lines.
//
// A missing file yields an empty table. Blank lines, lines starting with
// '#' and malformed lines are skipped; the last entry for a username wins.
func LoadCredentials(ctx context.Context, path string) (models.Credentials, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.FromContext(ctx).Warn().Str("path", path).Msg("credential file not found, nobody can log in")
			return models.Credentials{}, nil
		}
		return nil, fmt.Errorf("error opening credential file: %w", err)
	}
	defer f.Close()

	return parseCredentials(ctx, f)
}

func parseCredentials(ctx context.Context, r io.Reader) (models.Credentials, error) {
	log := logger.FromContext(ctx)
	credentials := make(models.Credentials)

	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		username, digest, ok := strings.Cut(line, ",")
		username, digest = strings.TrimSpace(username), strings.TrimSpace(digest)
		if !ok || username == "" || digest == "" {
			log.Warn().Int("line", lineNo).Msg("skipping malformed credential line")
			continue
		}

		credentials[username] = digest
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading credential file: %w", err)
	}

	return credentials, nil
}
