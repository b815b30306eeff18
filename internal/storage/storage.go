package storage

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"
)

// ObjectStorage defines the operations the résumé upload path needs from an
// object store backend.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	PublicURL(key string) string
}

var unsafeKeyChars = regexp.MustCompile(`[^a-z0-9._-]+`)

// ResumeKey derives a stable object key from the upload time and the
// applicant's email, e.g. resumes/1714857600-ann_at_ufl.edu.pdf.
func ResumeKey(t time.Time, email string) string {
	e := strings.ToLower(strings.TrimSpace(email))
	e = strings.ReplaceAll(e, "@", "_at_")
	e = unsafeKeyChars.ReplaceAllString(e, "_")
	return fmt.Sprintf("resumes/%d-%s.pdf", t.Unix(), e)
}
