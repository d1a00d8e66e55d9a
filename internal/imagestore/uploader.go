package imagestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/Behnamfe76/directory-console/pkg/util/errorutil"
)

// KeyPrefix is the folder every employee photo is written under.
const KeyPrefix = "employee-images/"

var allowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// Uploader validates photos and writes them to a Store.
type Uploader struct {
	store        Store
	maxBytes     int64
	publicPrefix string
	logger       *zap.Logger
	now          func() time.Time
	newID        func() string
}

// NewUploader builds an uploader. Stored paths are publicPrefix followed by
// the object key.
func NewUploader(store Store, maxBytes int64, publicPrefix string, logger *zap.Logger) *Uploader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Uploader{
		store:        store,
		maxBytes:     maxBytes,
		publicPrefix: publicPrefix,
		logger:       logger,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// Upload stores the image read from r and returns the path to record on the
// employee.
func (u *Uploader) Upload(ctx context.Context, r io.Reader) (string, error) {
	limit := u.maxBytes
	if limit <= 0 {
		limit = 5 << 20
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", apperrors.NewValidationError("could not read image", nil)
	}
	if len(data) == 0 {
		return "", apperrors.NewValidationError("image is empty", nil)
	}
	if int64(len(data)) > limit {
		return "", apperrors.NewValidationError("image is too large", map[string]any{"maxBytes": limit})
	}

	mime := mimetype.Detect(data)
	if !mimetype.EqualsAny(mime.String(), allowedTypes...) {
		return "", apperrors.NewValidationError("unsupported image type", map[string]any{"type": mime.String()})
	}

	key := KeyPrefix + strconv.FormatInt(u.now().UnixMilli(), 10) + "-" + u.newID() + mime.Extension()
	if err := u.store.Put(ctx, key, bytes.NewReader(data), mime.String()); err != nil {
		if errors.Is(err, ErrExists) {
			return "", apperrors.NewConflict("image already exists", map[string]any{"key": key})
		}
		u.logger.Error("image upload failed", zap.String("key", key), zap.Error(err))
		return "", apperrors.NewInternalError(fmt.Errorf("store image: %w", err))
	}
	u.logger.Info("image stored",
		zap.String("key", key),
		zap.String("driver", string(u.store.Driver())),
		zap.Int("bytes", len(data)),
	)
	return u.publicPrefix + key, nil
}
