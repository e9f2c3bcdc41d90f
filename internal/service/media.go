package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"pressroom/internal/logging"
	"pressroom/internal/model"
	"pressroom/internal/repository"
	"pressroom/internal/storage"
)

var (
	imageTypes = []string{"image/jpeg", "image/png", "image/jpg"}
	pdfTypes   = []string{"application/pdf"}
)

// FileInput is one uploaded file as received from the client. The declared
// content type is never trusted; the body is sniffed.
type FileInput struct {
	Name   string
	Reader io.Reader
}

// MediaService is the upload gateway. It stages uploads, validates their
// type, stores them remotely and records a Media row per object.
type MediaService interface {
	UploadImage(ctx context.Context, f *FileInput, uploader string) (*model.Media, error)
	// UploadImages stores all files or none; already stored files are
	// released when a later one fails.
	UploadImages(ctx context.Context, files []*FileInput, uploader string) ([]model.Media, error)
	UploadPDF(ctx context.Context, f *FileInput, uploader string) (*model.Media, error)
	Get(ctx context.Context, id string) (*model.Media, error)
	List(ctx context.Context, rt model.ResourceType, p Page) (*ListResult[model.Media], error)
	// Delete removes the remote object and then the row. A failed remote
	// delete keeps the row and returns ErrRemoteStore.
	Delete(ctx context.Context, id string) error
	// Release drops a media record owned by content that is going away. The
	// row is always removed; a failed remote delete is recorded as an orphan.
	Release(ctx context.Context, id string, reason string)
}

type mediaService struct {
	store   storage.Storage
	repo    repository.MediaRepository
	orphans repository.OrphanRepository
	tmpDir  string
}

// NewMediaService constructs a MediaService. Uploads are staged in the OS
// temp directory.
func NewMediaService(store storage.Storage, repo repository.MediaRepository, orphans repository.OrphanRepository) MediaService {
	return &mediaService{store: store, repo: repo, orphans: orphans}
}

func (s *mediaService) UploadImage(ctx context.Context, f *FileInput, uploader string) (*model.Media, error) {
	return s.upload(ctx, f, imageTypes, uploader)
}

func (s *mediaService) UploadPDF(ctx context.Context, f *FileInput, uploader string) (*model.Media, error) {
	return s.upload(ctx, f, pdfTypes, uploader)
}

func (s *mediaService) UploadImages(ctx context.Context, files []*FileInput, uploader string) ([]model.Media, error) {
	if len(files) == 0 {
		return nil, ErrNoFile
	}
	out := make([]model.Media, 0, len(files))
	for _, f := range files {
		m, err := s.upload(ctx, f, imageTypes, uploader)
		if err != nil {
			for _, done := range out {
				s.Release(ctx, done.ID, "batch_upload_rollback")
			}
			return nil, err
		}
		out = append(out, *m)
	}
	return out, nil
}

// staged is an upload copied to a local temp file.
type staged struct {
	file *os.File
	size int64
	mime *mimetype.MIME
}

func (s *mediaService) stage(f *FileInput) (*staged, error) {
	tmp, err := os.CreateTemp(s.tmpDir, "upload-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}

	n, err := io.Copy(tmp, f.Reader)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("stage upload: %w", err)
	}
	if n == 0 {
		cleanup()
		return nil, ErrNoFile
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		cleanup()
		return nil, err
	}
	mt, err := mimetype.DetectReader(tmp)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("detect type: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		cleanup()
		return nil, err
	}
	return &staged{file: tmp, size: n, mime: mt}, nil
}

func (st *staged) close() {
	_ = st.file.Close()
	_ = os.Remove(st.file.Name())
}

func allowed(mt *mimetype.MIME, types []string) bool {
	for _, t := range types {
		if mt.Is(t) {
			return true
		}
	}
	return false
}

func resourceTypeOf(mt *mimetype.MIME) model.ResourceType {
	switch {
	case mt.Is("application/pdf"):
		return model.ResourcePDF
	case strings.HasPrefix(mt.String(), "video/"):
		return model.ResourceVideo
	default:
		return model.ResourceImage
	}
}

func objectKey(st model.StorageType, now time.Time, ext string) string {
	return fmt.Sprintf("%s/%s/%s%s", st, now.Format("2006/01"), uuid.NewString(), ext)
}

func (s *mediaService) upload(ctx context.Context, f *FileInput, types []string, uploader string) (*model.Media, error) {
	if f == nil || f.Reader == nil {
		return nil, ErrNoFile
	}

	st, err := s.stage(f)
	if err != nil {
		return nil, err
	}
	defer st.close()

	if !allowed(st.mime, types) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, st.mime.String())
	}

	now := time.Now().UTC()
	rt := resourceTypeOf(st.mime)
	storageType := model.StorageTypeFor(rt)
	key := objectKey(storageType, now, st.mime.Extension())

	disposition := "inline"
	if rt == model.ResourcePDF && f.Name != "" {
		disposition = mime.FormatMediaType("inline", map[string]string{"filename": f.Name})
	}

	info, err := s.store.Put(ctx, key, st.file, storage.PutObjectOptions{
		Size:               st.size,
		ContentType:        st.mime.String(),
		ContentDisposition: disposition,
		Metadata: map[string]string{
			"original-filename": f.Name,
			"storage-type":      string(storageType),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: put object: %w", ErrRemoteStore, err)
	}

	url := info.URL
	if url == "" {
		url = s.store.PublicURL(key)
	}

	m := &model.Media{
		ID:           uuid.NewString(),
		URL:          url,
		PublicID:     key,
		ResourceType: rt,
		StorageType:  storageType,
		OriginalName: f.Name,
		Size:         st.size,
		MimeType:     st.mime.String(),
		UploadedBy:   uploader,
		CreatedAt:    now,
	}
	stored, err := s.repo.Create(ctx, m)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.recordOrphan(ctx, key, storageType, "upload_rollback", delErr)
		}
		return nil, fmt.Errorf("save media: %w", err)
	}

	logging.Component("media").Info().
		Str("event", "media_uploaded").
		Str("media_id", stored.ID).
		Str("public_id", key).
		Str("mime_type", stored.MimeType).
		Int64("size", stored.Size).
		Msg("media stored")

	return stored, nil
}

func (s *mediaService) Get(ctx context.Context, id string) (*model.Media, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return m, nil
}

func (s *mediaService) List(ctx context.Context, rt model.ResourceType, p Page) (*ListResult[model.Media], error) {
	p = p.normalize()
	res, err := s.repo.List(ctx, repository.MediaFilter{ResourceType: rt}, p.query())
	if err != nil {
		return nil, err
	}
	return newListResult(res, p), nil
}

func (s *mediaService) Delete(ctx context.Context, id string) error {
	m, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, m.PublicID); err != nil {
		return fmt.Errorf("%w: delete object: %w", ErrRemoteStore, err)
	}
	return notFound(s.repo.Delete(ctx, id))
}

func (s *mediaService) Release(ctx context.Context, id string, reason string) {
	if id == "" {
		return
	}
	logger := logging.Component("media")

	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.Error().Err(err).Str("media_id", id).Msg("release lookup failed")
		}
		return
	}

	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, sql.ErrNoRows) {
		logger.Error().Err(err).Str("media_id", id).Msg("release delete row failed")
		return
	}
	if err := s.store.Delete(ctx, m.PublicID); err != nil {
		s.recordOrphan(ctx, m.PublicID, m.StorageType, reason, err)
	}
}

func (s *mediaService) recordOrphan(ctx context.Context, publicID string, st model.StorageType, reason string, cause error) {
	logger := logging.Component("media")
	logger.Warn().
		Err(cause).
		Str("event", "media_orphaned").
		Str("public_id", publicID).
		Str("reason", reason).
		Msg("remote delete failed, recording orphan")

	_, err := s.orphans.Create(ctx, &model.Orphan{
		ID:          uuid.NewString(),
		PublicID:    publicID,
		StorageType: st,
		Reason:      reason,
		LastError:   cause.Error(),
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		logger.Error().Err(err).Str("public_id", publicID).Msg("record orphan failed")
	}
}
