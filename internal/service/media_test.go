package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pressroom/internal/model"
	repoMocks "pressroom/internal/repository/mocks"
	"pressroom/internal/storage"
	storeMocks "pressroom/internal/storage/mocks"
)

var (
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{0}, 64)...)
	pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")
)

const mediaID = "5f0c6a8e-8c1e-4a57-9d55-0f3c2f7b6a01"

type mediaDeps struct {
	store   *storeMocks.MockStorage
	repo    *repoMocks.MockMediaRepository
	orphans *repoMocks.MockOrphanRepository
	tmp     string
}

func newMediaSvc(t *testing.T) (*mediaService, mediaDeps) {
	t.Helper()
	d := mediaDeps{
		store:   new(storeMocks.MockStorage),
		repo:    new(repoMocks.MockMediaRepository),
		orphans: new(repoMocks.MockOrphanRepository),
		tmp:     t.TempDir(),
	}
	return &mediaService{store: d.store, repo: d.repo, orphans: d.orphans, tmpDir: d.tmp}, d
}

func assertNoStagedFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp files must be removed")
}

func TestMediaService_Upload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		pdf        bool
		file       *FileInput
		setupMocks func(d mediaDeps)
		wantErr    error
		wantErrMsg string
		check      func(t *testing.T, m *model.Media, d mediaDeps)
	}{
		{
			name: "image happy path",
			file: &FileInput{Name: "cover.png", Reader: bytes.NewReader(pngBytes)},
			setupMocks: func(d mediaDeps) {
				d.store.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "image/") && strings.HasSuffix(key, ".png")
				}), mock.Anything, mock.MatchedBy(func(o storage.PutObjectOptions) bool {
					return o.ContentType == "image/png" && o.Size == int64(len(pngBytes)) && o.ContentDisposition == "inline"
				})).Return(func(_ context.Context, key string, _ io.Reader, _ storage.PutObjectOptions) storage.ObjectInfo {
					return storage.ObjectInfo{Key: key, URL: "http://cdn/" + key}
				}, nil)
				d.repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Media")).
					Return(func(_ context.Context, m *model.Media) *model.Media { return m }, nil)
			},
			check: func(t *testing.T, m *model.Media, d mediaDeps) {
				assert.Equal(t, model.ResourceImage, m.ResourceType)
				assert.Equal(t, model.StorageImage, m.StorageType)
				assert.Equal(t, "http://cdn/"+m.PublicID, m.URL)
				assert.Equal(t, "cover.png", m.OriginalName)
				assert.Equal(t, "u-1", m.UploadedBy)
			},
		},
		{
			name: "pdf stored raw with filename disposition",
			pdf:  true,
			file: &FileInput{Name: "essay.pdf", Reader: bytes.NewReader(pdfBytes)},
			setupMocks: func(d mediaDeps) {
				d.store.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "raw/") && strings.HasSuffix(key, ".pdf")
				}), mock.Anything, mock.MatchedBy(func(o storage.PutObjectOptions) bool {
					return o.ContentType == "application/pdf" && o.ContentDisposition == `inline; filename=essay.pdf`
				})).Return(storage.ObjectInfo{URL: "http://cdn/x.pdf"}, nil)
				d.repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Media")).
					Return(func(_ context.Context, m *model.Media) *model.Media { return m }, nil)
			},
			check: func(t *testing.T, m *model.Media, d mediaDeps) {
				assert.Equal(t, model.ResourcePDF, m.ResourceType)
				assert.Equal(t, model.StorageRaw, m.StorageType)
			},
		},
		{
			name:    "nil file",
			file:    nil,
			wantErr: ErrNoFile,
		},
		{
			name:    "empty file",
			file:    &FileInput{Name: "a.png", Reader: bytes.NewReader(nil)},
			wantErr: ErrNoFile,
		},
		{
			name:    "text disguised as png never reaches the store",
			file:    &FileInput{Name: "evil.png", Reader: strings.NewReader("just some text, not an image")},
			wantErr: ErrUnsupportedMediaType,
		},
		{
			name:    "pdf rejected on image path",
			file:    &FileInput{Name: "book.pdf", Reader: bytes.NewReader(pdfBytes)},
			wantErr: ErrUnsupportedMediaType,
		},
		{
			name: "remote failure",
			file: &FileInput{Name: "cover.png", Reader: bytes.NewReader(pngBytes)},
			setupMocks: func(d mediaDeps) {
				d.store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("connection reset"))
			},
			wantErr: ErrRemoteStore,
		},
		{
			name: "row failure deletes remote object",
			file: &FileInput{Name: "cover.png", Reader: bytes.NewReader(pngBytes)},
			setupMocks: func(d mediaDeps) {
				d.store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{URL: "http://cdn/x"}, nil)
				d.repo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))
				d.store.On("Delete", mock.Anything, mock.Anything).Return(nil)
			},
			wantErrMsg: "save media: db down",
		},
		{
			name: "row failure with failed compensation records orphan",
			file: &FileInput{Name: "cover.png", Reader: bytes.NewReader(pngBytes)},
			setupMocks: func(d mediaDeps) {
				d.store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{URL: "http://cdn/x"}, nil)
				d.repo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))
				d.store.On("Delete", mock.Anything, mock.Anything).Return(errors.New("timeout"))
				d.orphans.On("Create", mock.Anything, mock.MatchedBy(func(o *model.Orphan) bool {
					return o.Reason == "upload_rollback" && o.LastError == "timeout" && o.StorageType == model.StorageImage
				})).Return(&model.Orphan{}, nil)
			},
			wantErrMsg: "save media: db down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newMediaSvc(t)
			if tt.setupMocks != nil {
				tt.setupMocks(d)
			}

			var (
				m   *model.Media
				err error
			)
			if tt.pdf {
				m, err = svc.UploadPDF(ctx, tt.file, "u-1")
			} else {
				m, err = svc.UploadImage(ctx, tt.file, "u-1")
			}

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, m)
			case tt.wantErrMsg != "":
				assert.ErrorContains(t, err, tt.wantErrMsg)
				assert.Nil(t, m)
			default:
				require.NoError(t, err)
				tt.check(t, m, d)
			}

			if errors.Is(tt.wantErr, ErrUnsupportedMediaType) || errors.Is(tt.wantErr, ErrNoFile) {
				d.store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
			d.store.AssertExpectations(t)
			d.repo.AssertExpectations(t)
			d.orphans.AssertExpectations(t)
			assertNoStagedFiles(t, d.tmp)
		})
	}
}

func TestMediaService_UploadImages_RollsBackOnFailure(t *testing.T) {
	svc, d := newMediaSvc(t)
	ctx := context.Background()

	d.store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(storage.ObjectInfo{URL: "http://cdn/a.png"}, nil).Once()
	d.repo.On("Create", mock.Anything, mock.Anything).
		Return(&model.Media{ID: mediaID, PublicID: "image/2025/03/a.png", StorageType: model.StorageImage}, nil).Once()
	d.repo.On("FindByID", mock.Anything, mediaID).
		Return(&model.Media{ID: mediaID, PublicID: "image/2025/03/a.png", StorageType: model.StorageImage}, nil)
	d.repo.On("Delete", mock.Anything, mediaID).Return(nil)
	d.store.On("Delete", mock.Anything, "image/2025/03/a.png").Return(nil)

	files := []*FileInput{
		{Name: "a.png", Reader: bytes.NewReader(pngBytes)},
		{Name: "b.txt", Reader: strings.NewReader("plain text")},
	}
	out, err := svc.UploadImages(ctx, files, "u-1")

	assert.ErrorIs(t, err, ErrUnsupportedMediaType)
	assert.Nil(t, out)
	d.repo.AssertCalled(t, "Delete", mock.Anything, mediaID)
	d.store.AssertCalled(t, "Delete", mock.Anything, "image/2025/03/a.png")
	assertNoStagedFiles(t, d.tmp)
}

func TestMediaService_UploadImages_Empty(t *testing.T) {
	svc, _ := newMediaSvc(t)
	_, err := svc.UploadImages(context.Background(), nil, "u-1")
	assert.ErrorIs(t, err, ErrNoFile)
}

func TestMediaService_Delete(t *testing.T) {
	ctx := context.Background()
	stored := &model.Media{ID: mediaID, PublicID: "image/2025/03/a.png"}

	t.Run("delete then get is not found", func(t *testing.T) {
		svc, d := newMediaSvc(t)
		d.repo.On("FindByID", ctx, mediaID).Return(stored, nil).Once()
		d.store.On("Delete", ctx, "image/2025/03/a.png").Return(nil)
		d.repo.On("Delete", ctx, mediaID).Return(nil)
		d.repo.On("FindByID", ctx, mediaID).Return(nil, sql.ErrNoRows)

		require.NoError(t, svc.Delete(ctx, mediaID))
		_, err := svc.Get(ctx, mediaID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing id", func(t *testing.T) {
		svc, d := newMediaSvc(t)
		d.repo.On("FindByID", ctx, mediaID).Return(nil, sql.ErrNoRows)

		assert.ErrorIs(t, svc.Delete(ctx, mediaID), ErrNotFound)
		d.store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("malformed id", func(t *testing.T) {
		svc, d := newMediaSvc(t)
		assert.ErrorIs(t, svc.Delete(ctx, "not-a-uuid"), ErrNotFound)
		d.repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("remote failure keeps the row", func(t *testing.T) {
		svc, d := newMediaSvc(t)
		d.repo.On("FindByID", ctx, mediaID).Return(stored, nil)
		d.store.On("Delete", ctx, "image/2025/03/a.png").Return(errors.New("503"))

		assert.ErrorIs(t, svc.Delete(ctx, mediaID), ErrRemoteStore)
		d.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestMediaService_Release(t *testing.T) {
	ctx := context.Background()
	stored := &model.Media{ID: mediaID, PublicID: "raw/2025/03/a.pdf", StorageType: model.StorageRaw}

	t.Run("remote failure records orphan and removes row", func(t *testing.T) {
		svc, d := newMediaSvc(t)
		d.repo.On("FindByID", ctx, mediaID).Return(stored, nil)
		d.repo.On("Delete", ctx, mediaID).Return(nil)
		d.store.On("Delete", ctx, "raw/2025/03/a.pdf").Return(errors.New("timeout"))
		d.orphans.On("Create", ctx, mock.MatchedBy(func(o *model.Orphan) bool {
			return o.PublicID == "raw/2025/03/a.pdf" && o.Reason == "publication_delete"
		})).Return(&model.Orphan{}, nil)

		svc.Release(ctx, mediaID, "publication_delete")

		d.repo.AssertExpectations(t)
		d.orphans.AssertExpectations(t)
	})

	t.Run("unknown media is ignored", func(t *testing.T) {
		svc, d := newMediaSvc(t)
		d.repo.On("FindByID", ctx, mediaID).Return(nil, sql.ErrNoRows)

		svc.Release(ctx, mediaID, "article_delete")

		d.store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("empty id is a no-op", func(t *testing.T) {
		svc, d := newMediaSvc(t)
		svc.Release(ctx, "", "article_delete")
		d.repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}
