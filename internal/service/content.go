package service

import (
	"context"
	"strings"

	"pressroom/internal/auth"
	"pressroom/internal/logging"
	"pressroom/internal/model"
)

// owns reports whether caller may mutate a document owned by ownerID.
func owns(caller auth.Identity, ownerID string) bool {
	return caller.IsAdmin() || (ownerID != "" && caller.ID == ownerID)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func assign(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// SplitList splits a comma separated value, dropping blanks.
func SplitList(s string) []string {
	out := make([]string, 0)
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// replaceAsset uploads f when present. The returned commit func releases
// whichever asset lost: the new one when the write failed, the old one
// when it succeeded.
func replaceAsset(
	ctx context.Context,
	upload func(context.Context, *FileInput, string) (*model.Media, error),
	media MediaService,
	f *FileInput,
	uploader string,
	current *model.Asset,
	reason string,
) (*model.Asset, func(ok bool), error) {
	if f == nil {
		return current, func(bool) {}, nil
	}
	m, err := upload(ctx, f, uploader)
	if err != nil {
		return nil, nil, err
	}
	next := model.AssetOf(m)
	return next, func(ok bool) {
		if !ok {
			media.Release(ctx, next.ID, reason+"_rollback")
			return
		}
		if current != nil && current.ID != next.ID {
			media.Release(ctx, current.ID, reason)
		}
	}, nil
}

func releaseAsset(ctx context.Context, media MediaService, a *model.Asset, reason string) {
	if a == nil {
		return
	}
	logging.Component("media").Debug().Str("media_id", a.ID).Str("reason", reason).Msg("releasing asset")
	media.Release(ctx, a.ID, reason)
}
