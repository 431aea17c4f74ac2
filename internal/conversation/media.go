package conversation

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/codexs/hirebot/core/logger"
	"github.com/codexs/hirebot/internal/chat"
)

var imageExts = []string{".png", ".jpg", ".jpeg"}

// find returns the first existing image named base in the media directory.
func (m Media) find(base string) string {
	if !m.Enabled || m.Dir == "" || base == "" {
		return ""
	}
	for _, ext := range imageExts {
		p := filepath.Join(m.Dir, base+ext)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}

// photo sends a local image, then the URL, and finally falls back to the
// caption as plain text.
func (t *turn) photo(localBase, url, caption string, kb *chat.Keyboard) {
	if t.e.media.Enabled {
		for _, p := range []chat.Photo{{Path: t.e.media.find(localBase)}, {URL: url}} {
			if p.Path == "" && p.URL == "" {
				continue
			}
			err := t.e.sender.SendPhoto(t.ctx, t.ev.ChatID, p, caption, kb)
			if err == nil {
				return
			}
			logger.Debug(t.ctx, "conv", "photo.fallback",
				slog.String("local", p.Path),
				slog.String("url", p.URL),
				slog.String("err", err.Error()),
			)
		}
	}
	t.say(caption, kb)
}
