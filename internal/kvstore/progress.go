package kvstore

import (
	"context"
	"strings"

	"github.com/nabha-learn/nabha-shell/internal/content"
)

const progressPrefix = "nabha-progress/"

// LoadProgress 实现 content.ProgressStore。
func (s *Store) LoadProgress(ctx context.Context) (map[string]content.LessonProgress, error) {
	keys, err := s.Keys(ctx, progressPrefix)
	if err != nil {
		return nil, err
	}
	out := make(map[string]content.LessonProgress, len(keys))
	for _, key := range keys {
		var p content.LessonProgress
		if err := s.GetJSON(ctx, key, &p); err != nil {
			return nil, err
		}
		out[strings.TrimPrefix(key, progressPrefix)] = p
	}
	return out, nil
}

// SaveProgress 实现 content.ProgressStore。
func (s *Store) SaveProgress(ctx context.Context, lessonID string, p content.LessonProgress) error {
	return s.SetJSON(ctx, progressPrefix+lessonID, p)
}
