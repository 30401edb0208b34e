package content

import (
	"context"
	"fmt"
	"math"
	"sync"
)

// ProgressStore 持久化课程进度（本地键值存储）。
type ProgressStore interface {
	LoadProgress(ctx context.Context) (map[string]LessonProgress, error)
	SaveProgress(ctx context.Context, lessonID string, p LessonProgress) error
}

// LessonProgress 是一节课程的持久化进度。
type LessonProgress struct {
	Status     Status `json:"status"`
	Progress   int    `json:"progress"`
	Downloaded *bool  `json:"downloaded,omitempty"`
}

// Catalog 是固定的内存样例数据集：课程与班级学生。
type Catalog struct {
	mu       sync.RWMutex
	lessons  []Lesson
	students []Student
	store    ProgressStore
}

// NewCatalog 构造样例目录，并用 store 中已保存的进度覆盖默认值。store 可为 nil。
func NewCatalog(ctx context.Context, store ProgressStore) (*Catalog, error) {
	c := &Catalog{
		lessons:  sampleLessons(),
		students: sampleStudents(),
		store:    store,
	}
	if store == nil {
		return c, nil
	}
	saved, err := store.LoadProgress(ctx)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	for i := range c.lessons {
		if p, ok := saved[c.lessons[i].ID]; ok {
			c.lessons[i].Status = p.Status
			c.lessons[i].Progress = p.Progress
			if p.Downloaded != nil {
				c.lessons[i].Downloaded = *p.Downloaded
			}
		}
	}
	return c, nil
}

// Lessons 返回课程列表副本。
func (c *Catalog) Lessons() []Lesson {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Lesson(nil), c.lessons...)
}

// Lesson 按 ID 查找课程。
func (c *Catalog) Lesson(id string) (Lesson, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, l := range c.lessons {
		if l.ID == id {
			return l, nil
		}
	}
	return Lesson{}, ErrLessonNotFound
}

// Students 返回学生列表副本。
func (c *Catalog) Students() []Student {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Student(nil), c.students...)
}

// CompleteLesson 在提交测验后把课程标记为已完成并持久化。
func (c *Catalog) CompleteLesson(ctx context.Context, id string) (Lesson, error) {
	return c.update(ctx, id, func(l *Lesson) {
		l.Status = StatusCompleted
		l.Progress = 100
	})
}

// SetDownloaded 记录课程是否已下载到本地（下载或移除离线副本）。
func (c *Catalog) SetDownloaded(ctx context.Context, id string, downloaded bool) (Lesson, error) {
	return c.update(ctx, id, func(l *Lesson) {
		l.Downloaded = downloaded
	})
}

func (c *Catalog) update(ctx context.Context, id string, mutate func(*Lesson)) (Lesson, error) {
	c.mu.Lock()
	idx := -1
	for i := range c.lessons {
		if c.lessons[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return Lesson{}, ErrLessonNotFound
	}
	mutate(&c.lessons[idx])
	lesson := c.lessons[idx]
	c.mu.Unlock()

	if c.store != nil {
		downloaded := lesson.Downloaded
		record := LessonProgress{Status: lesson.Status, Progress: lesson.Progress, Downloaded: &downloaded}
		if err := c.store.SaveProgress(ctx, id, record); err != nil {
			return lesson, fmt.Errorf("save progress: %w", err)
		}
	}
	return lesson, nil
}

// StudentSummary 是教师面板中一名学生的平均进度。
type StudentSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Class       string `json:"class"`
	AvgProgress int    `json:"avg_progress"`
}

// Overview 是班级概况。
type Overview struct {
	TotalStudents int              `json:"total_students"`
	ActiveLessons int              `json:"active_lessons"`
	AvgProgress   int              `json:"avg_progress"`
	Students      []StudentSummary `json:"students"`
}

// ClassOverview 计算每名学生的平均进度以及全班所有进度项的平均值。
func (c *Catalog) ClassOverview() Overview {
	c.mu.RLock()
	defer c.mu.RUnlock()

	overview := Overview{
		TotalStudents: len(c.students),
		ActiveLessons: len(c.lessons),
		Students:      make([]StudentSummary, 0, len(c.students)),
	}
	total, count := 0, 0
	for _, s := range c.students {
		sum := 0
		for _, p := range s.Progress {
			sum += p
		}
		avg := 0
		if len(s.Progress) > 0 {
			avg = int(math.Round(float64(sum) / float64(len(s.Progress))))
		}
		total += sum
		count += len(s.Progress)
		overview.Students = append(overview.Students, StudentSummary{
			ID:          s.ID,
			Name:        s.Name,
			Class:       s.Class,
			AvgProgress: avg,
		})
	}
	if count > 0 {
		overview.AvgProgress = int(math.Round(float64(total) / float64(count)))
	}
	return overview
}
