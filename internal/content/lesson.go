package content

import (
	"errors"

	"github.com/nabha-learn/nabha-shell/internal/connectivity"
)

// ErrLessonNotFound 表示目录中不存在该课程。
var ErrLessonNotFound = errors.New("lesson not found")

// Status 是课程的学习进度状态。
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Section 是课程中的一段图文内容。
type Section struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	Image string `json:"image"`
}

// Lesson 是一节课程。Downloaded 表示本地可用，与连接状态无关。
type Lesson struct {
	ID         string            `json:"id"`
	Title      map[string]string `json:"title"`
	Subject    string            `json:"subject"`
	Thumbnail  string            `json:"thumbnail"`
	Duration   int               `json:"duration"`
	Status     Status            `json:"status"`
	Progress   int               `json:"progress"`
	Downloaded bool              `json:"downloaded"`
	Sections   []Section         `json:"sections"`
	Quiz       Quiz              `json:"quiz"`
}

// LocalizedTitle 返回指定语言的标题，缺失时回退英文。
func (l Lesson) LocalizedTitle(lang string) string {
	if title, ok := l.Title[lang]; ok && title != "" {
		return title
	}
	return l.Title["en"]
}

// Item 返回参与播放门控的条目视图。
func (l Lesson) Item() connectivity.Item {
	return connectivity.Item{ID: l.ID, Downloaded: l.Downloaded}
}

// Student 是班级中的一名学生及其各课程进度（百分比）。
type Student struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Class    string         `json:"class"`
	Progress map[string]int `json:"progress"`
}
