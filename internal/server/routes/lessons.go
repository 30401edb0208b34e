package routes

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/nabha-learn/nabha-shell/internal/connectivity"
	"github.com/nabha-learn/nabha-shell/internal/content"
	"github.com/nabha-learn/nabha-shell/internal/server"
)

type lessonSummary struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Subject    string         `json:"subject"`
	Thumbnail  string         `json:"thumbnail"`
	Duration   int            `json:"duration"`
	Status     content.Status `json:"status"`
	Progress   int            `json:"progress"`
	Downloaded bool           `json:"downloaded"`
	Playable   bool           `json:"playable"`
	StatusText string         `json:"status_text"`
}

type downloadPayload struct {
	Downloaded *bool `json:"downloaded"`
}

type quizPayload struct {
	Answers []content.Answer `json:"answers"`
}

var statusKeys = map[content.Status]string{
	content.StatusNotStarted: "notStarted",
	content.StatusInProgress: "inProgress",
	content.StatusCompleted:  "completed",
}

func registerLessonRoutes(app *fiber.App, deps Dependencies) {
	app.Get("/-/lessons", func(c fiber.Ctx) error {
		lang := deps.language(c)
		lessons := deps.Catalog.Lessons()
		out := make([]lessonSummary, 0, len(lessons))
		for _, l := range lessons {
			out = append(out, lessonSummary{
				ID:         l.ID,
				Title:      l.LocalizedTitle(lang),
				Subject:    l.Subject,
				Thumbnail:  l.Thumbnail,
				Duration:   l.Duration,
				Status:     l.Status,
				Progress:   l.Progress,
				Downloaded: l.Downloaded,
				Playable:   deps.Gate.CanPlay(l.Item()),
				StatusText: deps.Translator.T(lang, statusKeys[l.Status]),
			})
		}
		return c.JSON(fiber.Map{"lessons": out})
	})

	app.Post("/-/lessons/:id/play", func(c fiber.Ctx) error {
		lesson, err := deps.Catalog.Lesson(c.Params("id"))
		if err != nil {
			return server.WriteError(c, fiber.StatusNotFound, "lesson_not_found")
		}
		if !deps.Gate.CanPlay(lesson.Item()) {
			note := deps.Indicator.Notify(connectivity.LevelError, connectivity.DenialMessage)
			deps.Logger.WithFields(logrus.Fields{
				"action":     "gate",
				"lesson":     lesson.ID,
				"request_id": server.RequestID(c),
			}).Info("play_denied")
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":        "lesson_unavailable",
				"notification": note,
			})
		}
		return c.JSON(fiber.Map{
			"id":       lesson.ID,
			"title":    lesson.LocalizedTitle(deps.language(c)),
			"sections": lesson.Sections,
			"quiz":     lesson.Quiz,
		})
	})

	app.Post("/-/lessons/:id/quiz", func(c fiber.Ctx) error {
		lesson, err := deps.Catalog.Lesson(c.Params("id"))
		if err != nil {
			return server.WriteError(c, fiber.StatusNotFound, "lesson_not_found")
		}
		var payload quizPayload
		if err := json.Unmarshal(c.Body(), &payload); err != nil {
			return server.WriteError(c, fiber.StatusBadRequest, "invalid_body")
		}
		result := lesson.Quiz.Score(payload.Answers)

		updated, err := deps.Catalog.CompleteLesson(requestContext(c), lesson.ID)
		if err != nil && !errors.Is(err, content.ErrLessonNotFound) {
			deps.Logger.WithError(err).WithFields(logrus.Fields{
				"action": "quiz",
				"lesson": lesson.ID,
			}).Warn("progress_save_failed")
		}
		deps.Logger.WithFields(logrus.Fields{
			"action": "quiz",
			"lesson": lesson.ID,
			"score":  result.String(),
		}).Info("quiz_submitted")
		return c.JSON(fiber.Map{
			"result":   result,
			"status":   updated.Status,
			"progress": updated.Progress,
		})
	})

	app.Put("/-/lessons/:id/download", func(c fiber.Ctx) error {
		var payload downloadPayload
		if err := json.Unmarshal(c.Body(), &payload); err != nil || payload.Downloaded == nil {
			return server.WriteError(c, fiber.StatusBadRequest, "invalid_body")
		}
		lesson, err := deps.Catalog.SetDownloaded(requestContext(c), c.Params("id"), *payload.Downloaded)
		if errors.Is(err, content.ErrLessonNotFound) {
			return server.WriteError(c, fiber.StatusNotFound, "lesson_not_found")
		}
		if err != nil {
			deps.Logger.WithError(err).WithFields(logrus.Fields{
				"action": "download",
				"lesson": lesson.ID,
			}).Warn("progress_save_failed")
		}
		return c.JSON(fiber.Map{
			"id":         lesson.ID,
			"downloaded": lesson.Downloaded,
			"playable":   deps.Gate.CanPlay(lesson.Item()),
		})
	})

	app.Get("/-/students", func(c fiber.Ctx) error {
		return c.JSON(deps.Catalog.ClassOverview())
	})
}
