package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bravedhq/beelearn/internal/lesson"
	"github.com/bravedhq/beelearn/internal/progress"
)

const (
	lessonMessage      = "Here's your lesson from Mrs. Been!"
	lessonFailMessage  = "Failed to fetch lesson. Mrs. Been is a bit busy!"
	answerFailMessage  = "Failed to process answer. Mrs. Been needs a honey break!"
	noLessonMessage    = "No active lesson found. Fetch a lesson first!"
	missingUserMessage = "userId is required"
	missingBodyMessage = "userId and answer are required"
)

// LessonResponse is the GET /api/lesson payload.
type LessonResponse struct {
	Lesson  *lesson.Lesson `json:"lesson"`
	Streak  int            `json:"streak"`
	Message string         `json:"message"`
}

// AnswerRequest is the POST /api/answer body.
type AnswerRequest struct {
	UserID string `json:"userId"`
	Answer string `json:"answer"`
}

// AnswerResponse is the POST /api/answer payload. NewStreak is the streak
// at evaluation time; NextLesson is null after a wrong answer.
type AnswerResponse struct {
	Correct    bool           `json:"correct"`
	NewStreak  int            `json:"newStreak"`
	Message    string         `json:"message"`
	NextLesson *lesson.Lesson `json:"nextLesson"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleGetLesson(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": missingUserMessage})
		return
	}
	ctx := c.Request.Context()

	picked := s.selector.Select(ctx, userID)
	l := s.lessons.Generate(ctx, userID, picked)

	streak, err := s.engine.DeliverLesson(ctx, userID, l)
	if err != nil {
		s.log.Error("lesson delivery failed",
			zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": lessonFailMessage})
		return
	}

	c.JSON(http.StatusOK, LessonResponse{
		Lesson:  &l,
		Streak:  streak,
		Message: lessonMessage,
	})
}

func (s *Server) handleAnswer(c *gin.Context) {
	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.Answer == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": missingBodyMessage})
		return
	}
	ctx := c.Request.Context()

	ev, err := s.engine.EvaluateAnswer(ctx, req.UserID, req.Answer)
	if err != nil {
		if errors.Is(err, progress.ErrNoActiveLesson) {
			c.JSON(http.StatusBadRequest, gin.H{"error": noLessonMessage})
			return
		}
		s.log.Error("answer evaluation failed",
			zap.String("user_id", req.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": answerFailMessage})
		return
	}

	resp := AnswerResponse{
		Correct:   ev.Correct,
		NewStreak: ev.Streak,
		Message:   ev.Message,
	}
	if !ev.Correct {
		c.JSON(http.StatusOK, resp)
		return
	}

	if m := progress.CheckStreakMilestone(ev.Streak); m.Reached {
		resp.Message += " " + m.Message
		s.engine.CelebrateMilestone(ctx, req.UserID, ev.Streak, ev.Topic)
	}

	// Queue the follow-up lesson so the learner can keep going.
	picked := s.selector.Select(ctx, req.UserID)
	next := s.lessons.Generate(ctx, req.UserID, picked)
	if _, err := s.engine.DeliverLesson(ctx, req.UserID, next); err != nil {
		s.log.Error("follow-up delivery failed",
			zap.String("user_id", req.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": answerFailMessage})
		return
	}
	resp.NextLesson = &next

	// Re-assert the completion day for the answered lesson. DeliverLesson
	// already raised it; the merge is idempotent and keeps the record
	// correct regardless of which update landed first.
	if rec, ok, err := s.engine.Record(ctx, req.UserID); err == nil && ok {
		if _, err := s.engine.UpdateUserData(ctx, req.UserID, progress.UserPatch{
			LessonsCompleted: rec.LessonsCompleted,
		}); err != nil {
			s.log.Warn("completion write-back failed",
				zap.String("user_id", req.UserID), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, resp)
}
