package util

import "errors"

var (
	ErrUserNotFound         = errors.New("用户不存在")
	ErrEmailRegistered      = errors.New("该邮箱已被注册")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrOnboardingIncomplete = errors.New("onboarding not completed")
	ErrRoadmapNotFound      = errors.New("roadmap not generated")
	ErrQuestNotFound        = errors.New("quest not found")
	ErrQuestAlreadyDone     = errors.New("quest already completed")
	ErrNoFreezesLeft        = errors.New("no streak freezes left")
	ErrAssessmentNotFound   = errors.New("assessment not found")
	ErrAssessmentExpired    = errors.New("assessment time limit exceeded")
	ErrUnknownRole          = errors.New("unknown target role")
	ErrNoteNotFound         = errors.New("note not found")
)
