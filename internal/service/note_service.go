package service

import (
	"career_guide_backend/internal/model"
	"career_guide_backend/internal/repository"
	"career_guide_backend/internal/util"
	"errors"

	"gorm.io/datatypes"
)

type NoteService struct {
	NoteRepo *repository.NoteRepository
}

func NewNoteService(noteRepo *repository.NoteRepository) *NoteService {
	return &NoteService{NoteRepo: noteRepo}
}

// NoteRequest 创建/更新笔记的请求体
type NoteRequest struct {
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

func (s *NoteService) Create(userID uint, req NoteRequest) (*model.Note, error) {
	note := &model.Note{
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
		Tags:    datatypes.NewJSONSlice(req.Tags),
	}
	if err := s.NoteRepo.Create(note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) List(userID uint, page, limit int) ([]model.Note, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.NoteRepo.FindByUserID(userID, page, limit)
}

func (s *NoteService) Update(userID, noteID uint, req NoteRequest) (*model.Note, error) {
	note, err := s.NoteRepo.FindByID(noteID)
	if err != nil {
		return nil, util.ErrNoteNotFound
	}
	if note.UserID != userID {
		return nil, errors.New("无权修改此笔记")
	}

	note.Title = req.Title
	note.Content = req.Content
	note.Tags = datatypes.NewJSONSlice(req.Tags)
	if err := s.NoteRepo.Update(note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) Delete(userID, noteID uint) error {
	note, err := s.NoteRepo.FindByID(noteID)
	if err != nil {
		return util.ErrNoteNotFound
	}
	if note.UserID != userID {
		return errors.New("无权删除此笔记")
	}
	return s.NoteRepo.Delete(noteID)
}
