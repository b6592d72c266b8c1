package service

import (
	"career_guide_backend/internal/model"
	"career_guide_backend/internal/repository"
	"career_guide_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type FriendshipService struct {
	FriendRepo *repository.FriendshipRepository
	UserRepo   *repository.UserRepository
}

func NewFriendshipService(friendRepo *repository.FriendshipRepository, userRepo *repository.UserRepository) *FriendshipService {
	return &FriendshipService{
		FriendRepo: friendRepo,
		UserRepo:   userRepo,
	}
}

func (s *FriendshipService) SearchUserByEmail(email string) (*model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	user.Password = ""
	return user, nil
}

func (s *FriendshipService) FuzzySearchUsers(query string) ([]model.User, error) {
	var users []model.User
	searchTerm := "%" + query + "%"
	err := s.UserRepo.DB.Select("id, name, email, avatar, role, headline").
		Where("disabled = ?", false).
		Where("name LIKE ? OR email LIKE ?", searchTerm, searchTerm).
		Limit(20).
		Find(&users).Error
	return users, err
}

func (s *FriendshipService) SendFriendRequest(senderID uint, receiverID uint, message string) error {
	if senderID == receiverID {
		return errors.New("不能添加自己为好友")
	}

	if _, err := s.UserRepo.FindByID(receiverID); err != nil {
		return util.ErrUserNotFound
	}

	isFriend, _ := s.FriendRepo.IsFriend(senderID, receiverID)
	if isFriend {
		return errors.New("已经是好友了")
	}

	// 对方已先发过申请时直接走同意逻辑，双方各发一次等价于互加成功
	reciprocal, err := s.FriendRepo.FindReciprocalPending(senderID, receiverID)
	if err == nil {
		return s.HandleFriendRequest(reciprocal.ID, senderID, true)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	// 避免重复投递同一张 pending 申请
	var existing model.FriendRequest
	err = s.FriendRepo.DB.Where("sender_id = ? AND receiver_id = ? AND status = ?", senderID, receiverID, "pending").
		First(&existing).Error
	if err == nil {
		return errors.New("申请已发送，等待对方处理")
	}

	req := &model.FriendRequest{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Message:    message,
		Status:     "pending",
	}
	return s.FriendRepo.CreateRequest(req)
}

func (s *FriendshipService) HandleFriendRequest(requestID string, receiverID uint, accept bool) error {
	req, err := s.FriendRepo.GetRequest(requestID)
	if err != nil {
		return errors.New("申请不存在")
	}

	if req.ReceiverID != receiverID {
		return errors.New("无权处理此申请")
	}

	if req.Status != "pending" {
		return errors.New("申请已处理")
	}

	if !accept {
		return s.FriendRepo.UpdateRequestStatus(requestID, "rejected")
	}

	if err := s.FriendRepo.UpdateRequestStatus(requestID, "accepted"); err != nil {
		return err
	}

	// 处理互发申请的并发情况
	isFriend, _ := s.FriendRepo.IsFriend(req.SenderID, req.ReceiverID)
	if isFriend {
		return nil
	}

	_ = s.FriendRepo.DB.Model(&model.FriendRequest{}).
		Where("sender_id = ? AND receiver_id = ? AND status = ?", req.ReceiverID, req.SenderID, "pending").
		Update("status", "accepted").Error

	friendship := &model.Friendship{
		UserID:   req.SenderID,
		FriendID: req.ReceiverID,
		Status:   "accepted",
	}
	return s.FriendRepo.CreateFriendship(friendship)
}

func (s *FriendshipService) GetFriends(userID uint, query string) ([]model.User, error) {
	friends, err := s.FriendRepo.GetFriends(userID, query)
	if err != nil {
		return nil, err
	}
	for i := range friends {
		friends[i].Password = ""
	}
	return friends, nil
}

func (s *FriendshipService) GetPendingRequests(userID uint) ([]model.FriendRequest, error) {
	return s.FriendRepo.GetPendingRequests(userID)
}

func (s *FriendshipService) DeleteFriend(userID, friendID uint) error {
	isFriend, err := s.FriendRepo.IsFriend(userID, friendID)
	if err != nil {
		return err
	}
	if !isFriend {
		return errors.New("不是好友关系")
	}
	return s.FriendRepo.DeleteFriendship(userID, friendID)
}
