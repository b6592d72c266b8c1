package service

import (
	"career_guide_backend/internal/model"
	"career_guide_backend/internal/repository"
	"career_guide_backend/internal/util"
	"errors"
	"testing"

	"gorm.io/gorm"
)

func newFriendshipService(t *testing.T) (*FriendshipService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewFriendshipService(
		repository.NewFriendshipRepository(db, nil),
		repository.NewUserRepository(db),
	), db
}

func pendingRequestID(t *testing.T, db *gorm.DB, senderID, receiverID uint) string {
	t.Helper()
	var req model.FriendRequest
	err := db.Where("sender_id = ? AND receiver_id = ? AND status = ?", senderID, receiverID, "pending").
		First(&req).Error
	if err != nil {
		t.Fatalf("查待处理申请失败: %v", err)
	}
	return req.ID
}

func TestSendFriendRequest(t *testing.T) {
	t.Run("cannot friend yourself", func(t *testing.T) {
		svc, db := newFriendshipService(t)
		alice := createTestUser(t, db, "alice")
		if err := svc.SendFriendRequest(alice.ID, alice.ID, ""); err == nil {
			t.Error("自己加自己应报错")
		}
	})

	t.Run("receiver must exist", func(t *testing.T) {
		svc, db := newFriendshipService(t)
		alice := createTestUser(t, db, "alice")
		if err := svc.SendFriendRequest(alice.ID, 9999, ""); !errors.Is(err, util.ErrUserNotFound) {
			t.Errorf("err = %v, want ErrUserNotFound", err)
		}
	})

	t.Run("creates a pending request", func(t *testing.T) {
		svc, db := newFriendshipService(t)
		alice := createTestUser(t, db, "alice")
		bob := createTestUser(t, db, "bob")

		if err := svc.SendFriendRequest(alice.ID, bob.ID, "一起学习"); err != nil {
			t.Fatalf("SendFriendRequest: %v", err)
		}

		reqs, err := svc.GetPendingRequests(bob.ID)
		if err != nil {
			t.Fatalf("GetPendingRequests: %v", err)
		}
		if len(reqs) != 1 || reqs[0].SenderID != alice.ID || reqs[0].Message != "一起学习" {
			t.Errorf("pending = %+v", reqs)
		}
	})

	t.Run("duplicate pending is rejected", func(t *testing.T) {
		svc, db := newFriendshipService(t)
		alice := createTestUser(t, db, "alice")
		bob := createTestUser(t, db, "bob")

		if err := svc.SendFriendRequest(alice.ID, bob.ID, ""); err != nil {
			t.Fatalf("首次发送: %v", err)
		}
		if err := svc.SendFriendRequest(alice.ID, bob.ID, ""); err == nil {
			t.Error("重复发送应报错")
		}
	})

	t.Run("reciprocal pending auto accepts", func(t *testing.T) {
		svc, db := newFriendshipService(t)
		alice := createTestUser(t, db, "alice")
		bob := createTestUser(t, db, "bob")

		if err := svc.SendFriendRequest(alice.ID, bob.ID, ""); err != nil {
			t.Fatalf("alice 发送: %v", err)
		}
		// bob 反向发起，等价于直接同意
		if err := svc.SendFriendRequest(bob.ID, alice.ID, ""); err != nil {
			t.Fatalf("bob 反向发送: %v", err)
		}

		friends, err := svc.GetFriends(alice.ID, "")
		if err != nil {
			t.Fatalf("GetFriends: %v", err)
		}
		if len(friends) != 1 || friends[0].ID != bob.ID {
			t.Errorf("alice 好友 = %+v", friends)
		}
		friends, _ = svc.GetFriends(bob.ID, "")
		if len(friends) != 1 || friends[0].ID != alice.ID {
			t.Errorf("bob 好友 = %+v", friends)
		}
	})

	t.Run("already friends", func(t *testing.T) {
		svc, db := newFriendshipService(t)
		alice := createTestUser(t, db, "alice")
		bob := createTestUser(t, db, "bob")

		if err := svc.SendFriendRequest(alice.ID, bob.ID, ""); err != nil {
			t.Fatalf("发送: %v", err)
		}
		reqID := pendingRequestID(t, db, alice.ID, bob.ID)
		if err := svc.HandleFriendRequest(reqID, bob.ID, true); err != nil {
			t.Fatalf("同意: %v", err)
		}
		if err := svc.SendFriendRequest(alice.ID, bob.ID, ""); err == nil {
			t.Error("已是好友再发申请应报错")
		}
	})
}

func TestHandleFriendRequest(t *testing.T) {
	t.Run("accept creates both directions", func(t *testing.T) {
		svc, db := newFriendshipService(t)
		alice := createTestUser(t, db, "alice")
		bob := createTestUser(t, db, "bob")

		if err := svc.SendFriendRequest(alice.ID, bob.ID, ""); err != nil {
			t.Fatalf("发送: %v", err)
		}
		reqID := pendingRequestID(t, db, alice.ID, bob.ID)
		if err := svc.HandleFriendRequest(reqID, bob.ID, true); err != nil {
			t.Fatalf("同意: %v", err)
		}

		var count int64
		db.Model(&model.Friendship{}).Count(&count)
		if count != 2 {
			t.Errorf("friendship rows = %d, want 2", count)
		}
	})

	t.Run("reject leaves no friendship", func(t *testing.T) {
		svc, db := newFriendshipService(t)
		alice := createTestUser(t, db, "alice")
		bob := createTestUser(t, db, "bob")

		if err := svc.SendFriendRequest(alice.ID, bob.ID, ""); err != nil {
			t.Fatalf("发送: %v", err)
		}
		reqID := pendingRequestID(t, db, alice.ID, bob.ID)
		if err := svc.HandleFriendRequest(reqID, bob.ID, false); err != nil {
			t.Fatalf("拒绝: %v", err)
		}

		var count int64
		db.Model(&model.Friendship{}).Count(&count)
		if count != 0 {
			t.Errorf("拒绝后不应有好友关系, rows = %d", count)
		}
		// 拒绝后可以重新申请
		if err := svc.SendFriendRequest(alice.ID, bob.ID, ""); err != nil {
			t.Errorf("拒绝后重发: %v", err)
		}
	})

	t.Run("only the receiver can handle", func(t *testing.T) {
		svc, db := newFriendshipService(t)
		alice := createTestUser(t, db, "alice")
		bob := createTestUser(t, db, "bob")
		eve := createTestUser(t, db, "eve")

		if err := svc.SendFriendRequest(alice.ID, bob.ID, ""); err != nil {
			t.Fatalf("发送: %v", err)
		}
		reqID := pendingRequestID(t, db, alice.ID, bob.ID)
		if err := svc.HandleFriendRequest(reqID, eve.ID, true); err == nil {
			t.Error("非接收方处理应报错")
		}
	})

	t.Run("handled request cannot be replayed", func(t *testing.T) {
		svc, db := newFriendshipService(t)
		alice := createTestUser(t, db, "alice")
		bob := createTestUser(t, db, "bob")

		if err := svc.SendFriendRequest(alice.ID, bob.ID, ""); err != nil {
			t.Fatalf("发送: %v", err)
		}
		reqID := pendingRequestID(t, db, alice.ID, bob.ID)
		if err := svc.HandleFriendRequest(reqID, bob.ID, true); err != nil {
			t.Fatalf("同意: %v", err)
		}
		if err := svc.HandleFriendRequest(reqID, bob.ID, true); err == nil {
			t.Error("重复处理应报错")
		}
	})
}

func TestDeleteFriend(t *testing.T) {
	svc, db := newFriendshipService(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	if err := svc.DeleteFriend(alice.ID, bob.ID); err == nil {
		t.Error("删除非好友应报错")
	}

	if err := svc.SendFriendRequest(alice.ID, bob.ID, ""); err != nil {
		t.Fatalf("发送: %v", err)
	}
	reqID := pendingRequestID(t, db, alice.ID, bob.ID)
	if err := svc.HandleFriendRequest(reqID, bob.ID, true); err != nil {
		t.Fatalf("同意: %v", err)
	}

	if err := svc.DeleteFriend(alice.ID, bob.ID); err != nil {
		t.Fatalf("DeleteFriend: %v", err)
	}
	var count int64
	db.Model(&model.Friendship{}).Count(&count)
	if count != 0 {
		t.Errorf("双向关系应同时删除, rows = %d", count)
	}
}

func TestSearchUsers(t *testing.T) {
	svc, db := newFriendshipService(t)
	createTestUser(t, db, "zhang_wei")
	createTestUser(t, db, "zhang_li")
	disabled := createTestUser(t, db, "zhang_gone")
	if err := db.Model(&model.User{}).Where("id = ?", disabled.ID).Update("disabled", true).Error; err != nil {
		t.Fatalf("禁用用户失败: %v", err)
	}

	t.Run("exact email", func(t *testing.T) {
		user, err := svc.SearchUserByEmail("zhang_wei@example.com")
		if err != nil {
			t.Fatalf("SearchUserByEmail: %v", err)
		}
		if user.Name != "zhang_wei" || user.Password != "" {
			t.Errorf("user = %s/password=%q", user.Name, user.Password)
		}
	})

	t.Run("email not found", func(t *testing.T) {
		if _, err := svc.SearchUserByEmail("nobody@example.com"); !errors.Is(err, util.ErrUserNotFound) {
			t.Errorf("err = %v, want ErrUserNotFound", err)
		}
	})

	t.Run("fuzzy search skips disabled users", func(t *testing.T) {
		users, err := svc.FuzzySearchUsers("zhang")
		if err != nil {
			t.Fatalf("FuzzySearchUsers: %v", err)
		}
		if len(users) != 2 {
			t.Fatalf("matches = %d, want 2", len(users))
		}
		for _, u := range users {
			if u.Name == "zhang_gone" {
				t.Error("禁用用户不应出现在搜索结果里")
			}
		}
	})
}
