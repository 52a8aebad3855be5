package users

import (
	"context"
	"errors"
	"strconv"

	"github.com/ilmsadmin/zbase-sub005/internal/constants"
	"github.com/ilmsadmin/zbase-sub005/internal/middleware"
	"github.com/ilmsadmin/zbase-sub005/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	ErrInvalidRole               = errors.New("Invalid role")
	ErrOnlyAdminsAssignAdmins    = errors.New("Only superadmins can assign admin or superadmin roles")
	ErrTargetUserNotFound        = errors.New("Target user not found")
	ErrCannotModifyOwnRole       = errors.New("Users cannot modify their own role")
	ErrMustKeepOneSuperadmin     = errors.New("There must be at least one superadmin")
	ErrCannotRemoveLastSuperuser = errors.New("Cannot remove the last superadmin")
)

type RoleAssignmentParams struct {
	ActorUserID  uint
	ActorRole    string
	TargetUserID uint
	TargetRole   string
}

// ValidateRoleAssignment enforces role governance: only superadmins hand out
// admin/superadmin, nobody below superadmin edits their own role, and the last
// superadmin can never be downgraded.
func ValidateRoleAssignment(db *gorm.DB, p RoleAssignmentParams) error {
	if !constants.IsValidRole(p.TargetRole) {
		return ErrInvalidRole
	}
	if (p.TargetRole == constants.Admin || p.TargetRole == constants.Superadmin) &&
		p.ActorRole != constants.Superadmin {
		return ErrOnlyAdminsAssignAdmins
	}
	var target models.User
	if err := db.First(&target, p.TargetUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTargetUserNotFound
		}
		return err
	}
	if p.ActorUserID == p.TargetUserID && p.ActorRole != constants.Superadmin {
		return ErrCannotModifyOwnRole
	}
	if target.Role == constants.Superadmin && p.TargetRole != constants.Superadmin {
		var count int64
		db.Model(&models.User{}).Where("role = ?", constants.Superadmin).Count(&count)
		if count <= 1 {
			return ErrMustKeepOneSuperadmin
		}
	}
	return nil
}

// DestroyUserSessions removes every session for a user: each session:<sid>
// key plus the user_sessions:<user_id> set tracking them.
func DestroyUserSessions(ctx context.Context, rdb *redis.Client, userID uint) {
	if rdb == nil || userID == 0 {
		return
	}
	key := "user_sessions:" + strconv.FormatUint(uint64(userID), 10)
	sessionIDs, err := rdb.SMembers(ctx, key).Result()
	if err != nil || len(sessionIDs) == 0 {
		rdb.Del(ctx, key)
		return
	}
	for _, sid := range sessionIDs {
		rdb.Del(ctx, middleware.SessionRedisPrefix+sid)
	}
	rdb.Del(ctx, key)
}
