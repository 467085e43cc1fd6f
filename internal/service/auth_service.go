package service

import (
	"Pawtner/internal/api/dto"
	"Pawtner/internal/model"
	"Pawtner/internal/pkg/consts"
	"Pawtner/internal/pkg/redis"
	"Pawtner/internal/pkg/security"
	"Pawtner/internal/repository"
	"context"
	"errors"
	log "log/slog"

	"gorm.io/gorm"
)

// AuthService 注册、登录与登出
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterReq) (*dto.TokenDTO, error)
	Login(ctx context.Context, req *dto.LoginReq) (*dto.TokenDTO, error)
	Logout(ctx context.Context, tokenString string) error
}

type authServiceImpl struct {
	userRepo repository.UserRepo
}

func NewAuthService(userRepo repository.UserRepo) AuthService {
	return &authServiceImpl{userRepo: userRepo}
}

// Register 注册新用户并直接签发 Token
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterReq) (*dto.TokenDTO, error) {
	if _, err := s.userRepo.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, ErrUserUsernameExist
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		log.ErrorContext(ctx, "密码哈希失败", "err", err)
		return nil, UnExpectedError
	}

	user := &model.User{
		Username: &req.Username,
		Password: &hash,
		Role:     consts.RoleUser,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserUsernameExist
		}
		log.ErrorContext(ctx, "用户创建失败", "err", err)
		return nil, UnExpectedError
	}

	return s.issueToken(user)
}

// Login 用户名密码登录
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginReq) (*dto.TokenDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, UnExpectedError
	}
	if user.IsBan {
		return nil, ErrUserBan
	}
	if user.Password == nil || !security.CheckPassword(req.Password, *user.Password) {
		return nil, ErrPasswordIncorrect
	}

	return s.issueToken(user)
}

// Logout 登出：Token 签名进入黑名单，剩余有效期内拒绝使用
func (s *authServiceImpl) Logout(ctx context.Context, tokenString string) error {
	signature, err := security.ExtractSignature(tokenString)
	if err != nil {
		return ErrParamInvalid
	}
	if err := redis.SetWithExpiration(ctx, signature, "revoked", security.JWTExpirationTime); err != nil {
		log.ErrorContext(ctx, "Token 黑名单写入失败", "err", err)
		return UnExpectedError
	}
	return nil
}

func (s *authServiceImpl) issueToken(user *model.User) (*dto.TokenDTO, error) {
	token, err := security.GenerateToken(user.ID, []string{user.Role})
	if err != nil {
		return nil, UnExpectedError
	}
	return &dto.TokenDTO{Token: token, UserID: user.ID}, nil
}
