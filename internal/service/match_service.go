package service

import (
	"Pawtner/internal/api/dto"
	"Pawtner/internal/model"
	"Pawtner/internal/pkg/consts"
	"Pawtner/internal/pkg/push"
	"Pawtner/internal/pkg/redis"
	"Pawtner/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// MatchService 匹配引擎：喜欢、互配、回应与统计
type MatchService interface {
	SendLike(ctx context.Context, userID uint64, req *dto.SendLikeReq) (*dto.LikeResultDTO, error)
	RespondToLike(ctx context.Context, userID uint64, req *dto.RespondLikeReq) (*dto.RespondResultDTO, error)
	GetLikesReceived(ctx context.Context, userID uint64, req *dto.GetLikesReceivedReq) ([]*dto.LikeDTO, error)
	GetBadgeCounts(ctx context.Context, userID uint64) (*dto.BadgeCountsDTO, error)
	GetStats(ctx context.Context, userID uint64) (*dto.StatsDTO, error)
}

type matchServiceImpl struct {
	likeRepo  repository.LikeRepo
	matchRepo repository.MatchRepo
	petRepo   repository.PetRepo
	convRepo  repository.ConversationRepo
	quota     QuotaService
	notifier  push.Notifier
}

func NewMatchService(
	likeRepo repository.LikeRepo,
	matchRepo repository.MatchRepo,
	petRepo repository.PetRepo,
	convRepo repository.ConversationRepo,
	quota QuotaService,
	notifier push.Notifier,
) MatchService {
	return &matchServiceImpl{
		likeRepo:  likeRepo,
		matchRepo: matchRepo,
		petRepo:   petRepo,
		convRepo:  convRepo,
		quota:     quota,
		notifier:  notifier,
	}
}

// SendLike 发送喜欢
// 校验顺序：归属 -> 自喜欢 -> 限额 -> 重复 -> 落库 -> 互配判定 -> 计数 -> 推送
func (s *matchServiceImpl) SendLike(ctx context.Context, userID uint64, req *dto.SendLikeReq) (*dto.LikeResultDTO, error) {
	fromPet, err := s.petRepo.GetPet(ctx, req.FromPetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPetNotFound
	}
	if err != nil {
		return nil, UnExpectedError
	}
	if fromPet.UserID != userID {
		return nil, ErrPetNotOwned
	}

	toPet, err := s.petRepo.GetPet(ctx, req.ToPetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPetNotFound
	}
	if err != nil {
		return nil, UnExpectedError
	}
	// 不能喜欢自己名下的宠物
	if toPet.UserID == userID {
		return nil, ErrLikeSelf
	}

	if err := s.quota.CanPerformAction(ctx, userID, consts.ActionSendLike); err != nil {
		return nil, err
	}

	exists, err := s.likeRepo.ExistsLike(ctx, req.FromPetID, req.ToPetID)
	if err != nil {
		return nil, UnExpectedError
	}
	if exists {
		return nil, ErrLikeDuplicate
	}

	// 对方已拒绝的宠物对不允许再次发起，拒绝对该对宠物是终态
	pairKey := repository.PairKey(req.FromPetID, req.ToPetID)
	existing, err := s.matchRepo.GetMatchByPairKey(ctx, pairKey)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, UnExpectedError
	}
	if err == nil && existing.Status == consts.MatchStatusRejected {
		return nil, ErrMatchAlreadyHandled
	}

	like := &model.Like{
		FromUserID: userID,
		FromPetID:  req.FromPetID,
		ToUserID:   toPet.UserID,
		ToPetID:    req.ToPetID,
	}
	if err := s.likeRepo.CreateLike(ctx, like); err != nil {
		// 并发重复提交，唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrLikeDuplicate
		}
		log.ErrorContext(ctx, "喜欢落库失败", "from", req.FromPetID, "to", req.ToPetID, "err", err)
		return nil, UnExpectedError
	}

	match, _, err := s.matchRepo.EnsureMatch(ctx, s.buildMatch(pairKey, fromPet, toPet))
	if err != nil {
		log.ErrorContext(ctx, "匹配创建失败", "pair", pairKey, "err", err)
		return nil, UnExpectedError
	}

	result := &dto.LikeResultDTO{LikeID: like.ID}

	// 对方已先喜欢过来，直接升级为已匹配并开启会话
	reciprocal, err := s.likeRepo.ExistsLike(ctx, req.ToPetID, req.FromPetID)
	if err == nil && reciprocal {
		upgraded, err := s.matchRepo.UpdateStatusFrom(ctx, match.ID, consts.MatchStatusPending, consts.MatchStatusAccepted)
		if err != nil {
			return nil, UnExpectedError
		}
		if upgraded || match.Status == consts.MatchStatusAccepted {
			convID, err := s.openMatchConversation(ctx, match)
			if err != nil {
				log.ErrorContext(ctx, "匹配会话开启失败", "match", match.ID, "err", err)
			}
			result.Matched = true
			result.MatchID = match.ID

			payload := &dto.RespondResultDTO{MatchID: match.ID, Status: consts.MatchStatusAccepted, ConversationID: convID}
			s.notifier.Push(ctx, userID, consts.EventNewMatch, payload)
			s.notifier.Push(ctx, toPet.UserID, consts.EventNewMatch, payload)
		}
	}

	if !result.Matched {
		likeDTO := &dto.LikeDTO{}
		_ = copier.Copy(likeDTO, like)
		likeDTO.MatchID = match.ID
		s.notifier.Push(ctx, toPet.UserID, consts.EventNewLike, likeDTO)
	}

	if err := s.quota.RecordAction(ctx, userID, consts.ActionSendLike); err != nil {
		log.WarnContext(ctx, "喜欢计数记录失败", "user", userID, "err", err)
	}
	s.invalidateBadge(ctx, toPet.UserID)

	return result, nil
}

// RespondToLike 回应收到的喜欢
// match：待回应 -> 已匹配（幂等），已拒绝 -> 冲突
// pass：任意状态 -> 已拒绝并关闭会话（幂等）
func (s *matchServiceImpl) RespondToLike(ctx context.Context, userID uint64, req *dto.RespondLikeReq) (*dto.RespondResultDTO, error) {
	match, err := s.matchRepo.GetMatch(ctx, req.MatchID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, UnExpectedError
	}
	// 非当事人视同不存在，不泄露他人匹配
	if match.User1ID != userID && match.User2ID != userID {
		return nil, ErrMatchNotFound
	}

	switch req.Action {
	case consts.MatchActionMatch:
		return s.acceptMatch(ctx, userID, match)
	case consts.MatchActionPass:
		return s.rejectMatch(ctx, userID, match)
	default:
		return nil, ErrActionInvalid
	}
}

func (s *matchServiceImpl) acceptMatch(ctx context.Context, userID uint64, match *model.Match) (*dto.RespondResultDTO, error) {
	if match.Status == consts.MatchStatusRejected {
		return nil, ErrMatchAlreadyHandled
	}

	if match.Status == consts.MatchStatusPending {
		transitioned, err := s.matchRepo.UpdateStatusFrom(ctx, match.ID, consts.MatchStatusPending, consts.MatchStatusAccepted)
		if err != nil {
			return nil, UnExpectedError
		}
		if !transitioned {
			// 并发下状态已被流转，重读后按终态判定
			fresh, err := s.matchRepo.GetMatch(ctx, match.ID)
			if err != nil {
				return nil, UnExpectedError
			}
			if fresh.Status == consts.MatchStatusRejected {
				return nil, ErrMatchAlreadyHandled
			}
		}
	}

	convID, err := s.openMatchConversation(ctx, match)
	if err != nil {
		log.ErrorContext(ctx, "匹配会话开启失败", "match", match.ID, "err", err)
	}

	result := &dto.RespondResultDTO{
		MatchID:        match.ID,
		Status:         consts.MatchStatusAccepted,
		ConversationID: convID,
	}
	peerID := s.peerUserID(match, userID)
	s.notifier.Push(ctx, peerID, consts.EventMatchResponse, result)
	s.invalidateBadge(ctx, userID)
	s.invalidateBadge(ctx, peerID)
	return result, nil
}

func (s *matchServiceImpl) rejectMatch(ctx context.Context, userID uint64, match *model.Match) (*dto.RespondResultDTO, error) {
	result := &dto.RespondResultDTO{MatchID: match.ID, Status: consts.MatchStatusRejected}

	// 已是拒绝态则幂等返回
	if match.Status == consts.MatchStatusRejected {
		return result, nil
	}

	if _, err := s.matchRepo.UpdateStatusFrom(ctx, match.ID, match.Status, consts.MatchStatusRejected); err != nil {
		return nil, UnExpectedError
	}
	// 拒绝后会话关闭，历史消息保留
	if err := s.convRepo.CloseByMatchID(ctx, match.ID); err != nil {
		log.ErrorContext(ctx, "关闭匹配会话失败", "match", match.ID, "err", err)
	}

	peerID := s.peerUserID(match, userID)
	s.notifier.Push(ctx, peerID, consts.EventMatchResponse, result)
	s.invalidateBadge(ctx, userID)
	s.invalidateBadge(ctx, peerID)
	return result, nil
}

// GetLikesReceived 收到且尚未回应的喜欢
func (s *matchServiceImpl) GetLikesReceived(ctx context.Context, userID uint64, req *dto.GetLikesReceivedReq) ([]*dto.LikeDTO, error) {
	if req.PetID != nil {
		if *req.PetID == 0 {
			return nil, ErrParamInvalid
		}
		pet, err := s.petRepo.GetPet(ctx, *req.PetID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPetNotFound
		}
		if err != nil {
			return nil, UnExpectedError
		}
		if pet.UserID != userID {
			return nil, ErrPetNotOwned
		}
	}

	offset := (req.Page - 1) * req.PageSize
	likes, err := s.likeRepo.ListReceived(ctx, userID, req.PetID, req.PageSize, offset)
	if err != nil {
		return nil, UnExpectedError
	}

	res := make([]*dto.LikeDTO, 0, len(likes))
	for _, like := range likes {
		match, err := s.matchRepo.GetMatchByPairKey(ctx, repository.PairKey(like.FromPetID, like.ToPetID))
		if err != nil || match.Status != consts.MatchStatusPending {
			continue
		}
		d := &dto.LikeDTO{}
		_ = copier.Copy(d, like)
		d.MatchID = match.ID
		res = append(res, d)
	}
	return res, nil
}

// GetBadgeCounts 角标计数，短 TTL 缓存
func (s *matchServiceImpl) GetBadgeCounts(ctx context.Context, userID uint64) (*dto.BadgeCountsDTO, error) {
	cacheKey := consts.BadgeCountKey + strconv.FormatUint(userID, 10)
	if cached, err := redis.GetValue(ctx, cacheKey); err == nil && cached != "" {
		counts := &dto.BadgeCountsDTO{}
		if err := json.Unmarshal([]byte(cached), counts); err == nil {
			return counts, nil
		}
	}

	likesReceived, err := s.likeRepo.CountReceived(ctx, userID, nil)
	if err != nil {
		return nil, UnExpectedError
	}
	pending, err := s.matchRepo.CountByUserAndStatus(ctx, userID, consts.MatchStatusPending)
	if err != nil {
		return nil, UnExpectedError
	}
	matches, err := s.matchRepo.CountByUserAndStatus(ctx, userID, consts.MatchStatusAccepted)
	if err != nil {
		return nil, UnExpectedError
	}
	unread, err := s.convRepo.GetTotalUnreadCount(ctx, userID)
	if err != nil {
		return nil, UnExpectedError
	}

	counts := &dto.BadgeCountsDTO{
		LikesReceived: uint64(likesReceived),
		PendingLikes:  uint64(pending),
		Matches:       uint64(matches),
		UnreadTotal:   uint64(unread),
	}

	if data, err := json.Marshal(counts); err == nil {
		if err := redis.SetWithExpiration(ctx, cacheKey, data, 30*time.Second); err != nil {
			log.WarnContext(ctx, "角标缓存写入失败", "user", userID, "err", err)
		}
	}
	return counts, nil
}

// GetStats 匹配统计，无任何活动时各项为零
func (s *matchServiceImpl) GetStats(ctx context.Context, userID uint64) (*dto.StatsDTO, error) {
	likesSent, err := s.likeRepo.CountSent(ctx, userID)
	if err != nil {
		return nil, UnExpectedError
	}
	likesReceived, err := s.likeRepo.CountReceived(ctx, userID, nil)
	if err != nil {
		return nil, UnExpectedError
	}
	matches, err := s.matchRepo.CountByUserAndStatus(ctx, userID, consts.MatchStatusAccepted)
	if err != nil {
		return nil, UnExpectedError
	}
	passes, err := s.matchRepo.CountByUserAndStatus(ctx, userID, consts.MatchStatusRejected)
	if err != nil {
		return nil, UnExpectedError
	}

	return &dto.StatsDTO{
		LikesSent:     uint64(likesSent),
		LikesReceived: uint64(likesReceived),
		Matches:       uint64(matches),
		Passes:        uint64(passes),
	}, nil
}

// buildMatch 构造匹配行，较小的宠物 ID 恒在前，保证无序对唯一
func (s *matchServiceImpl) buildMatch(pairKey string, fromPet, toPet *model.Pet) *model.Match {
	pet1, pet2 := fromPet, toPet
	if pet2.ID < pet1.ID {
		pet1, pet2 = pet2, pet1
	}
	return &model.Match{
		PairKey: pairKey,
		Pet1ID:  pet1.ID,
		User1ID: pet1.UserID,
		Pet2ID:  pet2.ID,
		User2ID: pet2.UserID,
		Status:  consts.MatchStatusPending,
	}
}

// openMatchConversation 开启匹配会话，幂等（按 PeerKey 去重）
func (s *matchServiceImpl) openMatchConversation(ctx context.Context, match *model.Match) (uint64, error) {
	peerKey := fmt.Sprintf("m%d", match.ID)
	if conv, err := s.convRepo.GetConversationByPeerKey(ctx, peerKey); err == nil {
		return conv.ID, nil
	}

	conv := &model.Conversation{
		Type:          consts.ConvTypeUser,
		PeerKey:       peerKey,
		MatchID:       match.ID,
		Status:        consts.ConvStatusOpen,
		LastMessageAt: time.Now(),
	}
	members := []*model.ConversationMember{
		{UserID: match.User1ID, IsVisible: 1},
		{UserID: match.User2ID, IsVisible: 1},
	}
	if err := s.convRepo.CreateConversation(ctx, conv, members); err != nil {
		return 0, err
	}
	return conv.ID, nil
}

func (s *matchServiceImpl) peerUserID(match *model.Match, userID uint64) uint64 {
	if match.User1ID == userID {
		return match.User2ID
	}
	return match.User1ID
}

// invalidateBadge 角标计数缓存失效，失败不影响主流程
func (s *matchServiceImpl) invalidateBadge(ctx context.Context, userID uint64) {
	key := consts.BadgeCountKey + strconv.FormatUint(userID, 10)
	if err := redis.DeleteKey(ctx, key); err != nil {
		log.WarnContext(ctx, "角标缓存失效失败", "user", userID, "err", err)
	}
}
