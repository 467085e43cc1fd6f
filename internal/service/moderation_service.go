package service

import (
	"Pawtner/internal/api/config"
	"Pawtner/internal/api/dto"
	"Pawtner/internal/model"
	"Pawtner/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"regexp"
	"strings"
	"sync/atomic"

	"gorm.io/gorm"
)

// ModerationService 违禁词审核
// 词库快照整体不可变，Reload 构建新快照后原子替换，进行中的扫描继续使用旧快照
type ModerationService interface {
	Scan(text string) []*dto.ScanMatchDTO
	Review(ctx context.Context, text string) error
	Reload(ctx context.Context) error
	CreateBadWord(ctx context.Context, req *dto.BadWordReq) error
	UpdateBadWord(ctx context.Context, req *dto.BadWordReq) error
	DisableBadWord(ctx context.Context, id uint64) error
}

type literalEntry struct {
	word     string // 已转小写
	raw      string
	level    int8
	category string
}

type regexEntry struct {
	re       *regexp.Regexp
	raw      string
	level    int8
	category string
}

type wordSnapshot struct {
	literals []literalEntry
	regexes  []regexEntry
}

type moderationServiceImpl struct {
	badWordRepo repository.BadWordRepo
	snapshot    atomic.Pointer[wordSnapshot]
}

// NewModerationService 初始快照为空，词库装载由启动流程和定时任务触发
func NewModerationService(badWordRepo repository.BadWordRepo) ModerationService {
	s := &moderationServiceImpl{badWordRepo: badWordRepo}
	s.snapshot.Store(&wordSnapshot{})
	return s
}

// Scan 扫描文本，返回所有命中（字面词不区分大小写，偏移为字节偏移）
func (s *moderationServiceImpl) Scan(text string) []*dto.ScanMatchDTO {
	snap := s.snapshot.Load()
	lowered := strings.ToLower(text)
	var matches []*dto.ScanMatchDTO

	for _, entry := range snap.literals {
		start := 0
		for {
			idx := strings.Index(lowered[start:], entry.word)
			if idx < 0 {
				break
			}
			pos := start + idx
			matches = append(matches, &dto.ScanMatchDTO{
				Word:     entry.raw,
				Level:    entry.level,
				Category: entry.category,
				Start:    pos,
				End:      pos + len(entry.word),
			})
			start = pos + len(entry.word)
		}
	}

	for _, entry := range snap.regexes {
		for _, loc := range entry.re.FindAllStringIndex(text, -1) {
			matches = append(matches, &dto.ScanMatchDTO{
				Word:     entry.raw,
				Level:    entry.level,
				Category: entry.category,
				Start:    loc[0],
				End:      loc[1],
			})
		}
	}

	return matches
}

// Review 审核文本：达到拦截等级的命中直接拒绝，低等级命中仅记日志
func (s *moderationServiceImpl) Review(ctx context.Context, text string) error {
	matches := s.Scan(text)
	if len(matches) == 0 {
		return nil
	}

	blockLevel := config.Cfg.Moderation.BlockLevel
	for _, m := range matches {
		if m.Level >= blockLevel {
			log.WarnContext(ctx, "消息命中违禁词被拦截", "word", m.Word, "level", m.Level, "category", m.Category)
			return ErrMessageBlocked
		}
	}

	log.InfoContext(ctx, "消息命中低等级违禁词", "hits", len(matches))
	return nil
}

// Reload 重建词库快照并原子替换
// 非法正则跳过并告警，不会导致快照损坏
func (s *moderationServiceImpl) Reload(ctx context.Context) error {
	words, err := s.badWordRepo.ListActive(ctx)
	if err != nil {
		return err
	}

	snap := &wordSnapshot{}
	for _, w := range words {
		if w.IsRegex {
			re, err := regexp.Compile(w.Word)
			if err != nil {
				log.WarnContext(ctx, "违禁词正则无效，已跳过", "id", w.ID, "word", w.Word, "err", err)
				continue
			}
			snap.regexes = append(snap.regexes, regexEntry{
				re: re, raw: w.Word, level: w.Level, category: w.Category,
			})
			continue
		}
		snap.literals = append(snap.literals, literalEntry{
			word: strings.ToLower(w.Word), raw: w.Word, level: w.Level, category: w.Category,
		})
	}

	s.snapshot.Store(snap)
	log.InfoContext(ctx, "违禁词快照已更新", "literals", len(snap.literals), "regexes", len(snap.regexes))
	return nil
}

// CreateBadWord 新增词条并刷新快照
func (s *moderationServiceImpl) CreateBadWord(ctx context.Context, req *dto.BadWordReq) error {
	if err := s.validateWord(req); err != nil {
		return err
	}
	word := &model.BadWord{
		Word:     req.Word,
		IsRegex:  req.IsRegex,
		Level:    req.Level,
		Category: req.Category,
		IsActive: true,
	}
	if err := s.badWordRepo.CreateBadWord(ctx, word); err != nil {
		log.ErrorContext(ctx, "新增违禁词失败", "word", req.Word, "err", err)
		return UnExpectedError
	}
	return s.Reload(ctx)
}

// UpdateBadWord 修改词条并刷新快照
func (s *moderationServiceImpl) UpdateBadWord(ctx context.Context, req *dto.BadWordReq) error {
	if req.ID == 0 {
		return ErrParamInvalid
	}
	if err := s.validateWord(req); err != nil {
		return err
	}
	word := &model.BadWord{
		ID:       req.ID,
		Word:     req.Word,
		IsRegex:  req.IsRegex,
		Level:    req.Level,
		Category: req.Category,
	}
	if err := s.badWordRepo.UpdateBadWord(ctx, word); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBadWordNotFound
		}
		log.ErrorContext(ctx, "修改违禁词失败", "id", req.ID, "err", err)
		return UnExpectedError
	}
	return s.Reload(ctx)
}

// DisableBadWord 停用词条并刷新快照
func (s *moderationServiceImpl) DisableBadWord(ctx context.Context, id uint64) error {
	if id == 0 {
		return ErrParamInvalid
	}
	if err := s.badWordRepo.DisableBadWord(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBadWordNotFound
		}
		log.ErrorContext(ctx, "停用违禁词失败", "id", id, "err", err)
		return UnExpectedError
	}
	return s.Reload(ctx)
}

// validateWord 正则词条在入库前校验可编译性
func (s *moderationServiceImpl) validateWord(req *dto.BadWordReq) error {
	if strings.TrimSpace(req.Word) == "" {
		return ErrParamInvalid
	}
	if req.IsRegex {
		if _, err := regexp.Compile(req.Word); err != nil {
			return ErrBadWordRegexInvalid
		}
	}
	return nil
}
