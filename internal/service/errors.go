package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	TooManyRequests     = 429
	Blocked             = 451
	InternalServerError = 500
)

var (
	ErrParamInvalid         = errors.New("参数错误")
	ErrUserNotFound         = errors.New("用户不存在")
	ErrUserBan              = errors.New("用户已被封禁")
	ErrUserUsernameExist    = errors.New("用户名已存在")
	ErrPasswordIncorrect    = errors.New("密码错误")
	ErrPetNotFound          = errors.New("宠物不存在")
	ErrPetNotOwned          = errors.New("宠物不属于当前用户")
	ErrLikeSelf             = errors.New("不能喜欢自己的宠物")
	ErrLikeDuplicate        = errors.New("已经喜欢过该宠物")
	ErrLikeQuotaExceeded    = errors.New("今日喜欢次数已用完")
	ErrAIQuotaExceeded      = errors.New("今日AI提问次数已用完")
	ErrMatchNotFound        = errors.New("匹配不存在")
	ErrMatchAlreadyHandled  = errors.New("匹配已处理")
	ErrActionInvalid        = errors.New("不支持的操作")
	ErrConversationNotFound = errors.New("会话不存在")
	ErrMessageEmpty         = errors.New("消息内容不能为空")
	ErrMessageBlocked       = errors.New("消息包含违禁内容")
	ErrConfirmNotFound      = errors.New("确认单不存在")
	ErrBadWordNotFound      = errors.New("违禁词不存在")
	ErrBadWordRegexInvalid  = errors.New("正则表达式无效")
	UnauthorizedError       = errors.New("权限不足")
	UnExpectedError         = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:         BadRequest,
	ErrUserNotFound:         NotFound,
	ErrUserBan:              Forbidden,
	ErrUserUsernameExist:    BadRequest,
	ErrPasswordIncorrect:    Unauthorized,
	ErrPetNotFound:          NotFound,
	ErrPetNotOwned:          Forbidden,
	ErrLikeSelf:             BadRequest,
	ErrLikeDuplicate:        Conflict,
	ErrLikeQuotaExceeded:    TooManyRequests,
	ErrAIQuotaExceeded:      TooManyRequests,
	ErrMatchNotFound:        NotFound,
	ErrMatchAlreadyHandled:  Conflict,
	ErrActionInvalid:        BadRequest,
	ErrConversationNotFound: NotFound,
	ErrMessageEmpty:         BadRequest,
	ErrMessageBlocked:       Blocked,
	ErrConfirmNotFound:      NotFound,
	ErrBadWordNotFound:      NotFound,
	ErrBadWordRegexInvalid:  BadRequest,
	UnauthorizedError:       Unauthorized,
	UnExpectedError:         InternalServerError,
}
