package confirmation

import (
	"context"
	"fmt"

	"github.com/gotomicro/ego/core/elog"

	"club-notification/internal/domain"
	"club-notification/internal/errs"
	"club-notification/internal/pkg/ratelimit"
)

var _ Service = (*RateLimitedService)(nil)

// RateLimitedService 按组织限制批量发送频率，其余操作直接透传
// 限流器出错时放行
type RateLimitedService struct {
	Service
	limiter ratelimit.Limiter
	logger  *elog.Component
}

func NewRateLimitedService(svc Service, limiter ratelimit.Limiter) *RateLimitedService {
	return &RateLimitedService{
		Service: svc,
		limiter: limiter,
		logger:  elog.DefaultLogger,
	}
}

func (s *RateLimitedService) BulkSend(ctx context.Context, req domain.BulkSendRequest) (domain.BulkSendResult, error) {
	key := fmt.Sprintf("bulk_send:%d", req.OrganizationID)
	limited, err := s.limiter.Limit(ctx, key)
	if err != nil {
		s.logger.Warn("批量发送限流检查失败，直接放行", elog.String("key", key), elog.FieldErr(err))
		return s.Service.BulkSend(ctx, req)
	}
	if limited {
		return domain.BulkSendResult{}, fmt.Errorf("%w: 组织 %d 批量发送过于频繁", errs.ErrRateLimited, req.OrganizationID)
	}
	return s.Service.BulkSend(ctx, req)
}
