package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/adromero/frame-sync/internal/config"
	"github.com/adromero/frame-sync/internal/logger"
	"github.com/adromero/frame-sync/internal/platform/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// LimitClass 端点限流分类
type LimitClass string

const (
	ClassGlobal LimitClass = "global"
	ClassRead   LimitClass = "read"
	ClassMutate LimitClass = "mutate"
)

const (
	redisRateLimitTimeout = 50 * time.Millisecond
	sweepInterval         = time.Minute
	minIdleTTL            = 3 * time.Minute
)

// IPRateLimiter 按 (分类, 来源地址) 维护令牌桶，只在内存中计算，不触碰数据库
type IPRateLimiter struct {
	ips       sync.Map
	mu        sync.Mutex
	now       func() time.Time
	lastSweep atomic.Int64
}

type client struct {
	mu       sync.Mutex
	limiter  *rate.Limiter
	lastSeen time.Time
	window   time.Duration
}

// NewIPRateLimiter 创建限流器，now 为空时使用系统时钟
func NewIPRateLimiter(now func() time.Time) *IPRateLimiter {
	if now == nil {
		now = time.Now
	}
	return &IPRateLimiter{now: now}
}

func (i *IPRateLimiter) getClient(key string, rule config.LimitRule, now time.Time) *client {
	if v, ok := i.ips.Load(key); ok {
		return v.(*client)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	// Double check
	if v, ok := i.ips.Load(key); ok {
		return v.(*client)
	}

	c := &client{
		limiter:  rate.NewLimiter(ruleLimit(rule), rule.Limit),
		lastSeen: now,
		window:   rule.Window,
	}
	// 新桶从满额开始
	c.limiter.SetBurstAt(now, rule.Limit)
	i.ips.Store(key, c)
	return c
}

// Allow 尝试消费一个令牌，拒绝时返回下一个令牌可用前的等待时间
func (i *IPRateLimiter) Allow(key string, rule config.LimitRule) (bool, time.Duration) {
	if rule.Limit <= 0 || rule.Window <= 0 {
		return true, 0
	}

	now := i.now()
	i.sweep(now)

	c := i.getClient(key, rule, now)
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastSeen = now
	c.window = rule.Window

	// 配置热更新后同步桶参数
	if limit := ruleLimit(rule); c.limiter.Limit() != limit {
		c.limiter.SetLimitAt(now, limit)
	}
	if c.limiter.Burst() != rule.Limit {
		c.limiter.SetBurstAt(now, rule.Limit)
	}

	r := c.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, rule.Window
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// sweep 按需清理长期空闲的桶，最多每分钟执行一次
func (i *IPRateLimiter) sweep(now time.Time) {
	last := i.lastSweep.Load()
	if last != 0 && now.Sub(time.Unix(0, last)) < sweepInterval {
		return
	}
	if !i.lastSweep.CompareAndSwap(last, now.UnixNano()) {
		return
	}

	i.ips.Range(func(key, value any) bool {
		c := value.(*client)
		c.mu.Lock()
		idle := now.Sub(c.lastSeen)
		ttl := max(c.window, minIdleTTL)
		c.mu.Unlock()
		if idle > ttl {
			i.ips.Delete(key)
		}
		return true
	})
}

// Len 返回当前跟踪的桶数量
func (i *IPRateLimiter) Len() int {
	n := 0
	i.ips.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func ruleLimit(rule config.LimitRule) rate.Limit {
	return rate.Limit(float64(rule.Limit) / rule.Window.Seconds())
}

// allowByRedisRateLimit 在 Redis 中以固定窗口计数，client 为空或规则关闭时直接放行
func allowByRedisRateLimit(ctx context.Context, client *redis.Client, key string, rule config.LimitRule) (bool, time.Duration, error) {
	if client == nil || rule.Limit <= 0 || rule.Window <= 0 {
		return true, 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, redisRateLimitTimeout)
	defer cancel()

	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, err
	}
	if count == 1 {
		if err := client.PExpire(ctx, key, rule.Window).Err(); err != nil {
			return false, 0, err
		}
	}
	if count <= int64(rule.Limit) {
		return true, 0, nil
	}

	ttl, err := client.PTTL(ctx, key).Result()
	if err != nil {
		return false, 0, err
	}
	if ttl <= 0 {
		// 计数键丢失过期时间时补设，避免永久封禁
		_ = client.PExpire(ctx, key, rule.Window).Err()
		ttl = rule.Window
	}
	return false, ttl, nil
}

// RateLimiter 组合 Redis 固定窗口与内存令牌桶，Redis 出错时退回内存
type RateLimiter struct {
	appService *service.AppService
	local      *IPRateLimiter
	now        func() time.Time
}

// NewRateLimiter 创建限流器，now 为空时使用系统时钟
func NewRateLimiter(appService *service.AppService, now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		appService: appService,
		local:      NewIPRateLimiter(now),
		now:        now,
	}
}

func (l *RateLimiter) rule(cfg config.RateLimitConfig, class LimitClass) config.LimitRule {
	switch class {
	case ClassRead:
		return cfg.Read
	case ClassMutate:
		return cfg.Mutate
	default:
		return cfg.Global
	}
}

func (l *RateLimiter) allow(ctx context.Context, class LimitClass, ip string, rule config.LimitRule) (bool, time.Duration) {
	if client := l.appService.RedisClient(); client != nil {
		ok, wait, err := allowByRedisRateLimit(ctx, client, l.appService.RedisKey("ratelimit", string(class), ip), rule)
		if err == nil {
			return ok, wait
		}
		logger.L.Warn("Redis 限流失败，退回内存限流", zap.String("class", string(class)), zap.Error(err))
	}
	return l.local.Allow(string(class)+":"+ip, rule)
}

// Handler 按固定分类限流
func (l *RateLimiter) Handler(class LimitClass) gin.HandlerFunc {
	return func(c *gin.Context) {
		l.check(c, class)
	}
}

// ByMethod GET/HEAD 归入 read，其余方法归入 mutate
func (l *RateLimiter) ByMethod() gin.HandlerFunc {
	return func(c *gin.Context) {
		class := ClassMutate
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			class = ClassRead
		}
		l.check(c, class)
	}
}

func (l *RateLimiter) check(c *gin.Context, class LimitClass) {
	cfg := l.appService.Config().RateLimit
	// 检查总开关
	if !cfg.Enabled {
		c.Next()
		return
	}
	rule := l.rule(cfg, class)
	if rule.Limit <= 0 || rule.Window <= 0 {
		c.Next()
		return
	}

	ok, wait := l.allow(c.Request.Context(), class, c.ClientIP(), rule)
	if ok {
		c.Next()
		return
	}

	retryAfter := int64(math.Ceil(wait.Seconds()))
	if retryAfter < 1 {
		retryAfter = 1
	}
	rateLimitedTotal.WithLabelValues(string(class)).Inc()

	c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
	c.Header("X-RateLimit-Limit", strconv.Itoa(rule.Limit))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(l.now().Unix()+retryAfter, 10))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"error":       "请求过于频繁，请稍后再试",
		"code":        service.ErrorCodeRateLimited,
		"retry_after": retryAfter,
	})
}
